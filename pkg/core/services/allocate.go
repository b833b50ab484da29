package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rfogaca/vigia/pkg/core/schedule"
	"github.com/rfogaca/vigia/pkg/db"
)

// AllocateInput holds the request fields for manual allocation.
type AllocateInput struct {
	ShiftID  string `json:"shiftId" validate:"required"`
	GuardID  string `json:"guardId" validate:"required"`
	ShiftDay string `json:"shiftDay" validate:"required,datetime=2006-01-02"`
}

// DeallocateInput holds the request fields for deallocation.
type DeallocateInput struct {
	ShiftID string `json:"shiftId" validate:"required"`
}

// PlaceShiftInput holds the request fields for direct shift placement. The
// wall-clock times are optional; direct placement flows have no template
// selected and fall back to the configured defaults.
type PlaceShiftInput struct {
	PostID    string `json:"postId" validate:"required"`
	GuardID   string `json:"guardId" validate:"required"`
	Day       string `json:"day" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"startTime" validate:"omitempty,datetime=15:04"`
	EndTime   string `json:"endTime" validate:"omitempty,datetime=15:04"`
}

// AllocateGuard assigns a guard to an existing shift and marks it filled.
// The allocation is rejected if the guard already holds a shift starting on
// the shift's calendar day. A single shift row changes, so no multi-document
// transaction is needed.
func AllocateGuard(ctx context.Context, database db.ShiftStore, logger *zap.Logger, input AllocateInput) Result {
	if err := validate.Struct(input); err != nil {
		logger.Warn("Rejected allocation input", zap.Error(err))
		return failure(MsgInvalidInput)
	}

	day, err := parseDay(input.ShiftDay)
	if err != nil {
		return failure(MsgInvalidInput)
	}

	busy, err := IsGuardBusy(ctx, database, input.GuardID, day)
	if err != nil {
		logger.Error("Conflict check failed", zap.String("guard_id", input.GuardID), zap.Error(err))
		return failure(MsgInternalError)
	}
	if busy {
		return failure(MsgGuardBusy)
	}

	if err := database.UpdateShiftGuard(ctx, input.ShiftID, input.GuardID, db.ShiftFilled); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return failure(MsgShiftNotFound)
		}
		logger.Error("Failed to allocate guard",
			zap.String("shift_id", input.ShiftID),
			zap.String("guard_id", input.GuardID),
			zap.Error(err))
		return failure(MsgInternalError)
	}

	logger.Info("Guard allocated",
		zap.String("shift_id", input.ShiftID),
		zap.String("guard_id", input.GuardID))
	return success(MsgGuardAllocated)
}

// DeallocateGuard clears the guard assignment of a shift and marks it vacant.
func DeallocateGuard(ctx context.Context, database db.ShiftStore, logger *zap.Logger, input DeallocateInput) Result {
	if err := validate.Struct(input); err != nil {
		logger.Warn("Rejected deallocation input", zap.Error(err))
		return failure(MsgInvalidInput)
	}

	if err := database.UpdateShiftGuard(ctx, input.ShiftID, "", db.ShiftVacant); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return failure(MsgShiftNotFound)
		}
		logger.Error("Failed to deallocate guard", zap.String("shift_id", input.ShiftID), zap.Error(err))
		return failure(MsgInternalError)
	}

	logger.Info("Guard deallocated", zap.String("shift_id", input.ShiftID))
	return success(MsgGuardDeallocated)
}

// PlaceShift creates a new shift on the given day and assigns the guard in
// one step, using the default times of day when none are supplied. Same
// conflict rule as manual allocation.
func PlaceShift(ctx context.Context, database db.ShiftStore, logger *zap.Logger, input PlaceShiftInput) Result {
	if err := validate.Struct(input); err != nil {
		logger.Warn("Rejected shift placement input", zap.Error(err))
		return failure(MsgInvalidInput)
	}

	day, err := parseDay(input.Day)
	if err != nil {
		return failure(MsgInvalidInput)
	}

	busy, err := IsGuardBusy(ctx, database, input.GuardID, day)
	if err != nil {
		logger.Error("Conflict check failed", zap.String("guard_id", input.GuardID), zap.Error(err))
		return failure(MsgInternalError)
	}
	if busy {
		return failure(MsgGuardBusy)
	}

	startTime := input.StartTime
	if startTime == "" {
		startTime = DefaultShiftStart
	}
	endTime := input.EndTime
	if endTime == "" {
		endTime = DefaultShiftEnd
	}

	startAt, endAt, err := schedule.ComposeShiftInstants(day, startTime, endTime)
	if err != nil {
		return failure(MsgInvalidInput)
	}

	shift := db.Shift{
		ID:      uuid.New().String(),
		PostID:  input.PostID,
		GuardID: input.GuardID,
		StartAt: startAt,
		EndAt:   endAt,
		Status:  db.ShiftFilled,
	}
	if err := database.InsertShift(ctx, shift); err != nil {
		logger.Error("Failed to create shift",
			zap.String("post_id", input.PostID),
			zap.String("guard_id", input.GuardID),
			zap.Error(err))
		return failure(MsgInternalError)
	}

	logger.Info("Shift placed",
		zap.String("shift_id", shift.ID),
		zap.String("post_id", input.PostID),
		zap.String("guard_id", input.GuardID))

	result := success(MsgShiftPlaced)
	result.ShiftID = shift.ID
	return result
}
