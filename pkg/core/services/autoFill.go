package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rfogaca/vigia/pkg/db"
)

// AutoFillInput holds the request fields for automatic schedule filling.
type AutoFillInput struct {
	GuardID    string `json:"guardId" validate:"required"`
	PostID     string `json:"postId" validate:"required"`
	TemplateID string `json:"templateId" validate:"required"`
	StartDate  string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate    string `json:"endDate" validate:"required,datetime=2006-01-02"`
}

// AutoFillSchedule expands a template over a date range and creates a filled
// shift for the guard on every expanded day where the guard is free. Days on
// which the guard is already scheduled are skipped and counted, not failed:
// partial fulfillment is the intended behavior. Only the write of the
// accepted subset is atomic.
func AutoFillSchedule(ctx context.Context, database db.Database, logger *zap.Logger, input AutoFillInput) Result {
	if err := validate.Struct(input); err != nil {
		logger.Warn("Rejected auto-fill input", zap.Error(err))
		return failure(MsgInvalidInput)
	}

	startDate, err := parseDay(input.StartDate)
	if err != nil {
		return failure(MsgInvalidInput)
	}
	endDate, err := parseDay(input.EndDate)
	if err != nil {
		return failure(MsgInvalidInput)
	}
	if startDate.After(endDate) {
		return failure(MsgStartAfterEnd)
	}

	logger.Info("Auto-filling schedule",
		zap.String("guard_id", input.GuardID),
		zap.String("post_id", input.PostID),
		zap.String("template_id", input.TemplateID),
		zap.String("start", input.StartDate),
		zap.String("end", input.EndDate))

	record, err := database.GetTemplate(ctx, input.TemplateID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return failure(MsgTemplateNotFound)
		}
		logger.Error("Failed to load template", zap.String("template_id", input.TemplateID), zap.Error(err))
		return failure(MsgInternalError)
	}

	pattern, err := templatePattern(record)
	if err != nil {
		logger.Error("Template record has invalid configuration",
			zap.String("template_id", record.ID), zap.Error(err))
		return failure(MsgTemplateNotFound)
	}

	windows, err := pattern.Expand(startDate, endDate)
	if err != nil {
		logger.Error("Failed to expand template", zap.String("template_id", record.ID), zap.Error(err))
		return failure(MsgInternalError)
	}

	var shifts []db.Shift
	conflicts := 0
	for _, w := range windows {
		busy, err := IsGuardBusy(ctx, database, input.GuardID, w.Day)
		if err != nil {
			logger.Error("Conflict check failed", zap.String("guard_id", input.GuardID), zap.Error(err))
			return failure(MsgInternalError)
		}
		if busy {
			conflicts++
			continue
		}
		shifts = append(shifts, db.Shift{
			ID:      uuid.New().String(),
			PostID:  input.PostID,
			GuardID: input.GuardID,
			StartAt: w.StartAt,
			EndAt:   w.EndAt,
			Status:  db.ShiftFilled,
		})
	}

	if err := database.InsertShifts(ctx, shifts); err != nil {
		logger.Error("Failed to persist filled shifts", zap.Int("count", len(shifts)), zap.Error(err))
		return failure(MsgInternalError)
	}

	logger.Info("Schedule filled",
		zap.Int("created", len(shifts)),
		zap.Int("conflicts", conflicts))

	message := MsgScheduleFilled
	if conflicts > 0 {
		message = fmt.Sprintf("%s (%d day(s) skipped due to conflict).", MsgScheduleFilled, conflicts)
	}

	result := success(message)
	result.ConflictCount = conflicts
	return result
}
