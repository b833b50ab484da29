package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rfogaca/vigia/pkg/db"
)

// SwapRequestInput holds the request fields for proposing a shift swap.
// Shift A belongs to the requesting guard, shift B to the requested guard.
type SwapRequestInput struct {
	ShiftAID string `json:"shiftAId" validate:"required"`
	GuardAID string `json:"guardAId" validate:"required"`
	ShiftBID string `json:"shiftBId" validate:"required"`
	GuardBID string `json:"guardBId" validate:"required"`
}

// SwapResponseInput holds the request fields for resolving a swap request.
type SwapResponseInput struct {
	RequestID string `json:"requestId" validate:"required"`
	Decision  string `json:"decision" validate:"required,oneof=approved rejected"`
}

// RequestSwap records a pending swap proposal between two filled shifts,
// denormalizing the guard names, post name and shift time for display. No
// conflict check happens at request time; guards are only reassigned at
// approval, and approval does not re-validate either. That gap is part of
// the scheduling model, not an oversight to patch here.
func RequestSwap(ctx context.Context, database db.Database, logger *zap.Logger, input SwapRequestInput) Result {
	if err := validate.Struct(input); err != nil {
		logger.Warn("Rejected swap request input", zap.Error(err))
		return failure(MsgInvalidInput)
	}

	logger.Info("Requesting swap",
		zap.String("shift_a", input.ShiftAID),
		zap.String("guard_a", input.GuardAID),
		zap.String("shift_b", input.ShiftBID),
		zap.String("guard_b", input.GuardBID))

	guardA, err := database.GetGuard(ctx, input.GuardAID)
	if err != nil {
		return swapLookupFailure(logger, "guard", input.GuardAID, err)
	}
	guardB, err := database.GetGuard(ctx, input.GuardBID)
	if err != nil {
		return swapLookupFailure(logger, "guard", input.GuardBID, err)
	}
	shiftA, err := database.GetShift(ctx, input.ShiftAID)
	if err != nil {
		return swapLookupFailure(logger, "shift", input.ShiftAID, err)
	}
	if _, err := database.GetShift(ctx, input.ShiftBID); err != nil {
		return swapLookupFailure(logger, "shift", input.ShiftBID, err)
	}

	postName := "Unknown post"
	if post, err := database.GetPost(ctx, shiftA.PostID); err == nil {
		postName = post.Name
	} else if !errors.Is(err, db.ErrNotFound) {
		logger.Error("Failed to load post", zap.String("post_id", shiftA.PostID), zap.Error(err))
		return failure(MsgInternalError)
	}

	request := db.SwapRequest{
		ID:            uuid.New().String(),
		ShiftAID:      input.ShiftAID,
		GuardAID:      input.GuardAID,
		ShiftBID:      input.ShiftBID,
		GuardBID:      input.GuardBID,
		RequesterName: guardA.Name,
		RequestedName: guardB.Name,
		PostName:      postName,
		ShiftStart:    shiftA.StartAt,
		Status:        db.SwapPending,
		RequestedAt:   time.Now().UTC(),
	}
	if err := database.InsertSwapRequest(ctx, request); err != nil {
		logger.Error("Failed to persist swap request", zap.Error(err))
		return failure(MsgInternalError)
	}

	logger.Info("Swap request created", zap.String("request_id", request.ID))

	result := success(MsgSwapRequested)
	result.SwapRequestID = request.ID
	return result
}

// RespondSwap resolves a pending swap request. Approval exchanges the guard
// assignments of both shifts and marks the request approved inside a single
// store transaction, so no half-swapped state is ever observable. Rejection
// only updates the request status. Either way the request is terminal
// afterwards.
func RespondSwap(ctx context.Context, database db.SwapStore, logger *zap.Logger, input SwapResponseInput) Result {
	if err := validate.Struct(input); err != nil {
		logger.Warn("Rejected swap response input", zap.Error(err))
		return failure(MsgInvalidInput)
	}

	logger.Info("Responding to swap request",
		zap.String("request_id", input.RequestID),
		zap.String("decision", input.Decision))

	var err error
	if input.Decision == db.SwapApproved {
		err = database.ExchangeGuards(ctx, input.RequestID)
	} else {
		err = database.RejectSwap(ctx, input.RequestID)
	}
	if err != nil {
		switch {
		case errors.Is(err, db.ErrNotFound):
			return failure(MsgSwapNotFound)
		case errors.Is(err, db.ErrSwapResolved):
			return failure(MsgSwapResolved)
		default:
			logger.Error("Failed to resolve swap request",
				zap.String("request_id", input.RequestID),
				zap.String("decision", input.Decision),
				zap.Error(err))
			return failure(MsgInternalError)
		}
	}

	logger.Info("Swap request resolved",
		zap.String("request_id", input.RequestID),
		zap.String("decision", input.Decision))
	return success(fmt.Sprintf("Swap request %s successfully.", input.Decision))
}

// ListSwapRequests returns all swap requests, newest first.
func ListSwapRequests(ctx context.Context, database db.SwapStore, logger *zap.Logger) ([]db.SwapRequest, error) {
	requests, err := database.ListSwapRequests(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list swap requests: %w", err)
	}
	logger.Debug("Listed swap requests", zap.Int("count", len(requests)))
	return requests, nil
}

func swapLookupFailure(logger *zap.Logger, kind, id string, err error) Result {
	if errors.Is(err, db.ErrNotFound) {
		return failure(MsgSwapInvalid)
	}
	logger.Error("Failed to load swap request reference",
		zap.String("kind", kind),
		zap.String("id", id),
		zap.Error(err))
	return failure(MsgInternalError)
}
