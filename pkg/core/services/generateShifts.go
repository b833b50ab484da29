package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rfogaca/vigia/pkg/db"
)

// GenerateShiftsInput holds the request fields for bulk shift generation.
type GenerateShiftsInput struct {
	PostID     string `json:"postId" validate:"required"`
	TemplateID string `json:"templateId" validate:"required"`
	StartDate  string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate    string `json:"endDate" validate:"required,datetime=2006-01-02"`
}

// GenerateShifts expands a template over a date range and creates one vacant
// shift per expanded day. No guard is assigned, so no conflict checking is
// performed. The batch is written atomically: either every generated shift is
// persisted or none are.
func GenerateShifts(ctx context.Context, database db.Database, logger *zap.Logger, input GenerateShiftsInput) Result {
	if err := validate.Struct(input); err != nil {
		logger.Warn("Rejected shift generation input", zap.Error(err))
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

	logger.Info("Generating shifts",
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

	shifts := make([]db.Shift, 0, len(windows))
	for _, w := range windows {
		shifts = append(shifts, db.Shift{
			ID:      uuid.New().String(),
			PostID:  input.PostID,
			StartAt: w.StartAt,
			EndAt:   w.EndAt,
			Status:  db.ShiftVacant,
		})
	}

	if err := database.InsertShifts(ctx, shifts); err != nil {
		logger.Error("Failed to persist generated shifts", zap.Int("count", len(shifts)), zap.Error(err))
		return failure(MsgInternalError)
	}

	logger.Info("Shifts generated", zap.Int("count", len(shifts)))
	return success(MsgShiftsGenerated)
}
