package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/rfogaca/vigia/pkg/core/schedule"
	"github.com/rfogaca/vigia/pkg/db"
)

// ListShiftsInRange returns every shift whose start instant falls within the
// inclusive day range, ordered by start ascending. This backs the calendar
// grid's month window.
func ListShiftsInRange(ctx context.Context, database db.ShiftStore, logger *zap.Logger, fromDate, toDate string) ([]db.Shift, error) {
	from, err := parseDay(fromDate)
	if err != nil {
		return nil, err
	}
	to, err := parseDay(toDate)
	if err != nil {
		return nil, err
	}
	if from.After(to) {
		return nil, schedule.ErrInvalidRange
	}

	shifts, err := database.GetShiftsInRange(ctx, from, schedule.EndOfDay(to))
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts in range: %w", err)
	}

	logger.Debug("Listed shifts in range",
		zap.String("from", fromDate),
		zap.String("to", toDate),
		zap.Int("count", len(shifts)))
	return shifts, nil
}

// GuardSchedule returns all shifts held by a guard, ordered by start
// ascending. This backs the guard's personal schedule view.
func GuardSchedule(ctx context.Context, database db.ShiftStore, logger *zap.Logger, guardID string) ([]db.Shift, error) {
	if guardID == "" {
		return nil, fmt.Errorf("guard id is required")
	}

	shifts, err := database.GetShiftsByGuard(ctx, guardID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts for guard %s: %w", guardID, err)
	}

	logger.Debug("Listed guard schedule", zap.String("guard_id", guardID), zap.Int("count", len(shifts)))
	return shifts, nil
}
