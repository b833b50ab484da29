package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rfogaca/vigia/pkg/core/schedule"
	"github.com/rfogaca/vigia/pkg/db"
)

var minutesPerHour = decimal.NewFromInt(60)

// DaySummary is the dashboard's day-alert data: shift counts for one
// calendar day.
type DaySummary struct {
	Day          time.Time `json:"day"`
	TotalShifts  int       `json:"totalShifts"`
	VacantShifts int       `json:"vacantShifts"`
	FilledShifts int       `json:"filledShifts"`
}

// GuardWorkload is one guard's assigned load over a range.
type GuardWorkload struct {
	GuardID    string          `json:"guardId"`
	ShiftCount int             `json:"shiftCount"`
	Hours      decimal.Decimal `json:"hours"`
}

// ScheduleSummary counts the vacant and filled shifts on a single day. A day
// with vacant shifts is surfaced as an alert on the dashboard.
func ScheduleSummary(ctx context.Context, database db.ShiftStore, logger *zap.Logger, day string) (*DaySummary, error) {
	d, err := parseDay(day)
	if err != nil {
		return nil, err
	}

	shifts, err := database.GetShiftsInRange(ctx, d, schedule.EndOfDay(d))
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts for day %s: %w", day, err)
	}

	summary := &DaySummary{Day: d, TotalShifts: len(shifts)}
	for _, s := range shifts {
		if db.ShiftStatus(s.GuardID) == db.ShiftVacant {
			summary.VacantShifts++
		} else {
			summary.FilledShifts++
		}
	}

	logger.Debug("Computed day summary",
		zap.String("day", day),
		zap.Int("total", summary.TotalShifts),
		zap.Int("vacant", summary.VacantShifts))
	return summary, nil
}

// WorkloadSummary totals each guard's assigned hours over the inclusive day
// range, sorted by guard id. Vacant shifts contribute nothing.
func WorkloadSummary(ctx context.Context, database db.ShiftStore, logger *zap.Logger, fromDate, toDate string) ([]GuardWorkload, error) {
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

	minutes := make(map[string]int64)
	counts := make(map[string]int)
	for _, s := range shifts {
		if s.GuardID == "" {
			continue
		}
		minutes[s.GuardID] += int64(s.EndAt.Sub(s.StartAt) / time.Minute)
		counts[s.GuardID]++
	}

	workloads := make([]GuardWorkload, 0, len(minutes))
	for guardID, mins := range minutes {
		workloads = append(workloads, GuardWorkload{
			GuardID:    guardID,
			ShiftCount: counts[guardID],
			Hours:      decimal.NewFromInt(mins).Div(minutesPerHour),
		})
	}
	sort.Slice(workloads, func(i, j int) bool { return workloads[i].GuardID < workloads[j].GuardID })

	logger.Debug("Computed workload summary", zap.Int("guards", len(workloads)))
	return workloads, nil
}
