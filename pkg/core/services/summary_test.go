package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rfogaca/vigia/pkg/core/schedule"
	"github.com/rfogaca/vigia/pkg/db"
)

func TestScheduleSummary_CountsVacantAndFilled(t *testing.T) {
	fake := newFakeDB()
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	fake.shifts["s1"] = db.Shift{ID: "s1", StartAt: day.Add(7 * time.Hour), EndAt: day.Add(19 * time.Hour), Status: db.ShiftVacant}
	fake.shifts["s2"] = db.Shift{ID: "s2", GuardID: "g1", StartAt: day.Add(8 * time.Hour), EndAt: day.Add(20 * time.Hour), Status: db.ShiftFilled}
	// A shift on the next day must not count
	fake.shifts["s3"] = db.Shift{ID: "s3", StartAt: day.AddDate(0, 0, 1), EndAt: day.AddDate(0, 0, 1).Add(12 * time.Hour), Status: db.ShiftVacant}

	summary, err := ScheduleSummary(context.Background(), fake, zap.NewNop(), "2025-06-02")
	require.NoError(t, err)

	assert.Equal(t, 2, summary.TotalShifts)
	assert.Equal(t, 1, summary.VacantShifts)
	assert.Equal(t, 1, summary.FilledShifts)
}

func TestWorkloadSummary_HoursPerGuard(t *testing.T) {
	fake := newFakeDB()
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	// guard-1: one 12h day shift and one 8h overnight shift
	fake.shifts["s1"] = db.Shift{ID: "s1", GuardID: "guard-1",
		StartAt: day.Add(7 * time.Hour), EndAt: day.Add(19 * time.Hour), Status: db.ShiftFilled}
	night := day.AddDate(0, 0, 1)
	fake.shifts["s2"] = db.Shift{ID: "s2", GuardID: "guard-1",
		StartAt: night.Add(22 * time.Hour), EndAt: night.AddDate(0, 0, 1).Add(6 * time.Hour), Status: db.ShiftFilled}
	// guard-2: one 6h shift
	fake.shifts["s3"] = db.Shift{ID: "s3", GuardID: "guard-2",
		StartAt: day.Add(6 * time.Hour), EndAt: day.Add(12 * time.Hour), Status: db.ShiftFilled}
	// vacant shift contributes nothing
	fake.shifts["s4"] = db.Shift{ID: "s4",
		StartAt: day.Add(7 * time.Hour), EndAt: day.Add(19 * time.Hour), Status: db.ShiftVacant}

	workloads, err := WorkloadSummary(context.Background(), fake, zap.NewNop(), "2025-06-01", "2025-06-30")
	require.NoError(t, err)

	require.Len(t, workloads, 2)
	assert.Equal(t, "guard-1", workloads[0].GuardID)
	assert.Equal(t, 2, workloads[0].ShiftCount)
	assert.True(t, workloads[0].Hours.Equal(decimal.NewFromInt(20)), "got %s", workloads[0].Hours)
	assert.Equal(t, "guard-2", workloads[1].GuardID)
	assert.True(t, workloads[1].Hours.Equal(decimal.NewFromInt(6)), "got %s", workloads[1].Hours)
}

func TestWorkloadSummary_InvalidRange(t *testing.T) {
	fake := newFakeDB()

	_, err := WorkloadSummary(context.Background(), fake, zap.NewNop(), "2025-06-30", "2025-06-01")
	assert.ErrorIs(t, err, schedule.ErrInvalidRange)
}

func TestShiftStatus_PureFunctionOfGuardRef(t *testing.T) {
	assert.Equal(t, db.ShiftVacant, db.ShiftStatus(""))
	assert.Equal(t, db.ShiftFilled, db.ShiftStatus("guard-1"))
}
