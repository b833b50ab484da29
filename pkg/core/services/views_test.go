package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rfogaca/vigia/pkg/core/schedule"
	"github.com/rfogaca/vigia/pkg/db"
)

func TestListShiftsInRange_InclusiveBoundaries(t *testing.T) {
	fake := newFakeDB()

	before := time.Date(2025, 5, 31, 23, 0, 0, 0, time.UTC)
	first := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(2025, 6, 30, 23, 30, 0, 0, time.UTC)
	after := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	for id, start := range map[string]time.Time{"s0": before, "s1": first, "s2": last, "s3": after} {
		fake.shifts[id] = db.Shift{ID: id, StartAt: start, EndAt: start.Add(8 * time.Hour)}
	}

	shifts, err := ListShiftsInRange(context.Background(), fake, zap.NewNop(), "2025-06-01", "2025-06-30")
	require.NoError(t, err)

	require.Len(t, shifts, 2)
	assert.Equal(t, "s1", shifts[0].ID)
	assert.Equal(t, "s2", shifts[1].ID)
}

func TestListShiftsInRange_InvalidRange(t *testing.T) {
	fake := newFakeDB()

	_, err := ListShiftsInRange(context.Background(), fake, zap.NewNop(), "2025-06-30", "2025-06-01")
	assert.ErrorIs(t, err, schedule.ErrInvalidRange)
}

func TestListShiftsInRange_BadDate(t *testing.T) {
	fake := newFakeDB()

	_, err := ListShiftsInRange(context.Background(), fake, zap.NewNop(), "June 1st", "2025-06-30")
	assert.Error(t, err)
}

func TestGuardSchedule_SortedAscending(t *testing.T) {
	fake := newFakeDB()
	base := time.Date(2025, 6, 1, 7, 0, 0, 0, time.UTC)
	fake.shifts["s2"] = db.Shift{ID: "s2", GuardID: "guard-1", StartAt: base.AddDate(0, 0, 5)}
	fake.shifts["s1"] = db.Shift{ID: "s1", GuardID: "guard-1", StartAt: base}
	fake.shifts["other"] = db.Shift{ID: "other", GuardID: "guard-2", StartAt: base.AddDate(0, 0, 1)}

	shifts, err := GuardSchedule(context.Background(), fake, zap.NewNop(), "guard-1")
	require.NoError(t, err)

	require.Len(t, shifts, 2)
	assert.Equal(t, "s1", shifts[0].ID)
	assert.Equal(t, "s2", shifts[1].ID)
}

func TestGuardSchedule_RequiresGuardID(t *testing.T) {
	fake := newFakeDB()

	_, err := GuardSchedule(context.Background(), fake, zap.NewNop(), "")
	assert.Error(t, err)
}
