package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rfogaca/vigia/pkg/db"
)

func TestAutoFillSchedule_NoConflicts(t *testing.T) {
	fake := newFakeDB()
	fake.templates["tpl-1"] = cycleTemplate("tpl-1", 4, 3)

	result := AutoFillSchedule(context.Background(), fake, zap.NewNop(), AutoFillInput{
		GuardID:    "guard-1",
		PostID:     "post-1",
		TemplateID: "tpl-1",
		StartDate:  "2025-06-01",
		EndDate:    "2025-06-14",
	})

	assert.True(t, result.Success)
	assert.Equal(t, MsgScheduleFilled, result.Message)
	assert.Zero(t, result.ConflictCount)

	require.Len(t, fake.insertedBatches, 1)
	for _, shift := range fake.insertedBatches[0] {
		assert.Equal(t, "guard-1", shift.GuardID)
		assert.Equal(t, db.ShiftFilled, shift.Status)
	}
}

func TestAutoFillSchedule_SkipsAndCountsConflicts(t *testing.T) {
	fake := newFakeDB()
	fake.templates["tpl-1"] = cycleTemplate("tpl-1", 4, 3)

	// Guard already works offsets 0 and 2 of the range at another post.
	day0 := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 6, 3, 8, 0, 0, 0, time.UTC)
	fake.shifts["existing-1"] = db.Shift{ID: "existing-1", PostID: "post-9", GuardID: "guard-1", StartAt: day0, EndAt: day0.Add(12 * time.Hour), Status: db.ShiftFilled}
	fake.shifts["existing-2"] = db.Shift{ID: "existing-2", PostID: "post-9", GuardID: "guard-1", StartAt: day2, EndAt: day2.Add(12 * time.Hour), Status: db.ShiftFilled}

	result := AutoFillSchedule(context.Background(), fake, zap.NewNop(), AutoFillInput{
		GuardID:    "guard-1",
		PostID:     "post-1",
		TemplateID: "tpl-1",
		StartDate:  "2025-06-01",
		EndDate:    "2025-06-14",
	})

	assert.True(t, result.Success, "conflicts are skipped, not failed")
	assert.Equal(t, 2, result.ConflictCount)
	assert.Contains(t, result.Message, "2 day(s) skipped due to conflict")

	// 8 expanded days minus 2 conflicts
	require.Len(t, fake.insertedBatches, 1)
	assert.Len(t, fake.insertedBatches[0], 6)

	// Conflict exclusivity: the guard never holds 2 shifts on one day
	for _, day := range []time.Time{day0, day2} {
		assert.Equal(t, 1, fake.guardShiftsOnDay("guard-1", day))
	}
}

func TestAutoFillSchedule_AllDaysConflict(t *testing.T) {
	fake := newFakeDB()
	fake.templates["tpl-1"] = cycleTemplate("tpl-1", 1, 1)

	day0 := time.Date(2025, 6, 1, 7, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 6, 3, 7, 0, 0, 0, time.UTC)
	fake.shifts["e1"] = db.Shift{ID: "e1", GuardID: "guard-1", StartAt: day0, EndAt: day0.Add(12 * time.Hour), Status: db.ShiftFilled}
	fake.shifts["e2"] = db.Shift{ID: "e2", GuardID: "guard-1", StartAt: day2, EndAt: day2.Add(12 * time.Hour), Status: db.ShiftFilled}

	result := AutoFillSchedule(context.Background(), fake, zap.NewNop(), AutoFillInput{
		GuardID:    "guard-1",
		PostID:     "post-1",
		TemplateID: "tpl-1",
		StartDate:  "2025-06-01",
		EndDate:    "2025-06-04",
	})

	assert.True(t, result.Success)
	assert.Equal(t, 2, result.ConflictCount)

	require.Len(t, fake.insertedBatches, 1)
	assert.Empty(t, fake.insertedBatches[0])
}

func TestAutoFillSchedule_StartAfterEnd(t *testing.T) {
	fake := newFakeDB()
	fake.templates["tpl-1"] = cycleTemplate("tpl-1", 4, 3)

	result := AutoFillSchedule(context.Background(), fake, zap.NewNop(), AutoFillInput{
		GuardID:    "guard-1",
		PostID:     "post-1",
		TemplateID: "tpl-1",
		StartDate:  "2025-06-14",
		EndDate:    "2025-06-01",
	})

	assert.False(t, result.Success)
	assert.Equal(t, MsgStartAfterEnd, result.Message)
	assert.Empty(t, fake.insertedBatches)
}

func TestAutoFillSchedule_MissingGuardID(t *testing.T) {
	fake := newFakeDB()

	result := AutoFillSchedule(context.Background(), fake, zap.NewNop(), AutoFillInput{
		PostID:     "post-1",
		TemplateID: "tpl-1",
		StartDate:  "2025-06-01",
		EndDate:    "2025-06-07",
	})

	assert.False(t, result.Success)
	assert.Equal(t, MsgInvalidInput, result.Message)
}
