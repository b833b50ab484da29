package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rfogaca/vigia/pkg/db"
)

func TestRecordTimeBankEntry_Credit(t *testing.T) {
	fake := newFakeDB()
	fake.guards["guard-1"] = db.Guard{ID: "guard-1", Name: "Ana Souza"}

	result := RecordTimeBankEntry(context.Background(), fake, zap.NewNop(), TimeBankInput{
		GuardID: "guard-1",
		Kind:    db.TimeBankCredit,
		Minutes: 90,
		Reason:  "held post past shift end",
	})

	assert.True(t, result.Success)
	require.Len(t, fake.timebank, 1)
	entry := fake.timebank[0]
	assert.Equal(t, 90, entry.Minutes)
	assert.Equal(t, "Ana Souza", entry.GuardName)
	assert.False(t, entry.RecordedAt.IsZero())
}

func TestRecordTimeBankEntry_DebitStoredNegative(t *testing.T) {
	fake := newFakeDB()
	fake.guards["guard-1"] = db.Guard{ID: "guard-1", Name: "Ana Souza"}

	result := RecordTimeBankEntry(context.Background(), fake, zap.NewNop(), TimeBankInput{
		GuardID: "guard-1",
		Kind:    db.TimeBankDebit,
		Minutes: 60,
		Reason:  "left early, family emergency",
	})

	assert.True(t, result.Success)
	require.Len(t, fake.timebank, 1)
	assert.Equal(t, -60, fake.timebank[0].Minutes)
}

func TestRecordTimeBankEntry_Validation(t *testing.T) {
	fake := newFakeDB()
	fake.guards["guard-1"] = db.Guard{ID: "guard-1", Name: "Ana Souza"}

	cases := map[string]TimeBankInput{
		"zero minutes": {GuardID: "guard-1", Kind: db.TimeBankCredit, Minutes: 0, Reason: "overtime"},
		"short reason": {GuardID: "guard-1", Kind: db.TimeBankCredit, Minutes: 30, Reason: "ot"},
		"bad kind":     {GuardID: "guard-1", Kind: "adjustment", Minutes: 30, Reason: "overtime"},
		"no guard":     {Kind: db.TimeBankCredit, Minutes: 30, Reason: "overtime"},
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			result := RecordTimeBankEntry(context.Background(), fake, zap.NewNop(), input)
			assert.False(t, result.Success)
			assert.Equal(t, MsgInvalidInput, result.Message)
		})
	}
	assert.Empty(t, fake.timebank)
}

func TestRecordTimeBankEntry_GuardNotFound(t *testing.T) {
	fake := newFakeDB()

	result := RecordTimeBankEntry(context.Background(), fake, zap.NewNop(), TimeBankInput{
		GuardID: "missing",
		Kind:    db.TimeBankCredit,
		Minutes: 30,
		Reason:  "overtime",
	})

	assert.False(t, result.Success)
	assert.Equal(t, MsgGuardNotFound, result.Message)
}

func TestGetTimeBankBalance(t *testing.T) {
	fake := newFakeDB()
	fake.guards["guard-1"] = db.Guard{ID: "guard-1", Name: "Ana Souza"}

	for _, input := range []TimeBankInput{
		{GuardID: "guard-1", Kind: db.TimeBankCredit, Minutes: 120, Reason: "double shift"},
		{GuardID: "guard-1", Kind: db.TimeBankDebit, Minutes: 30, Reason: "late arrival"},
	} {
		require.True(t, RecordTimeBankEntry(context.Background(), fake, zap.NewNop(), input).Success)
	}

	balance, err := GetTimeBankBalance(context.Background(), fake, zap.NewNop(), "guard-1")
	require.NoError(t, err)

	assert.Equal(t, 90, balance.Minutes)
	assert.True(t, balance.Hours.Equal(decimal.NewFromFloat(1.5)), "got %s", balance.Hours)
	assert.Len(t, balance.Entries, 2)
}
