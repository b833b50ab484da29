package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rfogaca/vigia/pkg/db"
)

// TimeBankInput holds the request fields for one time-bank ledger entry.
// Minutes is always supplied positive; the entry kind decides the sign.
type TimeBankInput struct {
	GuardID string `json:"guardId" validate:"required"`
	Kind    string `json:"kind" validate:"required,oneof=credit debit"`
	Minutes int    `json:"minutes" validate:"required,min=1"`
	Reason  string `json:"reason" validate:"required,min=3"`
}

// TimeBankBalance is a guard's current time-bank position with its entries.
type TimeBankBalance struct {
	GuardID string            `json:"guardId"`
	Minutes int               `json:"minutes"`
	Hours   decimal.Decimal   `json:"hours"`
	Entries []db.TimeBankEntry `json:"entries"`
}

// RecordTimeBankEntry appends one signed entry to a guard's time-bank
// ledger. Credits are stored positive, debits negative, and the guard's name
// is denormalized onto the entry for display.
func RecordTimeBankEntry(ctx context.Context, database db.Database, logger *zap.Logger, input TimeBankInput) Result {
	if err := validate.Struct(input); err != nil {
		logger.Warn("Rejected time-bank input", zap.Error(err))
		return failure(MsgInvalidInput)
	}

	guard, err := database.GetGuard(ctx, input.GuardID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return failure(MsgGuardNotFound)
		}
		logger.Error("Failed to load guard", zap.String("guard_id", input.GuardID), zap.Error(err))
		return failure(MsgInternalError)
	}

	minutes := input.Minutes
	if input.Kind == db.TimeBankDebit {
		minutes = -minutes
	}

	entry := db.TimeBankEntry{
		ID:         uuid.New().String(),
		GuardID:    guard.ID,
		GuardName:  guard.Name,
		Kind:       input.Kind,
		Minutes:    minutes,
		Reason:     input.Reason,
		RecordedAt: time.Now().UTC(),
	}
	if err := database.InsertTimeBankEntry(ctx, entry); err != nil {
		logger.Error("Failed to persist time-bank entry", zap.String("guard_id", guard.ID), zap.Error(err))
		return failure(MsgInternalError)
	}

	logger.Info("Time-bank entry recorded",
		zap.String("guard_id", guard.ID),
		zap.String("kind", input.Kind),
		zap.Int("minutes", minutes))
	return success("Time-bank entry recorded successfully!")
}

// GetTimeBankBalance sums a guard's signed ledger entries.
func GetTimeBankBalance(ctx context.Context, database db.TimeBankStore, logger *zap.Logger, guardID string) (*TimeBankBalance, error) {
	if guardID == "" {
		return nil, fmt.Errorf("guard id is required")
	}

	entries, err := database.GetTimeBankEntries(ctx, guardID)
	if err != nil {
		return nil, fmt.Errorf("failed to load time-bank entries for guard %s: %w", guardID, err)
	}

	total := 0
	for _, e := range entries {
		total += e.Minutes
	}

	balance := &TimeBankBalance{
		GuardID: guardID,
		Minutes: total,
		Hours:   decimal.NewFromInt(int64(total)).Div(minutesPerHour),
		Entries: entries,
	}

	logger.Debug("Computed time-bank balance",
		zap.String("guard_id", guardID),
		zap.Int("minutes", total))
	return balance, nil
}
