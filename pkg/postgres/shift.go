package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/rfogaca/vigia/pkg/core/schedule"
	"github.com/rfogaca/vigia/pkg/db"
)

const shiftColumns = `id, post_id, guard_id, start_at, end_at, status`

// GetShift retrieves a single shift by id
func (d *DB) GetShift(ctx context.Context, id string) (*db.Shift, error) {
	row := d.pool.QueryRow(ctx, `
		SELECT `+shiftColumns+`
		FROM shift
		WHERE id = $1
	`, id)

	shift, err := scanShift(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, db.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query shift %s: %w", id, err)
	}
	return shift, nil
}

// GetShiftsInRange retrieves shifts whose start instant falls in [start, end],
// ordered by start ascending
func (d *DB) GetShiftsInRange(ctx context.Context, start, end time.Time) ([]db.Shift, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT `+shiftColumns+`
		FROM shift
		WHERE start_at >= $1 AND start_at <= $2
		ORDER BY start_at
	`, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts in range: %w", err)
	}
	defer rows.Close()

	return collectShifts(rows)
}

// GetShiftsByGuard retrieves all shifts held by a guard, ordered by start
func (d *DB) GetShiftsByGuard(ctx context.Context, guardID string) ([]db.Shift, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT `+shiftColumns+`
		FROM shift
		WHERE guard_id = $1
		ORDER BY start_at
	`, guardID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts for guard %s: %w", guardID, err)
	}
	defer rows.Close()

	return collectShifts(rows)
}

// GetShiftsByGuardAndDay retrieves the guard's shifts starting on the given
// calendar day. This is the conflict-detection read: it matches start
// instants only, so an overnight shift occupies just the day it starts on.
func (d *DB) GetShiftsByGuardAndDay(ctx context.Context, guardID string, day time.Time) ([]db.Shift, error) {
	dayStart := schedule.StartOfDay(day)
	rows, err := d.pool.Query(ctx, `
		SELECT `+shiftColumns+`
		FROM shift
		WHERE guard_id = $1 AND start_at >= $2 AND start_at < $3
		ORDER BY start_at
	`, guardID, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts for guard %s on %s: %w",
			guardID, dayStart.Format("2006-01-02"), err)
	}
	defer rows.Close()

	return collectShifts(rows)
}

// InsertShift inserts a single shift record
func (d *DB) InsertShift(ctx context.Context, shift db.Shift) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO shift (id, post_id, guard_id, start_at, end_at, status)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, shift.ID, shift.PostID, nullableID(shift.GuardID), shift.StartAt, shift.EndAt, shift.Status)
	if err != nil {
		return fmt.Errorf("failed to insert shift: %w", err)
	}
	return nil
}

// InsertShifts inserts a batch of shift records inside one transaction:
// either every shift is persisted or none are.
func (d *DB) InsertShifts(ctx context.Context, shifts []db.Shift) error {
	if len(shifts) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, shift := range shifts {
		_, err := tx.Exec(ctx, `
			INSERT INTO shift (id, post_id, guard_id, start_at, end_at, status)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, shift.ID, shift.PostID, nullableID(shift.GuardID), shift.StartAt, shift.EndAt, shift.Status)
		if err != nil {
			return fmt.Errorf("failed to insert shift: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// UpdateShiftGuard sets or clears the guard assignment of a single shift
func (d *DB) UpdateShiftGuard(ctx context.Context, shiftID, guardID, status string) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE shift SET guard_id = $2, status = $3 WHERE id = $1
	`, shiftID, nullableID(guardID), status)
	if err != nil {
		return fmt.Errorf("failed to update shift %s: %w", shiftID, err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanShift(row rowScanner) (*db.Shift, error) {
	var s db.Shift
	var guardID *string
	if err := row.Scan(&s.ID, &s.PostID, &guardID, &s.StartAt, &s.EndAt, &s.Status); err != nil {
		return nil, err
	}
	if guardID != nil {
		s.GuardID = *guardID
	}
	return &s, nil
}

func collectShifts(rows pgx.Rows) ([]db.Shift, error) {
	var shifts []db.Shift
	for rows.Next() {
		shift, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, *shift)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shifts: %w", err)
	}

	return shifts, nil
}

// nullableID maps an empty id string to SQL NULL.
func nullableID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
