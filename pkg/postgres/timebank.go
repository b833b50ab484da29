package postgres

import (
	"context"
	"fmt"

	"github.com/rfogaca/vigia/pkg/db"
)

// InsertTimeBankEntry inserts a signed-minutes ledger entry
func (d *DB) InsertTimeBankEntry(ctx context.Context, entry db.TimeBankEntry) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO time_bank_entry (id, guard_id, guard_name, kind, minutes, reason, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, entry.ID, entry.GuardID, entry.GuardName, entry.Kind, entry.Minutes,
		entry.Reason, entry.RecordedAt)
	if err != nil {
		return fmt.Errorf("failed to insert time bank entry: %w", err)
	}
	return nil
}

// GetTimeBankEntries retrieves a guard's ledger entries, newest first
func (d *DB) GetTimeBankEntries(ctx context.Context, guardID string) ([]db.TimeBankEntry, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, guard_id, guard_name, kind, minutes, reason, recorded_at
		FROM time_bank_entry
		WHERE guard_id = $1
		ORDER BY recorded_at DESC
	`, guardID)
	if err != nil {
		return nil, fmt.Errorf("failed to query time bank entries for guard %s: %w", guardID, err)
	}
	defer rows.Close()

	var entries []db.TimeBankEntry
	for rows.Next() {
		var e db.TimeBankEntry
		err := rows.Scan(&e.ID, &e.GuardID, &e.GuardName, &e.Kind, &e.Minutes,
			&e.Reason, &e.RecordedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time bank entry: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating time bank entries: %w", err)
	}

	return entries, nil
}
