package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rfogaca/vigia/pkg/db"
)

const swapColumns = `id, shift_a_id, guard_a_id, shift_b_id, guard_b_id,
	requester_name, requested_name, post_name, shift_start, status, requested_at`

// InsertSwapRequest inserts a new swap request record
func (d *DB) InsertSwapRequest(ctx context.Context, request db.SwapRequest) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO swap_request (
			id, shift_a_id, guard_a_id, shift_b_id, guard_b_id,
			requester_name, requested_name, post_name, shift_start, status, requested_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, request.ID, request.ShiftAID, request.GuardAID, request.ShiftBID, request.GuardBID,
		request.RequesterName, request.RequestedName, request.PostName,
		request.ShiftStart, request.Status, request.RequestedAt)
	if err != nil {
		return fmt.Errorf("failed to insert swap request: %w", err)
	}
	return nil
}

// GetSwapRequest retrieves a swap request by id
func (d *DB) GetSwapRequest(ctx context.Context, id string) (*db.SwapRequest, error) {
	row := d.pool.QueryRow(ctx, `
		SELECT `+swapColumns+`
		FROM swap_request
		WHERE id = $1
	`, id)

	request, err := scanSwapRequest(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, db.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query swap request %s: %w", id, err)
	}
	return request, nil
}

// ListSwapRequests retrieves all swap requests, newest first
func (d *DB) ListSwapRequests(ctx context.Context) ([]db.SwapRequest, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT `+swapColumns+`
		FROM swap_request
		ORDER BY requested_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query swap requests: %w", err)
	}
	defer rows.Close()

	var requests []db.SwapRequest
	for rows.Next() {
		request, err := scanSwapRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan swap request: %w", err)
		}
		requests = append(requests, *request)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating swap requests: %w", err)
	}

	return requests, nil
}

// ExchangeGuards approves a pending swap request inside a single
// transaction: the request row is locked, both shifts receive the other
// party's guard, and the request is marked approved. All three writes
// succeed or none do.
func (d *DB) ExchangeGuards(ctx context.Context, requestID string) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `
		SELECT shift_a_id, guard_a_id, shift_b_id, guard_b_id, status
		FROM swap_request
		WHERE id = $1
		FOR UPDATE
	`, requestID)

	var shiftAID, guardAID, shiftBID, guardBID, status string
	if err := row.Scan(&shiftAID, &guardAID, &shiftBID, &guardBID, &status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return db.ErrNotFound
		}
		return fmt.Errorf("failed to lock swap request %s: %w", requestID, err)
	}

	if status != db.SwapPending {
		return db.ErrSwapResolved
	}

	// Guard B takes shift A and vice versa.
	if err := updateShiftGuardTx(ctx, tx, shiftAID, guardBID); err != nil {
		return err
	}
	if err := updateShiftGuardTx(ctx, tx, shiftBID, guardAID); err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		UPDATE swap_request SET status = $2 WHERE id = $1
	`, requestID, db.SwapApproved)
	if err != nil {
		return fmt.Errorf("failed to approve swap request %s: %w", requestID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// RejectSwap marks a pending swap request rejected. The shifts are left
// untouched.
func (d *DB) RejectSwap(ctx context.Context, requestID string) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE swap_request SET status = $2 WHERE id = $1 AND status = $3
	`, requestID, db.SwapRejected, db.SwapPending)
	if err != nil {
		return fmt.Errorf("failed to reject swap request %s: %w", requestID, err)
	}
	if tag.RowsAffected() == 0 {
		// Distinguish a missing request from one already resolved.
		var status string
		err := d.pool.QueryRow(ctx, `
			SELECT status FROM swap_request WHERE id = $1
		`, requestID).Scan(&status)
		if errors.Is(err, pgx.ErrNoRows) {
			return db.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to query swap request %s: %w", requestID, err)
		}
		return db.ErrSwapResolved
	}
	return nil
}

func updateShiftGuardTx(ctx context.Context, tx pgx.Tx, shiftID, guardID string) error {
	tag, err := tx.Exec(ctx, `
		UPDATE shift SET guard_id = $2, status = $3 WHERE id = $1
	`, shiftID, nullableID(guardID), db.ShiftStatus(guardID))
	if err != nil {
		return fmt.Errorf("failed to update shift %s: %w", shiftID, err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

func scanSwapRequest(row rowScanner) (*db.SwapRequest, error) {
	var r db.SwapRequest
	err := row.Scan(&r.ID, &r.ShiftAID, &r.GuardAID, &r.ShiftBID, &r.GuardBID,
		&r.RequesterName, &r.RequestedName, &r.PostName, &r.ShiftStart,
		&r.Status, &r.RequestedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}
