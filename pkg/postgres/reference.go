package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rfogaca/vigia/pkg/db"
)

// GetTemplate retrieves a shift template by id
func (d *DB) GetTemplate(ctx context.Context, id string) (*db.ShiftTemplate, error) {
	row := d.pool.QueryRow(ctx, `
		SELECT id, name, kind, start_time, end_time, work_days, rest_days, weekdays
		FROM shift_template
		WHERE id = $1
	`, id)

	var t db.ShiftTemplate
	err := row.Scan(&t.ID, &t.Name, &t.Kind, &t.StartTime, &t.EndTime,
		&t.WorkDays, &t.RestDays, &t.Weekdays)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, db.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query shift template %s: %w", id, err)
	}

	return &t, nil
}

// GetGuard retrieves a guard by id
func (d *DB) GetGuard(ctx context.Context, id string) (*db.Guard, error) {
	row := d.pool.QueryRow(ctx, `
		SELECT id, name, badge, status
		FROM guard
		WHERE id = $1
	`, id)

	var g db.Guard
	if err := row.Scan(&g.ID, &g.Name, &g.Badge, &g.Status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, db.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query guard %s: %w", id, err)
	}

	return &g, nil
}

// GetPost retrieves a post by id
func (d *DB) GetPost(ctx context.Context, id string) (*db.Post, error) {
	row := d.pool.QueryRow(ctx, `
		SELECT id, name, headcount, active
		FROM post
		WHERE id = $1
	`, id)

	var p db.Post
	if err := row.Scan(&p.ID, &p.Name, &p.Headcount, &p.Active); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, db.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query post %s: %w", id, err)
	}

	return &p, nil
}
