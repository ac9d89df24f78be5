package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"portfolio-api/internal/model"
)

type TimelineRepository struct {
	pool *pgxpool.Pool
}

func NewTimelineRepository(pool *pgxpool.Pool) *TimelineRepository {
	return &TimelineRepository{pool: pool}
}

func (r *TimelineRepository) List(ctx context.Context) ([]model.TimelineEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, year, description, icon, created_at
		 FROM timeline_entries ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list timeline entries: %w", err)
	}
	defer rows.Close()

	entries := make([]model.TimelineEntry, 0)
	for rows.Next() {
		var e model.TimelineEntry
		if err := rows.Scan(&e.ID, &e.Title, &e.Year, &e.Description, &e.Icon, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan timeline entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *TimelineRepository) Get(ctx context.Context, id string) (model.TimelineEntry, error) {
	var e model.TimelineEntry
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, year, description, icon, created_at
		 FROM timeline_entries WHERE id = $1`, id).
		Scan(&e.ID, &e.Title, &e.Year, &e.Description, &e.Icon, &e.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.TimelineEntry{}, model.ErrNotFound
	}
	if err != nil {
		return model.TimelineEntry{}, fmt.Errorf("get timeline entry: %w", err)
	}
	return e, nil
}

func (r *TimelineRepository) Create(ctx context.Context, e model.TimelineEntry) (model.TimelineEntry, error) {
	e.ID = uuid.NewString()
	e.CreatedAt = time.Now().UTC()

	_, err := r.pool.Exec(ctx,
		`INSERT INTO timeline_entries (id, title, year, description, icon, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, e.Title, e.Year, e.Description, e.Icon, e.CreatedAt)
	if err != nil {
		return model.TimelineEntry{}, fmt.Errorf("create timeline entry: %w", err)
	}
	return e, nil
}

func (r *TimelineRepository) Update(ctx context.Context, id string, e model.TimelineEntry) (model.TimelineEntry, error) {
	var out model.TimelineEntry
	err := r.pool.QueryRow(ctx,
		`UPDATE timeline_entries
		 SET title = $2, year = $3, description = $4, icon = $5
		 WHERE id = $1
		 RETURNING id, title, year, description, icon, created_at`,
		id, e.Title, e.Year, e.Description, e.Icon).
		Scan(&out.ID, &out.Title, &out.Year, &out.Description, &out.Icon, &out.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.TimelineEntry{}, model.ErrNotFound
	}
	if err != nil {
		return model.TimelineEntry{}, fmt.Errorf("update timeline entry: %w", err)
	}
	return out, nil
}

func (r *TimelineRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM timeline_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete timeline entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
