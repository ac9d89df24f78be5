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

type ContentRepository struct {
	pool *pgxpool.Pool
}

func NewContentRepository(pool *pgxpool.Pool) *ContentRepository {
	return &ContentRepository{pool: pool}
}

func (r *ContentRepository) List(ctx context.Context) ([]model.ContentBlock, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, type, title, description, created_at
		 FROM content_blocks ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list content blocks: %w", err)
	}
	defer rows.Close()

	blocks := make([]model.ContentBlock, 0)
	for rows.Next() {
		var b model.ContentBlock
		if err := rows.Scan(&b.ID, &b.Type, &b.Title, &b.Description, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan content block: %w", err)
		}
		blocks = append(blocks, b)
	}
	return blocks, rows.Err()
}

func (r *ContentRepository) Get(ctx context.Context, id string) (model.ContentBlock, error) {
	var b model.ContentBlock
	err := r.pool.QueryRow(ctx,
		`SELECT id, type, title, description, created_at
		 FROM content_blocks WHERE id = $1`, id).
		Scan(&b.ID, &b.Type, &b.Title, &b.Description, &b.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.ContentBlock{}, model.ErrNotFound
	}
	if err != nil {
		return model.ContentBlock{}, fmt.Errorf("get content block: %w", err)
	}
	return b, nil
}

func (r *ContentRepository) Create(ctx context.Context, b model.ContentBlock) (model.ContentBlock, error) {
	b.ID = uuid.NewString()
	b.CreatedAt = time.Now().UTC()

	_, err := r.pool.Exec(ctx,
		`INSERT INTO content_blocks (id, type, title, description, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		b.ID, b.Type, b.Title, b.Description, b.CreatedAt)
	if err != nil {
		return model.ContentBlock{}, fmt.Errorf("create content block: %w", err)
	}
	return b, nil
}

func (r *ContentRepository) Update(ctx context.Context, id string, b model.ContentBlock) (model.ContentBlock, error) {
	var out model.ContentBlock
	err := r.pool.QueryRow(ctx,
		`UPDATE content_blocks
		 SET type = $2, title = $3, description = $4
		 WHERE id = $1
		 RETURNING id, type, title, description, created_at`,
		id, b.Type, b.Title, b.Description).
		Scan(&out.ID, &out.Type, &out.Title, &out.Description, &out.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.ContentBlock{}, model.ErrNotFound
	}
	if err != nil {
		return model.ContentBlock{}, fmt.Errorf("update content block: %w", err)
	}
	return out, nil
}

func (r *ContentRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM content_blocks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete content block: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
