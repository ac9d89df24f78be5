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

type AchievementRepository struct {
	pool *pgxpool.Pool
}

func NewAchievementRepository(pool *pgxpool.Pool) *AchievementRepository {
	return &AchievementRepository{pool: pool}
}

func (r *AchievementRepository) List(ctx context.Context) ([]model.Achievement, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, description, image, created_at, updated_at
		 FROM achievements ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}
	defer rows.Close()

	achievements := make([]model.Achievement, 0)
	for rows.Next() {
		var a model.Achievement
		if err := rows.Scan(&a.ID, &a.Title, &a.Description, &a.Image, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan achievement: %w", err)
		}
		achievements = append(achievements, a)
	}
	return achievements, rows.Err()
}

func (r *AchievementRepository) Get(ctx context.Context, id string) (model.Achievement, error) {
	var a model.Achievement
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, description, image, created_at, updated_at
		 FROM achievements WHERE id = $1`, id).
		Scan(&a.ID, &a.Title, &a.Description, &a.Image, &a.CreatedAt, &a.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Achievement{}, model.ErrNotFound
	}
	if err != nil {
		return model.Achievement{}, fmt.Errorf("get achievement: %w", err)
	}
	return a, nil
}

func (r *AchievementRepository) Create(ctx context.Context, a model.Achievement) (model.Achievement, error) {
	a.ID = uuid.NewString()
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now

	_, err := r.pool.Exec(ctx,
		`INSERT INTO achievements (id, title, description, image, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, a.Title, a.Description, a.Image, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return model.Achievement{}, fmt.Errorf("create achievement: %w", err)
	}
	return a, nil
}

func (r *AchievementRepository) Update(ctx context.Context, id string, a model.Achievement) (model.Achievement, error) {
	var out model.Achievement
	err := r.pool.QueryRow(ctx,
		`UPDATE achievements
		 SET title = $2, description = $3, image = $4, updated_at = $5
		 WHERE id = $1
		 RETURNING id, title, description, image, created_at, updated_at`,
		id, a.Title, a.Description, a.Image, time.Now().UTC()).
		Scan(&out.ID, &out.Title, &out.Description, &out.Image, &out.CreatedAt, &out.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Achievement{}, model.ErrNotFound
	}
	if err != nil {
		return model.Achievement{}, fmt.Errorf("update achievement: %w", err)
	}
	return out, nil
}

func (r *AchievementRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM achievements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete achievement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
