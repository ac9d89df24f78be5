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

type SkillRepository struct {
	pool *pgxpool.Pool
}

func NewSkillRepository(pool *pgxpool.Pool) *SkillRepository {
	return &SkillRepository{pool: pool}
}

// List returns skills oldest-first so the public page keeps its curated order.
func (r *SkillRepository) List(ctx context.Context) ([]model.Skill, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, created_at FROM skills ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	defer rows.Close()

	skills := make([]model.Skill, 0)
	for rows.Next() {
		var s model.Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan skill: %w", err)
		}
		skills = append(skills, s)
	}
	return skills, rows.Err()
}

func (r *SkillRepository) Get(ctx context.Context, id string) (model.Skill, error) {
	var s model.Skill
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, created_at FROM skills WHERE id = $1`, id).
		Scan(&s.ID, &s.Name, &s.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Skill{}, model.ErrNotFound
	}
	if err != nil {
		return model.Skill{}, fmt.Errorf("get skill: %w", err)
	}
	return s, nil
}

func (r *SkillRepository) Create(ctx context.Context, s model.Skill) (model.Skill, error) {
	s.ID = uuid.NewString()
	s.CreatedAt = time.Now().UTC()

	_, err := r.pool.Exec(ctx,
		`INSERT INTO skills (id, name, created_at) VALUES ($1, $2, $3)`,
		s.ID, s.Name, s.CreatedAt)
	if err != nil {
		return model.Skill{}, fmt.Errorf("create skill: %w", err)
	}
	return s, nil
}

func (r *SkillRepository) Update(ctx context.Context, id string, s model.Skill) (model.Skill, error) {
	var out model.Skill
	err := r.pool.QueryRow(ctx,
		`UPDATE skills SET name = $2 WHERE id = $1 RETURNING id, name, created_at`,
		id, s.Name).
		Scan(&out.ID, &out.Name, &out.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Skill{}, model.ErrNotFound
	}
	if err != nil {
		return model.Skill{}, fmt.Errorf("update skill: %w", err)
	}
	return out, nil
}

func (r *SkillRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM skills WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete skill: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
