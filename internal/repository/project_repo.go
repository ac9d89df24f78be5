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

type ProjectRepository struct {
	pool *pgxpool.Pool
}

func NewProjectRepository(pool *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{pool: pool}
}

func (r *ProjectRepository) List(ctx context.Context) ([]model.Project, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, description, tech_stack, date, image, link, created_at, updated_at
		 FROM projects ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects := make([]model.Project, 0)
	for rows.Next() {
		var p model.Project
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.TechStack, &p.Date,
			&p.Image, &p.Link, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *ProjectRepository) Get(ctx context.Context, id string) (model.Project, error) {
	var p model.Project
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, description, tech_stack, date, image, link, created_at, updated_at
		 FROM projects WHERE id = $1`, id).
		Scan(&p.ID, &p.Title, &p.Description, &p.TechStack, &p.Date,
			&p.Image, &p.Link, &p.CreatedAt, &p.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Project{}, model.ErrNotFound
	}
	if err != nil {
		return model.Project{}, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

func (r *ProjectRepository) Create(ctx context.Context, p model.Project) (model.Project, error) {
	p.ID = uuid.NewString()
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.TechStack == nil {
		p.TechStack = []string{}
	}

	_, err := r.pool.Exec(ctx,
		`INSERT INTO projects (id, title, description, tech_stack, date, image, link, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.Title, p.Description, p.TechStack, p.Date, p.Image, p.Link, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return model.Project{}, fmt.Errorf("create project: %w", err)
	}
	return p, nil
}

func (r *ProjectRepository) Update(ctx context.Context, id string, p model.Project) (model.Project, error) {
	if p.TechStack == nil {
		p.TechStack = []string{}
	}

	var out model.Project
	err := r.pool.QueryRow(ctx,
		`UPDATE projects
		 SET title = $2, description = $3, tech_stack = $4, date = $5, image = $6, link = $7, updated_at = $8
		 WHERE id = $1
		 RETURNING id, title, description, tech_stack, date, image, link, created_at, updated_at`,
		id, p.Title, p.Description, p.TechStack, p.Date, p.Image, p.Link, time.Now().UTC()).
		Scan(&out.ID, &out.Title, &out.Description, &out.TechStack, &out.Date,
			&out.Image, &out.Link, &out.CreatedAt, &out.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Project{}, model.ErrNotFound
	}
	if err != nil {
		return model.Project{}, fmt.Errorf("update project: %w", err)
	}
	return out, nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
