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

type CertificateRepository struct {
	pool *pgxpool.Pool
}

func NewCertificateRepository(pool *pgxpool.Pool) *CertificateRepository {
	return &CertificateRepository{pool: pool}
}

func (r *CertificateRepository) List(ctx context.Context) ([]model.Certificate, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, issuer, link, image, created_at, updated_at
		 FROM certificates ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list certificates: %w", err)
	}
	defer rows.Close()

	certificates := make([]model.Certificate, 0)
	for rows.Next() {
		var c model.Certificate
		if err := rows.Scan(&c.ID, &c.Title, &c.Issuer, &c.Link, &c.Image, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan certificate: %w", err)
		}
		certificates = append(certificates, c)
	}
	return certificates, rows.Err()
}

func (r *CertificateRepository) Get(ctx context.Context, id string) (model.Certificate, error) {
	var c model.Certificate
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, issuer, link, image, created_at, updated_at
		 FROM certificates WHERE id = $1`, id).
		Scan(&c.ID, &c.Title, &c.Issuer, &c.Link, &c.Image, &c.CreatedAt, &c.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Certificate{}, model.ErrNotFound
	}
	if err != nil {
		return model.Certificate{}, fmt.Errorf("get certificate: %w", err)
	}
	return c, nil
}

func (r *CertificateRepository) Create(ctx context.Context, c model.Certificate) (model.Certificate, error) {
	c.ID = uuid.NewString()
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	_, err := r.pool.Exec(ctx,
		`INSERT INTO certificates (id, title, issuer, link, image, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.Title, c.Issuer, c.Link, c.Image, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return model.Certificate{}, fmt.Errorf("create certificate: %w", err)
	}
	return c, nil
}

func (r *CertificateRepository) Update(ctx context.Context, id string, c model.Certificate) (model.Certificate, error) {
	var out model.Certificate
	err := r.pool.QueryRow(ctx,
		`UPDATE certificates
		 SET title = $2, issuer = $3, link = $4, image = $5, updated_at = $6
		 WHERE id = $1
		 RETURNING id, title, issuer, link, image, created_at, updated_at`,
		id, c.Title, c.Issuer, c.Link, c.Image, time.Now().UTC()).
		Scan(&out.ID, &out.Title, &out.Issuer, &out.Link, &out.Image, &out.CreatedAt, &out.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Certificate{}, model.ErrNotFound
	}
	if err != nil {
		return model.Certificate{}, fmt.Errorf("update certificate: %w", err)
	}
	return out, nil
}

func (r *CertificateRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM certificates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete certificate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
