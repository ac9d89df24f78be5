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

type ContactRepository struct {
	pool *pgxpool.Pool
}

func NewContactRepository(pool *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{pool: pool}
}

func (r *ContactRepository) List(ctx context.Context) ([]model.ContactMessage, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, email, message, created_at
		 FROM contact_messages ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	defer rows.Close()

	messages := make([]model.ContactMessage, 0)
	for rows.Next() {
		var m model.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan contact message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (r *ContactRepository) Get(ctx context.Context, id string) (model.ContactMessage, error) {
	var m model.ContactMessage
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, email, message, created_at
		 FROM contact_messages WHERE id = $1`, id).
		Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.ContactMessage{}, model.ErrNotFound
	}
	if err != nil {
		return model.ContactMessage{}, fmt.Errorf("get contact message: %w", err)
	}
	return m, nil
}

func (r *ContactRepository) Create(ctx context.Context, m model.ContactMessage) (model.ContactMessage, error) {
	m.ID = uuid.NewString()
	m.CreatedAt = time.Now().UTC()

	_, err := r.pool.Exec(ctx,
		`INSERT INTO contact_messages (id, name, email, message, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		m.ID, m.Name, m.Email, m.Message, m.CreatedAt)
	if err != nil {
		return model.ContactMessage{}, fmt.Errorf("create contact message: %w", err)
	}
	return m, nil
}

// Update exists to satisfy the generic resource store; messages are
// immutable once submitted, so the router never exposes it.
func (r *ContactRepository) Update(ctx context.Context, id string, m model.ContactMessage) (model.ContactMessage, error) {
	return model.ContactMessage{}, model.ErrInvalidInput
}

func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM contact_messages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete contact message: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
