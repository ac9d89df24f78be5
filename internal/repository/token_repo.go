package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"portfolio-api/internal/model"
)

// TokenRepository is the refresh-token ledger. Rows hold only the salted
// hash of a refresh token; matching a raw token against the ledger is done
// by the auth service, which compares against every live row for the user.
type TokenRepository struct {
	pool *pgxpool.Pool
}

func NewTokenRepository(pool *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{pool: pool}
}

func (r *TokenRepository) Store(ctx context.Context, tokenHash string, user string, expiresAt time.Time) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO refresh_tokens (id, token_hash, user_name, expires_at, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		uuid.NewString(), tokenHash, user, expiresAt, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("store refresh token: %w", err)
	}
	return nil
}

// ListActive returns the unexpired ledger rows for one user. The result set
// is small by construction (a single admin with a handful of sessions), which
// is what makes the caller's linear scan acceptable.
func (r *TokenRepository) ListActive(ctx context.Context, user string) ([]model.RefreshTokenRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, token_hash, user_name, expires_at, created_at
		 FROM refresh_tokens
		 WHERE user_name = $1 AND expires_at > now()
		 ORDER BY created_at DESC`, user)
	if err != nil {
		return nil, fmt.Errorf("list refresh tokens: %w", err)
	}
	defer rows.Close()

	records := make([]model.RefreshTokenRecord, 0)
	for rows.Next() {
		var rec model.RefreshTokenRecord
		if err := rows.Scan(&rec.ID, &rec.TokenHash, &rec.User, &rec.ExpiresAt, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan refresh token: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *TokenRepository) Revoke(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM refresh_tokens WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}

func (r *TokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM refresh_tokens WHERE expires_at <= now()`)
	if err != nil {
		return 0, fmt.Errorf("delete expired tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}
