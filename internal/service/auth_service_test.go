package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-api/internal/model"
)

type fakeLedger struct {
	records     []model.RefreshTokenRecord
	storeCalls  int
	revokeCalls int
}

func (f *fakeLedger) Store(_ context.Context, tokenHash string, user string, expiresAt time.Time) error {
	f.storeCalls++
	f.records = append(f.records, model.RefreshTokenRecord{
		ID:        uuid.NewString(),
		TokenHash: tokenHash,
		User:      user,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	})
	return nil
}

func (f *fakeLedger) ListActive(_ context.Context, user string) ([]model.RefreshTokenRecord, error) {
	active := make([]model.RefreshTokenRecord, 0)
	for _, rec := range f.records {
		if rec.User == user && rec.ExpiresAt.After(time.Now()) {
			active = append(active, rec)
		}
	}
	return active, nil
}

func (f *fakeLedger) Revoke(_ context.Context, id string) error {
	f.revokeCalls++
	kept := f.records[:0]
	for _, rec := range f.records {
		if rec.ID != id {
			kept = append(kept, rec)
		}
	}
	f.records = kept
	return nil
}

func (f *fakeLedger) DeleteExpired(_ context.Context) (int64, error) {
	var deleted int64
	kept := f.records[:0]
	for _, rec := range f.records {
		if rec.ExpiresAt.After(time.Now()) {
			kept = append(kept, rec)
		} else {
			deleted++
		}
	}
	f.records = kept
	return deleted, nil
}

func newTestService(ledger TokenLedger) *AuthService {
	return NewAuthService("a@b.com", "secret", "access-secret", "refresh-secret",
		15*time.Minute, 168*time.Hour, ledger)
}

func TestAuthService_Login(t *testing.T) {
	t.Run("valid credentials issue a pair and persist a hashed record", func(t *testing.T) {
		ledger := &fakeLedger{}
		svc := newTestService(ledger)

		pair, err := svc.Login(context.Background(), "a@b.com", "secret")
		require.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)
		assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

		require.Len(t, ledger.records, 1)
		assert.Equal(t, AdminUser, ledger.records[0].User)
		// Only the salted hash is stored, never the raw token.
		assert.NotContains(t, ledger.records[0].TokenHash, pair.RefreshToken)
	})

	t.Run("wrong password is rejected with no state created", func(t *testing.T) {
		ledger := &fakeLedger{}
		svc := newTestService(ledger)

		_, err := svc.Login(context.Background(), "a@b.com", "wrong")
		assert.ErrorIs(t, err, model.ErrInvalidCredentials)
		assert.Empty(t, ledger.records)
	})

	t.Run("wrong email is indistinguishable from wrong password", func(t *testing.T) {
		ledger := &fakeLedger{}
		svc := newTestService(ledger)

		_, emailErr := svc.Login(context.Background(), "x@y.com", "secret")
		_, passErr := svc.Login(context.Background(), "a@b.com", "nope")
		assert.ErrorIs(t, emailErr, model.ErrInvalidCredentials)
		assert.Equal(t, emailErr, passErr)
		assert.Zero(t, ledger.storeCalls)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	t.Run("rotation succeeds exactly once per token", func(t *testing.T) {
		ledger := &fakeLedger{}
		svc := newTestService(ledger)

		pair, err := svc.Login(context.Background(), "a@b.com", "secret")
		require.NoError(t, err)

		rotated, err := svc.Refresh(context.Background(), pair.RefreshToken)
		require.NoError(t, err)
		assert.NotEqual(t, pair.AccessToken, rotated.AccessToken)
		assert.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)
		assert.Len(t, ledger.records, 1)

		// The pre-rotation token was revoked on use; replaying it fails.
		_, err = svc.Refresh(context.Background(), pair.RefreshToken)
		assert.ErrorIs(t, err, model.ErrTokenNotFound)

		// The rotated token is still good.
		_, err = svc.Refresh(context.Background(), rotated.RefreshToken)
		assert.NoError(t, err)
	})

	t.Run("malformed token fails verification", func(t *testing.T) {
		svc := newTestService(&fakeLedger{})

		_, err := svc.Refresh(context.Background(), "not-a-jwt")
		assert.ErrorIs(t, err, model.ErrTokenInvalid)
	})

	t.Run("access token cannot be used as a refresh token", func(t *testing.T) {
		ledger := &fakeLedger{}
		svc := newTestService(ledger)

		pair, err := svc.Login(context.Background(), "a@b.com", "secret")
		require.NoError(t, err)

		_, err = svc.Refresh(context.Background(), pair.AccessToken)
		assert.ErrorIs(t, err, model.ErrTokenInvalid)
	})
}

func TestAuthService_Logout(t *testing.T) {
	t.Run("revokes the matching record and is idempotent", func(t *testing.T) {
		ledger := &fakeLedger{}
		svc := newTestService(ledger)

		pair, err := svc.Login(context.Background(), "a@b.com", "secret")
		require.NoError(t, err)
		require.Len(t, ledger.records, 1)

		require.NoError(t, svc.Logout(context.Background(), pair.RefreshToken))
		assert.Empty(t, ledger.records)
		assert.Equal(t, 1, ledger.revokeCalls)

		// Second logout finds nothing and mutates nothing.
		require.NoError(t, svc.Logout(context.Background(), pair.RefreshToken))
		assert.Equal(t, 1, ledger.revokeCalls)
	})

	t.Run("empty and garbage tokens are accepted silently", func(t *testing.T) {
		ledger := &fakeLedger{}
		svc := newTestService(ledger)

		assert.NoError(t, svc.Logout(context.Background(), ""))
		assert.NoError(t, svc.Logout(context.Background(), "garbage"))
		assert.Zero(t, ledger.revokeCalls)
	})
}

func TestAuthService_VerifyAccessToken(t *testing.T) {
	t.Run("valid token decodes to admin claims", func(t *testing.T) {
		svc := newTestService(&fakeLedger{})

		pair, err := svc.Login(context.Background(), "a@b.com", "secret")
		require.NoError(t, err)

		claims, err := svc.VerifyAccessToken(pair.AccessToken)
		require.NoError(t, err)
		assert.True(t, IsAdmin(claims))
		assert.Equal(t, "access", claims.Type)
		assert.NotEmpty(t, claims.TokenID)
	})

	t.Run("expired token fails even with a correct signature", func(t *testing.T) {
		expired := NewAuthService("a@b.com", "secret", "access-secret", "refresh-secret",
			-1*time.Minute, 168*time.Hour, &fakeLedger{})

		pair, err := expired.Login(context.Background(), "a@b.com", "secret")
		require.NoError(t, err)

		_, err = expired.VerifyAccessToken(pair.AccessToken)
		assert.ErrorIs(t, err, model.ErrTokenInvalid)
	})

	t.Run("token signed with a different secret is rejected", func(t *testing.T) {
		svc := newTestService(&fakeLedger{})
		other := NewAuthService("a@b.com", "secret", "other-secret", "",
			15*time.Minute, 168*time.Hour, &fakeLedger{})

		pair, err := other.Login(context.Background(), "a@b.com", "secret")
		require.NoError(t, err)

		_, err = svc.VerifyAccessToken(pair.AccessToken)
		assert.ErrorIs(t, err, model.ErrTokenInvalid)
	})

	t.Run("refresh token is not accepted as an access token", func(t *testing.T) {
		svc := newTestService(&fakeLedger{})

		pair, err := svc.Login(context.Background(), "a@b.com", "secret")
		require.NoError(t, err)

		_, err = svc.VerifyAccessToken(pair.RefreshToken)
		assert.ErrorIs(t, err, model.ErrTokenInvalid)
	})
}

func TestIsAdmin(t *testing.T) {
	assert.False(t, IsAdmin(nil))
	assert.False(t, IsAdmin(&model.AuthClaims{Role: "viewer"}))
	assert.True(t, IsAdmin(&model.AuthClaims{Role: "admin"}))
}

func TestAuthService_LedgerSweep(t *testing.T) {
	ledger := &fakeLedger{}
	require.NoError(t, ledger.Store(context.Background(), "hash-old", AdminUser, time.Now().Add(-time.Hour)))
	require.NoError(t, ledger.Store(context.Background(), "hash-live", AdminUser, time.Now().Add(time.Hour)))

	deleted, err := ledger.DeleteExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
	assert.Len(t, ledger.records, 1)
}
