package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ADMIN_EMAIL", "a@b.com")
	t.Setenv("ADMIN_PASSWORD", "secret")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/portfolio")
}

func TestLoad(t *testing.T) {
	t.Run("defaults are applied", func(t *testing.T) {
		setRequiredEnv(t)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.ServerPort)
		assert.Equal(t, 15*time.Minute, cfg.JWTAccessTTL)
		assert.Equal(t, 168*time.Hour, cfg.JWTRefreshTTL)
		assert.Equal(t, 12*time.Hour, cfg.TokenSweepInterval)
		assert.False(t, cfg.CookieSecure)
	})

	t.Run("refresh secret falls back to the access secret", func(t *testing.T) {
		setRequiredEnv(t)

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "test-secret", cfg.JWTRefreshSecret)
	})

	t.Run("dedicated refresh secret is kept", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("JWT_REFRESH_SECRET", "other-secret")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "other-secret", cfg.JWTRefreshSecret)
	})

	t.Run("custom durations are parsed", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("JWT_ACCESS_TTL", "5m")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 5*time.Minute, cfg.JWTAccessTTL)
	})

	t.Run("unparsable values fall back to defaults", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("JWT_ACCESS_TTL", "soon")
		t.Setenv("RATE_LIMIT_RPM", "many")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 15*time.Minute, cfg.JWTAccessTTL)
		assert.Equal(t, 100, cfg.RateLimitRPM)
	})

	t.Run("missing admin identity is fatal", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("ADMIN_EMAIL", "")

		_, err := Load()
		assert.ErrorContains(t, err, "ADMIN_EMAIL")
	})

	t.Run("missing JWT secret is fatal", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("JWT_SECRET", "")

		_, err := Load()
		assert.ErrorContains(t, err, "JWT_SECRET")
	})
}
