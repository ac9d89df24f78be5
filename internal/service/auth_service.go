package service

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"portfolio-api/internal/model"
)

// AdminUser tags every ledger record. The deployment has exactly one admin
// identity, configured from the environment; there is no user table.
const AdminUser = "admin"

const bcryptCost = 12

// TokenLedger persists outstanding refresh tokens as salted hashes.
type TokenLedger interface {
	Store(ctx context.Context, tokenHash string, user string, expiresAt time.Time) error
	ListActive(ctx context.Context, user string) ([]model.RefreshTokenRecord, error)
	Revoke(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

type AuthService struct {
	adminEmail    string
	adminPassword string
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	ledger        TokenLedger
}

func NewAuthService(adminEmail string, adminPassword string, accessSecret string, refreshSecret string,
	accessTTL time.Duration, refreshTTL time.Duration, ledger TokenLedger) *AuthService {
	if refreshSecret == "" {
		refreshSecret = accessSecret
	}

	return &AuthService{
		adminEmail:    adminEmail,
		adminPassword: adminPassword,
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		ledger:        ledger,
	}
}

// Login validates credentials against the configured admin identity and, on
// match, issues a fresh token pair and persists the hashed refresh token.
// Both comparisons run in constant time and their results are combined so a
// wrong email and a wrong password are indistinguishable.
func (s *AuthService) Login(ctx context.Context, email string, password string) (model.TokenPair, error) {
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(s.adminEmail))
	passwordOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.adminPassword))
	if emailOK&passwordOK != 1 {
		return model.TokenPair{}, model.ErrInvalidCredentials
	}

	return s.issueTokenPair(ctx)
}

// Refresh rotates a refresh token: verify the signature, locate the matching
// ledger record, revoke it, then issue and persist a new pair. Every refresh
// token is single-use; a valid-but-unmatched token means it was already
// rotated or revoked, so reuse is rejected.
func (s *AuthService) Refresh(ctx context.Context, rawToken string) (model.TokenPair, error) {
	claims, err := s.VerifyRefreshToken(rawToken)
	if err != nil || !IsAdmin(claims) {
		return model.TokenPair{}, model.ErrTokenInvalid
	}

	record, err := s.findMatching(ctx, rawToken)
	if err != nil {
		return model.TokenPair{}, err
	}

	// Revoke must complete before the new record becomes visible so two
	// valid tokens never refer to the same session.
	if err := s.ledger.Revoke(ctx, record.ID); err != nil {
		return model.TokenPair{}, err
	}

	return s.issueTokenPair(ctx)
}

// Logout revokes the ledger record matching the given raw token, if any.
// It is idempotent: an unknown, malformed or already-rotated token is not
// an error.
func (s *AuthService) Logout(ctx context.Context, rawToken string) error {
	if rawToken == "" {
		return nil
	}

	record, err := s.findMatching(ctx, rawToken)
	if err != nil {
		return nil
	}

	if err := s.ledger.Revoke(ctx, record.ID); err != nil {
		slog.Warn("logout: failed to revoke refresh token", "error", err)
	}
	return nil
}

// VerifyAccessToken returns the decoded claims when the token carries a
// valid signature, an access type and an unexpired deadline. All failure
// modes collapse into the same error.
func (s *AuthService) VerifyAccessToken(tokenString string) (*model.AuthClaims, error) {
	return verifyToken(tokenString, s.accessSecret, "access")
}

func (s *AuthService) VerifyRefreshToken(tokenString string) (*model.AuthClaims, error) {
	return verifyToken(tokenString, s.refreshSecret, "refresh")
}

// RefreshTTL exposes the refresh lifetime for cookie max-age.
func (s *AuthService) RefreshTTL() time.Duration {
	return s.refreshTTL
}

// IsAdmin reports whether the claims prove an authenticated admin.
func IsAdmin(claims *model.AuthClaims) bool {
	return claims != nil && claims.Role == "admin"
}

// StartLedgerSweeper periodically deletes expired ledger rows. Rotation
// already removes used tokens; the sweep covers sessions that were simply
// abandoned until expiry.
func (s *AuthService) StartLedgerSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := s.ledger.DeleteExpired(ctx)
			if err != nil {
				slog.Warn("ledger sweep failed", "error", err)
				continue
			}
			if deleted > 0 {
				slog.Info("ledger sweep removed expired refresh tokens", "count", deleted)
			}
		}
	}
}

// findMatching scans every live ledger record for the admin user and runs a
// constant-time hash comparison against each. O(n) in live sessions, which
// stays tiny at single-tenant scale; a multi-user deployment would need an
// indexed lookup on a token id claim instead.
func (s *AuthService) findMatching(ctx context.Context, rawToken string) (model.RefreshTokenRecord, error) {
	records, err := s.ledger.ListActive(ctx, AdminUser)
	if err != nil {
		return model.RefreshTokenRecord{}, fmt.Errorf("find matching token: %w", err)
	}

	digest := tokenDigest(rawToken)
	for _, record := range records {
		if bcrypt.CompareHashAndPassword([]byte(record.TokenHash), digest) == nil {
			return record, nil
		}
	}

	return model.RefreshTokenRecord{}, model.ErrTokenNotFound
}

func (s *AuthService) issueTokenPair(ctx context.Context) (model.TokenPair, error) {
	now := time.Now().UTC()

	accessToken, err := signToken(s.accessSecret, jwt.MapClaims{
		"role": "admin",
		"typ":  "access",
		"jti":  uuid.NewString(),
		"iat":  now.Unix(),
		"exp":  now.Add(s.accessTTL).Unix(),
	})
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("sign access token: %w", err)
	}

	refreshExpiry := now.Add(s.refreshTTL)
	refreshToken, err := signToken(s.refreshSecret, jwt.MapClaims{
		"role": "admin",
		"typ":  "refresh",
		"jti":  uuid.NewString(),
		"iat":  now.Unix(),
		"exp":  refreshExpiry.Unix(),
	})
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("sign refresh token: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword(tokenDigest(refreshToken), bcryptCost)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("hash refresh token: %w", err)
	}

	if err := s.ledger.Store(ctx, string(hash), AdminUser, refreshExpiry); err != nil {
		return model.TokenPair{}, err
	}

	return model.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.accessTTL.Seconds()),
	}, nil
}

func signToken(secret []byte, claims jwt.MapClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func verifyToken(tokenString string, secret []byte, expectedType string) (*model.AuthClaims, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, model.ErrTokenInvalid
		}
		return secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, model.ErrTokenInvalid
	}

	claimsMap, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, model.ErrTokenInvalid
	}

	typ, _ := claimsMap["typ"].(string)
	if typ != expectedType {
		return nil, model.ErrTokenInvalid
	}

	claims := &model.AuthClaims{Type: typ}
	claims.Role, _ = claimsMap["role"].(string)
	claims.TokenID, _ = claimsMap["jti"].(string)

	return claims, nil
}

// tokenDigest pre-hashes the raw token so it fits bcrypt's 72-byte input
// limit; a serialized JWT is always longer than that.
func tokenDigest(rawToken string) []byte {
	digest := sha256.Sum256([]byte(rawToken))
	return digest[:]
}
