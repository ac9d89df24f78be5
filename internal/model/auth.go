package model

import "time"

// AuthClaims is the decoded payload of a signed token. The Type field
// distinguishes access tokens from refresh tokens so one can never be
// presented in place of the other, even when both secrets are the same.
type AuthClaims struct {
	Role    string `json:"role"`
	Type    string `json:"typ"`
	TokenID string `json:"jti"`
}

// TokenPair is the result of a successful login or refresh. The access token
// travels in the response body, the refresh token only ever in the cookie.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// RefreshTokenRecord is a ledger row. Only the salted hash of the raw
// refresh token is persisted; the cookie on the client is the sole holder
// of the raw value.
type RefreshTokenRecord struct {
	ID        string    `json:"id"`
	TokenHash string    `json:"-"`
	User      string    `json:"user"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
