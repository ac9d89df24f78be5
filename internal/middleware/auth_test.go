package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"portfolio-api/internal/model"
)

type fakeVerifier struct {
	claims map[string]*model.AuthClaims
}

func (f *fakeVerifier) VerifyAccessToken(tokenString string) (*model.AuthClaims, error) {
	if claims, ok := f.claims[tokenString]; ok {
		return claims, nil
	}
	return nil, model.ErrTokenInvalid
}

func TestRequireAdmin(t *testing.T) {
	verifier := &fakeVerifier{claims: map[string]*model.AuthClaims{
		"admin-token":  {Role: "admin", Type: "access"},
		"viewer-token": {Role: "viewer", Type: "access"},
	}}
	mw := NewAuthMiddleware(verifier)

	var gotClaims *model.AuthClaims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClaims, _ = ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	protected := mw.RequireAdmin(next)

	serve := func(authHeader string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/projects", nil)
		if authHeader != "" {
			req.Header.Set("Authorization", authHeader)
		}
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		return rec
	}

	t.Run("missing header is rejected", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, serve("").Code)
	})

	t.Run("non-bearer scheme is rejected", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, serve("Basic abc").Code)
	})

	t.Run("invalid token is rejected", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, serve("Bearer nope").Code)
	})

	t.Run("valid token with non-admin role is rejected", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, serve("Bearer viewer-token").Code)
	})

	t.Run("admin token passes through with claims in context", func(t *testing.T) {
		gotClaims = nil
		rec := serve("Bearer admin-token")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotNil(t, gotClaims)
		assert.Equal(t, "admin", gotClaims.Role)
	})
}
