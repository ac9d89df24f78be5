package middleware

import (
	"context"
	"net/http"
	"strings"

	"portfolio-api/internal/model"
	"portfolio-api/internal/service"
	"portfolio-api/pkg/apierror"
)

type accessTokenVerifier interface {
	VerifyAccessToken(tokenString string) (*model.AuthClaims, error)
}

type contextKey string

const authClaimsContextKey contextKey = "auth_claims"

type AuthMiddleware struct {
	verifier accessTokenVerifier
}

func NewAuthMiddleware(verifier accessTokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// RequireAdmin gates mutating endpoints behind a bearer access token. A
// missing header, malformed token, failed verification and a non-admin role
// all produce the same generic 401.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := strings.TrimSpace(r.Header.Get("Authorization"))
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			writeUnauthorized(w)
			return
		}

		token := strings.TrimSpace(header[7:])
		claims, err := m.verifier.VerifyAccessToken(token)
		if err != nil || !service.IsAdmin(claims) {
			writeUnauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), authClaimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func ClaimsFromContext(ctx context.Context) (*model.AuthClaims, bool) {
	claims, ok := ctx.Value(authClaimsContextKey).(*model.AuthClaims)
	return claims, ok
}

func writeUnauthorized(w http.ResponseWriter) {
	apiErr := apierror.Unauthorized()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.HTTPStatus)
	_ = jsonEncode(w, model.FailureResponse{Success: false, Message: apiErr.Message})
}
