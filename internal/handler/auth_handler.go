package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"portfolio-api/internal/model"
	"portfolio-api/internal/service"
)

// RefreshCookieName, the cookie flags and the 7-day max-age are a
// compatibility contract with the admin dashboard client.
const RefreshCookieName = "refreshToken"

type AuthHandler struct {
	service      *service.AuthService
	audit        *service.AuditService
	cookieSecure bool
}

func NewAuthHandler(service *service.AuthService, audit *service.AuditService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{service: service, audit: audit, cookieSecure: cookieSecure}
}

// Login issues a token pair on valid admin credentials: the access token in
// the body, the refresh token as an http-only cookie. A mismatch leaves no
// partial state behind.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, model.FailureResponse{Success: false, Message: "invalid JSON body"})
		return
	}

	pair, err := h.service.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, model.ErrInvalidCredentials) {
			writeJSON(w, http.StatusUnauthorized, model.FailureResponse{Success: false, Message: "Invalid credentials"})
			return
		}
		slog.Error("login failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, model.FailureResponse{Success: false, Message: "Unexpected server error"})
		return
	}

	if h.audit != nil {
		h.audit.Record(r.Context(), "login", "session", "", service.AdminUser)
	}

	h.setRefreshCookie(w, pair.RefreshToken)
	writeJSON(w, http.StatusOK, model.SessionResponse{Success: true, Token: pair.AccessToken})
}

// Refresh rotates the refresh token from the cookie. A missing cookie is a
// 400; an invalid, expired or already-rotated token clears the cookie and
// drops the client back to anonymous with a generic 401.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(RefreshCookieName)
	if err != nil || cookie.Value == "" {
		writeJSON(w, http.StatusBadRequest, model.FailureResponse{Success: false, Message: "Missing refresh token"})
		return
	}

	pair, err := h.service.Refresh(r.Context(), cookie.Value)
	if err != nil {
		if errors.Is(err, model.ErrTokenInvalid) || errors.Is(err, model.ErrTokenNotFound) {
			h.clearRefreshCookie(w)
			writeJSON(w, http.StatusUnauthorized, model.FailureResponse{Success: false, Message: "Unauthorized"})
			return
		}
		slog.Error("refresh failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, model.FailureResponse{Success: false, Message: "Unexpected server error"})
		return
	}

	h.setRefreshCookie(w, pair.RefreshToken)
	writeJSON(w, http.StatusOK, model.SessionResponse{Success: true, Token: pair.AccessToken})
}

// Logout revokes the cookie's ledger record if one matches and always
// reports success; calling it twice is harmless.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	raw := ""
	if cookie, err := r.Cookie(RefreshCookieName); err == nil {
		raw = cookie.Value
	}

	_ = h.service.Logout(r.Context(), raw)

	h.clearRefreshCookie(w)
	writeJSON(w, http.StatusOK, model.SuccessResponse{Success: true})
}

func (h *AuthHandler) setRefreshCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.service.RefreshTTL().Seconds()),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *AuthHandler) clearRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
}
