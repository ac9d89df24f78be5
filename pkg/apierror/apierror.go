package apierror

import (
	"fmt"
	"net/http"
)

type APIError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
	HTTPStatus int    `json:"-"`
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}

	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}

	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(code string, message string, details string, status int) *APIError {
	return &APIError{Code: code, Message: message, Details: details, HTTPStatus: status}
}

// Unauthorized builds the generic 401 used for every authentication failure.
// Bad credentials, expired tokens and forged tokens are deliberately
// indistinguishable to the caller.
func Unauthorized() *APIError {
	return New("UNAUTHORIZED", "Unauthorized", "", http.StatusUnauthorized)
}

func BadRequest(message string) *APIError {
	return New("BAD_REQUEST", message, "", http.StatusBadRequest)
}

func NotFound(resource string) *APIError {
	return New("NOT_FOUND", resource+" not found", "", http.StatusNotFound)
}

// Internal hides the underlying failure behind a generic message; the real
// error only ever reaches the server log.
func Internal() *APIError {
	return New("INTERNAL", "Unexpected server error", "", http.StatusInternalServerError)
}
