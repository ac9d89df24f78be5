package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"portfolio-api/internal/model"
	"portfolio-api/pkg/apierror"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeResourceError maps a resource failure to the status taxonomy:
// validation→400, not found→404, anything else→500 with a generic body.
// Store errors are logged server-side, never echoed to the client.
func writeResourceError(w http.ResponseWriter, resource string, err error) {
	var apiErr *apierror.APIError
	switch {
	case errors.Is(err, model.ErrInvalidInput):
		apiErr = apierror.BadRequest(err.Error())
	case errors.Is(err, model.ErrNotFound):
		apiErr = apierror.NotFound(resource)
	default:
		slog.Error("resource handler error", "resource", resource, "error", err)
		apiErr = apierror.Internal()
	}

	writeJSON(w, apiErr.HTTPStatus, model.ErrorResponse{Error: apiErr.Message})
}
