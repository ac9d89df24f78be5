package handler

import (
	"net/http"
	"strconv"

	"portfolio-api/internal/service"
)

type AuditHandler struct {
	service *service.AuditService
}

func NewAuditHandler(service *service.AuditService) *AuditHandler {
	return &AuditHandler{service: service}
}

func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	entries, err := h.service.ListRecent(r.Context(), limit)
	if err != nil {
		writeResourceError(w, "audit", err)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}
