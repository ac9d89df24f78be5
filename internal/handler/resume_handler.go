package handler

import (
	"net/http"
	"strings"

	"portfolio-api/internal/model"
	"portfolio-api/internal/service"
	"portfolio-api/internal/storage"
)

type ResumeHandler struct {
	store   *storage.ResumeStore
	audit   *service.AuditService
	maxSize int64
}

func NewResumeHandler(store *storage.ResumeStore, audit *service.AuditService, maxSize int64) *ResumeHandler {
	return &ResumeHandler{store: store, audit: audit, maxSize: maxSize}
}

// Upload replaces the published resume. Admin only; accepts a single
// multipart "resume" field that must be a PDF.
func (h *ResumeHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxSize)

	if !strings.Contains(r.Header.Get("Content-Type"), "multipart/form-data") {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: "Invalid content type"})
		return
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: "No file uploaded"})
		return
	}
	defer file.Close()

	if header.Header.Get("Content-Type") != "application/pdf" {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: "Only PDF files are allowed"})
		return
	}

	if err := h.store.Save(file); err != nil {
		writeResourceError(w, "resume", err)
		return
	}

	if h.audit != nil {
		h.audit.Record(r.Context(), "upload", "resume", "", service.AdminUser)
	}
	writeJSON(w, http.StatusOK, model.SuccessResponse{Success: true})
}

func (h *ResumeHandler) Download(w http.ResponseWriter, r *http.Request) {
	if !h.store.Exists() {
		writeJSON(w, http.StatusNotFound, model.ErrorResponse{Error: "resume not found"})
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="resume.pdf"`)
	http.ServeFile(w, r, h.store.Path())
}
