package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"portfolio-api/internal/middleware"
	"portfolio-api/internal/model"
	"portfolio-api/internal/service"
)

// Store is the persistence surface a resource family needs. Each pgx
// repository implements it for its own table.
type Store[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, item T) (T, error)
	Update(ctx context.Context, id string, item T) (T, error)
	Delete(ctx context.Context, id string) error
}

type validator interface {
	Validate() error
}

// Resource is the one CRUD handler shared by all resource families. The
// seven families differ only in entity type, table and authorization policy,
// so schema is a type parameter and policy lives in the router.
type Resource[T any] struct {
	name  string
	store Store[T]
	audit *service.AuditService
}

func NewResource[T any](name string, store Store[T], audit *service.AuditService) *Resource[T] {
	return &Resource[T]{name: name, store: store, audit: audit}
}

func (h *Resource[T]) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.List(r.Context())
	if err != nil {
		writeResourceError(w, h.name, err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

func (h *Resource[T]) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeResourceError(w, h.name, err)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

func (h *Resource[T]) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var item T
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: "invalid JSON body"})
		return
	}

	if err := validate(&item); err != nil {
		writeResourceError(w, h.name, err)
		return
	}

	created, err := h.store.Create(r.Context(), item)
	if err != nil {
		writeResourceError(w, h.name, err)
		return
	}

	h.recordAudit(r, "create", entityID(created))
	writeJSON(w, http.StatusCreated, created)
}

func (h *Resource[T]) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var item T
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: "invalid JSON body"})
		return
	}

	if err := validate(&item); err != nil {
		writeResourceError(w, h.name, err)
		return
	}

	id := chi.URLParam(r, "id")
	updated, err := h.store.Update(r.Context(), id, item)
	if err != nil {
		writeResourceError(w, h.name, err)
		return
	}

	h.recordAudit(r, "update", id)
	writeJSON(w, http.StatusOK, updated)
}

func (h *Resource[T]) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.store.Delete(r.Context(), id); err != nil {
		writeResourceError(w, h.name, err)
		return
	}

	h.recordAudit(r, "delete", id)
	writeJSON(w, http.StatusOK, model.SuccessResponse{Success: true})
}

func (h *Resource[T]) recordAudit(r *http.Request, action string, id string) {
	if h.audit == nil {
		return
	}

	actor := ""
	if _, ok := middleware.ClaimsFromContext(r.Context()); ok {
		actor = service.AdminUser
	}
	h.audit.Record(r.Context(), action, h.name, id, actor)
}

func validate(item any) error {
	if v, ok := item.(validator); ok {
		return v.Validate()
	}
	return nil
}

// entityID pulls the generated id off a freshly created entity for the
// audit trail without each type needing an accessor method.
func entityID(item any) string {
	raw, err := json.Marshal(item)
	if err != nil {
		return ""
	}

	var probe struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return ""
	}
	return probe.ID
}
