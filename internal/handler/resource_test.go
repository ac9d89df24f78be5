package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-api/internal/model"
)

type fakeSkillStore struct {
	skills      []model.Skill
	createCalls int
	failWith    error
}

func (f *fakeSkillStore) List(_ context.Context) ([]model.Skill, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.skills, nil
}

func (f *fakeSkillStore) Get(_ context.Context, id string) (model.Skill, error) {
	for _, s := range f.skills {
		if s.ID == id {
			return s, nil
		}
	}
	return model.Skill{}, model.ErrNotFound
}

func (f *fakeSkillStore) Create(_ context.Context, s model.Skill) (model.Skill, error) {
	f.createCalls++
	if f.failWith != nil {
		return model.Skill{}, f.failWith
	}
	s.ID = fmt.Sprintf("skill-%d", len(f.skills)+1)
	f.skills = append(f.skills, s)
	return s, nil
}

func (f *fakeSkillStore) Update(_ context.Context, id string, s model.Skill) (model.Skill, error) {
	for i, existing := range f.skills {
		if existing.ID == id {
			s.ID = id
			f.skills[i] = s
			return s, nil
		}
	}
	return model.Skill{}, model.ErrNotFound
}

func (f *fakeSkillStore) Delete(_ context.Context, id string) error {
	for i, existing := range f.skills {
		if existing.ID == id {
			f.skills = append(f.skills[:i], f.skills[i+1:]...)
			return nil
		}
	}
	return model.ErrNotFound
}

func mountSkills(store *fakeSkillStore) http.Handler {
	h := NewResource[model.Skill]("skill", store, nil)
	r := chi.NewRouter()
	r.Get("/skills", h.List)
	r.Post("/skills", h.Create)
	r.Get("/skills/{id}", h.Get)
	r.Put("/skills/{id}", h.Update)
	r.Delete("/skills/{id}", h.Delete)
	return r
}

func TestResource_List(t *testing.T) {
	t.Run("returns the stored items", func(t *testing.T) {
		store := &fakeSkillStore{skills: []model.Skill{{ID: "skill-1", Name: "Go"}}}
		srv := mountSkills(store)

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/skills", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		var items []model.Skill
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&items))
		require.Len(t, items, 1)
		assert.Equal(t, "Go", items[0].Name)
	})

	t.Run("store failure maps to a generic 500", func(t *testing.T) {
		store := &fakeSkillStore{failWith: fmt.Errorf("connection reset")}
		srv := mountSkills(store)

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/skills", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		var body model.ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, "Unexpected server error", body.Error)
		assert.NotContains(t, body.Error, "connection reset")
	})
}

func TestResource_Create(t *testing.T) {
	t.Run("valid payload is persisted", func(t *testing.T) {
		store := &fakeSkillStore{}
		srv := mountSkills(store)

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/skills", strings.NewReader(`{"name":"Go"}`)))

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, 1, store.createCalls)
	})

	t.Run("missing required field is rejected before the store", func(t *testing.T) {
		store := &fakeSkillStore{}
		srv := mountSkills(store)

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/skills", strings.NewReader(`{"name":"  "}`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Zero(t, store.createCalls)
	})

	t.Run("invalid JSON is rejected", func(t *testing.T) {
		store := &fakeSkillStore{}
		srv := mountSkills(store)

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/skills", strings.NewReader(`{`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Zero(t, store.createCalls)
	})
}

func TestResource_GetUpdateDelete(t *testing.T) {
	t.Run("unknown id returns a named 404", func(t *testing.T) {
		srv := mountSkills(&fakeSkillStore{})

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/skills/missing", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		var body model.ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, "skill not found", body.Error)
	})

	t.Run("update replaces the entity", func(t *testing.T) {
		store := &fakeSkillStore{skills: []model.Skill{{ID: "skill-1", Name: "Go"}}}
		srv := mountSkills(store)

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/skills/skill-1", strings.NewReader(`{"name":"Rust"}`)))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Rust", store.skills[0].Name)
	})

	t.Run("delete acknowledges and removes", func(t *testing.T) {
		store := &fakeSkillStore{skills: []model.Skill{{ID: "skill-1", Name: "Go"}}}
		srv := mountSkills(store)

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/skills/skill-1", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		var body model.SuccessResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.True(t, body.Success)
		assert.Empty(t, store.skills)
	})
}
