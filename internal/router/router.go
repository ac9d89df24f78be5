package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"portfolio-api/internal/config"
	"portfolio-api/internal/handler"
	"portfolio-api/internal/middleware"
	"portfolio-api/internal/model"
)

type Handlers struct {
	Auth         *handler.AuthHandler
	Projects     *handler.Resource[model.Project]
	Certificates *handler.Resource[model.Certificate]
	Achievements *handler.Resource[model.Achievement]
	Skills       *handler.Resource[model.Skill]
	Timeline     *handler.Resource[model.TimelineEntry]
	Contact      *handler.Resource[model.ContactMessage]
	Content      *handler.Resource[model.ContentBlock]
	Resume       *handler.ResumeHandler
	Audit        *handler.AuditHandler
}

// policy is the per-family authorization configuration. Reads are public and
// writes are admin-only everywhere except contact messages, which invert
// reads (a private inbox) and open creation to anonymous visitors (the
// contact form).
type policy struct {
	adminRead    bool
	publicCreate bool
	updatable    bool
}

var defaultPolicy = policy{updatable: true}

func New(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, h Handlers) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.SecurityHeaders)
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/session", func(session chi.Router) {
		session.Post("/", h.Auth.Login)
		session.Put("/", h.Auth.Refresh)
		session.Delete("/", h.Auth.Logout)
	})

	admin := authMiddleware.RequireAdmin

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		mountResource(api, admin, "projects", h.Projects, defaultPolicy)
		mountResource(api, admin, "certificates", h.Certificates, defaultPolicy)
		mountResource(api, admin, "achievements", h.Achievements, defaultPolicy)
		mountResource(api, admin, "skills", h.Skills, defaultPolicy)
		mountResource(api, admin, "timeline", h.Timeline, defaultPolicy)
		mountResource(api, admin, "content", h.Content, defaultPolicy)
		mountResource(api, admin, "contact", h.Contact, policy{adminRead: true, publicCreate: true})

		api.Get("/resume", h.Resume.Download)
		api.With(admin).Post("/resume", h.Resume.Upload)
		api.With(admin).Get("/audit", h.Audit.List)
	})

	return r
}

func mountResource[T any](api chi.Router, admin func(http.Handler) http.Handler, path string, h *handler.Resource[T], p policy) {
	api.Route("/"+path, func(r chi.Router) {
		if p.adminRead {
			r.With(admin).Get("/", h.List)
			r.With(admin).Get("/{id}", h.Get)
		} else {
			r.Get("/", h.List)
			r.Get("/{id}", h.Get)
		}

		if p.publicCreate {
			r.Post("/", h.Create)
		} else {
			r.With(admin).Post("/", h.Create)
		}

		if p.updatable {
			r.With(admin).Put("/{id}", h.Update)
		}

		r.With(admin).Delete("/{id}", h.Delete)
	})
}
