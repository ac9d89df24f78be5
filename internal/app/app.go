package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portfolio-api/internal/config"
	"portfolio-api/internal/database"
	"portfolio-api/internal/handler"
	"portfolio-api/internal/middleware"
	"portfolio-api/internal/model"
	"portfolio-api/internal/repository"
	"portfolio-api/internal/router"
	"portfolio-api/internal/service"
	"portfolio-api/internal/storage"
)

type App struct {
	server       *http.Server
	db           *database.DB
	cleanupFuncs []func()
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	slog.Info("connecting to PostgreSQL")
	db, err := database.New(context.Background(), cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure database schema: %w", err)
	}

	pool := db.Pool
	tokenRepo := repository.NewTokenRepository(pool)
	auditRepo := repository.NewAuditRepository(pool)
	slog.Info("database ready")

	authService := service.NewAuthService(cfg.AdminEmail, cfg.AdminPassword,
		cfg.JWTSecret, cfg.JWTRefreshSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL, tokenRepo)
	auditService := service.NewAuditService(auditRepo)

	authMiddleware := middleware.NewAuthMiddleware(authService)
	authHandler := handler.NewAuthHandler(authService, auditService, cfg.CookieSecure)

	resumeStore, err := storage.NewResumeStore(cfg.ResumeFile)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize resume storage: %w", err)
	}

	handlers := router.Handlers{
		Auth:         authHandler,
		Projects:     handler.NewResource[model.Project]("project", repository.NewProjectRepository(pool), auditService),
		Certificates: handler.NewResource[model.Certificate]("certificate", repository.NewCertificateRepository(pool), auditService),
		Achievements: handler.NewResource[model.Achievement]("achievement", repository.NewAchievementRepository(pool), auditService),
		Skills:       handler.NewResource[model.Skill]("skill", repository.NewSkillRepository(pool), auditService),
		Timeline:     handler.NewResource[model.TimelineEntry]("timeline entry", repository.NewTimelineRepository(pool), auditService),
		Contact:      handler.NewResource[model.ContactMessage]("contact message", repository.NewContactRepository(pool), auditService),
		Content:      handler.NewResource[model.ContentBlock]("content block", repository.NewContentRepository(pool), auditService),
		Resume:       handler.NewResumeHandler(resumeStore, auditService, cfg.MaxResumeSize),
		Audit:        handler.NewAuditHandler(auditService),
	}

	appRouter := router.New(cfg, authMiddleware, handlers)

	sweepCtx, sweepCancel := context.WithCancel(context.Background())
	go authService.StartLedgerSweeper(sweepCtx, cfg.TokenSweepInterval)

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           appRouter,
		ReadHeaderTimeout: cfg.ServerReadHeaderTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	return &App{
		server: server,
		db:     db,
		cleanupFuncs: []func(){
			sweepCancel,
			db.Close,
		},
	}, nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Drain in-flight requests before tearing down their dependencies.
	err := a.server.Shutdown(ctx)

	for _, cleanup := range a.cleanupFuncs {
		cleanup()
	}

	if err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
