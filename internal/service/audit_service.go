package service

import (
	"context"
	"log/slog"

	"portfolio-api/internal/model"
)

type AuditStore interface {
	Insert(ctx context.Context, e model.AuditEntry) error
	ListRecent(ctx context.Context, limit int) ([]model.AuditEntry, error)
}

// AuditService records admin mutations. Recording is best-effort: a failed
// insert is logged, never surfaced to the request that triggered it.
type AuditService struct {
	store AuditStore
}

func NewAuditService(store AuditStore) *AuditService {
	return &AuditService{store: store}
}

func (s *AuditService) Record(ctx context.Context, action string, resource string, resourceID string, actor string) {
	if actor == "" {
		actor = "anonymous"
	}

	entry := model.AuditEntry{
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		Actor:      actor,
	}
	if err := s.store.Insert(ctx, entry); err != nil {
		slog.Warn("audit record failed", "action", action, "resource", resource, "error", err)
	}
}

func (s *AuditService) ListRecent(ctx context.Context, limit int) ([]model.AuditEntry, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.store.ListRecent(ctx, limit)
}
