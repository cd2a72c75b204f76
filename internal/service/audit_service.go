package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/crm-portal/internal/auth"
	"github.com/spec-kit/crm-portal/internal/config"
	"github.com/spec-kit/crm-portal/internal/domain"
	"github.com/spec-kit/crm-portal/internal/repository"
	apperrors "github.com/spec-kit/crm-portal/pkg/util"
)

// AuditService appends immutable audit entries and serves the audit view.
type AuditService struct {
	entries   repository.AuditLogRepository
	logger    *zap.Logger
	listLimit int
}

// NewAuditService builds the service.
func NewAuditService(cfg config.AuditConfig, entries repository.AuditLogRepository, logger *zap.Logger) *AuditService {
	limit := cfg.ListLimit
	if limit <= 0 {
		limit = 100
	}
	return &AuditService{entries: entries, logger: logger, listLimit: limit}
}

// Record appends one audit entry, best-effort: the mutation it describes has
// already committed, so a failed write is logged and never escalated. Callers
// invoke it exactly once per gated mutation, after the store call succeeds.
func (s *AuditService) Record(ctx context.Context, actorID, action string, details domain.Value, before, after *domain.Value) {
	entry := &domain.AuditLog{
		ActorID: actorID,
		Action:  action,
		Details: details,
		Before:  before,
		After:   after,
	}
	if err := s.entries.Create(ctx, entry); err != nil {
		s.logger.Error("audit write failed",
			zap.String("actor_id", actorID),
			zap.String("action", action),
			zap.Error(err),
		)
	}
}

// List returns the most recent entries, newest first, capped at the
// configured limit.
func (s *AuditService) List(ctx context.Context, actor *domain.Identity) ([]domain.AuditLog, error) {
	if !auth.IsAllowed(actor) {
		return nil, apperrors.NewUnauthenticated()
	}
	entries, err := s.entries.ListRecent(ctx, s.listLimit)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return entries, nil
}
