package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/crm-portal/internal/auth"
	"github.com/spec-kit/crm-portal/internal/domain"
	"github.com/spec-kit/crm-portal/internal/events"
	"github.com/spec-kit/crm-portal/internal/repository"
	apperrors "github.com/spec-kit/crm-portal/pkg/util"
)

// RoleCacheInvalidator drops a cached role after a role change so the new
// role is visible on the next resolve. Optional.
type RoleCacheInvalidator interface {
	InvalidateRole(ctx context.Context, userID string)
}

// UserService handles user administration: listing accounts and changing
// roles. Both operations are admin-only, and role changes are audited.
type UserService struct {
	users      repository.UserRepository
	audit      *AuditService
	cache      RoleCacheInvalidator
	dispatcher events.Dispatcher
}

// UserDependencies bundles requirements for the user service.
type UserDependencies struct {
	UserRepo   repository.UserRepository
	Audit      *AuditService
	RoleCache  RoleCacheInvalidator
	Dispatcher events.Dispatcher
}

// NewUserService constructs the service.
func NewUserService(deps UserDependencies) *UserService {
	return &UserService{
		users:      deps.UserRepo,
		audit:      deps.Audit,
		cache:      deps.RoleCache,
		dispatcher: deps.Dispatcher,
	}
}

// ListUsers returns every account. Admin only.
func (s *UserService) ListUsers(ctx context.Context, actor *domain.Identity) ([]domain.User, error) {
	if !auth.IsAllowed(actor, domain.RoleAdmin) {
		return nil, apperrors.NewForbidden("admin role required")
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

// ChangeRole sets a user's role and audits the change with before/after
// snapshots. Admin only; any role outside the two known values is a policy
// error rejected before the store is touched.
func (s *UserService) ChangeRole(ctx context.Context, actor *domain.Identity, userID string, newRole domain.Role) (*domain.User, error) {
	if !auth.IsAllowed(actor, domain.RoleAdmin) {
		return nil, apperrors.NewForbidden("admin role required")
	}
	if !domain.ValidRole(newRole) {
		return nil, apperrors.NewValidationError("role")
	}

	target, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	before := target.Snapshot()
	oldRole := target.Role

	if err := s.users.UpdateRole(ctx, userID, newRole); err != nil {
		return nil, apperrors.MapError(err)
	}

	updated, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	after := updated.Snapshot()

	s.audit.Record(ctx, actor.ID, domain.ActionUpdateUserRole,
		domain.NewMap(domain.F("userId", domain.String(userID))),
		&before, &after)

	if s.cache != nil {
		s.cache.InvalidateRole(ctx, userID)
	}
	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:         uuid.NewString(),
			Type:       events.EventUserRoleChanged,
			ResourceID: userID,
			ActorID:    actor.ID,
			Timestamp:  time.Now(),
			Payload: events.UserRoleChangedPayload{
				OldRole: oldRole,
				NewRole: updated.Role,
			},
		})
	}
	return updated, nil
}
