package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/crm-portal/internal/config"
	"github.com/spec-kit/crm-portal/internal/domain"
	apperrors "github.com/spec-kit/crm-portal/pkg/util"
)

func newUserFixture(users ...domain.User) (*UserService, *fakeUserRepo, *fakeAuditRepo, *fakeRoleCache) {
	userRepo := newFakeUserRepo(users...)
	auditRepo := &fakeAuditRepo{}
	cache := &fakeRoleCache{}
	svc := NewUserService(UserDependencies{
		UserRepo:  userRepo,
		Audit:     NewAuditService(config.AuditConfig{ListLimit: 100}, auditRepo, zap.NewNop()),
		RoleCache: cache,
	})
	return svc, userRepo, auditRepo, cache
}

func actorAdmin() *domain.Identity {
	return &domain.Identity{ID: "admin-1", Email: "admin@example.com", Role: domain.RoleAdmin}
}

func TestChangeRoleAuditedWithSnapshots(t *testing.T) {
	svc, userRepo, auditRepo, cache := newUserFixture(domain.User{
		ID: "user-1", Email: "user@example.com", Role: domain.RoleUser,
	})

	updated, err := svc.ChangeRole(context.Background(), actorAdmin(), "user-1", domain.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, updated.Role)
	assert.Equal(t, domain.RoleAdmin, userRepo.byID["user-1"].Role)

	entries := auditRepo.byAction(domain.ActionUpdateUserRole)
	require.Len(t, entries, 1)
	changes := entries[0].Changes()
	require.Len(t, changes, 1)
	assert.Equal(t, "role", changes[0].Key)
	assert.True(t, changes[0].Before.Equal(domain.String("user")))
	assert.True(t, changes[0].After.Equal(domain.String("admin")))

	assert.Equal(t, []string{"user-1"}, cache.invalidated)
}

func TestChangeRoleRequiresAdmin(t *testing.T) {
	svc, _, auditRepo, _ := newUserFixture(domain.User{
		ID: "user-1", Email: "user@example.com", Role: domain.RoleUser,
	})

	_, err := svc.ChangeRole(context.Background(), actorUser(), "user-1", domain.RoleAdmin)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, 403, domainErr.HTTPStatus)
	assert.Empty(t, auditRepo.entries)
}

func TestChangeRoleRejectsUnknownRole(t *testing.T) {
	svc, _, _, _ := newUserFixture(domain.User{
		ID: "user-1", Email: "user@example.com", Role: domain.RoleUser,
	})

	_, err := svc.ChangeRole(context.Background(), actorAdmin(), "user-1", "superuser")
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, 400, domainErr.HTTPStatus)
}

func TestChangeRoleMissingUser(t *testing.T) {
	svc, _, _, _ := newUserFixture()

	_, err := svc.ChangeRole(context.Background(), actorAdmin(), "ghost", domain.RoleAdmin)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, 404, domainErr.HTTPStatus)
}

func TestListUsersAdminOnly(t *testing.T) {
	svc, _, _, _ := newUserFixture(
		domain.User{ID: "user-1", Email: "a@example.com", Role: domain.RoleUser},
		domain.User{ID: "user-2", Email: "b@example.com", Role: domain.RoleAdmin},
	)

	users, err := svc.ListUsers(context.Background(), actorAdmin())
	require.NoError(t, err)
	assert.Len(t, users, 2)

	_, err = svc.ListUsers(context.Background(), actorUser())
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, 403, domainErr.HTTPStatus)
}
