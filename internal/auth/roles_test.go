package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/crm-portal/internal/domain"
)

func TestIsAllowedNilIdentity(t *testing.T) {
	assert.False(t, IsAllowed(nil))
	assert.False(t, IsAllowed(nil, domain.RoleAdmin))
}

func TestIsAllowedAnyAuthenticated(t *testing.T) {
	identity := &domain.Identity{ID: "u1", Role: domain.RoleUser}
	assert.True(t, IsAllowed(identity))
}

func TestIsAllowedRoleMembership(t *testing.T) {
	user := &domain.Identity{ID: "u1", Role: domain.RoleUser}
	admin := &domain.Identity{ID: "a1", Role: domain.RoleAdmin}

	assert.False(t, IsAllowed(user, domain.RoleAdmin))
	assert.True(t, IsAllowed(admin, domain.RoleAdmin))
	assert.True(t, IsAllowed(user, domain.RoleUser, domain.RoleAdmin))
	assert.True(t, IsAllowed(admin, domain.RoleUser, domain.RoleAdmin))
}
