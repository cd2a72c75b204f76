package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/crm-portal/internal/domain"
	"github.com/spec-kit/crm-portal/internal/repository"
	apperrors "github.com/spec-kit/crm-portal/pkg/util"
)

const identityKey = "auth_identity"

// RoleCache is an optional read-through cache for resolved roles. Lookups and
// writes are best-effort; a nil cache disables caching.
type RoleCache interface {
	GetRole(ctx context.Context, userID string) (domain.Role, bool)
	SetRole(ctx context.Context, userID string, role domain.Role)
}

// IdentityResolver turns a bearer credential into a verified Identity. Token
// verification is local (HS256); the role comes from the stored identity
// document, defaulting to "user" when no document exists yet.
type IdentityResolver struct {
	tokens *TokenManager
	users  repository.UserRepository
	cache  RoleCache
}

// NewIdentityResolver constructs the resolver middleware.
func NewIdentityResolver(tokens *TokenManager, users repository.UserRepository, cache RoleCache) *IdentityResolver {
	return &IdentityResolver{tokens: tokens, users: users, cache: cache}
}

// Resolve verifies the credential and returns the caller's identity. It is a
// pure lookup: no identity documents are created here.
func (r *IdentityResolver) Resolve(ctx context.Context, credential string) (*domain.Identity, error) {
	claims, err := r.tokens.ParseToken(credential)
	if err != nil {
		return nil, apperrors.NewInvalidCredential()
	}

	identity := &domain.Identity{ID: claims.Subject, Email: claims.Email}

	if r.cache != nil {
		if role, ok := r.cache.GetRole(ctx, claims.Subject); ok {
			identity.Role = role
			return identity, nil
		}
	}

	user, err := r.users.GetByID(ctx, claims.Subject)
	switch {
	case err == nil:
		identity.Email = user.Email
		identity.Role = user.Role
	case errors.Is(err, pgx.ErrNoRows):
		// Account verified but no identity document yet; role defaults.
		identity.Role = domain.RoleUser
	default:
		return nil, apperrors.MapError(err)
	}

	if r.cache != nil {
		r.cache.SetRole(ctx, identity.ID, identity.Role)
	}
	return identity, nil
}

// Handle enforces authentication for protected routes and stores the resolved
// identity on the request.
func (r *IdentityResolver) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthenticated()
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthenticated()
	}

	identity, err := r.Resolve(c.Context(), parts[1])
	if err != nil {
		return err
	}

	c.Locals(identityKey, identity)
	return c.Next()
}

// IdentityFromContext retrieves the authenticated caller.
func IdentityFromContext(c *fiber.Ctx) (*domain.Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*domain.Identity)
	return identity, ok
}
