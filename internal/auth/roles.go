package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/crm-portal/internal/domain"
	apperrors "github.com/spec-kit/crm-portal/pkg/util"
)

// IsAllowed is the single access-policy decision shared by the route guards
// and the service-level gates. A nil identity is never allowed; an empty
// required set means "any authenticated caller".
func IsAllowed(identity *domain.Identity, required ...domain.Role) bool {
	if identity == nil {
		return false
	}
	if len(required) == 0 {
		return true
	}
	for _, role := range required {
		if identity.Role == role {
			return true
		}
	}
	return false
}

// RequireRole guards a route group. An unauthenticated caller gets 401, an
// authenticated caller lacking the role gets 403; the two are never conflated.
func RequireRole(required ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok {
			return apperrors.NewUnauthenticated()
		}
		if !IsAllowed(identity, required...) {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}
