package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/adoption-service/pkg/util"
)

// RequireAdmin ensures the authenticated user carries the admin role.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("Unauthorized")
		}
		if !principal.User.IsAdmin() {
			return apperrors.NewForbidden("Admin role required")
		}
		return c.Next()
	}
}
