package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/campuskit/school-api/internal/models"
	"github.com/campuskit/school-api/internal/token"
	"github.com/campuskit/school-api/internal/utils"
)

const principalKey = "principal"

// RequireUser admits requests carrying a valid bearer token for any role.
// On failure the canonical 401 envelope is emitted and no handler runs.
func RequireUser(tokens *token.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := authenticate(c, tokens)
		if !ok {
			return utils.SendError(c, utils.ErrUnauthorized())
		}

		c.Locals(principalKey, principal)
		return c.Next()
	}
}

// RequireAdmin admits requests whose principal has the admin role.
func RequireAdmin(tokens *token.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := authenticate(c, tokens)
		if !ok || principal.Role != models.RoleAdmin {
			return utils.SendError(c, utils.ErrUnauthorized())
		}

		c.Locals(principalKey, principal)
		return c.Next()
	}
}

func authenticate(c *fiber.Ctx, tokens *token.Service) (token.Principal, bool) {
	authorization := c.Get(fiber.HeaderAuthorization)
	const bearer = "Bearer "
	if !strings.HasPrefix(authorization, bearer) {
		return token.Principal{}, false
	}

	raw := strings.TrimSpace(authorization[len(bearer):])
	if raw == "" {
		return token.Principal{}, false
	}

	principal, err := tokens.Verify(raw)
	if err != nil {
		return token.Principal{}, false
	}

	return principal, true
}

// PrincipalFromContext returns the principal bound by the auth gates.
func PrincipalFromContext(c *fiber.Ctx) (token.Principal, bool) {
	value := c.Locals(principalKey)
	if value == nil {
		return token.Principal{}, false
	}

	principal, ok := value.(token.Principal)
	return principal, ok
}
