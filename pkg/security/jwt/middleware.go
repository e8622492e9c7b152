package jwt

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ogaworks/taskboard/pkg/authz"
	"github.com/ogaworks/taskboard/pkg/session"
)

const identityLocal = "identity"

// TokenFromRequest extracts the session token from the Authorization header.
// Both "Bearer <token>" and a bare "<token>" are accepted.
func TokenFromRequest(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	if strings.Contains(authHeader, " ") {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	return strings.TrimSpace(authHeader)
}

// NewAuthMiddleware returns a Fiber middleware that requires a resolvable
// session. On success the caller identity is stored in c.Locals.
func NewAuthMiddleware(mgr *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := TokenFromRequest(c)
		if token == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "Login required"})
		}
		identity, err := mgr.Resolve(c.Context(), token)
		if err != nil {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "Login required"})
		}
		c.Locals(identityLocal, identity)
		return c.Next()
	}
}

// NewOptionalAuthMiddleware resolves the identity when a valid token is
// present and stays anonymous otherwise. Used on routes that behave
// differently for logged-in callers but never reject anonymous ones.
func NewOptionalAuthMiddleware(mgr *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token := TokenFromRequest(c); token != "" {
			if identity, err := mgr.Resolve(c.Context(), token); err == nil {
				c.Locals(identityLocal, identity)
			}
		}
		return c.Next()
	}
}

// IdentityFromCtx returns the identity resolved by the middleware, or the
// anonymous identity when none was set.
func IdentityFromCtx(c *fiber.Ctx) authz.Identity {
	identity, _ := c.Locals(identityLocal).(authz.Identity)
	return identity
}
