package handlers

import (
	"github.com/gofiber/fiber/v2"

	"shinyshoes/internal/domain"
	applog "shinyshoes/internal/log"
	"shinyshoes/internal/services"
)

const adminDenied = "Access Denied. Admin only."

// RequireAdmin lets the request through only when the session user is an admin.
func RequireAdmin(reg *services.SessionRegistry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies(sidCookie)
		if sid == "" {
			applog.Security(c, "access.denied.admin", map[string]any{"reason": "no_session"})
			return jsonError(c, fiber.StatusForbidden, adminDenied)
		}
		var u *domain.User
		if sess, ok := reg.Lookup(sid); ok {
			u = sess.User()
		}
		if u == nil || !u.IsAdmin {
			applog.Security(c, "access.denied.admin", map[string]any{"sid": sid})
			return jsonError(c, fiber.StatusForbidden, adminDenied)
		}
		c.Locals("user", u)
		return c.Next()
	}
}
