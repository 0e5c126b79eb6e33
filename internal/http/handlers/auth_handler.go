package handlers

import (
	"github.com/gofiber/fiber/v2"

	"shinyshoes/internal/log"
	"shinyshoes/internal/services"
)

type AuthHandler struct {
	Auth *services.AuthService
}

// GET /api/v1/session
func (h *AuthHandler) Current(c *fiber.Ctx) error {
	sid := ensureSID(c)
	tok, _ := c.Locals("CSRFToken").(string)
	return c.JSON(fiber.Map{
		"user":      h.Auth.CurrentUser(c.UserContext(), sid),
		"csrfToken": tok,
	})
}

// POST /api/v1/session/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sid := ensureSID(c)
	u := h.Auth.Login(c.UserContext(), sid)
	log.Audit(c, "auth.login.success", map[string]any{"user": u.ID, "admin": u.IsAdmin})
	return c.JSON(fiber.Map{"user": u})
}

// POST /api/v1/session/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := ensureSID(c)
	h.Auth.Logout(c.UserContext(), sid)
	log.Audit(c, "auth.logout", map[string]any{"sid": sid})
	return c.JSON(fiber.Map{"user": nil})
}
