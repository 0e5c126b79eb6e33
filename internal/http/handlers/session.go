package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"shinyshoes/internal/services"
)

const sidCookie = "sid"

func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies(sidCookie)
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     sidCookie,
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false, // enable true behind TLS
		})
		// later reads in this request (logging, guards) see the new id
		c.Request().Header.SetCookie(sidCookie, sid)
	}
	return sid
}

func session(c *fiber.Ctx, reg *services.SessionRegistry) *services.Session {
	return reg.Get(c.UserContext(), ensureSID(c))
}

// readSession serves read-only endpoints. A visitor without a sid cookie gets
// one minted but no session, since there is nothing stored under a new id.
func readSession(c *fiber.Ctx, reg *services.SessionRegistry) (*services.Session, bool) {
	if c.Cookies(sidCookie) == "" {
		ensureSID(c)
		return nil, false
	}
	return session(c, reg), true
}

// jsonError keeps error bodies uniform across the API.
func jsonError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}
