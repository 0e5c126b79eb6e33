package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"shinyshoes/internal/services"
)

const featuredCount = 3

type PageHandler struct {
	Catalog *services.CatalogService
}

// GET /
func (h *PageHandler) Home(c *fiber.Ctx) error {
	ensureSID(c)
	return render(c, "home", fiber.Map{"Featured": h.Catalog.Featured(featuredCount)})
}

// NotFound sends unknown API paths a JSON 404 and everything else home.
func (h *PageHandler) NotFound(c *fiber.Ctx) error {
	if isAPI(c) {
		return jsonError(c, fiber.StatusNotFound, "not found")
	}
	return c.Redirect("/")
}

func isAPI(c *fiber.Ctx) bool {
	return strings.HasPrefix(c.Path(), "/api/")
}
