package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"shinyshoes/internal/domain"
	applog "shinyshoes/internal/log"
	"shinyshoes/internal/services"
	"shinyshoes/internal/validate"
)

type WishlistHandler struct {
	Catalog  *services.CatalogService
	Sessions *services.SessionRegistry
}

// GET /api/v1/wishlist
func (h *WishlistHandler) List(c *fiber.Ctx) error {
	ids := []string{}
	if sess, ok := readSession(c, h.Sessions); ok {
		ids = sess.Wishlist()
	}
	products := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		p, err := h.Catalog.Get(id)
		if errors.Is(err, services.ErrProductNotFound) {
			continue
		}
		products = append(products, p)
	}
	return c.JSON(fiber.Map{"ids": ids, "products": products})
}

// POST /api/v1/wishlist/:id
func (h *WishlistHandler) Toggle(c *fiber.Ctx) error {
	sess := session(c, h.Sessions)
	pid, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "missing productId")
	}
	saved := sess.ToggleWishlist(pid)
	applog.Audit(c, "wishlist.toggle", map[string]any{"product": pid, "saved": saved})
	return c.JSON(fiber.Map{"id": pid, "saved": saved})
}
