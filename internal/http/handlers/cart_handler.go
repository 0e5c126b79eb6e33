package handlers

import (
	"github.com/gofiber/fiber/v2"

	"shinyshoes/internal/domain"
	applog "shinyshoes/internal/log"
	"shinyshoes/internal/services"
	"shinyshoes/internal/validate"
)

type CartHandler struct {
	Catalog  *services.CatalogService
	Sessions *services.SessionRegistry
}

type cartLineReq struct {
	ProductID string  `json:"productId"`
	Size      float64 `json:"size"`
	Delta     int     `json:"delta"`
}

// GET /api/v1/cart
func (h *CartHandler) View(c *fiber.Ctx) error {
	sess, ok := readSession(c, h.Sessions)
	if !ok {
		return c.JSON(services.CartView{Items: []domain.CartLine{}})
	}
	return c.JSON(sess.Cart())
}

// POST /api/v1/cart
func (h *CartHandler) Add(c *fiber.Ctx) error {
	sess := session(c, h.Sessions)
	var req cartLineReq
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	pid, ok := validate.ID(req.ProductID)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "productId"})
		return jsonError(c, fiber.StatusBadRequest, "missing productId")
	}
	p, err := h.Catalog.Get(pid)
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "Product not found")
	}
	if !p.HasSize(req.Size) {
		applog.Security(c, "validation.fail", map[string]any{"field": "size", "product": pid, "size": req.Size})
		return jsonError(c, fiber.StatusBadRequest, "Please select a size")
	}
	view := sess.AddToCart(c.UserContext(), p, req.Size)
	applog.Audit(c, "cart.add", map[string]any{"product": pid, "size": req.Size})
	return c.JSON(view)
}

// PATCH /api/v1/cart
func (h *CartHandler) UpdateQuantity(c *fiber.Ctx) error {
	sess := session(c, h.Sessions)
	var req cartLineReq
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	pid, ok := validate.ID(req.ProductID)
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "missing productId")
	}
	delta, ok := validate.Delta(req.Delta)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "delta", "delta": req.Delta})
		return jsonError(c, fiber.StatusBadRequest, "invalid delta")
	}
	return c.JSON(sess.UpdateQuantity(c.UserContext(), pid, req.Size, delta))
}

// DELETE /api/v1/cart/:id/:size
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	sess := session(c, h.Sessions)
	pid, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid product")
	}
	size, ok := validate.Size(c.Params("size"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid size")
	}
	view := sess.RemoveFromCart(c.UserContext(), pid, size)
	applog.Audit(c, "cart.remove", map[string]any{"product": pid, "size": size})
	return c.JSON(view)
}

// DELETE /api/v1/cart
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	view := session(c, h.Sessions).ClearCart(c.UserContext())
	applog.Audit(c, "cart.clear", nil)
	return c.JSON(view)
}

// PUT /api/v1/cart/open
func (h *CartHandler) SetOpen(c *fiber.Ctx) error {
	var req struct {
		Open bool `json:"open"`
	}
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	return c.JSON(session(c, h.Sessions).SetCartOpen(req.Open))
}
