package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	applog "shinyshoes/internal/log"
	"shinyshoes/internal/services"
	"shinyshoes/internal/stylist"
	"shinyshoes/internal/validate"
)

type AdminHandler struct {
	Admin   *services.AdminService
	Catalog *services.CatalogService
	Stylist *stylist.Stylist
	Now     func() time.Time
}

func (h *AdminHandler) now() time.Time {
	if h.Now == nil {
		return time.Now()
	}
	return h.Now()
}

// GET /api/v1/admin/overview
func (h *AdminHandler) Overview(c *fiber.Ctx) error {
	ov := h.Admin.Overview(c.UserContext())
	return c.JSON(fiber.Map{
		"totalRevenue": ov.TotalRevenue,
		"totalOrders":  ov.TotalOrders,
		"sales":        ov.Sales,
		"orders":       ov.Orders,
		"products":     h.Catalog.List(),
	})
}

// POST /api/v1/admin/products
func (h *AdminHandler) AddProduct(c *fiber.Ctx) error {
	var d services.ProductDraft
	if err := c.BodyParser(&d); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	name, ok := validate.ProductName(d.Name)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "name"})
		return jsonError(c, fiber.StatusBadRequest, "name is required")
	}
	if d.Price < 0 {
		applog.Security(c, "validation.fail", map[string]any{"field": "price"})
		return jsonError(c, fiber.StatusBadRequest, "price must not be negative")
	}
	d.Name = name

	p := services.NewProduct(d, h.now())
	if err := h.Catalog.Add(p); err != nil {
		if errors.Is(err, services.ErrDuplicateProduct) {
			return jsonError(c, fiber.StatusConflict, "product id already exists")
		}
		return err
	}
	applog.Audit(c, "admin.products.add", map[string]any{"product": p.ID, "name": p.Name, "price": p.Price})
	return c.Status(fiber.StatusCreated).JSON(p)
}

// DELETE /api/v1/admin/products/:id
func (h *AdminHandler) DeleteProduct(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "missing id")
	}
	removed := h.Catalog.Delete(id)
	h.Stylist.Forget(id)
	applog.Audit(c, "admin.products.delete", map[string]any{"product": id, "removed": removed})
	return c.JSON(fiber.Map{"id": id, "removed": removed})
}

// POST /api/v1/admin/products/describe
func (h *AdminHandler) Describe(c *fiber.Ctx) error {
	var req struct {
		Name     string `json:"name"`
		Brand    string `json:"brand"`
		Keywords string `json:"keywords"`
	}
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	name, ok := validate.ProductName(req.Name)
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "name is required")
	}
	keywords := req.Keywords
	if keywords == "" {
		keywords = req.Brand
	}
	desc := h.Stylist.ProductDescription(c.UserContext(), name, keywords)
	return c.JSON(fiber.Map{"description": desc})
}
