package handlers

import (
	"github.com/gofiber/fiber/v2"

	"shinyshoes/internal/log"
	"shinyshoes/internal/services"
	"shinyshoes/internal/stylist"
	"shinyshoes/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
	Stylist *stylist.Stylist
}

// GET /api/v1/products?category=&min=&max=&sort=
func (h *ProductHandler) List(c *fiber.Ctx) error {
	f := services.DefaultFilter()
	cat, ok := validate.Category(c.Query("category"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "category"})
		return jsonError(c, fiber.StatusBadRequest, "unknown category")
	}
	f.Category = cat
	if f.MinPrice, ok = validate.Price(c.Query("min"), services.DefaultMinPrice); !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "min"})
		return jsonError(c, fiber.StatusBadRequest, "invalid min price")
	}
	if f.MaxPrice, ok = validate.Price(c.Query("max"), services.DefaultMaxPrice); !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "max"})
		return jsonError(c, fiber.StatusBadRequest, "invalid max price")
	}
	f.Sort = validate.Sort(c.Query("sort"))

	products := h.Catalog.Filter(f)
	return c.JSON(fiber.Map{
		"products": products,
		"count":    len(products),
		"filter": fiber.Map{
			"category": f.Category,
			"min":      f.MinPrice,
			"max":      f.MaxPrice,
			"sort":     f.Sort,
		},
	})
}

// GET /api/v1/products/featured
func (h *ProductHandler) Featured(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"products": h.Catalog.Featured(featuredCount)})
}

// GET /api/v1/products/:id
func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "product"})
		return productGone(c)
	}
	p, err := h.Catalog.Get(id)
	if err != nil {
		return productGone(c)
	}
	return c.JSON(p)
}

// GET /api/v1/products/:id/styling
func (h *ProductHandler) Styling(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return productGone(c)
	}
	p, err := h.Catalog.Get(id)
	if err != nil {
		return productGone(c)
	}
	advice := h.Stylist.StylingAdvice(c.UserContext(), p.ID, p.Name, p.Description)
	return c.JSON(fiber.Map{"productId": p.ID, "advice": advice})
}

func productGone(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error":    "Product not found",
		"redirect": "/shop",
	})
}
