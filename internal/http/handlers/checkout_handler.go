package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"shinyshoes/internal/domain"
	applog "shinyshoes/internal/log"
	"shinyshoes/internal/services"
)

type CheckoutHandler struct {
	Checkout *services.CheckoutService
	Sessions *services.SessionRegistry
}

func emptyCart(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"state": "empty", "message": "Your cart is empty", "redirect": "/shop"})
}

// GET /api/v1/checkout
func (h *CheckoutHandler) View(c *fiber.Ctx) error {
	sess, ok := readSession(c, h.Sessions)
	if !ok {
		return emptyCart(c)
	}
	v, err := h.Checkout.View(sess)
	if errors.Is(err, services.ErrEmptyCart) {
		return emptyCart(c)
	}
	if err != nil {
		return err
	}
	return c.JSON(v)
}

// POST /api/v1/checkout
func (h *CheckoutHandler) Submit(c *fiber.Ctx) error {
	sess := session(c, h.Sessions)
	var form domain.ShippingForm
	if err := c.BodyParser(&form); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid body")
	}

	v, err := h.Checkout.Submit(c.UserContext(), sess, form)
	var verr *services.ValidationError
	switch {
	case err == nil:
		applog.Audit(c, "order.place", map[string]any{"order_id": v.OrderID, "total": v.Totals.Total})
		return c.Status(fiber.StatusCreated).JSON(v)
	case errors.Is(err, services.ErrEmptyCart):
		return emptyCart(c)
	case errors.As(err, &verr):
		applog.Security(c, "validation.fail", map[string]any{"fields": verr.Fields})
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "Please fill in all fields", "fields": verr.Fields, "checkout": v})
	case errors.Is(err, services.ErrCheckoutInFlight):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Your order is already being processed", "checkout": v})
	case errors.Is(err, services.ErrOrderCreate):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": v.Error, "checkout": v})
	default:
		return err
	}
}
