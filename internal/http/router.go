// Package http assembles the fiber application: middleware, routes and the error surface.
package http

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/utils"

	"shinyshoes/internal/config"
	"shinyshoes/internal/http/handlers"
	applog "shinyshoes/internal/log"
	"shinyshoes/web"
)

const friendlyError = "Something went wrong. Please try again."

func NewApp(cfg config.Config, deps *handlers.Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		Views:        web.Engine(),
		ErrorHandler: ErrorHandler,
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "${status} ${method} ${path} ${latency} ${locals:requestid}\n",
		Output: applog.Logger().Writer(),
	}))
	app.Use(helmet.New())
	// Attach the signed-in user for templates and guards
	app.Use(func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if sess, ok := deps.Sessions.Lookup(sid); ok {
				if u := sess.User(); u != nil {
					c.Locals("user", u)
				}
			}
		}
		return c.Next()
	})
	if cfg.RateLimit > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.RateLimit,
			Expiration: time.Minute,
			Next: func(c *fiber.Ctx) bool {
				return c.Path() == "/healthz"
			},
			LimitReached: func(c *fiber.Ctx) error {
				applog.Security(c, "rate.global.hit", nil)
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
			},
		}))
	}
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "header:" + csrf.HeaderName,
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		ContextKey:     "csrf",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", map[string]any{"header": c.Get(csrf.HeaderName) != ""})
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Security check failed. Please refresh and try again."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok, ok := c.Locals("csrf").(string); ok {
			c.Locals("CSRFToken", tok)
		}
		return c.Next()
	})

	// ---------- Pages ----------
	app.Get("/", deps.PageHandler.Home)
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	// ---------- API ----------
	api := app.Group("/api/v1")
	aiLimiter := limiter.New(limiter.Config{
		Max:        10,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|ai"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.ai.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	})

	// Catalog
	api.Get("/products", deps.ProductHandler.List)
	api.Get("/products/featured", deps.ProductHandler.Featured)
	api.Get("/products/:id", deps.ProductHandler.Detail)
	api.Get("/products/:id/styling", aiLimiter, deps.ProductHandler.Styling)

	// Cart
	api.Get("/cart", deps.CartHandler.View)
	api.Post("/cart", deps.CartHandler.Add)
	api.Patch("/cart", deps.CartHandler.UpdateQuantity)
	api.Delete("/cart", deps.CartHandler.Clear)
	api.Put("/cart/open", deps.CartHandler.SetOpen)
	api.Delete("/cart/:id/:size", deps.CartHandler.Remove)

	// Wishlist
	api.Get("/wishlist", deps.WishlistHandler.List)
	api.Post("/wishlist/:id", deps.WishlistHandler.Toggle)

	// Checkout
	api.Get("/checkout", deps.CheckoutHandler.View)
	api.Post("/checkout", deps.CheckoutHandler.Submit)

	// Session (login throttled)
	api.Get("/session", deps.AuthHandler.Current)
	api.Post("/session/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Too many attempts. Please try again later."})
		},
	}), deps.AuthHandler.Login)
	api.Post("/session/logout", deps.AuthHandler.Logout)

	// Admin
	admin := api.Group("/admin", handlers.RequireAdmin(deps.Sessions))
	admin.Get("/overview", deps.AdminHandler.Overview)
	admin.Post("/products", deps.AdminHandler.AddProduct)
	admin.Post("/products/describe", aiLimiter, deps.AdminHandler.Describe)
	admin.Delete("/products/:id", deps.AdminHandler.DeleteProduct)

	// 404
	app.Use(deps.PageHandler.NotFound)
	return app
}

// ErrorHandler logs the cause and answers with a message that never carries internals.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	msg := friendlyError
	if code < fiber.StatusInternalServerError {
		msg = utils.StatusMessage(code)
	}
	if code >= fiber.StatusInternalServerError {
		applog.Error(c, "server.error", err, nil)
	} else {
		applog.Warn(c, "request.error", err, nil)
	}

	if strings.HasPrefix(c.Path(), "/api/") {
		return c.Status(code).JSON(fiber.Map{"error": msg})
	}
	if rerr := c.Status(code).Render("notfound", fiber.Map{"Message": msg}); rerr != nil {
		return c.Status(code).SendString(msg)
	}
	return nil
}
