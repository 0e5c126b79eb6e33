package handlers

import (
	"github.com/jmoiron/sqlx"

	"shinyshoes/internal/config"
	"shinyshoes/internal/repos"
	"shinyshoes/internal/services"
	"shinyshoes/internal/stylist"
)

type Deps struct {
	Sessions *services.SessionRegistry
	Auth     *services.AuthService

	PageHandler     *PageHandler
	ProductHandler  *ProductHandler
	CartHandler     *CartHandler
	WishlistHandler *WishlistHandler
	CheckoutHandler *CheckoutHandler
	AuthHandler     *AuthHandler
	AdminHandler    *AdminHandler
}

// NewDeps wires services and handlers. A nil carts store means the sqlite
// cart table; a nil stylist behaves as an unconfigured model.
func NewDeps(db *sqlx.DB, cfg config.Config, carts services.CartStore, sty *stylist.Stylist) *Deps {
	orderRepo := repos.NewOrderRepo(db)
	if carts == nil {
		carts = repos.NewCartRepo(db)
	}
	if sty == nil {
		sty = stylist.New(nil, stylist.Options{})
	}

	catalogSvc := services.NewCatalogService(services.DefaultProducts())
	sessions := services.NewSessionRegistry(carts)
	sessions.TTL = cfg.SessionTTL
	authSvc := services.NewAuthService(sessions)
	checkoutSvc := services.NewCheckoutService(orderRepo, cfg.OrderTimeout, cfg.CheckoutRedirectDelay)
	adminSvc := services.NewAdminService(orderRepo)

	return &Deps{
		Sessions: sessions,
		Auth:     authSvc,

		PageHandler:     &PageHandler{Catalog: catalogSvc},
		ProductHandler:  &ProductHandler{Catalog: catalogSvc, Stylist: sty},
		CartHandler:     &CartHandler{Catalog: catalogSvc, Sessions: sessions},
		WishlistHandler: &WishlistHandler{Catalog: catalogSvc, Sessions: sessions},
		CheckoutHandler: &CheckoutHandler{Checkout: checkoutSvc, Sessions: sessions},
		AuthHandler:     &AuthHandler{Auth: authSvc},
		AdminHandler:    &AdminHandler{Admin: adminSvc, Catalog: catalogSvc, Stylist: sty},
	}
}
