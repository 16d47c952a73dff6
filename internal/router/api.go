package router

import (
	"github.com/genesis-marketplace/marketplace-admin/internal/module/auth"
	"github.com/genesis-marketplace/marketplace-admin/internal/module/marketplace"
)

type Router struct {
	AuthRouter        *auth.AuthRouter
	MarketplaceRouter *marketplace.MarketplaceRouter
}

func NewRouter(
	authRouter *auth.AuthRouter,
	marketplaceRouter *marketplace.MarketplaceRouter,
) *Router {
	return &Router{
		AuthRouter:        authRouter,
		MarketplaceRouter: marketplaceRouter,
	}
}

// Register routes
func (r *Router) Register() {
	// Register routes of modules
	r.MarketplaceRouter.RegisterHealthRoutes()
	r.AuthRouter.RegisterAuthRoutes()
	r.MarketplaceRouter.RegisterMarketplaceRoutes()
}
