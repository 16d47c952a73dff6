package auth

import (
	"github.com/genesis-marketplace/marketplace-admin/internal/application"
	"github.com/genesis-marketplace/marketplace-admin/internal/module/auth/middleware"
	"github.com/genesis-marketplace/marketplace-admin/internal/module/auth/provider"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type AuthRouter struct {
	App      *application.Application
	Provider provider.IdentityProvider
	Gate     *middleware.Gate
	Logger   zerolog.Logger
}

var NewAuthModule = fx.Options(
	fx.Provide(provider.New),
	fx.Provide(middleware.NewGate),
	fx.Provide(NewAuthRouter),
)

func NewAuthRouter(app *application.Application, identityProvider provider.IdentityProvider, gate *middleware.Gate, logger zerolog.Logger) *AuthRouter {
	return &AuthRouter{
		App:      app,
		Provider: identityProvider,
		Gate:     gate,
		Logger:   logger,
	}
}

func (_i *AuthRouter) RegisterAuthRoutes() {
	_i.Logger.Info().Str("provider", _i.Provider.Name()).Msg("Registering auth routes")
	_i.Provider.RegisterRoutes(_i.App.Router, _i.Gate.Protect)
}
