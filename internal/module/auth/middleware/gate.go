package middleware

import (
	"errors"
	"strings"

	"github.com/genesis-marketplace/marketplace-admin/internal/module/auth/provider"
	"github.com/genesis-marketplace/marketplace-admin/internal/module/auth/service"
	"github.com/genesis-marketplace/marketplace-admin/internal/module/shared"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

// Gate rejects requests without a valid identity before they reach a router
type Gate struct {
	provider provider.IdentityProvider
	prefixes []string
	logger   zerolog.Logger
}

func NewGate(cfg *koanf.Koanf, identityProvider provider.IdentityProvider, logger zerolog.Logger) *Gate {
	prefixes := make([]string, 0)
	for _, p := range cfg.Strings("auth.protected") {
		if p = strings.TrimRight(strings.TrimSpace(p), "/"); p != "" {
			prefixes = append(prefixes, p)
		}
	}
	return &Gate{provider: identityProvider, prefixes: prefixes, logger: logger}
}

// Protected reports whether path falls under one of the protected prefixes
func (g *Gate) Protected(path string) bool {
	for _, prefix := range g.prefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}

// Protect always authenticates before calling next
func (g *Gate) Protect(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		identity, err := g.provider.Authenticate(ctx)
		if err != nil {
			g.reject(ctx, err)
			return
		}
		service.WithIdentity(ctx, identity)
		next(ctx)
	}
}

// Wrap gates only the protected prefixes and passes everything else through
func (g *Gate) Wrap(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	protected := g.Protect(next)
	return func(ctx *fasthttp.RequestCtx) {
		if g.Protected(string(ctx.Path())) {
			protected(ctx)
			return
		}
		next(ctx)
	}
}

func (g *Gate) reject(ctx *fasthttp.RequestCtx, err error) {
	switch {
	case errors.Is(err, service.ErrMissingToken):
		g.logger.Debug().Str("path", string(ctx.Path())).Msg("No credentials on request")
		shared.Respond(ctx, fasthttp.StatusUnauthorized, shared.Map{
			"success": false,
			"message": "Authentication required",
		})
	case errors.Is(err, service.ErrInvalidToken):
		g.logger.Warn().Err(err).Str("path", string(ctx.Path())).Msg("Token verification failed")
		shared.Respond(ctx, fasthttp.StatusForbidden, shared.Map{
			"success": false,
			"message": "Invalid or expired token",
		})
	default:
		g.logger.Error().Err(err).Msg("Auth middleware error")
		shared.Respond(ctx, fasthttp.StatusInternalServerError, shared.Map{
			"success": false,
			"message": "Authentication error",
		})
	}
}
