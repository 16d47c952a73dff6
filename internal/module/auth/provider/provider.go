package provider

import (
	"fmt"

	"github.com/fasthttp/router"
	"github.com/genesis-marketplace/marketplace-admin/internal/module/auth/service"
	"github.com/genesis-marketplace/marketplace-admin/internal/module/shared"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

const (
	Password = "password"
	Google   = "google"
)

// Middleware wraps a handler, used to gate provider routes that need an identity
type Middleware func(fasthttp.RequestHandler) fasthttp.RequestHandler

// IdentityProvider is one way of establishing who is calling
type IdentityProvider interface {
	Name() string
	// Authenticate resolves the caller from the request; ErrMissingToken or ErrInvalidToken otherwise
	Authenticate(ctx *fasthttp.RequestCtx) (*service.Identity, error)
	RegisterRoutes(r *router.Router, protect Middleware)
}

// New builds the provider selected by auth.provider
func New(cfg *koanf.Koanf, redis *shared.RedisClient, logger zerolog.Logger) (IdentityProvider, error) {
	switch name := cfg.String("auth.provider"); name {
	case Password, "":
		tokens, err := service.NewTokenService(cfg)
		if err != nil {
			return nil, err
		}
		credentials, err := service.NewCredentialStore(cfg)
		if err != nil {
			return nil, err
		}
		throttle := service.NewLoginThrottle(cfg, redis, logger)
		return NewPasswordProvider(cfg, tokens, credentials, throttle, logger), nil
	case Google:
		sessions := NewSessionStore(redis)
		return NewGoogleProvider(cfg, sessions, logger)
	default:
		return nil, fmt.Errorf("unknown auth.provider %q", name)
	}
}

func newCookie(name, value string, maxAge int, secure bool) *fasthttp.Cookie {
	c := fasthttp.AcquireCookie()
	c.SetKey(name)
	c.SetValue(value)
	c.SetPath("/")
	c.SetHTTPOnly(true)
	c.SetSameSite(fasthttp.CookieSameSiteLaxMode)
	c.SetSecure(secure)
	if maxAge > 0 {
		c.SetMaxAge(maxAge)
	} else {
		c.SetExpire(fasthttp.CookieExpireDelete)
	}
	return c
}

func setCookie(ctx *fasthttp.RequestCtx, name, value string, maxAge int, secure bool) {
	c := newCookie(name, value, maxAge, secure)
	defer fasthttp.ReleaseCookie(c)
	ctx.Response.Header.SetCookie(c)
}

func clearCookie(ctx *fasthttp.RequestCtx, name string, secure bool) {
	setCookie(ctx, name, "", 0, secure)
}
