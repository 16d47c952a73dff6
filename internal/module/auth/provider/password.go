package provider

import (
	"errors"
	"strings"

	"github.com/fasthttp/router"
	"github.com/genesis-marketplace/marketplace-admin/internal/module/auth/service"
	"github.com/genesis-marketplace/marketplace-admin/internal/module/shared"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// PasswordProvider signs a JWT into an HttpOnly cookie after a credential check
type PasswordProvider struct {
	tokens      service.TokenService
	credentials service.CredentialVerifier
	throttle    *service.LoginThrottle
	cookieName  string
	secure      bool
	logger      zerolog.Logger
}

func NewPasswordProvider(
	cfg *koanf.Koanf,
	tokens service.TokenService,
	credentials service.CredentialVerifier,
	throttle *service.LoginThrottle,
	logger zerolog.Logger,
) *PasswordProvider {
	return &PasswordProvider{
		tokens:      tokens,
		credentials: credentials,
		throttle:    throttle,
		cookieName:  cfg.String("auth.cookie.name"),
		secure:      cfg.Bool("app.production"),
		logger:      logger,
	}
}

func (p *PasswordProvider) Name() string {
	return Password
}

func (p *PasswordProvider) Authenticate(ctx *fasthttp.RequestCtx) (*service.Identity, error) {
	return p.tokens.Verify(string(ctx.Request.Header.Cookie(p.cookieName)))
}

func (p *PasswordProvider) RegisterRoutes(r *router.Router, protect Middleware) {
	r.POST("/api/auth/login", p.Login)
	r.GET("/api/auth/verify", protect(p.Verify))
	r.POST("/api/auth/logout", p.Logout)
}

func (p *PasswordProvider) Login(ctx *fasthttp.RequestCtx) {
	var body loginRequest
	if err := shared.DecodeBody(ctx, &body); err != nil || body.Username == "" || body.Password == "" {
		shared.Respond(ctx, fasthttp.StatusBadRequest, shared.Map{
			"success": false,
			"message": "Username and password are required",
		})
		return
	}

	clientIP := ctx.RemoteIP().String()
	p.logger.Info().Str("username", body.Username).Str("ip", clientIP).Msg("Login attempt")

	if p.throttle != nil && !p.throttle.Allow(ctx, clientIP) {
		p.logger.Warn().Str("ip", clientIP).Msg("Login throttled")
		shared.Respond(ctx, fasthttp.StatusTooManyRequests, shared.Map{
			"success": false,
			"message": "Too many login attempts, try again later",
		})
		return
	}

	identity, err := p.credentials.Verify(ctx, strings.TrimSpace(body.Username), body.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		p.logger.Warn().Str("username", body.Username).Msg("Login failed")
		shared.Respond(ctx, fasthttp.StatusUnauthorized, shared.Map{
			"success": false,
			"message": "Invalid username or password",
		})
		return
	}
	if err != nil {
		p.logger.Error().Err(err).Msg("Login error")
		shared.Respond(ctx, fasthttp.StatusInternalServerError, shared.Map{
			"success": false,
			"message": "Internal server error during login",
		})
		return
	}

	token, _, err := p.tokens.Issue(*identity)
	if err != nil {
		p.logger.Error().Err(err).Msg("Failed to sign token")
		shared.Respond(ctx, fasthttp.StatusInternalServerError, shared.Map{
			"success": false,
			"message": "Internal server error during login",
		})
		return
	}

	setCookie(ctx, p.cookieName, token, int(p.tokens.TTL().Seconds()), p.secure)
	p.logger.Info().Str("username", identity.Username).Msg("Login successful")

	shared.Respond(ctx, fasthttp.StatusOK, shared.Map{
		"success": true,
		"user":    identity,
		"message": "Login successful",
	})
}

func (p *PasswordProvider) Verify(ctx *fasthttp.RequestCtx) {
	shared.Respond(ctx, fasthttp.StatusOK, shared.Map{
		"success": true,
		"user":    service.IdentityFrom(ctx),
	})
}

// Logout only clears the cookie; issued tokens stay valid until they expire
func (p *PasswordProvider) Logout(ctx *fasthttp.RequestCtx) {
	clearCookie(ctx, p.cookieName, p.secure)
	p.logger.Info().Msg("User logged out")
	shared.Respond(ctx, fasthttp.StatusOK, shared.Map{
		"success": true,
		"message": "Logged out successfully",
	})
}
