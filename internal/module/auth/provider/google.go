package provider

import (
	"context"
	"errors"
	"time"

	"github.com/fasthttp/router"
	"github.com/genesis-marketplace/marketplace-admin/internal/module/auth/service"
	"github.com/genesis-marketplace/marketplace-admin/internal/module/shared"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	defaultUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
	stateCookie        = "oauth_state"
	stateMaxAge        = 600
	successRedirect    = "/dashboard"
	failureRedirect    = "/login"
	outboundTimeout    = 15 * time.Second
)

var errMissingGoogleConfig = errors.New("auth.google.client-id, auth.google.client-secret and auth.session.secret must be configured")

// GoogleProvider runs the authorization code flow and keeps the profile in a server side session
type GoogleProvider struct {
	oauth       *oauth2.Config
	userInfoURL string
	sessions    SessionStore
	secret      []byte
	cookieName  string
	ttl         time.Duration
	secure      bool
	now         func() time.Time
	logger      zerolog.Logger
}

func NewGoogleProvider(cfg *koanf.Koanf, sessions SessionStore, logger zerolog.Logger) (*GoogleProvider, error) {
	clientID := cfg.String("auth.google.client-id")
	clientSecret := cfg.String("auth.google.client-secret")
	secret := cfg.String("auth.session.secret")
	if clientID == "" || clientSecret == "" || secret == "" {
		return nil, errMissingGoogleConfig
	}

	endpoint := google.Endpoint
	if v := cfg.String("auth.google.auth-url"); v != "" {
		endpoint.AuthURL = v
	}
	if v := cfg.String("auth.google.token-url"); v != "" {
		endpoint.TokenURL = v
	}
	userInfoURL := cfg.String("auth.google.userinfo-url")
	if userInfoURL == "" {
		userInfoURL = defaultUserInfoURL
	}

	ttl := cfg.Duration("auth.session.ttl")
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &GoogleProvider{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  cfg.String("auth.google.callback-url"),
			Scopes:       []string{"profile", "email"},
			Endpoint:     endpoint,
		},
		userInfoURL: userInfoURL,
		sessions:    sessions,
		secret:      []byte(secret),
		cookieName:  cfg.String("auth.session.cookie-name"),
		ttl:         ttl,
		secure:      cfg.Bool("app.production"),
		now:         time.Now,
		logger:      logger,
	}, nil
}

func (p *GoogleProvider) Name() string {
	return Google
}

func (p *GoogleProvider) RegisterRoutes(r *router.Router, _ Middleware) {
	r.GET("/auth/google", p.Begin)
	r.GET("/auth/google/callback", p.Callback)
	r.GET("/api/user", p.CurrentUser)
	r.GET("/auth/logout", p.Logout)
}

func (p *GoogleProvider) Authenticate(ctx *fasthttp.RequestCtx) (*service.Identity, error) {
	profile, err := p.profile(ctx)
	if err != nil {
		return nil, err
	}
	return &service.Identity{
		Username:    profile.Email,
		Role:        "admin",
		DisplayName: profile.Name,
	}, nil
}

func (p *GoogleProvider) Begin(ctx *fasthttp.RequestCtx) {
	state := uuid.NewString()
	setCookie(ctx, stateCookie, state, stateMaxAge, p.secure)
	ctx.Redirect(p.oauth.AuthCodeURL(state), fasthttp.StatusTemporaryRedirect)
}

func (p *GoogleProvider) Callback(ctx *fasthttp.RequestCtx) {
	args := ctx.QueryArgs()
	expected := string(ctx.Request.Header.Cookie(stateCookie))
	clearCookie(ctx, stateCookie, p.secure)

	if providerErr := args.Peek("error"); len(providerErr) > 0 {
		p.logger.Warn().Str("error", string(providerErr)).Msg("Google sign in was not completed")
		ctx.Redirect(failureRedirect, fasthttp.StatusFound)
		return
	}
	if expected == "" || expected != string(args.Peek("state")) {
		p.logger.Warn().Msg("Google callback state mismatch")
		ctx.Redirect(failureRedirect, fasthttp.StatusFound)
		return
	}

	profile, err := p.fetchProfile(string(args.Peek("code")))
	if err != nil {
		p.logger.Error().Err(err).Msg("Google authentication failed")
		ctx.Redirect(failureRedirect, fasthttp.StatusFound)
		return
	}

	sessionID := uuid.NewString()
	if err := p.sessions.Save(ctx, sessionID, profile, p.ttl); err != nil {
		p.logger.Error().Err(err).Msg("Failed to store session")
		ctx.Redirect(failureRedirect, fasthttp.StatusFound)
		return
	}
	cookie, err := p.signSession(sessionID)
	if err != nil {
		p.logger.Error().Err(err).Msg("Failed to sign session cookie")
		ctx.Redirect(failureRedirect, fasthttp.StatusFound)
		return
	}

	setCookie(ctx, p.cookieName, cookie, int(p.ttl.Seconds()), p.secure)
	p.logger.Info().Str("email", profile.Email).Msg("Google authentication successful")
	ctx.Redirect(successRedirect, fasthttp.StatusFound)
}

func (p *GoogleProvider) CurrentUser(ctx *fasthttp.RequestCtx) {
	profile, err := p.profile(ctx)
	if err != nil {
		shared.Respond(ctx, fasthttp.StatusUnauthorized, shared.Map{"message": "Not authenticated"})
		return
	}
	shared.Respond(ctx, fasthttp.StatusOK, profile)
}

func (p *GoogleProvider) Logout(ctx *fasthttp.RequestCtx) {
	if sessionID, err := p.sessionID(ctx); err == nil {
		if err := p.sessions.Delete(ctx, sessionID); err != nil {
			p.logger.Error().Err(err).Msg("Failed to delete session")
		}
	}
	clearCookie(ctx, p.cookieName, p.secure)
	shared.Respond(ctx, fasthttp.StatusOK, shared.Map{"message": "Logged out successfully"})
}

func (p *GoogleProvider) fetchProfile(code string) (*GoogleProfile, error) {
	if code == "" {
		return nil, errors.New("missing authorization code")
	}

	ctx, cancel := context.WithTimeout(context.Background(), outboundTimeout)
	defer cancel()

	token, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}

	body, _, err := shared.DoRequest(ctx, p.oauth.Client(ctx, token), p.userInfoURL, nil, outboundTimeout)
	if err != nil {
		return nil, err
	}

	var profile GoogleProfile
	if err := shared.ParseJSONResponse(body, &profile); err != nil {
		return nil, err
	}
	if profile.Email == "" {
		return nil, errors.New("userinfo response has no email")
	}
	return &profile, nil
}

func (p *GoogleProvider) profile(ctx *fasthttp.RequestCtx) (*GoogleProfile, error) {
	sessionID, err := p.sessionID(ctx)
	if err != nil {
		return nil, err
	}
	profile, err := p.sessions.Load(ctx, sessionID)
	if errors.Is(err, ErrSessionNotFound) {
		return nil, service.ErrInvalidToken
	}
	return profile, err
}

// the sid cookie carries the session id as the jti of a short HS256 token
func (p *GoogleProvider) signSession(sessionID string) (string, error) {
	now := p.now()
	claims := jwt.RegisteredClaims{
		ID:        sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(p.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
}

func (p *GoogleProvider) sessionID(ctx *fasthttp.RequestCtx) (string, error) {
	raw := string(ctx.Request.Header.Cookie(p.cookieName))
	if raw == "" {
		return "", service.ErrMissingToken
	}

	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (interface{}, error) {
		return p.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(p.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || claims.ID == "" {
		return "", service.ErrInvalidToken
	}
	return claims.ID, nil
}
