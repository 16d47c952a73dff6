package application

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/fasthttp/router"
	"github.com/genesis-marketplace/marketplace-admin/utils/config"
	"github.com/knadh/koanf/v2"
	"github.com/valyala/fasthttp"
)

var errNotListening = errors.New("application: Serve called before Listen")

type Application struct {
	AppName     string
	Network     string
	Hostname    string
	Port        string
	IdleTimeout time.Duration
	Production  bool
	StaticRoot  string
	Router      *router.Router
	// Handler wraps Router with the middleware chain; Router.Handler is used when nil
	Handler fasthttp.RequestHandler
	s       *fasthttp.Server
	ln      net.Listener
}

func NewApplication(cfg *koanf.Koanf) *Application {
	network := "tcp4"
	if cfg.Get("app.network") != nil {
		network = cfg.String("app.network")
	}
	hostname, port := config.ParseAddress(cfg.String("app.host"))
	if hostname == "" {
		if network == "tcp6" {
			hostname = "[::1]"
		} else {
			hostname = "0.0.0.0"
		}
	}

	r := router.New()
	r.SaveMatchedRoutePath = true
	r.RedirectTrailingSlash = false

	return &Application{
		Network:     network,
		Hostname:    hostname,
		Port:        port,
		AppName:     cfg.String("app.name"),
		IdleTimeout: cfg.Duration("app.idle-timeout"),
		Production:  cfg.Bool("app.production"),
		StaticRoot:  cfg.String("app.static-root"),
		Router:      r,
	}
}

func (a *Application) Addr() string {
	return config.JoinAddress(a.Hostname, a.Port)
}

// Listen binds the socket so bind errors surface before startup completes.
// The server is built here too, so Shutdown sees it even if Serve has not run.
func (a *Application) Listen() error {
	ln, err := net.Listen(a.Network, a.Addr())
	if err != nil {
		return err
	}

	handler := a.Handler
	if handler == nil {
		handler = a.Router.Handler
	}
	a.ln = ln
	a.s = &fasthttp.Server{
		Name:            a.AppName,
		Handler:         handler,
		IdleTimeout:     a.IdleTimeout,
		ReadBufferSize:  4096 * 20,
		WriteBufferSize: 4096 * 20,
	}
	return nil
}

// Serve blocks until Shutdown is called
func (a *Application) Serve() error {
	if a.s == nil {
		return errNotListening
	}
	return a.s.Serve(a.ln)
}

// Shutdown stops accepting connections and waits for in-flight requests
func (a *Application) Shutdown(ctx context.Context) error {
	if a.s == nil {
		return nil
	}
	err := a.s.ShutdownWithContext(ctx)
	// Serve may not have taken ownership of the listener yet
	if cerr := a.ln.Close(); cerr != nil && !errors.Is(cerr, net.ErrClosed) && err == nil {
		err = cerr
	}
	return err
}
