package router

import (
	"fmt"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/genesis-marketplace/marketplace-admin/internal/application"
	"github.com/genesis-marketplace/marketplace-admin/internal/module/auth/middleware"
	"github.com/genesis-marketplace/marketplace-admin/internal/module/shared"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

// Handler assembles the request pipeline:
// CORS -> access log -> metrics -> 5xx alerts -> auth gate -> routes -> panic handler / static fallback
func Handler(cfg *koanf.Koanf, app *application.Application, gate *middleware.Gate, metrics *shared.Metrics, alerter shared.Alerter, logger zerolog.Logger) fasthttp.RequestHandler {
	r := app.Router

	if cfg.Bool("metrics.enable") {
		r.GET(cfg.String("metrics.path"), metrics.Handler())
	}

	r.PanicHandler = PanicHandler(app.Production, logger)
	r.NotFound = StaticFallback(app.StaticRoot)

	var h fasthttp.RequestHandler = r.Handler
	h = gate.Wrap(h)
	h = shared.AlertOnServerError(alerter)(h)
	h = metrics.Instrument(h)
	h = shared.AccessLog(logger)(h)
	h = shared.Cors(cfg)(h)
	return h
}

// PanicHandler hides the panic from clients in production
func PanicHandler(production bool, logger zerolog.Logger) func(*fasthttp.RequestCtx, interface{}) {
	return func(ctx *fasthttp.RequestCtx, recovered interface{}) {
		stack := string(debug.Stack())
		logger.Error().
			Str("path", string(ctx.Path())).
			Str("panic", fmt.Sprint(recovered)).
			Str("stack", stack).
			Msg("Unhandled error")

		body := shared.Map{"message": "Internal server error"}
		if !production {
			body["error"] = fmt.Sprint(recovered)
			body["stack"] = stack
		}
		shared.Respond(ctx, fasthttp.StatusInternalServerError, body)
	}
}

// StaticFallback serves the built console. Unknown /api paths get a JSON 404 and
// every other unknown path gets index.html so client side routes load.
func StaticFallback(root string) fasthttp.RequestHandler {
	fs := &fasthttp.FS{
		Root:               root,
		IndexNames:         []string{"index.html"},
		Compress:           true,
		AcceptByteRange:    true,
		PathNotFound:       spaIndex(root),
		GenerateIndexPages: false,
	}
	serve := fs.NewRequestHandler()

	return func(ctx *fasthttp.RequestCtx) {
		path := string(ctx.Path())
		if path == "/api" || strings.HasPrefix(path, "/api/") {
			shared.Respond(ctx, fasthttp.StatusNotFound, shared.Map{"message": "Not found"})
			return
		}
		if !ctx.IsGet() && !ctx.IsHead() {
			shared.Respond(ctx, fasthttp.StatusNotFound, shared.Map{"message": "Not found"})
			return
		}
		serve(ctx)
	}
}

func spaIndex(root string) fasthttp.RequestHandler {
	index := filepath.Join(root, "index.html")
	return func(ctx *fasthttp.RequestCtx) {
		ctx.Response.Reset()
		ctx.SendFile(index)
	}
}
