package shared

import (
	"io"
	"os"
	"strconv"
	"time"

	"github.com/fasthttp/router"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/valyala/fasthttp"
)

// initialize logger
func NewLogger(cfg *koanf.Koanf) zerolog.Logger {
	return newLogger(cfg, os.Stdout)
}

func newLogger(cfg *koanf.Koanf, out io.Writer) zerolog.Logger {
	zerolog.TimeFieldFormat = cfg.String("logger.time-format")
	zerolog.SetGlobalLevel(ParseLevel(cfg.String("logger.level")))

	// console output unless running in production or told otherwise
	prettier := !cfg.Bool("app.production")
	if cfg.Exists("logger.prettier") {
		prettier = cfg.Bool("logger.prettier")
	}
	if prettier {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}

	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	return log.Logger.With().Str("app", cfg.String("app.name")).Logger()
}

// ParseLevel accepts zerolog's numeric levels as well as names like "debug"
func ParseLevel(raw string) zerolog.Level {
	if n, err := strconv.Atoi(raw); err == nil {
		return zerolog.Level(int8(n))
	}
	level, err := zerolog.ParseLevel(raw)
	if err != nil || raw == "" {
		return zerolog.InfoLevel
	}
	return level
}

// AccessLog writes one line per request; 5xx at error, 4xx at warn, the rest at debug
func AccessLog(logger zerolog.Logger) func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			start := time.Now()
			next(ctx)

			status := ctx.Response.StatusCode()
			var event *zerolog.Event
			switch {
			case status >= fasthttp.StatusInternalServerError:
				event = logger.Error()
			case status >= fasthttp.StatusBadRequest:
				event = logger.Warn()
			default:
				event = logger.Debug()
			}

			route, _ := ctx.UserValue(router.MatchedRoutePathParam).(string)
			event.
				Str("method", string(ctx.Method())).
				Str("path", string(ctx.Path())).
				Str("route", route).
				Int("status", status).
				Dur("latency", time.Since(start)).
				Str("ip", ctx.RemoteIP().String()).
				Msg("request")
		}
	}
}
