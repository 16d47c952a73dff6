package shared

import (
	"github.com/knadh/koanf/v2"
	"github.com/valyala/fasthttp"
)

// Cors allows the console origin with credentials and answers preflights directly
func Cors(cfg *koanf.Koanf) func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	origin := cfg.String("cors.origin")

	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			handleCors(ctx, origin)

			if string(ctx.Method()) == fasthttp.MethodOptions {
				ctx.SetStatusCode(fasthttp.StatusNoContent)
				return
			}

			next(ctx)
		}
	}
}

func handleCors(ctx *fasthttp.RequestCtx, origin string) {
	ctx.Response.Header.Set("Access-Control-Allow-Origin", origin)
	ctx.Response.Header.Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
	ctx.Response.Header.Set("Access-Control-Allow-Headers", "Origin, X-Requested-With, Content-Type, Accept, Authorization")
	ctx.Response.Header.Set("Access-Control-Allow-Credentials", "true")
	ctx.Response.Header.Set("Access-Control-Max-Age", "86400")
	ctx.Response.Header.Add("Vary", "Origin")
}
