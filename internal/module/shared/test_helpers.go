package shared

import (
	"net"
	"os"
	"testing"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"
	"github.com/valyala/fasthttp"
)

// TestDSNEnv names the Postgres DSN the integration tests run against
const TestDSNEnv = "MARKETPLACE_ADMIN_TEST_DSN"

// SetupCfg builds the default configuration with overrides applied on top
func SetupCfg(overrides map[string]interface{}) *koanf.Koanf {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(DefaultValues(), "."), nil); err != nil {
		panic(err)
	}
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			panic(err)
		}
	}
	return k
}

// RealDSN returns the integration DSN or skips the test
func RealDSN(tb testing.TB) string {
	tb.Helper()
	dsn := os.Getenv(TestDSNEnv)
	if dsn == "" {
		tb.Skipf("%s is not set", TestDSNEnv)
	}
	return dsn
}

// NewRequestCtx builds an in-memory request the way the server would hand it to a handler
func NewRequestCtx(method, uri string, body []byte, cookies map[string]string) *fasthttp.RequestCtx {
	var req fasthttp.Request
	req.Header.SetMethod(method)
	req.SetRequestURI(uri)
	if body != nil {
		req.Header.SetContentType("application/json")
		req.SetBody(body)
	}
	for name, value := range cookies {
		req.Header.SetCookie(name, value)
	}

	ctx := &fasthttp.RequestCtx{}
	ctx.Init(&req, &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 40000}, nil)
	return ctx
}

// ResponseCookie looks up a cookie set on the response
func ResponseCookie(ctx *fasthttp.RequestCtx, name string) (*fasthttp.Cookie, bool) {
	c := &fasthttp.Cookie{}
	c.SetKey(name)
	if !ctx.Response.Header.Cookie(c) {
		return nil, false
	}
	return c, true
}
