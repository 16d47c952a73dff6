package controller

import (
	"time"

	"github.com/genesis-marketplace/marketplace-admin/internal/module/shared"
	"github.com/valyala/fasthttp"
)

type HealthController interface {
	Check(ctx *fasthttp.RequestCtx)
}

type healthController struct {
	now func() time.Time
}

func NewHealthController() HealthController {
	return &healthController{now: time.Now}
}

// Check reports liveness; it does not touch the database
func (c *healthController) Check(ctx *fasthttp.RequestCtx) {
	shared.Respond(ctx, fasthttp.StatusOK, shared.Map{
		"status":    "OK",
		"timestamp": c.now().UTC().Format(time.RFC3339),
	})
}
