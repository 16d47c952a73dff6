package controller

import (
	"github.com/genesis-marketplace/marketplace-admin/internal/module/marketplace/service"
	"github.com/genesis-marketplace/marketplace-admin/internal/module/shared"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

type InviteLogController interface {
	List(ctx *fasthttp.RequestCtx)
}

type inviteLogController struct {
	service service.InviteLogService
	logger  zerolog.Logger
}

func NewInviteLogController(svc service.InviteLogService, logger zerolog.Logger) InviteLogController {
	return &inviteLogController{service: svc, logger: logger}
}

func (c *inviteLogController) List(ctx *fasthttp.RequestCtx) {
	logs, err := c.service.List(ctx, string(ctx.QueryArgs().Peek("code")))
	if err != nil {
		respondError(ctx, c.logger, err, "Error fetching invite logs")
		return
	}
	shared.Respond(ctx, fasthttp.StatusOK, logs)
}
