package controller

import (
	"errors"
	"strconv"

	"github.com/genesis-marketplace/marketplace-admin/internal/module/marketplace/service"
	"github.com/genesis-marketplace/marketplace-admin/internal/module/shared"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

type Controller struct {
	Tasks         ResourceController
	Users         ResourceController
	TelegramUsers ResourceController
	InviteLogs    InviteLogController
	Data          ResourceController
	Volume        ResourceController
	Health        HealthController
}

func NewController(
	taskService service.TaskService,
	userService service.UserService,
	telegramUserService service.TelegramUserService,
	inviteLogService service.InviteLogService,
	tradingDataService service.TradingDataService,
	volumeService service.VolumeService,
	logger zerolog.Logger) *Controller {
	return &Controller{
		Tasks:         NewResourceController(taskService, TaskMessages, logger),
		Users:         NewResourceController(userService, UserMessages, logger),
		TelegramUsers: NewResourceController(telegramUserService, TelegramUserMessages, logger),
		InviteLogs:    NewInviteLogController(inviteLogService, logger),
		Data:          NewResourceController(tradingDataService, TradingDataMessages, logger),
		Volume:        NewResourceController(volumeService, VolumeMessages, logger),
		Health:        NewHealthController(),
	}
}

var errInvalidID = shared.NewValidationError("Invalid id")

func pathID(ctx *fasthttp.RequestCtx) (uint64, error) {
	raw, _ := ctx.UserValue("id").(string)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, errInvalidID
	}
	return id, nil
}

// respondError maps service errors onto status codes; message names the failed operation
func respondError(ctx *fasthttp.RequestCtx, logger zerolog.Logger, err error, message string) {
	var validation *shared.ValidationError
	switch {
	case errors.As(err, &validation):
		body := shared.Map{"message": validation.Message}
		if len(validation.Fields) > 0 {
			body["fields"] = validation.Fields
		}
		shared.Respond(ctx, fasthttp.StatusBadRequest, body)
	case errors.Is(err, shared.ErrNotFound):
		shared.Respond(ctx, fasthttp.StatusNotFound, shared.Map{"message": "Record not found"})
	default:
		logger.Error().Err(err).Str("path", string(ctx.Path())).Msg(message)
		shared.Respond(ctx, fasthttp.StatusInternalServerError, shared.Map{
			"message": message,
			"error":   err.Error(),
		})
	}
}
