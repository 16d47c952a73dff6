package controller

import (
	"github.com/genesis-marketplace/marketplace-admin/internal/database/schema"
	"github.com/genesis-marketplace/marketplace-admin/internal/module/marketplace/service"
	"github.com/genesis-marketplace/marketplace-admin/internal/module/shared"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

// Messages are the response texts the console shows for one table
type Messages struct {
	ListError   string
	CreateError string
	UpdateError string
	DeleteError string
	// Created is omitted from the create response when empty
	Created string
	Updated string
	Deleted string
}

var (
	TaskMessages = Messages{
		ListError:   "Error searching tasks",
		CreateError: "Error creating task",
		UpdateError: "Error updating task",
		DeleteError: "Error deleting task",
		Created:     "Task created",
		Updated:     "Task updated",
		Deleted:     "Task deleted",
	}
	UserMessages = Messages{
		ListError:   "Error fetching users",
		CreateError: "Error creating user",
		UpdateError: "Error updating user",
		DeleteError: "Error deleting user",
		Created:     "User created",
		Updated:     "Record updated successfully",
		Deleted:     "Record deleted successfully",
	}
	TelegramUserMessages = Messages{
		ListError:   "Error fetching telegram users",
		CreateError: "Error creating telegram user",
		UpdateError: "Error updating telegram user",
		DeleteError: "Error deleting telegram user",
		Created:     "Telegram user created",
		Updated:     "Record updated successfully",
		Deleted:     "Record deleted successfully",
	}
	TradingDataMessages = Messages{
		ListError:   "Error fetching data",
		CreateError: "Error creating data record",
		UpdateError: "Error updating data record",
		DeleteError: "Error deleting data record",
		Updated:     "Record updated successfully",
		Deleted:     "Record deleted successfully",
	}
	VolumeMessages = Messages{
		ListError:   "Error fetching volume data",
		CreateError: "Error creating volume record",
		UpdateError: "Error updating volume record",
		DeleteError: "Error deleting volume record",
		Updated:     "Record updated successfully",
		Deleted:     "Record deleted successfully",
	}
)

type ResourceController interface {
	List(ctx *fasthttp.RequestCtx)
	Create(ctx *fasthttp.RequestCtx)
	Update(ctx *fasthttp.RequestCtx)
	Delete(ctx *fasthttp.RequestCtx)
}

type resourceController[T schema.Entity] struct {
	service  service.ResourceService[T]
	messages Messages
	logger   zerolog.Logger
}

func NewResourceController[T schema.Entity](svc service.ResourceService[T], messages Messages, logger zerolog.Logger) ResourceController {
	return &resourceController[T]{
		service:  svc,
		messages: messages,
		logger:   logger,
	}
}

func (c *resourceController[T]) List(ctx *fasthttp.RequestCtx) {
	args := ctx.QueryArgs()
	records, err := c.service.Search(ctx, string(args.Peek("search")), string(args.Peek("criteria")))
	if err != nil {
		respondError(ctx, c.logger, err, c.messages.ListError)
		return
	}
	if records == nil {
		records = make([]T, 0)
	}
	shared.Respond(ctx, fasthttp.StatusOK, records)
}

func (c *resourceController[T]) Create(ctx *fasthttp.RequestCtx) {
	entity := new(T)
	if err := shared.DecodeBody(ctx, entity); err != nil {
		respondError(ctx, c.logger, err, c.messages.CreateError)
		return
	}

	id, err := c.service.Create(ctx, entity)
	if err != nil {
		respondError(ctx, c.logger, err, c.messages.CreateError)
		return
	}

	body := shared.Map{"id": id}
	if c.messages.Created != "" {
		body["message"] = c.messages.Created
	}
	shared.Respond(ctx, fasthttp.StatusCreated, body)
}

func (c *resourceController[T]) Update(ctx *fasthttp.RequestCtx) {
	id, err := pathID(ctx)
	if err != nil {
		respondError(ctx, c.logger, err, c.messages.UpdateError)
		return
	}

	entity := new(T)
	if err := shared.DecodeBody(ctx, entity); err != nil {
		respondError(ctx, c.logger, err, c.messages.UpdateError)
		return
	}

	if err := c.service.Update(ctx, id, entity); err != nil {
		respondError(ctx, c.logger, err, c.messages.UpdateError)
		return
	}
	shared.Respond(ctx, fasthttp.StatusOK, shared.Map{"message": c.messages.Updated})
}

func (c *resourceController[T]) Delete(ctx *fasthttp.RequestCtx) {
	id, err := pathID(ctx)
	if err != nil {
		respondError(ctx, c.logger, err, c.messages.DeleteError)
		return
	}

	if err := c.service.Delete(ctx, id); err != nil {
		respondError(ctx, c.logger, err, c.messages.DeleteError)
		return
	}
	shared.Respond(ctx, fasthttp.StatusOK, shared.Map{"message": c.messages.Deleted})
}
