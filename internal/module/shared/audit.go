package shared

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
)

const (
	AuditCreate = "create"
	AuditUpdate = "update"
	AuditDelete = "delete"
)

// ActorKey is the request value holding the authenticated username
const ActorKey = "auth.actor"

// ActorFrom reads the username the auth gate stored on the request
func ActorFrom(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	actor, _ := ctx.Value(ActorKey).(string)
	return actor
}

type AuditEvent struct {
	Entity string    `json:"entity"`
	Action string    `json:"action"`
	ID     uint64    `json:"id"`
	Actor  string    `json:"actor,omitempty"`
	At     time.Time `json:"at"`
}

// Auditor records successful mutations; it never fails the caller
type Auditor interface {
	Record(ctx context.Context, event AuditEvent)
}

type amqpAuditor struct {
	amqp   *Amqp
	logger zerolog.Logger
}

func NewAuditor(amqp *Amqp, logger zerolog.Logger) Auditor {
	return &amqpAuditor{amqp: amqp, logger: logger}
}

func (a *amqpAuditor) Record(ctx context.Context, event AuditEvent) {
	if event.Actor == "" {
		event.Actor = ActorFrom(ctx)
	}
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}

	log := a.logger.Debug().
		Str("entity", event.Entity).
		Str("action", event.Action).
		Uint64("id", event.ID).
		Str("actor", event.Actor)

	if !a.amqp.Enabled() {
		log.Msg("audit")
		return
	}

	body, err := json.Marshal(event)
	if err != nil {
		a.logger.Error().Err(err).Msg("Failed to marshal audit event")
		return
	}
	if err := a.amqp.Publish(event.Entity+"."+event.Action, body); err != nil {
		a.logger.Error().Err(err).Str("entity", event.Entity).Msg("Failed to publish audit event")
		return
	}
	log.Msg("audit published")
}
