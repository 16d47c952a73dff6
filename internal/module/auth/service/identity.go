package service

import (
	"errors"

	"github.com/genesis-marketplace/marketplace-admin/internal/module/shared"
	"github.com/valyala/fasthttp"
)

var (
	ErrMissingToken       = errors.New("authentication required")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

const identityKey = "auth.identity"

// Identity is the authenticated principal attached to a request
type Identity struct {
	UserID      uint64 `json:"id"`
	Username    string `json:"username"`
	Role        string `json:"role"`
	DisplayName string `json:"displayName,omitempty"`
}

func WithIdentity(ctx *fasthttp.RequestCtx, identity *Identity) {
	ctx.SetUserValue(identityKey, identity)
	ctx.SetUserValue(shared.ActorKey, identity.Username)
}

// IdentityFrom returns the identity stored by the gate, or nil
func IdentityFrom(ctx *fasthttp.RequestCtx) *Identity {
	identity, _ := ctx.UserValue(identityKey).(*Identity)
	return identity
}
