package ctxkeys

import (
	"context"

	"github.com/daystack/daystack/internal/service"
)

// contextKey is a type for context keys to avoid collisions
type contextKey string

const (
	IdentityKey contextKey = "identity"
)

func Identity(ctx context.Context) *service.Identity {
	id, _ := ctx.Value(IdentityKey).(*service.Identity)
	return id
}

func WithIdentity(ctx context.Context, id *service.Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, id)
}
