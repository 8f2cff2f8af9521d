package httpx

import (
	"context"

	"github.com/jobdeck/jobdeck-api/internal/domain/identity"
)

// identityKey is an unexported context key type to avoid collisions across packages.
// Centralized in this file so all handlers/middleware use the same key.
type identityKey struct{}

// SetIdentityInContext returns a child context that carries the caller identity.
func SetIdentityInContext(ctx context.Context, id identity.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the caller identity from context and a boolean
// indicating presence.
func IdentityFromContext(ctx context.Context) (identity.Identity, bool) {
	if id, ok := ctx.Value(identityKey{}).(identity.Identity); ok && id.ID != "" {
		return id, true
	}
	return identity.Identity{}, false
}
