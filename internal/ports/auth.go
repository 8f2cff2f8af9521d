package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; the HTTP middleware consumes them.

import (
	"context"

	"github.com/jobdeck/jobdeck-api/internal/domain/identity"
)

// IdentityVerifier validates a bearer credential and resolves the caller.
// The API is a resource server: issuing tokens is the identity provider's
// job, verifying them is ours.
type IdentityVerifier interface {
	// Verify checks the raw bearer token and returns the caller's identity.
	// Implementations return an Unauthorized application error for any
	// invalid, expired or malformed credential.
	Verify(ctx context.Context, rawToken string) (identity.Identity, error)
}
