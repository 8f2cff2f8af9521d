package devauth

// Package devauth provides a simple, token-as-plaintext IdentityVerifier for
// local development. It must never be wired in production builds; the
// bootstrap refuses it unless dev mode is enabled.

import (
	"context"
	"strings"

	"github.com/jobdeck/jobdeck-api/internal/domain/identity"
	"github.com/jobdeck/jobdeck-api/internal/domain/model"
	apperrors "github.com/jobdeck/jobdeck-api/internal/errors"
)

// Verifier accepts bearer tokens of the form
//
//	<user-id>[|<role>[|<email>[|<display name>]]]
//
// so local clients can impersonate arbitrary users without an IdP. Omitted
// segments fall back to the configured defaults.
type Verifier struct {
	defaultRole  model.UserRole
	defaultEmail string
}

// Config controls the dev verifier's fallback fields.
type Config struct {
	DefaultRole  model.UserRole // defaults to jobseeker
	DefaultEmail string
}

// NewVerifier constructs a dev verifier from Config.
func NewVerifier(cfg Config) *Verifier {
	role := cfg.DefaultRole
	if !role.Valid() {
		role = model.RoleJobSeeker
	}
	return &Verifier{defaultRole: role, defaultEmail: cfg.DefaultEmail}
}

// Verify parses the plaintext dev token.
func (v *Verifier) Verify(_ context.Context, rawToken string) (identity.Identity, error) {
	parts := strings.Split(rawToken, "|")
	userID := strings.TrimSpace(parts[0])
	if userID == "" {
		return identity.Identity{}, apperrors.Unauthorized("dev token carries no user id")
	}

	id := identity.Identity{ID: userID, Email: v.defaultEmail, Role: v.defaultRole}
	if len(parts) > 1 {
		if role := model.UserRole(strings.TrimSpace(parts[1])); role.Valid() {
			id.Role = role
		}
	}
	if len(parts) > 2 {
		id.Email = strings.TrimSpace(parts[2])
	}
	if len(parts) > 3 {
		id.Name = strings.TrimSpace(parts[3])
	}
	return id, nil
}
