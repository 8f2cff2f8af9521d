// Package identity contains domain-level types for the authenticated caller.
// It is pure and free of framework/adapter concerns; adapters map
// provider-specific claims into this shape.
package identity

import "github.com/jobdeck/jobdeck-api/internal/domain/model"

// Identity represents the authenticated principal consumed by the workflow.
// The workflow never issues or validates credentials; it only reads this value.
type Identity struct {
	// ID is the provider's stable opaque user identifier.
	ID    string
	Email string
	// Name is the optional display name from the provider.
	Name string
	Role model.UserRole
}

// IsEmployer returns true if the caller carries the employer role tag.
func (i Identity) IsEmployer() bool { return i.Role == model.RoleEmployer }

// IsJobSeeker returns true if the caller carries the jobseeker role tag.
func (i Identity) IsJobSeeker() bool { return i.Role == model.RoleJobSeeker }
