package config

import (
	"fmt"
	"strings"
)

// AuthMode represents the identity verification mode for the application.
type AuthMode string

const (
	// AuthModeOIDC verifies bearer tokens against an OIDC provider.
	AuthModeOIDC AuthMode = "oidc"
	// AuthModeDev accepts plaintext dev tokens (for development only).
	AuthModeDev AuthMode = "dev"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "oidc", "dev":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: oidc, dev)", v)
	}
}

// OIDCConfig contains OIDC verifier configuration.
type OIDCConfig struct {
	ClientID  string `env:"CLIENT_ID"  envDefault:"jobdeck"`
	IssuerURL string `env:"ISSUER_URL"`
	// RoleClaim names the token claim carrying the board role.
	RoleClaim string `env:"ROLE_CLAIM" envDefault:"role"`
}

// DevAuthConfig controls the dev verifier's fallback identity fields.
// Used when AUTH_MODE=dev for development and testing.
type DevAuthConfig struct {
	DefaultRole  string `env:"DEFAULT_ROLE"  envDefault:"jobseeker"`
	DefaultEmail string `env:"DEFAULT_EMAIL" envDefault:"dev@example.com"`
}

// AuthConfig groups all identity-related configuration.
type AuthConfig struct {
	// Mode determines which identity verifier to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"oidc"`

	// OIDC configuration (used when Mode=oidc).
	OIDC OIDCConfig `envPrefix:"OIDC_"`

	// DevAuth configuration (used when Mode=dev).
	DevAuth DevAuthConfig `envPrefix:"DEV_AUTH_"`
}
