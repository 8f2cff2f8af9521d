package oidc

// Package oidc verifies bearer ID tokens issued by an OIDC provider and maps
// their claims onto the domain identity consumed by the workflow.

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"github.com/jobdeck/jobdeck-api/internal/domain/identity"
	"github.com/jobdeck/jobdeck-api/internal/domain/model"
	apperrors "github.com/jobdeck/jobdeck-api/internal/errors"
)

// VerifierConfig holds configuration for the OIDC verifier.
type VerifierConfig struct {
	ClientID string
	// IssuerURL is the provider issuer; a discovery document URL is also
	// accepted and trimmed down to the issuer.
	IssuerURL string
	// RoleClaim names the custom claim carrying the board role. Defaults to
	// "role"; an absent or unknown value maps to jobseeker.
	RoleClaim  string
	HTTPClient *http.Client // Optional, defaults to a 30s-timeout client
}

// Verifier implements ports.IdentityVerifier against a live OIDC provider.
type Verifier struct {
	verifier  *gooidc.IDTokenVerifier
	roleClaim string
}

// NewVerifier creates a verifier, performing a single discovery fetch.
func NewVerifier(ctx context.Context, config VerifierConfig) (*Verifier, error) {
	if config.ClientID == "" {
		return nil, errors.New("client ID is required")
	}
	if config.IssuerURL == "" {
		return nil, errors.New("issuer URL is required")
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	roleClaim := config.RoleClaim
	if roleClaim == "" {
		roleClaim = "role"
	}

	issuer := strings.TrimSuffix(config.IssuerURL, "/")
	issuer = strings.TrimSuffix(issuer, "/.well-known/openid-configuration")

	ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)
	provider, err := gooidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("oidc new provider: %w", err)
	}

	return &Verifier{
		verifier:  provider.Verifier(&gooidc.Config{ClientID: config.ClientID}),
		roleClaim: roleClaim,
	}, nil
}

// Verify checks the raw ID token and maps its claims to an identity.
func (v *Verifier) Verify(ctx context.Context, rawToken string) (identity.Identity, error) {
	if rawToken == "" {
		return identity.Identity{}, apperrors.Unauthorized("bearer token is required")
	}

	token, err := v.verifier.Verify(ctx, rawToken)
	if err != nil {
		return identity.Identity{}, apperrors.Wrap(err, apperrors.ErrCodeUnauthorized, "invalid bearer token")
	}

	claims := map[string]any{}
	if err := token.Claims(&claims); err != nil {
		return identity.Identity{}, apperrors.Wrap(err, apperrors.ErrCodeUnauthorized, "decode token claims")
	}
	return mapClaims(token.Subject, claims, v.roleClaim)
}

// mapClaims builds the domain identity from raw token claims.
func mapClaims(subject string, claims map[string]any, roleClaim string) (identity.Identity, error) {
	if subject == "" {
		return identity.Identity{}, apperrors.Unauthorized("token carries no subject")
	}

	id := identity.Identity{
		ID:    subject,
		Email: stringClaim(claims, "email"),
		Name:  stringClaim(claims, "name"),
		Role:  model.RoleJobSeeker,
	}
	if id.Name == "" {
		given := stringClaim(claims, "given_name")
		family := stringClaim(claims, "family_name")
		id.Name = strings.TrimSpace(given + " " + family)
	}
	if role := model.UserRole(stringClaim(claims, roleClaim)); role.Valid() {
		id.Role = role
	}
	return id, nil
}

func stringClaim(claims map[string]any, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
