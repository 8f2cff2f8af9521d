package oidc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobdeck/jobdeck-api/internal/domain/model"
	apperrors "github.com/jobdeck/jobdeck-api/internal/errors"
)

func TestNewVerifierValidation(t *testing.T) {
	ctx := context.Background()

	t.Run("missing client ID", func(t *testing.T) {
		_, err := NewVerifier(ctx, VerifierConfig{IssuerURL: "https://idp.example.com"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "client ID is required")
	})

	t.Run("missing issuer", func(t *testing.T) {
		_, err := NewVerifier(ctx, VerifierConfig{ClientID: "jobdeck"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "issuer URL is required")
	})
}

func TestMapClaims(t *testing.T) {
	t.Run("full claims", func(t *testing.T) {
		id, err := mapClaims("user-1", map[string]any{
			"email": "dana@acme.test",
			"name":  "Dana Recruiter",
			"role":  "employer",
		}, "role")
		require.NoError(t, err)
		assert.Equal(t, "user-1", id.ID)
		assert.Equal(t, "dana@acme.test", id.Email)
		assert.Equal(t, "Dana Recruiter", id.Name)
		assert.Equal(t, model.RoleEmployer, id.Role)
	})

	t.Run("name assembled from given and family names", func(t *testing.T) {
		id, err := mapClaims("user-2", map[string]any{
			"given_name":  "Sam",
			"family_name": "Seeker",
		}, "role")
		require.NoError(t, err)
		assert.Equal(t, "Sam Seeker", id.Name)
	})

	t.Run("unknown role falls back to jobseeker", func(t *testing.T) {
		id, err := mapClaims("user-3", map[string]any{"role": "superadmin"}, "role")
		require.NoError(t, err)
		assert.Equal(t, model.RoleJobSeeker, id.Role)
	})

	t.Run("custom role claim", func(t *testing.T) {
		id, err := mapClaims("user-4", map[string]any{"jobdeck_role": "employer"}, "jobdeck_role")
		require.NoError(t, err)
		assert.Equal(t, model.RoleEmployer, id.Role)
	})

	t.Run("missing subject", func(t *testing.T) {
		_, err := mapClaims("", map[string]any{}, "role")
		require.Error(t, err)
		assert.True(t, apperrors.IsUnauthorized(err))
	})
}
