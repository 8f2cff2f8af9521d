package devauth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobdeck/jobdeck-api/internal/domain/model"
	apperrors "github.com/jobdeck/jobdeck-api/internal/errors"
)

func TestVerify(t *testing.T) {
	ctx := context.Background()
	v := NewVerifier(Config{DefaultEmail: "dev@local.test"})

	t.Run("bare user id uses defaults", func(t *testing.T) {
		id, err := v.Verify(ctx, "seeker-1")
		require.NoError(t, err)
		assert.Equal(t, "seeker-1", id.ID)
		assert.Equal(t, model.RoleJobSeeker, id.Role)
		assert.Equal(t, "dev@local.test", id.Email)
	})

	t.Run("full token", func(t *testing.T) {
		id, err := v.Verify(ctx, "employer-1|employer|dana@acme.test|Dana Recruiter")
		require.NoError(t, err)
		assert.Equal(t, "employer-1", id.ID)
		assert.Equal(t, model.RoleEmployer, id.Role)
		assert.Equal(t, "dana@acme.test", id.Email)
		assert.Equal(t, "Dana Recruiter", id.Name)
	})

	t.Run("invalid role segment keeps the default", func(t *testing.T) {
		id, err := v.Verify(ctx, "seeker-1|root")
		require.NoError(t, err)
		assert.Equal(t, model.RoleJobSeeker, id.Role)
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := v.Verify(ctx, "  ")
		require.Error(t, err)
		assert.True(t, apperrors.IsUnauthorized(err))
	})
}
