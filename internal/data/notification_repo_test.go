package data

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobdeck/jobdeck-api/internal/domain/model"
	apperrors "github.com/jobdeck/jobdeck-api/internal/errors"
	"github.com/jobdeck/jobdeck-api/internal/testutil"
)

func TestNotificationRepo_Create(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	db := testutil.SetupAutoDB(t)
	ctx := context.Background()
	repo := NewNotificationRepo(db, nil)

	t.Run("inserts an unread notification", func(t *testing.T) {
		created, err := repo.Create(ctx, model.CreateNotificationRequest{
			RecipientID:   "employer-1",
			Type:          model.NotificationTypeNewApplication,
			JobTitle:      "Backend Engineer",
			ApplicantName: "Jane Doe",
			CompanyName:   "Acme Corp",
			Message:       "Jane Doe applied for Backend Engineer",
			Severity:      "info",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.False(t, created.Read)
		assert.False(t, created.CreatedAt.IsZero())

		count, err := repo.CountUnread(ctx, "employer-1")
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("rejects an unknown type", func(t *testing.T) {
		_, err := repo.Create(ctx, model.CreateNotificationRequest{
			RecipientID: "employer-1",
			Type:        "marketing_blast",
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("mark read drops it from the unread count", func(t *testing.T) {
		created, err := repo.Create(ctx, model.CreateNotificationRequest{
			RecipientID: "employer-2",
			Type:        model.NotificationTypeApplicationUpdate,
			Status:      "accepted",
			Severity:    "success",
		})
		require.NoError(t, err)

		ok, err := repo.MarkRead(ctx, created.ID, "employer-2")
		require.NoError(t, err)
		assert.True(t, ok)

		// A second flip finds nothing unread.
		ok, err = repo.MarkRead(ctx, created.ID, "employer-2")
		require.NoError(t, err)
		assert.False(t, ok)

		count, err := repo.CountUnread(ctx, "employer-2")
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})
}
