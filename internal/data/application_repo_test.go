package data

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobdeck/jobdeck-api/internal/core"
	"github.com/jobdeck/jobdeck-api/internal/domain/model"
	apperrors "github.com/jobdeck/jobdeck-api/internal/errors"
	"github.com/jobdeck/jobdeck-api/internal/testutil"
)

func createTestJob(t *testing.T, db *sql.DB) *model.Job {
	t.Helper()
	job, err := NewJobRepo(db, nil).Create(context.Background(), testutil.NewJobRequest().Build())
	require.NoError(t, err)
	return job
}

func createTestSeeker(t *testing.T, db *sql.DB, id string) *model.User {
	t.Helper()
	user, err := NewUserRepo(db, nil).Upsert(context.Background(), &model.User{
		ID:          id,
		Email:       id + "@example.com",
		DisplayName: "Jane Doe",
		Role:        model.RoleJobSeeker,
	})
	require.NoError(t, err)
	return user
}

func submitParams(job *model.Job, applicantID string) core.SubmitApplicationParams {
	form := testutil.NewApplicationForm().Build()
	return core.SubmitApplicationParams{
		Application: core.NewApplication{
			JobID:          job.ID,
			JobTitle:       job.Title,
			ApplicantID:    applicantID,
			ApplicantName:  form.ApplicantName(),
			ApplicantEmail: applicantID + "@example.com",
			ApplicantPhone: form.Phone,
			FirstName:      form.FirstName,
			LastName:       form.LastName,
			CoverLetter:    form.CoverLetter,
			Experience:     form.Experience,
			Portfolio:      form.Portfolio,
			Resume:         form.Resume,
			ExpectedSalary: form.ExpectedSalary,
		},
		Notification: model.CreateNotificationRequest{
			RecipientID:   job.PostedBy,
			Type:          model.NotificationTypeNewApplication,
			JobID:         job.ID,
			JobTitle:      job.Title,
			ApplicantID:   applicantID,
			ApplicantName: form.ApplicantName(),
			CompanyName:   job.Company,
			Message:       form.ApplicantName() + " applied for " + job.Title,
			Severity:      "info",
		},
	}
}

func responseParams(app *model.Application, job *model.Job, status model.ApplicationStatus, message string) core.ApplyResponseParams {
	return core.ApplyResponseParams{
		ApplicationID:   app.ID,
		ExpectedVersion: app.Version,
		Status:          status,
		Message: model.ApplicationMessage{
			From:      model.MessageSenderEmployer,
			Message:   message,
			Timestamp: testutil.TestTime(),
		},
		Notification: model.CreateNotificationRequest{
			RecipientID:   app.ApplicantID,
			Type:          model.NotificationTypeApplicationUpdate,
			JobID:         job.ID,
			JobTitle:      job.Title,
			ApplicationID: app.ID,
			CompanyName:   job.Company,
			EmployerName:  job.PostedByName,
			Status:        string(status),
			Message:       message,
			Severity:      "info",
		},
	}
}

func TestApplicationRepo_Submit(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	db := testutil.SetupAutoDB(t)
	ctx := context.Background()
	repo := NewApplicationRepo(db, nil)
	jobRepo := NewJobRepo(db, nil)
	notifRepo := NewNotificationRepo(db, nil)

	t.Run("writes application, membership and notification together", func(t *testing.T) {
		job := createTestJob(t, db)

		app, err := repo.Submit(ctx, submitParams(job, "seeker-1"))
		require.NoError(t, err)
		assert.Equal(t, model.ApplicationStatusPending, app.Status)
		assert.Empty(t, app.Messages)
		assert.Equal(t, int64(1), app.Version)
		assert.False(t, app.AppliedAt.IsZero())

		reloaded, err := jobRepo.GetByID(ctx, job.ID)
		require.NoError(t, err)
		assert.Contains(t, reloaded.ApplicationIDs, app.ID)

		notifs, err := notifRepo.ListByRecipient(ctx, job.PostedBy, 10, 0)
		require.NoError(t, err)
		require.Len(t, notifs, 1)
		assert.Equal(t, model.NotificationTypeNewApplication, notifs[0].Type)
		assert.Equal(t, app.ID, notifs[0].ApplicationID)
		assert.False(t, notifs[0].Read)
	})

	t.Run("missing job rolls back the whole submission", func(t *testing.T) {
		job := createTestJob(t, db)
		ghost := *job
		ghost.ID = uuid.NewString()

		_, err := repo.Submit(ctx, submitParams(&ghost, "seeker-2"))
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))

		apps, err := repo.ListByApplicant(ctx, "seeker-2")
		require.NoError(t, err)
		assert.Empty(t, apps)
	})
}

func TestApplicationRepo_ApplyResponse(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	db := testutil.SetupAutoDB(t)
	ctx := context.Background()
	repo := NewApplicationRepo(db, nil)
	notifRepo := NewNotificationRepo(db, nil)
	userRepo := NewUserRepo(db, nil)

	t.Run("acceptance updates status, message log and profile in one commit", func(t *testing.T) {
		job := createTestJob(t, db)
		seeker := createTestSeeker(t, db, "seeker-accept")
		app, err := repo.Submit(ctx, submitParams(job, seeker.ID))
		require.NoError(t, err)

		params := responseParams(app, job, model.ApplicationStatusAccepted, "Welcome aboard!")
		params.Notification.Severity = "success"
		params.ProfileEntry = &core.ProfileAppend{
			UserID: seeker.ID,
			Entry: model.AcceptedApplication{
				JobID:           job.ID,
				JobTitle:        job.Title,
				Company:         job.Company,
				AppliedAt:       app.AppliedAt,
				AcceptedAt:      testutil.TestTime(),
				Status:          string(model.ApplicationStatusAccepted),
				CoverLetter:     app.CoverLetter,
				Experience:      app.Experience,
				Resume:          app.Resume,
				ExpectedSalary:  app.ExpectedSalary,
				ResponseMessage: "Welcome aboard!",
			},
		}
		require.NoError(t, repo.ApplyResponse(ctx, params))

		updated, err := repo.GetByID(ctx, app.ID)
		require.NoError(t, err)
		assert.Equal(t, model.ApplicationStatusAccepted, updated.Status)
		assert.Equal(t, int64(2), updated.Version)
		require.Len(t, updated.Messages, 1)
		assert.Equal(t, model.MessageSenderEmployer, updated.Messages[0].From)
		assert.Equal(t, "Welcome aboard!", updated.Messages[0].Message)

		notifs, err := notifRepo.ListByRecipient(ctx, seeker.ID, 10, 0)
		require.NoError(t, err)
		require.Len(t, notifs, 1)
		assert.Equal(t, model.NotificationTypeApplicationUpdate, notifs[0].Type)
		assert.Equal(t, "accepted", notifs[0].Status)
		assert.Equal(t, "success", notifs[0].Severity)

		profile, err := userRepo.GetByID(ctx, seeker.ID)
		require.NoError(t, err)
		require.Len(t, profile.Applications, 1)
		assert.Equal(t, job.ID, profile.Applications[0].JobID)
		assert.Equal(t, "Welcome aboard!", profile.Applications[0].ResponseMessage)
	})

	t.Run("stale version yields conflict and writes nothing", func(t *testing.T) {
		job := createTestJob(t, db)
		seeker := createTestSeeker(t, db, "seeker-race")
		app, err := repo.Submit(ctx, submitParams(job, seeker.ID))
		require.NoError(t, err)

		require.NoError(t, repo.ApplyResponse(ctx, responseParams(app, job, model.ApplicationStatusRejected, "first")))

		// Replays the original version after the first response bumped it.
		err = repo.ApplyResponse(ctx, responseParams(app, job, model.ApplicationStatusAccepted, "second"))
		require.Error(t, err)
		assert.True(t, apperrors.IsConflict(err))

		updated, err := repo.GetByID(ctx, app.ID)
		require.NoError(t, err)
		assert.Equal(t, model.ApplicationStatusRejected, updated.Status)
		assert.Len(t, updated.Messages, 1)

		notifs, err := notifRepo.ListByRecipient(ctx, seeker.ID, 10, 0)
		require.NoError(t, err)
		assert.Len(t, notifs, 1)
	})

	t.Run("missing profile row skips the append silently", func(t *testing.T) {
		job := createTestJob(t, db)
		app, err := repo.Submit(ctx, submitParams(job, "seeker-no-profile"))
		require.NoError(t, err)

		params := responseParams(app, job, model.ApplicationStatusAccepted, "hired anyway")
		params.ProfileEntry = &core.ProfileAppend{
			UserID: "seeker-no-profile",
			Entry:  model.AcceptedApplication{JobID: job.ID, JobTitle: job.Title},
		}
		require.NoError(t, repo.ApplyResponse(ctx, params))

		updated, err := repo.GetByID(ctx, app.ID)
		require.NoError(t, err)
		assert.Equal(t, model.ApplicationStatusAccepted, updated.Status)
	})

	t.Run("vanished application yields not found", func(t *testing.T) {
		job := createTestJob(t, db)
		app := &model.Application{ID: uuid.NewString(), ApplicantID: "nobody", Version: 1}

		err := repo.ApplyResponse(ctx, responseParams(app, job, model.ApplicationStatusRejected, "no"))
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})
}
