package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jobdeck/jobdeck-api/internal/domain/identity"
	"github.com/jobdeck/jobdeck-api/internal/domain/model"
	apperrors "github.com/jobdeck/jobdeck-api/internal/errors"
	"github.com/jobdeck/jobdeck-api/internal/mocks"
)

func employerIdentity() identity.Identity {
	return identity.Identity{ID: "employer-1", Email: "dana@acme.test", Name: "Dana Recruiter", Role: model.RoleEmployer}
}

func TestJobServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("stamps the posting with the caller's identity", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockJobRepository(ctrl)
		svc := MustNewJobService(JobServiceOptions{Repo: repo})

		var captured *model.CreateJobRequest
		repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, req *model.CreateJobRequest) (*model.Job, error) {
				captured = req
				return &model.Job{ID: "job-1", Title: req.Title, PostedBy: req.PostedBy}, nil
			})

		job, err := svc.Create(ctx, employerIdentity(), &model.CreateJobRequest{
			Title:    "Backend Engineer",
			Company:  "Acme Corp",
			Location: "Remote",
			Type:     model.JobTypeFullTime,
		})
		require.NoError(t, err)
		assert.Equal(t, "employer-1", job.PostedBy)
		assert.Equal(t, "employer-1", captured.PostedBy)
		assert.Equal(t, "Dana Recruiter", captured.PostedByName)
	})

	t.Run("job seekers cannot post", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := MustNewJobService(JobServiceOptions{Repo: mocks.NewMockJobRepository(ctrl)})

		_, err := svc.Create(ctx, seekerIdentity(), &model.CreateJobRequest{Title: "x"})
		require.Error(t, err)
		assert.True(t, apperrors.IsUnauthorized(err))
	})
}

func TestJobServiceClose(t *testing.T) {
	ctx := context.Background()

	t.Run("closes an owned active posting", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockJobRepository(ctrl)
		svc := MustNewJobService(JobServiceOptions{Repo: repo})

		repo.EXPECT().Close(ctx, "job-1", "employer-1").Return(true, nil)
		require.NoError(t, svc.Close(ctx, employerIdentity(), "job-1"))
	})

	t.Run("closing someone else's posting reports not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockJobRepository(ctrl)
		svc := MustNewJobService(JobServiceOptions{Repo: repo})

		repo.EXPECT().Close(ctx, "job-1", "employer-1").Return(false, nil)
		err := svc.Close(ctx, employerIdentity(), "job-1")
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestJobServiceListMine(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockJobRepository(ctrl)
	svc := MustNewJobService(JobServiceOptions{Repo: repo})

	ctx := context.Background()
	repo.EXPECT().ListByEmployer(ctx, "employer-1").Return([]*model.Job{{ID: "job-1"}}, nil)

	list, err := svc.ListMine(ctx, employerIdentity())
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = svc.ListMine(ctx, seekerIdentity())
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
}
