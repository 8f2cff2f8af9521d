package httpx

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jobdeck/jobdeck-api/internal/core"
	"github.com/jobdeck/jobdeck-api/internal/domain/model"
	apperrors "github.com/jobdeck/jobdeck-api/internal/errors"
)

func testJob() *model.Job {
	return &model.Job{
		ID:       "3f1c8a44-9c1d-4f6e-8a2b-0d9e7c5b1a23",
		Title:    "Backend Engineer",
		Company:  "Acme Corp",
		Type:     model.JobTypeFullTime,
		PostedBy: "employer-1",
		Status:   model.JobStatusActive,
	}
}

func applicationPayload() []byte {
	payload, _ := json.Marshal(model.ApplicationForm{
		FirstName:      "Sam",
		LastName:       "Seeker",
		Phone:          "555-0101",
		CoverLetter:    "I would be a great fit.",
		Experience:     "5 years of Go",
		Resume:         "https://example.com/resume.pdf",
		ExpectedSalary: 120000,
	})
	return payload
}

func TestSubmitApplicationRoute(t *testing.T) {
	t.Run("submits against an active posting", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repos, services := newTestRouter(t, ctrl)
		router := NewRouter(*services)

		job := testJob()
		repos.Jobs.EXPECT().GetByID(gomock.Any(), job.ID).Return(job, nil)
		repos.Applications.EXPECT().
			Submit(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, params core.SubmitApplicationParams) (*model.Application, error) {
				return &model.Application{
					ID:          "app-1",
					JobID:       params.Application.JobID,
					ApplicantID: params.Application.ApplicantID,
					Status:      model.ApplicationStatusPending,
				}, nil
			})

		req := httptest.NewRequest(http.MethodPost, "/api/jobs/"+job.ID+"/applications", bytes.NewBuffer(applicationPayload()))
		req.Header.Set("Authorization", "Bearer seeker-1|jobseeker")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		var app model.Application
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &app))
		assert.Equal(t, "seeker-1", app.ApplicantID)
		assert.Equal(t, model.ApplicationStatusPending, app.Status)
	})

	t.Run("missing job is a 404", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repos, services := newTestRouter(t, ctrl)
		router := NewRouter(*services)

		repos.Jobs.EXPECT().GetByID(gomock.Any(), "gone").Return(nil, apperrors.NotFound("job gone not found"))

		req := httptest.NewRequest(http.MethodPost, "/api/jobs/gone/applications", bytes.NewBuffer(applicationPayload()))
		req.Header.Set("Authorization", "Bearer seeker-1|jobseeker")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("incomplete form is a 400 with the field named", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		_, services := newTestRouter(t, ctrl)
		router := NewRouter(*services)

		req := httptest.NewRequest(http.MethodPost, "/api/jobs/any/applications", bytes.NewBufferString(`{"first_name":"Sam"}`))
		req.Header.Set("Authorization", "Bearer seeker-1|jobseeker")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "required")
	})
}

func TestRespondRoute(t *testing.T) {
	t.Run("owning employer responds", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repos, services := newTestRouter(t, ctrl)
		router := NewRouter(*services)

		job := testJob()
		app := &model.Application{
			ID:          "a7c1b2d3-0e4f-4a5b-8c6d-7e8f9a0b1c2d",
			JobID:       job.ID,
			ApplicantID: "seeker-1",
			Status:      model.ApplicationStatusPending,
			Version:     1,
		}
		repos.Applications.EXPECT().GetByID(gomock.Any(), app.ID).Return(app, nil)
		repos.Jobs.EXPECT().GetByID(gomock.Any(), job.ID).Return(job, nil)
		repos.Applications.EXPECT().ApplyResponse(gomock.Any(), gomock.Any()).Return(nil)

		req := httptest.NewRequest(http.MethodPost, "/api/applications/"+app.ID+"/respond",
			bytes.NewBufferString(`{"decision":"accepted","message":"Welcome aboard!"}`))
		req.Header.Set("Authorization", "Bearer employer-1|employer")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("lost version race is a 409", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repos, services := newTestRouter(t, ctrl)
		router := NewRouter(*services)

		job := testJob()
		app := &model.Application{ID: "app-1", JobID: job.ID, ApplicantID: "seeker-1", Version: 1}
		repos.Applications.EXPECT().GetByID(gomock.Any(), app.ID).Return(app, nil)
		repos.Jobs.EXPECT().GetByID(gomock.Any(), job.ID).Return(job, nil)
		repos.Applications.EXPECT().ApplyResponse(gomock.Any(), gomock.Any()).
			Return(apperrors.Conflict("application was modified concurrently"))

		req := httptest.NewRequest(http.MethodPost, "/api/applications/app-1/respond",
			bytes.NewBufferString(`{"decision":"rejected","message":"no"}`))
		req.Header.Set("Authorization", "Bearer employer-1|employer")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("foreign employer is a 403", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repos, services := newTestRouter(t, ctrl)
		router := NewRouter(*services)

		job := testJob()
		app := &model.Application{ID: "app-1", JobID: job.ID, ApplicantID: "seeker-1", Version: 1}
		repos.Applications.EXPECT().GetByID(gomock.Any(), app.ID).Return(app, nil)
		repos.Jobs.EXPECT().GetByID(gomock.Any(), job.ID).Return(job, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/applications/app-1/respond",
			bytes.NewBufferString(`{"decision":"rejected","message":"no"}`))
		req.Header.Set("Authorization", "Bearer employer-2|employer")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestListMyApplicationsRoute(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repos, services := newTestRouter(t, ctrl)
	router := NewRouter(*services)

	job := testJob()
	apps := []*model.Application{{
		ID:        "app-1",
		JobID:     job.ID,
		AppliedAt: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}}
	repos.Applications.EXPECT().ListByApplicant(gomock.Any(), "seeker-1").Return(apps, nil)
	repos.Jobs.EXPECT().GetByID(gomock.Any(), job.ID).Return(nil, apperrors.NotFound("job gone"))

	req := httptest.NewRequest(http.MethodGet, "/api/applications", nil)
	req.Header.Set("Authorization", "Bearer seeker-1|jobseeker")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Applications []model.EnrichedApplication `json:"applications"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Applications, 1)
	assert.Equal(t, "Unknown Company", body.Applications[0].Job.Company)
}
