package httpx

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jobdeck/jobdeck-api/internal/domain/model"
)

func TestJobRoutes(t *testing.T) {
	t.Run("browse is public", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repos, services := newTestRouter(t, ctrl)
		router := NewRouter(*services)

		repos.Jobs.EXPECT().
			List(gomock.Any(), gomock.Any()).
			Return([]*model.Job{{ID: "job-1", Title: "Backend Engineer"}}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/jobs?search=backend", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var body struct {
			Jobs  []model.Job `json:"jobs"`
			Count int         `json:"count"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, 1, body.Count)
		assert.Equal(t, "Backend Engineer", body.Jobs[0].Title)
	})

	t.Run("invalid type filter is a 400", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		_, services := newTestRouter(t, ctrl)
		router := NewRouter(*services)

		req := httptest.NewRequest(http.MethodGet, "/api/jobs?type=gig", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("create requires authentication", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		_, services := newTestRouter(t, ctrl)
		router := NewRouter(*services)

		req := httptest.NewRequest(http.MethodPost, "/api/jobs", bytes.NewBufferString(`{}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("employer creates a posting", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repos, services := newTestRouter(t, ctrl)
		router := NewRouter(*services)

		repos.Jobs.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, req *model.CreateJobRequest) (*model.Job, error) {
				return &model.Job{ID: "job-1", Title: req.Title, PostedBy: req.PostedBy}, nil
			})

		payload, _ := json.Marshal(model.CreateJobRequest{
			Title:    "Backend Engineer",
			Company:  "Acme Corp",
			Location: "Remote",
			Type:     model.JobTypeFullTime,
		})
		req := httptest.NewRequest(http.MethodPost, "/api/jobs", bytes.NewBuffer(payload))
		req.Header.Set("Authorization", "Bearer employer-1|employer")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		var job model.Job
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &job))
		assert.Equal(t, "employer-1", job.PostedBy)
	})

	t.Run("job seeker cannot create a posting", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		_, services := newTestRouter(t, ctrl)
		router := NewRouter(*services)

		req := httptest.NewRequest(http.MethodPost, "/api/jobs", bytes.NewBufferString(`{"title":"x"}`))
		req.Header.Set("Authorization", "Bearer seeker-1|jobseeker")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestCandidateRouteRequiresEmployerRole(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	_, services := newTestRouter(t, ctrl)
	router := NewRouter(*services)

	req := httptest.NewRequest(http.MethodGet, "/api/candidates", nil)
	req.Header.Set("Authorization", "Bearer seeker-1|jobseeker")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
