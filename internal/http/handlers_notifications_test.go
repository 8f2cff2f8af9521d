package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jobdeck/jobdeck-api/internal/domain/model"
)

func TestNotificationRoutes(t *testing.T) {
	t.Run("lists the caller's feed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repos, services := newTestRouter(t, ctrl)
		router := NewRouter(*services)

		repos.Notifications.EXPECT().
			ListByRecipient(gomock.Any(), "employer-1", 50, 0).
			Return([]*model.Notification{{ID: "n-1", Type: model.NotificationTypeNewApplication}}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/notifications", nil)
		req.Header.Set("Authorization", "Bearer employer-1|employer")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "new_application")
	})

	t.Run("marking someone else's notification is a 404", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repos, services := newTestRouter(t, ctrl)
		router := NewRouter(*services)

		repos.Notifications.EXPECT().MarkRead(gomock.Any(), "n-1", "seeker-1").Return(false, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/notifications/n-1/read", nil)
		req.Header.Set("Authorization", "Bearer seeker-1|jobseeker")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("unread count", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repos, services := newTestRouter(t, ctrl)
		router := NewRouter(*services)

		repos.Notifications.EXPECT().CountUnread(gomock.Any(), "seeker-1").Return(2, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/notifications/unread_count", nil)
		req.Header.Set("Authorization", "Bearer seeker-1|jobseeker")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"unread":2}`, rec.Body.String())
	})
}

func TestHealthRoute(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	_, services := newTestRouter(t, ctrl)
	router := NewRouter(*services)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
