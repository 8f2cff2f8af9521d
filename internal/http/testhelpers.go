package httpx

import (
	"log/slog"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/jobdeck/jobdeck-api/internal/adapters/devauth"
	"github.com/jobdeck/jobdeck-api/internal/mocks"
	"github.com/jobdeck/jobdeck-api/internal/service"
)

// testRepos bundles the mocked repositories behind a fully wired router.
type testRepos struct {
	Jobs          *mocks.MockJobRepository
	Applications  *mocks.MockApplicationRepository
	Notifications *mocks.MockNotificationRepository
	Users         *mocks.MockUserRepository
	Chats         *mocks.MockChatRepository
}

// newTestRouter builds the real router on top of mocked repositories and the
// dev identity verifier, so tests exercise routing, auth and handlers end to
// end without a database.
func newTestRouter(t *testing.T, ctrl *gomock.Controller) (*testRepos, *RouterServices) {
	t.Helper()

	repos := &testRepos{
		Jobs:          mocks.NewMockJobRepository(ctrl),
		Applications:  mocks.NewMockApplicationRepository(ctrl),
		Notifications: mocks.NewMockNotificationRepository(ctrl),
		Users:         mocks.NewMockUserRepository(ctrl),
		Chats:         mocks.NewMockChatRepository(ctrl),
	}

	services := &RouterServices{
		Workflow: service.MustNewWorkflowService(service.WorkflowServiceOptions{
			Applications: repos.Applications,
			Jobs:         repos.Jobs,
		}),
		Jobs:          service.MustNewJobService(service.JobServiceOptions{Repo: repos.Jobs}),
		Notifications: service.MustNewNotificationService(service.NotificationServiceOptions{Repo: repos.Notifications}),
		Users:         service.MustNewUserService(service.UserServiceOptions{Repo: repos.Users}),
		Chats:         service.MustNewChatService(service.ChatServiceOptions{Repo: repos.Chats}),
		Verifier:      devauth.NewVerifier(devauth.Config{}),
		Logger:        slog.Default(),
	}
	return repos, services
}
