package httpx

import (
	"log/slog"
	"net/http"

	"github.com/jobdeck/jobdeck-api/internal/core"
	"github.com/jobdeck/jobdeck-api/internal/domain/model"
	"github.com/jobdeck/jobdeck-api/internal/observability/metrics"
	"github.com/jobdeck/jobdeck-api/internal/ports"
	"github.com/jobdeck/jobdeck-api/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Workflow      *service.WorkflowService
	Jobs          *service.JobService
	Notifications *service.NotificationService
	Users         *service.UserService
	Chats         *service.ChatService
	Verifier      ports.IdentityVerifier
	// DB and Cache back the readiness probe (both optional).
	DB    Pinger
	Cache core.CacheRepository
	// ExposeMetrics mounts the Prometheus endpoint.
	ExposeMetrics bool
	Logger        *slog.Logger // Logger for request and panic logging (optional)
}

// NewRouter creates and configures the HTTP router.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	jobHandlers := &JobHandlers{Svc: services.Jobs}
	appHandlers := &ApplicationHandlers{Svc: services.Workflow}
	notifHandlers := &NotificationHandlers{Svc: services.Notifications}
	userHandlers := &UserHandlers{Svc: services.Users}
	chatHandlers := &ChatHandlers{Svc: services.Chats}

	authed := RequireIdentity(services.Verifier)
	employerOnly := func(h http.Handler) http.Handler {
		return authed(RequireRole(model.RoleEmployer)(h))
	}

	// Job postings. Browsing and reading stay public; everything else is authed.
	mux.Handle("GET /api/jobs", http.HandlerFunc(jobHandlers.List))
	mux.Handle("POST /api/jobs", authed(http.HandlerFunc(jobHandlers.Create)))
	mux.Handle("GET /api/jobs/mine", authed(http.HandlerFunc(jobHandlers.ListMine)))
	mux.Handle("GET /api/jobs/{id}", http.HandlerFunc(jobHandlers.Get))
	mux.Handle("POST /api/jobs/{id}/close", authed(http.HandlerFunc(jobHandlers.Close)))

	// Application workflow.
	mux.Handle("POST /api/jobs/{id}/applications", authed(http.HandlerFunc(appHandlers.Submit)))
	mux.Handle("GET /api/jobs/{id}/applications", authed(http.HandlerFunc(appHandlers.ListForJob)))
	mux.Handle("GET /api/applications", authed(http.HandlerFunc(appHandlers.ListMine)))
	mux.Handle("POST /api/applications/{id}/respond", authed(http.HandlerFunc(appHandlers.Respond)))

	// Notifications.
	mux.Handle("GET /api/notifications", authed(http.HandlerFunc(notifHandlers.List)))
	mux.Handle("GET /api/notifications/unread_count", authed(http.HandlerFunc(notifHandlers.UnreadCount)))
	mux.Handle("POST /api/notifications/{id}/read", authed(http.HandlerFunc(notifHandlers.MarkRead)))

	// Profiles and candidate browsing.
	mux.Handle("GET /api/profile", authed(http.HandlerFunc(userHandlers.GetProfile)))
	mux.Handle("PUT /api/profile", authed(http.HandlerFunc(userHandlers.SaveProfile)))
	mux.Handle("GET /api/candidates", employerOnly(http.HandlerFunc(userHandlers.ListCandidates)))

	// Chats.
	mux.Handle("POST /api/chats", authed(http.HandlerFunc(chatHandlers.Start)))
	mux.Handle("GET /api/chats", authed(http.HandlerFunc(chatHandlers.List)))
	mux.Handle("GET /api/chats/{id}", authed(http.HandlerFunc(chatHandlers.Get)))
	mux.Handle("POST /api/chats/{id}/messages", authed(http.HandlerFunc(chatHandlers.Send)))

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("GET /readyz", readyHandler(services.DB, services.Cache))
	if services.ExposeMetrics {
		mux.Handle("GET /metrics", metrics.Handler())
	}

	var handler http.Handler = mux
	if services.Logger != nil {
		handler = Logging(services.Logger)(handler)
		handler = Recover(services.Logger)(handler)
	}
	return handler
}
