package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/jobdeck/jobdeck-api/config"
	"github.com/jobdeck/jobdeck-api/internal/data"
	httpx "github.com/jobdeck/jobdeck-api/internal/http"
	"github.com/jobdeck/jobdeck-api/internal/ports"
)

// HTTPServerConfig contains configuration for the HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Verifier ports.IdentityVerifier
	DB       *sql.DB
	Cache    *data.RedisCacheRepo
	Logger   *slog.Logger
}

// BuildHTTPHandler assembles the router from the service container.
func BuildHTTPHandler(cfg *HTTPServerConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	services := httpx.RouterServices{
		Workflow:      cfg.Services.Workflow,
		Jobs:          cfg.Services.Jobs,
		Notifications: cfg.Services.Notifications,
		Users:         cfg.Services.Users,
		Chats:         cfg.Services.Chats,
		Verifier:      cfg.Verifier,
		ExposeMetrics: appCfg.Observability.MetricsEnabled,
		Logger:        logger,
	}
	// Assign probe targets only when present so the readiness handler sees
	// untyped nil interfaces, not typed nil pointers.
	if cfg.DB != nil {
		services.DB = cfg.DB
	}
	if cfg.Cache != nil {
		services.Cache = cfg.Cache
	}

	return httpx.NewRouter(services)
}

// RunHTTPServer runs the HTTP server until the context is cancelled or a
// termination signal arrives, then shuts it down gracefully.
func RunHTTPServer(ctx context.Context, cfg *HTTPServerConfig) error {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}
	httpCfg := appCfg.HTTP

	addr := httpCfg.Addr
	if addr == "" {
		addr = ":8080"
	}

	server := &http.Server{
		Addr:         addr,
		Handler:      BuildHTTPHandler(cfg),
		ReadTimeout:  httpCfg.ReadTimeout,
		WriteTimeout: httpCfg.WriteTimeout,
	}

	signalCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(signalCtx)

	group.Go(func() error {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		logger.Info("shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		logger.Info("HTTP server stopped")
		return nil
	})

	return group.Wait()
}
