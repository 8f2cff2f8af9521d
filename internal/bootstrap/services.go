package bootstrap

import (
	"database/sql"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/jobdeck/jobdeck-api/config"
	"github.com/jobdeck/jobdeck-api/internal/data"
	"github.com/jobdeck/jobdeck-api/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Workflow      *service.WorkflowService
	Jobs          *service.JobService
	Notifications *service.NotificationService
	Users         *service.UserService
	Chats         *service.ChatService
	// Cache backs the readiness probe.
	Cache *data.RedisCacheRepo
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// serviceRepositories groups data adapters backing service ports.
type serviceRepositories struct {
	JobRepo          *data.JobRepo
	ApplicationRepo  *data.ApplicationRepo
	NotificationRepo *data.NotificationRepo
	UserRepo         *data.UserRepo
	ChatRepo         *data.ChatRepo
	CacheRepo        *data.RedisCacheRepo
}

// buildRepositories builds repositories backing service ports; no business rules here.
func buildRepositories(db *sql.DB, redisClient redis.UniversalClient, logger *slog.Logger) *serviceRepositories {
	return &serviceRepositories{
		JobRepo:          data.NewJobRepo(db, logger),
		ApplicationRepo:  data.NewApplicationRepo(db, logger),
		NotificationRepo: data.NewNotificationRepo(db, logger),
		UserRepo:         data.NewUserRepo(db, logger),
		ChatRepo:         data.NewChatRepo(db, logger),
		CacheRepo:        data.NewRedisCacheRepo(redisClient),
	}
}

// NewServices wires business services using repositories built from deps.
func NewServices(deps *ServiceDeps) ServiceContainer {
	if deps == nil {
		return ServiceContainer{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	appCfg := deps.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	repos := buildRepositories(deps.DB, deps.RedisClient, logger)

	workflow := service.MustNewWorkflowService(service.WorkflowServiceOptions{
		Applications: repos.ApplicationRepo,
		Jobs:         repos.JobRepo,
		Cache:        repos.CacheRepo,
		CacheTTL:     appCfg.Cache.JobSummaryTTL,
		Logger:       logger,
	})

	jobs := service.MustNewJobService(service.JobServiceOptions{
		Repo:   repos.JobRepo,
		Logger: logger,
	})

	notifications := service.MustNewNotificationService(service.NotificationServiceOptions{
		Repo:     repos.NotificationRepo,
		Cache:    repos.CacheRepo,
		CacheTTL: appCfg.Cache.UnreadCountTTL,
		Logger:   logger,
	})

	users := service.MustNewUserService(service.UserServiceOptions{
		Repo:   repos.UserRepo,
		Logger: logger,
	})

	chats := service.MustNewChatService(service.ChatServiceOptions{
		Repo:   repos.ChatRepo,
		Logger: logger,
	})

	return ServiceContainer{
		Workflow:      workflow,
		Jobs:          jobs,
		Notifications: notifications,
		Users:         users,
		Chats:         chats,
		Cache:         repos.CacheRepo,
	}
}
