package config

import "time"

// DBConfig contains PostgreSQL database configuration.
type DBConfig struct {
	Host     string `env:"HOST"     envDefault:"localhost"`
	Port     int    `env:"PORT"     envDefault:"5432"`
	User     string `env:"USER"     envDefault:"jobdeck"`
	Password string `env:"PASSWORD" envDefault:"jobdeck"`
	Name     string `env:"NAME"     envDefault:"jobdeck"`
	SSLMode  string `env:"SSL_MODE" envDefault:"disable"` // Use 'disable' for local dev, 'require' for production
	// RunMigrationsOnStart controls whether the application automatically applies migrations during startup.
	RunMigrationsOnStart bool `env:"RUN_MIGRATIONS_ON_START" envDefault:"true"`
}

// RedisConfig contains Redis configuration.
type RedisConfig struct {
	Addr     string `env:"ADDR"     envDefault:"localhost:6379"`
	Password string `env:"PASSWORD" envDefault:""`
	DB       int    `env:"DB"       envDefault:"0"`
}

// CacheConfig contains TTLs for the Redis-backed caches.
type CacheConfig struct {
	// JobSummaryTTL bounds how stale the job summary join in application
	// listings may get.
	JobSummaryTTL time.Duration `env:"CACHE_JOB_SUMMARY_TTL" envDefault:"5m"`

	// UnreadCountTTL bounds how stale the unread notification badge may get.
	UnreadCountTTL time.Duration `env:"CACHE_UNREAD_COUNT_TTL" envDefault:"30s"`
}

// Sanitize applies guardrails to cache configuration values.
func (c *CacheConfig) Sanitize() {
	if c.JobSummaryTTL <= 0 {
		c.JobSummaryTTL = 5 * time.Minute
	}
	if c.UnreadCountTTL <= 0 {
		c.UnreadCountTTL = 30 * time.Second
	}
}
