package config

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.False(t, cfg.IsDev)
	assert.Equal(t, AuthModeOIDC, cfg.Auth.Mode)
	assert.Equal(t, "localhost", cfg.Postgres.Host)
	assert.Equal(t, 5432, cfg.Postgres.Port)
	assert.True(t, cfg.Postgres.RunMigrationsOnStart)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, 5*time.Minute, cfg.Cache.JobSummaryTTL)
	assert.Equal(t, 30*time.Second, cfg.Cache.UnreadCountTTL)
	assert.Equal(t, "info", cfg.Observability.LogLevel)
	assert.Equal(t, "json", cfg.Observability.LogFormat)
	assert.True(t, cfg.Observability.MetricsEnabled)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PASSWORD", "s3cret")
	t.Setenv("REDIS_ADDR", "redis.internal:6380")
	t.Setenv("AUTH_MODE", "dev")
	t.Setenv("OIDC_ISSUER_URL", "https://idp.example.com")
	t.Setenv("LOG_LEVEL", "DEBUG")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.Equal(t, "db.internal", cfg.Postgres.Host)
	assert.Equal(t, "s3cret", cfg.Postgres.Password)
	assert.Equal(t, "redis.internal:6380", cfg.Redis.Addr)
	assert.Equal(t, AuthModeDev, cfg.Auth.Mode)
	assert.Equal(t, "https://idp.example.com", cfg.Auth.OIDC.IssuerURL)
	assert.Equal(t, "debug", cfg.Observability.LogLevel)
}

func TestInvalidAuthMode(t *testing.T) {
	t.Setenv("AUTH_MODE", "ldap")

	var cfg AppConfig
	err := env.Parse(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid AuthMode")
}

func TestSanitizeGuardrails(t *testing.T) {
	cfg := AppConfig{}
	cfg.Cache.JobSummaryTTL = -1
	cfg.HTTP.ReadTimeout = 0
	cfg.Observability.LogLevel = "verbose"
	cfg.Observability.LogFormat = "yaml"
	cfg.Sanitize()

	assert.Equal(t, 5*time.Minute, cfg.Cache.JobSummaryTTL)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, "info", cfg.Observability.LogLevel)
	assert.Equal(t, "json", cfg.Observability.LogFormat)
}

func TestDevModeFromNodeEnv(t *testing.T) {
	t.Setenv("NODE_ENV", "development")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.True(t, cfg.IsDev)
}
