package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()

	vars := map[string]string{
		"CATALOG_PRIMARY.ENV":                 "test",
		"CATALOG_SERVER.PORT":                 "8080",
		"CATALOG_SERVER.READ_TIMEOUT":         "30",
		"CATALOG_SERVER.WRITE_TIMEOUT":        "30",
		"CATALOG_SERVER.IDLE_TIMEOUT":         "60",
		"CATALOG_SERVER.CORS_ALLOWED_ORIGINS": "*",
		"CATALOG_DATABASE.HOST":               "localhost",
		"CATALOG_DATABASE.PORT":               "5432",
		"CATALOG_DATABASE.USER":               "postgres",
		"CATALOG_DATABASE.PASSWORD":           "postgres",
		"CATALOG_DATABASE.NAME":               "ecommerce_db",
		"CATALOG_DATABASE.SSL_MODE":           "disable",
		"CATALOG_DATABASE.MAX_OPEN_CONNS":     "25",
		"CATALOG_DATABASE.MAX_IDLE_CONNS":     "25",
		"CATALOG_DATABASE.CONN_MAX_LIFETIME":  "300",
		"CATALOG_DATABASE.CONN_MAX_IDLE_TIME": "300",
		"CATALOG_REDIS.ADDRESS":               "localhost:6379",
	}
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Primary.Env)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address)

	require.NotNil(t, cfg.Observability)
	assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
	assert.Equal(t, "test", cfg.Observability.Environment)
	assert.Equal(t, "info", cfg.Observability.Logging.Level)

	require.NotNil(t, cfg.Cache)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)

	assert.False(t, cfg.Auth.Enabled())
	assert.False(t, cfg.IsLocal())
}

func TestLoadConfigCacheOverride(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CATALOG_CACHE.ENABLED", "true")
	t.Setenv("CATALOG_CACHE.TTL", "30s")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
}

func TestLoadConfigMissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CATALOG_DATABASE.HOST", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}

func TestObservabilityValidate(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	require.NoError(t, cfg.Validate())

	cfg.Logging.Level = "verbose"
	assert.Error(t, cfg.Validate())

	cfg = DefaultObservabilityConfig()
	cfg.Logging.SlowQueryThreshold = -time.Second
	assert.Error(t, cfg.Validate())
}

func TestHealthChecksShouldCheck(t *testing.T) {
	hc := DefaultObservabilityConfig().HealthChecks
	assert.True(t, hc.ShouldCheck("database"))
	assert.True(t, hc.ShouldCheck("redis"))
	assert.False(t, hc.ShouldCheck("kafka"))

	hc.Enabled = false
	assert.False(t, hc.ShouldCheck("database"))

	hc.Timeout = 0
	assert.Equal(t, 5*time.Second, hc.CheckTimeout())
}
