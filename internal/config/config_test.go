package config

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewDefaults(t *testing.T) {
	cfg := New()

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel)
	assert.Equal(t, "stations", cfg.StationsTable)
	assert.Equal(t, "users", cfg.UsersTable)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
}

func TestNewWithOptions(t *testing.T) {
	cfg := New(
		WithEnvironment("local"),
		WithLogLevel("debug"),
		WithTables("stations-dev", "users-dev"),
		WithAuthSecret("secret"),
		WithHTTPTimeout(5*time.Second),
	)

	assert.Equal(t, "local", cfg.Environment)
	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel)
	assert.Equal(t, "stations-dev", cfg.StationsTable)
	assert.Equal(t, "users-dev", cfg.UsersTable)
	assert.Equal(t, "secret", cfg.AuthSecret)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
}

func TestWithLogLevelFallsBackToInfo(t *testing.T) {
	cfg := New(WithLogLevel("not-a-level"))
	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ENV", "development")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("STATIONS_TABLE", "stations-test")
	t.Setenv("USERS_TABLE", "users-test")
	t.Setenv("AUTH_TOKEN_SECRET", "env-secret")
	t.Setenv("HTTP_TIMEOUT", "30s")

	cfg := LoadFromEnv()

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, zerolog.WarnLevel, cfg.LogLevel)
	assert.Equal(t, "stations-test", cfg.StationsTable)
	assert.Equal(t, "users-test", cfg.UsersTable)
	assert.Equal(t, "env-secret", cfg.AuthSecret)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
}

func TestLoadFromEnvInvalidTimeout(t *testing.T) {
	t.Setenv("HTTP_TIMEOUT", "soon")
	cfg := LoadFromEnv()
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
}

func TestGetCacheConfigDefaults(t *testing.T) {
	cfg := GetCacheConfig()

	assert.Equal(t, 15, cfg.CatalogTTLMinutes)
	assert.Equal(t, 1000, cfg.StationLRUSize)
	assert.Equal(t, 15, cfg.StationLRUTTLMinutes)
	assert.Equal(t, 30, cfg.BatchGetSize)
	assert.Equal(t, 3, cfg.MaxBatchRetries)
}

func TestGetCacheConfigFromEnv(t *testing.T) {
	t.Setenv("CACHE_CATALOG_TTL_MINUTES", "5")
	t.Setenv("CACHE_STATION_LRU_SIZE", "250")
	t.Setenv("STORE_BATCH_GET_SIZE", "10")

	cfg := GetCacheConfig()

	assert.Equal(t, 5, cfg.CatalogTTLMinutes)
	assert.Equal(t, 250, cfg.StationLRUSize)
	assert.Equal(t, 10, cfg.BatchGetSize)
	assert.Equal(t, 3, cfg.MaxBatchRetries)
}

func TestGetCacheConfigIgnoresInvalidInt(t *testing.T) {
	t.Setenv("CACHE_STATION_LRU_SIZE", "many")
	cfg := GetCacheConfig()
	assert.Equal(t, 1000, cfg.StationLRUSize)
}

func TestCacheConfigTTLHelpers(t *testing.T) {
	cfg := &CacheConfig{CatalogTTLMinutes: 5, StationLRUTTLMinutes: 2}
	assert.Equal(t, 5*time.Minute, cfg.GetCatalogTTL())
	assert.Equal(t, 2*time.Minute, cfg.GetStationLRUTTL())
}
