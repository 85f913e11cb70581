package config

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// CacheConfig holds all cache-related configuration
type CacheConfig struct {
	// Catalog settings
	CatalogTTLMinutes int

	// LRU cache for resolved station records
	StationLRUSize       int
	StationLRUTTLMinutes int

	// Batched id lookups
	BatchGetSize    int
	MaxBatchRetries int
}

const (
	// Default values
	defaultCatalogTTLMinutes    = 15
	defaultStationLRUSize       = 1000
	defaultStationLRUTTLMinutes = 15

	// The store-imposed ceiling on ids per batched lookup. Larger inputs
	// are chunked and merged by the repository.
	defaultBatchGetSize    = 30
	defaultMaxBatchRetries = 3
)

// GetCacheConfig returns the cache configuration from environment variables or defaults
func GetCacheConfig() *CacheConfig {
	config := &CacheConfig{
		CatalogTTLMinutes:    getEnvInt("CACHE_CATALOG_TTL_MINUTES", defaultCatalogTTLMinutes),
		StationLRUSize:       getEnvInt("CACHE_STATION_LRU_SIZE", defaultStationLRUSize),
		StationLRUTTLMinutes: getEnvInt("CACHE_STATION_LRU_TTL_MINUTES", defaultStationLRUTTLMinutes),
		BatchGetSize:         getEnvInt("STORE_BATCH_GET_SIZE", defaultBatchGetSize),
		MaxBatchRetries:      getEnvInt("STORE_MAX_BATCH_RETRIES", defaultMaxBatchRetries),
	}

	log.Debug().
		Int("CatalogTTLMinutes", config.CatalogTTLMinutes).
		Int("StationLRUSize", config.StationLRUSize).
		Int("StationLRUTTLMinutes", config.StationLRUTTLMinutes).
		Int("BatchGetSize", config.BatchGetSize).
		Int("MaxBatchRetries", config.MaxBatchRetries).
		Msg("Cache configuration loaded")

	return config
}

// Helper methods for the CacheConfig struct
func (c *CacheConfig) GetCatalogTTL() time.Duration {
	return time.Duration(c.CatalogTTLMinutes) * time.Minute
}

func (c *CacheConfig) GetStationLRUTTL() time.Duration {
	return time.Duration(c.StationLRUTTLMinutes) * time.Minute
}

// Helper functions to get environment variables with defaults
func getEnvInt(key string, defaultVal int) int {
	if val, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
		log.Warn().Str("key", key).Msg("Invalid integer value in environment variable, using default")
	}
	return defaultVal
}
