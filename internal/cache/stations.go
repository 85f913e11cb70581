package cache

import (
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/chargemap/backend-go/internal/config"
	"github.com/chargemap/backend-go/internal/models"
)

// lruEntry wraps a cached station record with its expiry
type lruEntry struct {
	station   models.Station
	expiresAt time.Time
}

// StationLRU is a TTL'd LRU of station records keyed by id. It backs the
// favorites resolver so repeat lookups of the same stations skip the store.
type StationLRU struct {
	lru    *lru.Cache[string, *lruEntry]
	ttl    time.Duration
	hits   uint64
	misses uint64
}

func NewStationLRU(cacheConfig *config.CacheConfig) (*StationLRU, error) {
	if cacheConfig == nil {
		cacheConfig = config.GetCacheConfig()
	}

	inner, err := lru.New[string, *lruEntry](cacheConfig.StationLRUSize)
	if err != nil {
		return nil, fmt.Errorf("creating LRU cache: %w", err)
	}

	return &StationLRU{
		lru: inner,
		ttl: cacheConfig.GetStationLRUTTL(),
	}, nil
}

// Get returns the cached record for an id, dropping it when expired.
func (c *StationLRU) Get(id string) (*models.Station, bool) {
	if entry, ok := c.lru.Get(id); ok {
		if time.Now().Before(entry.expiresAt) {
			c.hits++
			station := entry.station
			return &station, true
		}
		c.lru.Remove(id)
	}
	c.misses++
	return nil, false
}

func (c *StationLRU) Add(station models.Station) {
	c.lru.Add(station.ID, &lruEntry{
		station:   station,
		expiresAt: time.Now().Add(c.ttl),
	})
}

// Remove evicts one id, used when a station is mutated or deleted.
func (c *StationLRU) Remove(id string) {
	c.lru.Remove(id)
}

// Purge removes all entries
func (c *StationLRU) Purge() {
	c.lru.Purge()
}

// Stats returns hit/miss counters
func (c *StationLRU) Stats() map[string]uint64 {
	return map[string]uint64{
		"hits":   c.hits,
		"misses": c.misses,
	}
}
