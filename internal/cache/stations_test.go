package cache

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chargemap/backend-go/internal/config"
	"github.com/chargemap/backend-go/internal/models"
)

func newTestLRU(t *testing.T, size, ttlMinutes int) *StationLRU {
	t.Helper()
	c, err := NewStationLRU(&config.CacheConfig{
		StationLRUSize:       size,
		StationLRUTTLMinutes: ttlMinutes,
	})
	require.NoError(t, err)
	return c
}

func testStation(id string) models.Station {
	return models.Station{ID: id, Name: "Station " + id, Type: models.StationTypeDC}
}

func TestAddAndGet(t *testing.T) {
	c := newTestLRU(t, 10, 15)

	c.Add(testStation("station-1"))

	got, ok := c.Get("station-1")
	require.True(t, ok)
	assert.Equal(t, "station-1", got.ID)

	_, ok = c.Get("station-2")
	assert.False(t, ok)
}

func TestGetReturnsCopy(t *testing.T) {
	c := newTestLRU(t, 10, 15)
	c.Add(testStation("station-1"))

	first, ok := c.Get("station-1")
	require.True(t, ok)
	first.Name = "mutated"

	second, ok := c.Get("station-1")
	require.True(t, ok)
	assert.Equal(t, "Station station-1", second.Name)
}

func TestExpiredEntryIsDropped(t *testing.T) {
	// Zero TTL means every entry is already expired on read
	c := newTestLRU(t, 10, 0)
	c.Add(testStation("station-1"))

	_, ok := c.Get("station-1")
	assert.False(t, ok)
}

func TestEvictionAtCapacity(t *testing.T) {
	c := newTestLRU(t, 2, 15)
	for i := 1; i <= 3; i++ {
		c.Add(testStation(fmt.Sprintf("station-%d", i)))
	}

	_, ok := c.Get("station-1")
	assert.False(t, ok, "oldest entry is evicted at capacity")
	_, ok = c.Get("station-3")
	assert.True(t, ok)
}

func TestRemoveAndPurge(t *testing.T) {
	c := newTestLRU(t, 10, 15)
	c.Add(testStation("station-1"))
	c.Add(testStation("station-2"))

	c.Remove("station-1")
	_, ok := c.Get("station-1")
	assert.False(t, ok)
	_, ok = c.Get("station-2")
	assert.True(t, ok)

	c.Purge()
	_, ok = c.Get("station-2")
	assert.False(t, ok)
}

func TestStats(t *testing.T) {
	c := newTestLRU(t, 10, 15)
	c.Add(testStation("station-1"))

	c.Get("station-1")
	c.Get("station-1")
	c.Get("missing")

	stats := c.Stats()
	assert.Equal(t, uint64(2), stats["hits"])
	assert.Equal(t, uint64(1), stats["misses"])
}
