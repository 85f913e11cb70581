package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/chargemap/backend-go/internal/config"
	"github.com/chargemap/backend-go/internal/models"
	"github.com/chargemap/backend-go/internal/station"
)

type State string

const (
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateFailed  State = "failed"
)

// TypeFilter narrows the displayed list to one station type. TypeFilterAll
// passes everything through.
type TypeFilter string

const TypeFilterAll TypeFilter = "all"

// Catalog holds the full in-memory station list plus the derived displayed
// subset. The list either updates fully on a successful fetch or is reset
// to empty on a failed one, never a mix. Mutating callers invalidate the
// catalog so the next read re-fetches.
type Catalog struct {
	repo station.Repository
	ttl  time.Duration

	mu         sync.RWMutex
	state      State
	stations   []models.Station
	lastLoaded time.Time
	searchTerm string
	typeFilter TypeFilter
	selectedID string
}

func New(repo station.Repository, cacheConfig *config.CacheConfig) *Catalog {
	if cacheConfig == nil {
		cacheConfig = config.GetCacheConfig()
	}
	return &Catalog{
		repo:       repo,
		ttl:        cacheConfig.GetCatalogTTL(),
		state:      StateLoading,
		typeFilter: TypeFilterAll,
	}
}

// Refresh fetches the full station list. On failure the catalog empties
// and moves to Failed; the previous list is not partially kept.
func (c *Catalog) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.state = StateLoading
	c.mu.Unlock()

	stations, err := c.repo.ListAll(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state = StateFailed
		c.stations = nil
		c.lastLoaded = time.Time{}
		log.Error().Err(err).Msg("Catalog refresh failed")
		return fmt.Errorf("refreshing catalog: %w", err)
	}

	c.state = StateReady
	c.stations = stations
	c.lastLoaded = time.Now()
	log.Debug().Int("station_count", len(stations)).Msg("Catalog refreshed")
	return nil
}

// Invalidate marks the held list stale so the next read re-fetches. Called
// after every create/update/delete.
func (c *Catalog) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastLoaded = time.Time{}
}

func (c *Catalog) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Stations returns the full catalog, refreshing first if the held list is
// stale or was invalidated.
func (c *Catalog) Stations(ctx context.Context) ([]models.Station, error) {
	c.mu.RLock()
	fresh := c.state == StateReady && time.Since(c.lastLoaded) < c.ttl
	stations := c.stations
	c.mu.RUnlock()

	if !fresh {
		if err := c.Refresh(ctx); err != nil {
			return nil, err
		}
		c.mu.RLock()
		stations = c.stations
		c.mu.RUnlock()
	}

	out := make([]models.Station, len(stations))
	copy(out, stations)
	return out, nil
}

func (c *Catalog) SetSearchTerm(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.searchTerm = term
}

func (c *Catalog) SetTypeFilter(filter TypeFilter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.typeFilter = filter
}

// Displayed returns the filtered projection of the catalog: the text and
// type filters recompute synchronously over the in-memory list and are
// ANDed together.
func (c *Catalog) Displayed(ctx context.Context) ([]models.Station, error) {
	stations, err := c.Stations(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.RLock()
	term := c.searchTerm
	filter := c.typeFilter
	c.mu.RUnlock()

	return Filter(stations, term, filter), nil
}

// Select marks a station as selected. Selection is independent of the
// filtering state and does not mutate the catalog.
func (c *Catalog) Select(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selectedID = id
}

func (c *Catalog) SelectedID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.selectedID
}

// ClearSelectionIf drops the selection when it references the given id,
// e.g. after that station was deleted.
func (c *Catalog) ClearSelectionIf(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selectedID == id {
		c.selectedID = ""
	}
}

// Filter is the pure projection underneath Displayed: a case-insensitive
// substring match of term against name and address, ANDed with an exact
// type match. An empty term and TypeFilterAll are both identity.
func Filter(stations []models.Station, term string, filter TypeFilter) []models.Station {
	needle := strings.ToLower(strings.TrimSpace(term))

	matched := make([]models.Station, 0, len(stations))
	for _, s := range stations {
		if needle != "" && !matchesTerm(s, needle) {
			continue
		}
		if filter != TypeFilterAll && filter != "" && s.Type != models.StationType(filter) {
			continue
		}
		matched = append(matched, s)
	}
	return matched
}

func matchesTerm(s models.Station, needle string) bool {
	if strings.Contains(strings.ToLower(s.Name), needle) {
		return true
	}
	if s.Address != nil && strings.Contains(strings.ToLower(*s.Address), needle) {
		return true
	}
	return false
}
