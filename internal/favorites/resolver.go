package favorites

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/chargemap/backend-go/internal/cache"
	"github.com/chargemap/backend-go/internal/models"
	"github.com/chargemap/backend-go/internal/station"
)

// Resolver turns a favorite id list into full station records. Ids whose
// station no longer exists are dropped from the result, not reported as an
// error; the ledger keeps dangling ids around.
type Resolver struct {
	repo  station.Repository
	cache *cache.StationLRU
}

func NewResolver(repo station.Repository, stationCache *cache.StationLRU) *Resolver {
	return &Resolver{
		repo:  repo,
		cache: stationCache,
	}
}

// Resolve batch-looks-up the given ids, serving repeats from the LRU cache.
// Results come back in input order with duplicates and dangling ids removed.
func (r *Resolver) Resolve(ctx context.Context, ids []string) ([]models.Station, error) {
	resolved := make(map[string]models.Station, len(ids))
	var missing []string

	seen := make(map[string]struct{}, len(ids))
	ordered := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ordered = append(ordered, id)

		if r.cache != nil {
			if cached, ok := r.cache.Get(id); ok {
				resolved[id] = *cached
				continue
			}
		}
		missing = append(missing, id)
	}

	if len(missing) > 0 {
		fetched, err := r.repo.ListByIDs(ctx, missing)
		if err != nil {
			return nil, fmt.Errorf("resolving favorite stations: %w", err)
		}
		for _, s := range fetched {
			resolved[s.ID] = s
			if r.cache != nil {
				r.cache.Add(s)
			}
		}
	}

	stations := make([]models.Station, 0, len(ordered))
	for _, id := range ordered {
		s, ok := resolved[id]
		if !ok {
			// Favorited then deleted; tolerated and filtered out
			log.Debug().Str("station_id", id).Msg("Dropping dangling favorite id")
			continue
		}
		stations = append(stations, s)
	}
	return stations, nil
}
