package importer

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/chargemap/backend-go/internal/models"
	"github.com/chargemap/backend-go/internal/station"
)

// Result aggregates a bulk import run. Success means at least one record
// made it in, even if others failed.
type Result struct {
	Success       bool     `json:"success"`
	ImportedCount int      `json:"importedCount"`
	TotalCount    int      `json:"totalCount"`
	Errors        []string `json:"errors,omitempty"`
}

// Importer copies a seed station list into the store, one independent
// create per record. The operation is deliberately NOT idempotent:
// re-running against a populated store creates duplicates. That is the
// operator's responsibility, not something the importer deduplicates.
type Importer struct {
	repo station.Repository
}

func New(repo station.Repository) *Importer {
	return &Importer{repo: repo}
}

// Run imports every seed record. Pre-existing ids are stripped so the store
// assigns fresh ones; a single record's failure does not abort the batch.
func (i *Importer) Run(ctx context.Context, seed []models.Station) Result {
	result := Result{TotalCount: len(seed)}

	for _, draft := range seed {
		draft.ID = ""
		created, err := i.repo.Create(ctx, draft)
		if err != nil {
			message := fmt.Sprintf("station %q: %v", draft.Name, err)
			result.Errors = append(result.Errors, message)
			log.Error().Err(err).Str("name", draft.Name).Msg("Seed record failed")
			continue
		}
		result.ImportedCount++
		log.Debug().Str("station_id", created.ID).Str("name", created.Name).Msg("Imported seed record")
	}

	result.Success = result.ImportedCount > 0
	log.Info().
		Int("imported", result.ImportedCount).
		Int("total", result.TotalCount).
		Int("failed", len(result.Errors)).
		Msg("Bulk import finished")
	return result
}

// RunFromSource loads the seed list and imports it. A load failure aborts
// before anything is written.
func (i *Importer) RunFromSource(ctx context.Context, source SeedSource) (Result, error) {
	seed, err := source.Load(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("loading seed: %w", err)
	}
	return i.Run(ctx, seed), nil
}
