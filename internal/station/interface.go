package station

import (
	"context"

	"github.com/chargemap/backend-go/internal/models"
)

// Repository defines CRUD access to the station collection
type Repository interface {
	ListAll(ctx context.Context) ([]models.Station, error)
	ListByIDs(ctx context.Context, ids []string) ([]models.Station, error)
	Get(ctx context.Context, id string) (*models.Station, error)
	Create(ctx context.Context, draft models.Station) (*models.Station, error)
	Update(ctx context.Context, id string, patch Patch) error
	Delete(ctx context.Context, id string) error
}

// Patch is a partial update of a station document. Nil fields are left
// untouched. The station id is identity, not content, and is deliberately
// not representable here.
type Patch struct {
	Name         *string
	Address      *string
	Latitude     *float64
	Longitude    *float64
	Type         *models.StationType
	Ports        []models.Port
	Operator     *string
	OpeningHours *string
}

// IsEmpty reports whether the patch carries no changes at all.
func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Address == nil && p.Latitude == nil && p.Longitude == nil &&
		p.Type == nil && p.Ports == nil && p.Operator == nil && p.OpeningHours == nil
}
