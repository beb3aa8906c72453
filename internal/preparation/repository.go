package preparation

import (
	"context"

	"khp/internal/pagination"
)

// Repository defines all database operations for preparations
type Repository interface {
	List(ctx context.Context, companyID string, p pagination.Params) ([]*Preparation, int, error)
	Get(ctx context.Context, companyID, id string) (*Preparation, error)
	Create(ctx context.Context, companyID string, prep *Preparation) error
	Update(ctx context.Context, companyID string, prep *Preparation) error
	Delete(ctx context.Context, companyID, id string) error
	InUse(ctx context.Context, id string) (bool, error)

	GetStock(ctx context.Context, preparationID, locationID string) (float64, error)
	// SetStock upserts the per-location quantity row.
	SetStock(ctx context.Context, preparationID, locationID string, quantity float64) error
	ListLocations(ctx context.Context, companyID string) ([]LocationRef, error)
}
