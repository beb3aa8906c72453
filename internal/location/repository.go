package location

import (
	"context"

	"khp/internal/pagination"
)

// Repository defines all database operations for locations and their types
type Repository interface {
	List(ctx context.Context, companyID string, p pagination.Params) ([]*Location, int, error)
	Get(ctx context.Context, companyID, id string) (*Location, error)
	Create(ctx context.Context, companyID string, loc *Location) error
	Update(ctx context.Context, companyID string, loc *Location) error
	Delete(ctx context.Context, companyID, id string) error
	// HoldsStock reports whether any ingredient or preparation stock row
	// references the location.
	HoldsStock(ctx context.Context, id string) (bool, error)

	ListTypes(ctx context.Context, companyID string) ([]*LocationType, error)
	GetType(ctx context.Context, companyID, id string) (*LocationType, error)
	CreateType(ctx context.Context, companyID string, lt *LocationType) error
	UpdateType(ctx context.Context, companyID string, lt *LocationType) error
	DeleteType(ctx context.Context, companyID, id string) error
	TypeInUse(ctx context.Context, id string) (bool, error)
}
