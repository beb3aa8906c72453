package loss

import (
	"context"

	"khp/internal/pagination"
)

// Repository defines database operations for losses and the stock rows
// they draw from.
type Repository interface {
	List(ctx context.Context, companyID string, p pagination.Params) ([]*Loss, int, error)
	Insert(ctx context.Context, companyID string, l *Loss) error

	GetEntityStock(ctx context.Context, entityType, entityID, locationID string) (float64, error)
	SetEntityStock(ctx context.Context, entityType, entityID, locationID string, quantity float64) error
}
