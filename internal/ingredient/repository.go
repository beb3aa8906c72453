package ingredient

import (
	"context"

	"khp/internal/pagination"
)

// Filter narrows ingredient lists beyond the common search param.
type Filter struct {
	CategoryIDs []string
}

// Repository defines all database operations for ingredients
type Repository interface {
	List(ctx context.Context, companyID string, p pagination.Params, f Filter) ([]*Ingredient, int, error)
	Get(ctx context.Context, companyID, id string) (*Ingredient, error)
	Create(ctx context.Context, companyID string, ing *Ingredient) error
	Update(ctx context.Context, companyID string, ing *Ingredient) error
	UpdateImage(ctx context.Context, companyID, id, imageURL string) error
	Delete(ctx context.Context, companyID, id string) error
	// InUse reports whether the ingredient is referenced by a preparation
	// or a menu item.
	InUse(ctx context.Context, id string) (bool, error)

	ListCategories(ctx context.Context, companyID string) ([]*Category, error)
	CreateCategory(ctx context.Context, companyID string, cat *Category) error

	// SetStock upserts the per-location quantity row.
	SetStock(ctx context.Context, ingredientID, locationID string, quantity float64) error
	GetStock(ctx context.Context, ingredientID, locationID string) (float64, error)
	StockSummary(ctx context.Context, companyID string) ([]*StockSummary, error)
}
