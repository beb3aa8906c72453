package menu

import (
	"context"

	"khp/internal/pagination"
)

// Filter narrows menu lists beyond the common search param.
type Filter struct {
	CategoryIDs []string
	TypeIDs     []string
}

// Repository defines all database operations for menus
type Repository interface {
	List(ctx context.Context, companyID string, p pagination.Params, f Filter) ([]*Menu, int, error)
	ListPublic(ctx context.Context, publicMenuKey string) ([]*Menu, error)
	Get(ctx context.Context, companyID, id string) (*Menu, error)
	Create(ctx context.Context, companyID string, m *Menu) error
	Update(ctx context.Context, companyID string, m *Menu) error
	UpdateImage(ctx context.Context, companyID, id, imageURL string) error
	Delete(ctx context.Context, companyID, id string) error
	InOpenOrder(ctx context.Context, id string) (bool, error)
}
