package settings

import "context"

// Repository covers the three settings collections: menu categories, menu
// types and quick accesses. All rows are scoped to a company.
type Repository interface {
	ListCategories(ctx context.Context, companyID string) ([]MenuCategory, error)
	GetCategory(ctx context.Context, companyID, id string) (*MenuCategory, error)
	CreateCategory(ctx context.Context, companyID string, c *MenuCategory) error
	UpdateCategory(ctx context.Context, companyID string, c *MenuCategory) error
	DeleteCategory(ctx context.Context, companyID, id string) error
	CategoryInUse(ctx context.Context, companyID, id string) (bool, error)

	ListTypes(ctx context.Context, companyID string) ([]MenuType, error)
	GetType(ctx context.Context, companyID, id string) (*MenuType, error)
	CreateType(ctx context.Context, companyID string, t *MenuType) error
	UpdateType(ctx context.Context, companyID string, t *MenuType) error
	DeleteType(ctx context.Context, companyID, id string) error
	TypeInUse(ctx context.Context, companyID, id string) (bool, error)

	ListQuickAccesses(ctx context.Context, companyID string) ([]QuickAccess, error)
	CreateQuickAccess(ctx context.Context, companyID string, q *QuickAccess) error
	UpdateQuickAccess(ctx context.Context, companyID string, q *QuickAccess) error
	DeleteQuickAccess(ctx context.Context, companyID, id string) error
	ReplaceQuickAccesses(ctx context.Context, companyID string, set []QuickAccess) ([]QuickAccess, error)
}
