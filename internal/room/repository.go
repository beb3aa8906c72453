package room

import "context"

type Repository interface {
	List(ctx context.Context, companyID string) ([]Room, error)
	Get(ctx context.Context, companyID, id string) (*Room, error)
	Create(ctx context.Context, companyID string, r *Room) error
	Update(ctx context.Context, companyID string, r *Room) error
	Delete(ctx context.Context, companyID, id string) error
	HasOrders(ctx context.Context, companyID, roomID string) (bool, error)

	CreateTable(ctx context.Context, companyID string, t *Table) error
	UpdateTable(ctx context.Context, companyID string, t *Table) error
	DeleteTable(ctx context.Context, companyID, id string) error
	TableHasOrders(ctx context.Context, companyID, tableID string) (bool, error)
}
