package order

import (
	"context"

	"khp/internal/pagination"
)

// Filter narrows order listings. Statuses filters on order status, TableID on
// the assigned table.
type Filter struct {
	Statuses []string
	TableID  string
}

type StepMenuInput struct {
	MenuID      string
	Quantity    int
	ServiceType string
}

type Repository interface {
	List(ctx context.Context, companyID string, f Filter, p pagination.Params) ([]Order, int, error)
	Get(ctx context.Context, companyID, id string) (*Order, error)
	Create(ctx context.Context, companyID string, o *Order, menus []StepMenuInput) error
	AppendStep(ctx context.Context, companyID, orderID string, menus []StepMenuInput) (*Step, error)
	GetStepMenu(ctx context.Context, companyID, id string) (*StepMenu, string, error)
	SetStepMenuStatus(ctx context.Context, companyID, id, status string, served bool) error
	SetOrderStatus(ctx context.Context, companyID, id, status string) error
	ListOpen(ctx context.Context, companyID string) ([]Order, error)
}
