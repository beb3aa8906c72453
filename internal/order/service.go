package order

import (
	"context"
	"strings"

	"khp/internal/events"
	"khp/internal/httpx"
	"khp/internal/pagination"
)

type Service struct {
	repo      Repository
	publisher events.Publisher
}

func NewService(repo Repository, publisher events.Publisher) *Service {
	return &Service{repo: repo, publisher: publisher}
}

func (s *Service) List(ctx context.Context, companyID string, f Filter, p pagination.Params) ([]Order, pagination.Info, error) {
	orders, total, err := s.repo.List(ctx, companyID, f, p)
	if err != nil {
		return nil, pagination.Info{}, err
	}
	if orders == nil {
		orders = []Order{}
	}
	return orders, pagination.NewInfo(p, total), nil
}

func (s *Service) Get(ctx context.Context, companyID, id string) (*Order, error) {
	return s.repo.Get(ctx, companyID, id)
}

func (s *Service) Create(ctx context.Context, companyID string, tableID *string, menus []StepMenuInput) (*Order, error) {
	if err := validateMenus(menus); err != nil {
		return nil, err
	}
	o := &Order{TableID: tableID}
	if err := s.repo.Create(ctx, companyID, o, menus); err != nil {
		return nil, err
	}
	created, err := s.repo.Get(ctx, companyID, o.ID)
	if err != nil {
		return nil, err
	}
	s.publisher.Emit(ctx, "order.created.pending", created)
	return created, nil
}

// AppendStep adds another course to an open order.
func (s *Service) AppendStep(ctx context.Context, companyID, orderID string, menus []StepMenuInput) (*Step, error) {
	if err := validateMenus(menus); err != nil {
		return nil, err
	}
	step, err := s.repo.AppendStep(ctx, companyID, orderID, menus)
	if err != nil {
		return nil, err
	}
	s.publisher.Emit(ctx, "order.step.appended", step)
	return step, nil
}

// AdvanceStepMenu moves a dish one status forward. Skips and regressions are
// rejected before anything is written.
func (s *Service) AdvanceStepMenu(ctx context.Context, companyID, id, next string) (*StepMenu, error) {
	sm, orderID, err := s.repo.GetStepMenu(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if err := ValidateTransition(sm.Status, next); err != nil {
		return nil, err
	}
	if err := s.repo.SetStepMenuStatus(ctx, companyID, id, next, next == StatusServed); err != nil {
		return nil, err
	}
	sm, _, err = s.repo.GetStepMenu(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	s.publisher.Emit(ctx, "order.step_menu."+strings.ToLower(next), map[string]any{
		"order_id":  orderID,
		"step_menu": sm,
	})
	return sm, nil
}

// MarkServed closes the service phase of an order. Every dish must already be
// served.
func (s *Service) MarkServed(ctx context.Context, companyID, id string) (*Order, error) {
	o, err := s.repo.Get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if o.Status != OrderPending {
		return nil, httpx.ErrConflict
	}
	for _, step := range o.Steps {
		for _, sm := range step.Menus {
			if sm.Status != StatusServed {
				return nil, httpx.NewValidationError("status", "all dishes must be served first")
			}
		}
	}
	if err := s.repo.SetOrderStatus(ctx, companyID, id, OrderServed); err != nil {
		return nil, err
	}
	o.Status = OrderServed
	s.publisher.Emit(ctx, "order.closed.served", o)
	return o, nil
}

// MarkPayed settles a served order.
func (s *Service) MarkPayed(ctx context.Context, companyID, id string) (*Order, error) {
	o, err := s.repo.Get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if o.Status != OrderServed {
		return nil, httpx.ErrConflict
	}
	if err := s.repo.SetOrderStatus(ctx, companyID, id, OrderPayed); err != nil {
		return nil, err
	}
	o.Status = OrderPayed
	s.publisher.Emit(ctx, "order.closed.payed", o)
	return o, nil
}

// Queue returns the kitchen display state for all open orders.
func (s *Service) Queue(ctx context.Context, companyID string) (QueueSummary, error) {
	orders, err := s.repo.ListOpen(ctx, companyID)
	if err != nil {
		return QueueSummary{}, err
	}
	return BuildQueue(orders), nil
}

func validateMenus(menus []StepMenuInput) error {
	if len(menus) == 0 {
		return httpx.NewValidationError("menus", "at least one menu is required")
	}
	verr := &httpx.ValidationError{Fields: map[string][]string{}}
	for _, m := range menus {
		if m.MenuID == "" {
			verr.AddField("menus", "menu_id is required")
		}
		if m.Quantity <= 0 {
			verr.AddField("menus", "quantity must be greater than 0")
		}
		if m.ServiceType != ServicePrep && m.ServiceType != ServiceDirect {
			verr.AddField("menus", "service_type must be PREP or DIRECT")
		}
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}
