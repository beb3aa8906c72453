package order

import (
	"context"
	"errors"
	"testing"

	"khp/internal/httpx"
	"khp/internal/pagination"
)

type fakeRepository struct {
	stepMenus map[string]*StepMenu
	orders    map[string]*Order
}

func (f *fakeRepository) List(ctx context.Context, companyID string, fl Filter, p pagination.Params) ([]Order, int, error) {
	return nil, 0, nil
}
func (f *fakeRepository) Get(ctx context.Context, companyID, id string) (*Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	return o, nil
}
func (f *fakeRepository) Create(ctx context.Context, companyID string, o *Order, menus []StepMenuInput) error {
	return nil
}
func (f *fakeRepository) AppendStep(ctx context.Context, companyID, orderID string, menus []StepMenuInput) (*Step, error) {
	return nil, nil
}
func (f *fakeRepository) GetStepMenu(ctx context.Context, companyID, id string) (*StepMenu, string, error) {
	sm, ok := f.stepMenus[id]
	if !ok {
		return nil, "", httpx.ErrNotFound
	}
	return sm, "order-1", nil
}
func (f *fakeRepository) SetStepMenuStatus(ctx context.Context, companyID, id, status string, served bool) error {
	f.stepMenus[id].Status = status
	return nil
}
func (f *fakeRepository) SetOrderStatus(ctx context.Context, companyID, id, status string) error {
	f.orders[id].Status = status
	return nil
}
func (f *fakeRepository) ListOpen(ctx context.Context, companyID string) ([]Order, error) {
	return nil, nil
}

type recordingPublisher struct {
	keys []string
}

func (r *recordingPublisher) Emit(ctx context.Context, key string, payload any) {
	r.keys = append(r.keys, key)
}

func TestAdvanceStepMenuOneStepForward(t *testing.T) {
	repo := &fakeRepository{stepMenus: map[string]*StepMenu{
		"sm1": {ID: "sm1", Status: StatusPending, ServiceType: ServicePrep},
	}}
	pub := &recordingPublisher{}
	service := NewService(repo, pub)

	sm, err := service.AdvanceStepMenu(context.Background(), "c1", "sm1", StatusInPrep)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sm.Status != StatusInPrep {
		t.Errorf("expected IN_PREP, got %s", sm.Status)
	}
	if len(pub.keys) != 1 || pub.keys[0] != "order.step_menu.in_prep" {
		t.Errorf("unexpected events: %v", pub.keys)
	}
}

func TestAdvanceStepMenuRejectsSkip(t *testing.T) {
	repo := &fakeRepository{stepMenus: map[string]*StepMenu{
		"sm1": {ID: "sm1", Status: StatusPending},
	}}
	pub := &recordingPublisher{}
	service := NewService(repo, pub)

	_, err := service.AdvanceStepMenu(context.Background(), "c1", "sm1", StatusReady)
	if err == nil {
		t.Fatalf("expected error for skipped step")
	}
	if repo.stepMenus["sm1"].Status != StatusPending {
		t.Errorf("status must not change on rejected transition")
	}
	if len(pub.keys) != 0 {
		t.Errorf("no event should fire on rejection, got %v", pub.keys)
	}
}

func TestAdvanceStepMenuRejectsRegression(t *testing.T) {
	repo := &fakeRepository{stepMenus: map[string]*StepMenu{
		"sm1": {ID: "sm1", Status: StatusReady},
	}}
	service := NewService(repo, &recordingPublisher{})

	if _, err := service.AdvanceStepMenu(context.Background(), "c1", "sm1", StatusInPrep); err == nil {
		t.Fatalf("expected error for backwards transition")
	}
}

func TestMarkServedRequiresAllDishesServed(t *testing.T) {
	repo := &fakeRepository{orders: map[string]*Order{
		"o1": {
			ID:     "o1",
			Status: OrderPending,
			Steps: []Step{{Menus: []StepMenu{
				{ID: "sm1", Status: StatusServed},
				{ID: "sm2", Status: StatusReady},
			}}},
		},
	}}
	service := NewService(repo, &recordingPublisher{})

	_, err := service.MarkServed(context.Background(), "c1", "o1")
	if err == nil {
		t.Fatalf("expected error while a dish is unserved")
	}
	if repo.orders["o1"].Status != OrderPending {
		t.Errorf("order status must not change")
	}
}

func TestMarkPayedRequiresServedOrder(t *testing.T) {
	repo := &fakeRepository{orders: map[string]*Order{
		"o1": {ID: "o1", Status: OrderPending},
	}}
	service := NewService(repo, &recordingPublisher{})

	_, err := service.MarkPayed(context.Background(), "c1", "o1")
	if !errors.Is(err, httpx.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestCreateRejectsEmptyMenus(t *testing.T) {
	service := NewService(&fakeRepository{}, &recordingPublisher{})

	_, err := service.Create(context.Background(), "c1", nil, nil)
	if err == nil {
		t.Fatalf("expected error for empty menus")
	}
}

func TestCreateRejectsBadServiceType(t *testing.T) {
	service := NewService(&fakeRepository{}, &recordingPublisher{})

	_, err := service.Create(context.Background(), "c1", nil, []StepMenuInput{
		{MenuID: "m1", Quantity: 1, ServiceType: "TAKEAWAY"},
	})
	if err == nil {
		t.Fatalf("expected error for unknown service type")
	}
}
