package loss

import (
	"context"
	"errors"
	"testing"

	"khp/internal/httpx"
	"khp/internal/pagination"
)

type fakeRepository struct {
	stock  map[string]float64
	losses []*Loss
}

func stockKey(entityType, entityID, locationID string) string {
	return entityType + "/" + entityID + "/" + locationID
}

func (f *fakeRepository) List(ctx context.Context, companyID string, p pagination.Params) ([]*Loss, int, error) {
	return f.losses, len(f.losses), nil
}

func (f *fakeRepository) Insert(ctx context.Context, companyID string, l *Loss) error {
	l.ID = "loss-1"
	f.losses = append(f.losses, l)
	return nil
}

func (f *fakeRepository) GetEntityStock(ctx context.Context, entityType, entityID, locationID string) (float64, error) {
	return f.stock[stockKey(entityType, entityID, locationID)], nil
}

func (f *fakeRepository) SetEntityStock(ctx context.Context, entityType, entityID, locationID string, quantity float64) error {
	f.stock[stockKey(entityType, entityID, locationID)] = quantity
	return nil
}

func TestValidateRejectsZeroQuantity(t *testing.T) {
	in := Input{EntityType: EntityIngredient, EntityID: "i1", LocationID: "l1", Quantity: 0}

	if err := Validate(in, 10); err == nil {
		t.Fatalf("expected error for zero quantity")
	}
}

func TestValidateRejectsMissingLocation(t *testing.T) {
	in := Input{EntityType: EntityIngredient, EntityID: "i1", Quantity: 2}

	if err := Validate(in, 10); err == nil {
		t.Fatalf("expected error for missing location")
	}
}

func TestValidateRejectsLossExceedingStock(t *testing.T) {
	in := Input{EntityType: EntityIngredient, EntityID: "i1", LocationID: "l1", Quantity: 5}

	err := Validate(in, 3)
	if err == nil {
		t.Fatalf("expected error when quantity exceeds stock")
	}

	var ve *httpx.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %T", err)
	}
	if ve.Error() != "Cannot add loss - exceeds available stock" {
		t.Errorf("unexpected message: %q", ve.Error())
	}
}

func TestValidateAcceptsLossEqualToStock(t *testing.T) {
	in := Input{EntityType: EntityPreparation, EntityID: "p1", LocationID: "l1", Quantity: 3}

	if err := Validate(in, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRemainingClampsAtZero(t *testing.T) {
	if got := Remaining(3, 3); got != 0 {
		t.Errorf("expected 0, got %v", got)
	}
	if got := Remaining(10, 4); got != 6 {
		t.Errorf("expected 6, got %v", got)
	}
}

func TestRegisterDecrementsStockAndRecordsLoss(t *testing.T) {
	repo := &fakeRepository{stock: map[string]float64{
		stockKey(EntityIngredient, "i1", "l1"): 10,
	}}
	service := NewService(repo, nil)

	result, err := service.Register(context.Background(), "c1", Input{
		EntityType: EntityIngredient,
		EntityID:   "i1",
		LocationID: "l1",
		Quantity:   4,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Remaining != 6 {
		t.Errorf("expected remaining 6, got %v", result.Remaining)
	}
	if got := repo.stock[stockKey(EntityIngredient, "i1", "l1")]; got != 6 {
		t.Errorf("expected stock 6, got %v", got)
	}
	if len(repo.losses) != 1 {
		t.Fatalf("expected 1 loss recorded, got %d", len(repo.losses))
	}
}

func TestRegisterRefusesOversizedLoss(t *testing.T) {
	repo := &fakeRepository{stock: map[string]float64{
		stockKey(EntityIngredient, "i1", "l1"): 3,
	}}
	service := NewService(repo, nil)

	_, err := service.Register(context.Background(), "c1", Input{
		EntityType: EntityIngredient,
		EntityID:   "i1",
		LocationID: "l1",
		Quantity:   5,
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	if len(repo.losses) != 0 {
		t.Errorf("loss should not be recorded on validation failure")
	}
	if got := repo.stock[stockKey(EntityIngredient, "i1", "l1")]; got != 3 {
		t.Errorf("stock should be untouched, got %v", got)
	}
}
