package loss

import (
	"context"

	"khp/internal/events"
	"khp/internal/httpx"
	"khp/internal/pagination"
)

type Service struct {
	repo      Repository
	publisher events.Publisher
}

func NewService(repo Repository, publisher events.Publisher) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Service{repo: repo, publisher: publisher}
}

// Input is one loss registration.
type Input struct {
	EntityType string  `json:"entity_type"`
	EntityID   string  `json:"entity_id"`
	LocationID string  `json:"location_id"`
	Quantity   float64 `json:"quantity"`
	Reason     *string `json:"reason"`
}

// Validate applies the loss form rules against the available stock. The
// exceeds-stock message is fixed; clients surface it verbatim in the
// warning panel.
func Validate(in Input, available float64) error {
	if in.EntityType != EntityIngredient && in.EntityType != EntityPreparation {
		return httpx.NewValidationError("entity_type", "entity type must be ingredient or preparation")
	}
	if in.LocationID == "" {
		return httpx.NewValidationError("location_id", "a location is required")
	}
	if in.Quantity <= 0 {
		return httpx.NewValidationError("quantity", "quantity must be greater than 0")
	}
	if in.Quantity > available {
		return httpx.NewValidationError("quantity", "Cannot add loss - exceeds available stock")
	}
	return nil
}

// Remaining is the display quantity after the loss, clamped at zero.
func Remaining(available, requested float64) float64 {
	if requested >= available {
		return 0
	}
	return available - requested
}

// Result reports the recorded loss and the stock left at the location.
type Result struct {
	Loss      *Loss   `json:"loss"`
	Remaining float64 `json:"remaining"`
}

func (s *Service) Register(ctx context.Context, companyID string, in Input) (*Result, error) {
	available, err := s.repo.GetEntityStock(ctx, in.EntityType, in.EntityID, in.LocationID)
	if err != nil {
		return nil, err
	}

	if err := Validate(in, available); err != nil {
		return nil, err
	}

	remaining := Remaining(available, in.Quantity)
	if err := s.repo.SetEntityStock(ctx, in.EntityType, in.EntityID, in.LocationID, remaining); err != nil {
		return nil, err
	}

	l := &Loss{
		EntityType: in.EntityType,
		EntityID:   in.EntityID,
		LocationID: in.LocationID,
		Quantity:   in.Quantity,
		Reason:     in.Reason,
	}
	if err := s.repo.Insert(ctx, companyID, l); err != nil {
		return nil, err
	}

	s.publisher.Emit(ctx, "stock.loss.created", map[string]any{
		"loss_id":     l.ID,
		"entity_type": l.EntityType,
		"entity_id":   l.EntityID,
		"location_id": l.LocationID,
		"quantity":    l.Quantity,
	})

	return &Result{Loss: l, Remaining: remaining}, nil
}

func (s *Service) List(ctx context.Context, companyID string, p pagination.Params) ([]*Loss, int, error) {
	return s.repo.List(ctx, companyID, p)
}
