package preparation

import (
	"context"
	"fmt"
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
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Service{repo: repo, publisher: publisher}
}

// Input carries the writable preparation fields.
type Input struct {
	Name     string   `json:"name"`
	Unit     string   `json:"unit"`
	Entities []Entity `json:"entities"`
}

func (in Input) validate() error {
	ve := &httpx.ValidationError{}
	if strings.TrimSpace(in.Name) == "" {
		ve.AddField("name", "name is required")
	}
	if strings.TrimSpace(in.Unit) == "" {
		ve.AddField("unit", "unit is required")
	}
	for _, e := range in.Entities {
		if e.EntityType != EntityIngredient && e.EntityType != EntityPreparation {
			ve.AddField("entities", "entity type must be ingredient or preparation")
			break
		}
		if e.Quantity <= 0 {
			ve.AddField("entities", "entity quantity must be greater than 0")
			break
		}
	}
	if len(ve.Fields) > 0 {
		return ve
	}
	return nil
}

func (s *Service) List(ctx context.Context, companyID string, p pagination.Params) ([]*Preparation, int, error) {
	return s.repo.List(ctx, companyID, p)
}

func (s *Service) Get(ctx context.Context, companyID, id string) (*Preparation, error) {
	return s.repo.Get(ctx, companyID, id)
}

func (s *Service) Create(ctx context.Context, companyID string, in Input) (*Preparation, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	prep := &Preparation{
		Name:     in.Name,
		Unit:     in.Unit,
		Entities: in.Entities,
	}

	if err := s.repo.Create(ctx, companyID, prep); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, companyID, prep.ID)
}

func (s *Service) Update(ctx context.Context, companyID, id string, in Input) (*Preparation, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	prep := &Preparation{
		ID:       id,
		Name:     in.Name,
		Unit:     in.Unit,
		Entities: in.Entities,
	}

	if err := s.repo.Update(ctx, companyID, prep); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, companyID, id)
}

func (s *Service) Delete(ctx context.Context, companyID, id string) error {
	if _, err := s.repo.Get(ctx, companyID, id); err != nil {
		return err
	}

	inUse, err := s.repo.InUse(ctx, id)
	if err != nil {
		return err
	}
	if inUse {
		return fmt.Errorf("%w: preparation is still referenced elsewhere", httpx.ErrConflict)
	}

	return s.repo.Delete(ctx, companyID, id)
}

// --------------------------------------------------
// STOCK OPERATIONS
// --------------------------------------------------

// QuantityResult reports the outcome of a stock mutation, including the
// display remainder at the source location.
type QuantityResult struct {
	Preparation *Preparation `json:"preparation"`
	Remaining   float64      `json:"remaining"`
}

func (s *Service) AddQuantity(ctx context.Context, companyID, id, locationID string, quantity float64) (*QuantityResult, error) {
	if quantity <= 0 {
		return nil, httpx.NewValidationError("quantity", "quantity must be greater than 0")
	}

	if _, err := s.repo.Get(ctx, companyID, id); err != nil {
		return nil, err
	}

	current, err := s.repo.GetStock(ctx, id, locationID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SetStock(ctx, id, locationID, current+quantity); err != nil {
		return nil, err
	}

	s.publisher.Emit(ctx, "stock.preparation.added", map[string]any{
		"preparation_id": id,
		"location_id":    locationID,
		"quantity":       quantity,
	})

	prep, err := s.repo.Get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return &QuantityResult{Preparation: prep, Remaining: current + quantity}, nil
}

func (s *Service) RemoveQuantity(ctx context.Context, companyID, id, locationID string, quantity float64) (*QuantityResult, error) {
	if _, err := s.repo.Get(ctx, companyID, id); err != nil {
		return nil, err
	}

	available, err := s.repo.GetStock(ctx, id, locationID)
	if err != nil {
		return nil, err
	}

	if err := ValidateRemoval(quantity, available); err != nil {
		return nil, err
	}

	remaining := Remaining(available, quantity)
	if err := s.repo.SetStock(ctx, id, locationID, remaining); err != nil {
		return nil, err
	}

	s.publisher.Emit(ctx, "stock.preparation.removed", map[string]any{
		"preparation_id": id,
		"location_id":    locationID,
		"quantity":       quantity,
	})

	prep, err := s.repo.Get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return &QuantityResult{Preparation: prep, Remaining: remaining}, nil
}

func (s *Service) MoveQuantity(ctx context.Context, companyID, id, sourceID, destinationID string, quantity float64) (*QuantityResult, error) {
	if _, err := s.repo.Get(ctx, companyID, id); err != nil {
		return nil, err
	}

	available, err := s.repo.GetStock(ctx, id, sourceID)
	if err != nil {
		return nil, err
	}

	if err := ValidateMove(quantity, available, sourceID, destinationID); err != nil {
		return nil, err
	}

	destCurrent, err := s.repo.GetStock(ctx, id, destinationID)
	if err != nil {
		return nil, err
	}

	remaining := Remaining(available, quantity)
	if err := s.repo.SetStock(ctx, id, sourceID, remaining); err != nil {
		return nil, err
	}
	if err := s.repo.SetStock(ctx, id, destinationID, destCurrent+quantity); err != nil {
		return nil, err
	}

	s.publisher.Emit(ctx, "stock.preparation.moved", map[string]any{
		"preparation_id": id,
		"from":           sourceID,
		"to":             destinationID,
		"quantity":       quantity,
	})

	prep, err := s.repo.Get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return &QuantityResult{Preparation: prep, Remaining: remaining}, nil
}

// MoveCandidates returns the destination picker list for a preparation.
func (s *Service) MoveCandidates(ctx context.Context, companyID, id string) ([]LocationStock, error) {
	prep, err := s.repo.Get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	all, err := s.repo.ListLocations(ctx, companyID)
	if err != nil {
		return nil, err
	}

	return DestinationCandidates(prep.Stocks, all), nil
}
