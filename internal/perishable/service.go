package perishable

import (
	"context"
	"log"
	"time"

	"khp/internal/events"
	"khp/internal/httpx"
)

type Service struct {
	repo      *Repository
	publisher events.Publisher
}

func NewService(repo *Repository, publisher events.Publisher) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Service{repo: repo, publisher: publisher}
}

type Input struct {
	IngredientID string    `json:"ingredient_id"`
	LocationID   string    `json:"location_id"`
	Quantity     float64   `json:"quantity"`
	ExpirationAt time.Time `json:"expiration_at"`
}

func (s *Service) Create(ctx context.Context, companyID string, in Input) (*Perishable, error) {
	if in.IngredientID == "" {
		return nil, httpx.NewValidationError("ingredient_id", "an ingredient is required")
	}
	if in.LocationID == "" {
		return nil, httpx.NewValidationError("location_id", "a location is required")
	}
	if in.Quantity <= 0 {
		return nil, httpx.NewValidationError("quantity", "quantity must be greater than 0")
	}
	if in.ExpirationAt.IsZero() {
		return nil, httpx.NewValidationError("expiration_at", "an expiration date is required")
	}

	p := &Perishable{
		IngredientID: in.IngredientID,
		LocationID:   in.LocationID,
		Quantity:     in.Quantity,
		ExpirationAt: in.ExpirationAt,
	}
	if err := s.repo.Create(ctx, companyID, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) List(ctx context.Context, companyID string) ([]*Perishable, error) {
	return s.repo.List(ctx, companyID)
}

func (s *Service) MarkRead(ctx context.Context, companyID, id string) (*Perishable, error) {
	return s.repo.MarkRead(ctx, companyID, id)
}

// SweepOnce flags lots past expiration and publishes one event per lot.
func (s *Service) SweepOnce(ctx context.Context) error {
	ids, err := s.repo.SweepExpired(ctx, time.Now().UTC())
	if err != nil {
		return err
	}

	for _, id := range ids {
		s.publisher.Emit(ctx, "stock.perishable.expired", map[string]any{
			"perishable_id": id,
		})
	}

	if len(ids) > 0 {
		log.Printf("EXPIRY_SWEEP flagged=%d", len(ids))
	}
	return nil
}

// RunExpiryWorker sweeps every minute until the context is cancelled.
// Started as a goroutine from main.
func (s *Service) RunExpiryWorker(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.SweepOnce(ctx); err != nil {
				log.Printf("⚠️  Expiry sweep error: %v", err)
			}
		}
	}
}
