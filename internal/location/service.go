package location

import (
	"context"
	"fmt"
	"strings"

	"khp/internal/httpx"
	"khp/internal/pagination"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// --------------------------------------------------
// LOCATIONS
// --------------------------------------------------

func (s *Service) List(ctx context.Context, companyID string, p pagination.Params) ([]*Location, int, error) {
	return s.repo.List(ctx, companyID, p)
}

func (s *Service) Create(ctx context.Context, companyID, name string, typeID *string) (*Location, error) {
	if strings.TrimSpace(name) == "" {
		return nil, httpx.NewValidationError("name", "name is required")
	}

	loc := &Location{Name: name, LocationTypeID: typeID}
	if err := s.repo.Create(ctx, companyID, loc); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, companyID, loc.ID)
}

func (s *Service) Update(ctx context.Context, companyID, id, name string, typeID *string) (*Location, error) {
	if strings.TrimSpace(name) == "" {
		return nil, httpx.NewValidationError("name", "name is required")
	}

	loc := &Location{ID: id, Name: name, LocationTypeID: typeID}
	if err := s.repo.Update(ctx, companyID, loc); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, companyID, id)
}

// Delete refuses to remove a location that still holds stock.
func (s *Service) Delete(ctx context.Context, companyID, id string) error {
	if _, err := s.repo.Get(ctx, companyID, id); err != nil {
		return err
	}

	holds, err := s.repo.HoldsStock(ctx, id)
	if err != nil {
		return err
	}
	if holds {
		return fmt.Errorf("%w: location still holds stock", httpx.ErrConflict)
	}

	return s.repo.Delete(ctx, companyID, id)
}

// --------------------------------------------------
// LOCATION TYPES
// --------------------------------------------------

// defaultTypeNames ship with every new company.
var defaultTypeNames = []string{"Fridge", "Freezer", "Pantry"}

// SeedDefaults creates the protected default location types for a freshly
// created company.
func (s *Service) SeedDefaults(ctx context.Context, companyID string) error {
	for _, name := range defaultTypeNames {
		lt := &LocationType{Name: name, IsDefault: true}
		if err := s.repo.CreateType(ctx, companyID, lt); err != nil {
			return err
		}
	}
	return nil
}

// ListTypes marks each type with CanDelete so clients never offer the
// delete control for a default type.
func (s *Service) ListTypes(ctx context.Context, companyID string) ([]*LocationType, error) {
	types, err := s.repo.ListTypes(ctx, companyID)
	if err != nil {
		return nil, err
	}

	for _, lt := range types {
		lt.CanDelete = !lt.IsDefault
	}
	return types, nil
}

func (s *Service) CreateType(ctx context.Context, companyID, name string) (*LocationType, error) {
	if strings.TrimSpace(name) == "" {
		return nil, httpx.NewValidationError("name", "name is required")
	}

	lt := &LocationType{Name: name}
	if err := s.repo.CreateType(ctx, companyID, lt); err != nil {
		return nil, err
	}
	lt.CanDelete = true
	return lt, nil
}

func (s *Service) UpdateType(ctx context.Context, companyID, id, name string) (*LocationType, error) {
	if strings.TrimSpace(name) == "" {
		return nil, httpx.NewValidationError("name", "name is required")
	}

	lt := &LocationType{ID: id, Name: name}
	if err := s.repo.UpdateType(ctx, companyID, lt); err != nil {
		return nil, err
	}

	updated, err := s.repo.GetType(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	updated.CanDelete = !updated.IsDefault
	return updated, nil
}

// DeleteType enforces the protection order: default types are rejected
// outright, referenced types conflict.
func (s *Service) DeleteType(ctx context.Context, companyID, id string) error {
	lt, err := s.repo.GetType(ctx, companyID, id)
	if err != nil {
		return err
	}

	if lt.IsDefault {
		return httpx.NewValidationError("location_type", "default location types cannot be deleted")
	}

	inUse, err := s.repo.TypeInUse(ctx, id)
	if err != nil {
		return err
	}
	if inUse {
		return fmt.Errorf("%w: location type is still referenced elsewhere", httpx.ErrConflict)
	}

	return s.repo.DeleteType(ctx, companyID, id)
}
