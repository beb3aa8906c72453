package room

import (
	"context"
	"strings"

	"khp/internal/httpx"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, companyID string) ([]Room, error) {
	return s.repo.List(ctx, companyID)
}

func (s *Service) Get(ctx context.Context, companyID, id string) (*Room, error) {
	return s.repo.Get(ctx, companyID, id)
}

func (s *Service) Create(ctx context.Context, companyID, name, code string) (*Room, error) {
	if err := validateRoom(name, code); err != nil {
		return nil, err
	}
	rm := &Room{Name: strings.TrimSpace(name), Code: strings.ToUpper(strings.TrimSpace(code)), Tables: []Table{}}
	if err := s.repo.Create(ctx, companyID, rm); err != nil {
		return nil, err
	}
	return rm, nil
}

func (s *Service) Update(ctx context.Context, companyID, id, name, code string) (*Room, error) {
	if err := validateRoom(name, code); err != nil {
		return nil, err
	}
	rm := &Room{ID: id, Name: strings.TrimSpace(name), Code: strings.ToUpper(strings.TrimSpace(code))}
	if err := s.repo.Update(ctx, companyID, rm); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, companyID, id)
}

// Delete refuses to drop a room whose tables are referenced by any order,
// historic ones included.
func (s *Service) Delete(ctx context.Context, companyID, id string) error {
	has, err := s.repo.HasOrders(ctx, companyID, id)
	if err != nil {
		return err
	}
	if has {
		return httpx.ErrConflict
	}
	return s.repo.Delete(ctx, companyID, id)
}

func (s *Service) CreateTable(ctx context.Context, companyID, roomID, label string, seats int) (*Table, error) {
	if err := validateTable(label, seats); err != nil {
		return nil, err
	}
	t := &Table{RoomID: roomID, Label: strings.TrimSpace(label), Seats: seats}
	if err := s.repo.CreateTable(ctx, companyID, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) UpdateTable(ctx context.Context, companyID, id, label string, seats int) (*Table, error) {
	if err := validateTable(label, seats); err != nil {
		return nil, err
	}
	t := &Table{ID: id, Label: strings.TrimSpace(label), Seats: seats}
	if err := s.repo.UpdateTable(ctx, companyID, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) DeleteTable(ctx context.Context, companyID, id string) error {
	has, err := s.repo.TableHasOrders(ctx, companyID, id)
	if err != nil {
		return err
	}
	if has {
		return httpx.ErrConflict
	}
	return s.repo.DeleteTable(ctx, companyID, id)
}

func validateRoom(name, code string) error {
	verr := &httpx.ValidationError{Fields: map[string][]string{}}
	if strings.TrimSpace(name) == "" {
		verr.AddField("name", "name is required")
	}
	if strings.TrimSpace(code) == "" {
		verr.AddField("code", "code is required")
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

func validateTable(label string, seats int) error {
	verr := &httpx.ValidationError{Fields: map[string][]string{}}
	if strings.TrimSpace(label) == "" {
		verr.AddField("label", "label is required")
	}
	if seats <= 0 {
		verr.AddField("seats", "seats must be greater than 0")
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}
