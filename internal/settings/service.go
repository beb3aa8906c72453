package settings

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

// --- menu categories -------------------------------------------------------

func (s *Service) ListCategories(ctx context.Context, companyID string) ([]MenuCategory, error) {
	cats, err := s.repo.ListCategories(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return NormalizeCategories(cats), nil
}

func (s *Service) CreateCategory(ctx context.Context, companyID, name string) (*MenuCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, httpx.NewValidationError("name", "name is required")
	}
	existing, err := s.repo.ListCategories(ctx, companyID)
	if err != nil {
		return nil, err
	}
	c := &MenuCategory{Name: name, Position: len(existing)}
	if err := s.repo.CreateCategory(ctx, companyID, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) UpdateCategory(ctx context.Context, companyID string, c MenuCategory) (*MenuCategory, error) {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return nil, httpx.NewValidationError("name", "name is required")
	}
	if err := s.repo.UpdateCategory(ctx, companyID, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Service) DeleteCategory(ctx context.Context, companyID, id string) error {
	used, err := s.repo.CategoryInUse(ctx, companyID, id)
	if err != nil {
		return err
	}
	if used {
		return httpx.ErrConflict
	}
	return s.repo.DeleteCategory(ctx, companyID, id)
}

// --- menu types ------------------------------------------------------------

func (s *Service) ListTypes(ctx context.Context, companyID string) ([]MenuType, error) {
	types, err := s.repo.ListTypes(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return NormalizeTypes(types), nil
}

func (s *Service) CreateType(ctx context.Context, companyID, name string) (*MenuType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, httpx.NewValidationError("name", "name is required")
	}
	existing, err := s.repo.ListTypes(ctx, companyID)
	if err != nil {
		return nil, err
	}
	t := &MenuType{Name: name, Position: len(existing)}
	if err := s.repo.CreateType(ctx, companyID, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) UpdateType(ctx context.Context, companyID string, t MenuType) (*MenuType, error) {
	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		return nil, httpx.NewValidationError("name", "name is required")
	}
	if err := s.repo.UpdateType(ctx, companyID, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Service) DeleteType(ctx context.Context, companyID, id string) error {
	used, err := s.repo.TypeInUse(ctx, companyID, id)
	if err != nil {
		return err
	}
	if used {
		return httpx.ErrConflict
	}
	return s.repo.DeleteType(ctx, companyID, id)
}

// ReorderTypes applies a new ordering. The target order is normalized, then
// only the rows whose position actually moved are written back.
func (s *Service) ReorderTypes(ctx context.Context, companyID string, want []MenuType) ([]MenuType, error) {
	have, err := s.repo.ListTypes(ctx, companyID)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(have))
	for _, t := range have {
		names[t.ID] = t.Name
	}
	for i := range want {
		name, ok := names[want[i].ID]
		if !ok {
			return nil, httpx.ErrNotFound
		}
		want[i].Name = name
	}
	normalized := NormalizeTypes(want)
	for _, t := range ChangedTypes(have, normalized) {
		if err := s.repo.UpdateType(ctx, companyID, &t); err != nil {
			return nil, err
		}
	}
	return normalized, nil
}

// --- quick accesses --------------------------------------------------------

func (s *Service) ListQuickAccesses(ctx context.Context, companyID string) ([]QuickAccess, error) {
	return s.repo.ListQuickAccesses(ctx, companyID)
}

func (s *Service) CreateQuickAccess(ctx context.Context, companyID string, q QuickAccess) (*QuickAccess, error) {
	if err := validateQuickAccess(q); err != nil {
		return nil, err
	}
	existing, err := s.repo.ListQuickAccesses(ctx, companyID)
	if err != nil {
		return nil, err
	}
	q.Position = len(existing)
	if err := s.repo.CreateQuickAccess(ctx, companyID, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

func (s *Service) UpdateQuickAccess(ctx context.Context, companyID string, q QuickAccess) (*QuickAccess, error) {
	if err := validateQuickAccess(q); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateQuickAccess(ctx, companyID, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

func (s *Service) DeleteQuickAccess(ctx context.Context, companyID, id string) error {
	return s.repo.DeleteQuickAccess(ctx, companyID, id)
}

// ResetQuickAccesses restores the factory shortcut set.
func (s *Service) ResetQuickAccesses(ctx context.Context, companyID string) ([]QuickAccess, error) {
	return s.repo.ReplaceQuickAccesses(ctx, companyID, defaultQuickAccesses)
}

func validateQuickAccess(q QuickAccess) error {
	verr := &httpx.ValidationError{Fields: map[string][]string{}}
	if strings.TrimSpace(q.Name) == "" {
		verr.AddField("name", "name is required")
	}
	if strings.TrimSpace(q.URLKey) == "" {
		verr.AddField("url_key", "url_key is required")
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}
