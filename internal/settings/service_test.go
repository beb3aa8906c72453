package settings

import (
	"context"
	"errors"
	"testing"

	"khp/internal/httpx"
)

type fakeRepository struct {
	categories []MenuCategory
	types      []MenuType
	quick      []QuickAccess
	usedTypes  map[string]bool
	updates    []string
}

func (f *fakeRepository) ListCategories(ctx context.Context, companyID string) ([]MenuCategory, error) {
	return f.categories, nil
}
func (f *fakeRepository) GetCategory(ctx context.Context, companyID, id string) (*MenuCategory, error) {
	for _, c := range f.categories {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, httpx.ErrNotFound
}
func (f *fakeRepository) CreateCategory(ctx context.Context, companyID string, c *MenuCategory) error {
	c.ID = "cat-" + c.Name
	f.categories = append(f.categories, *c)
	return nil
}
func (f *fakeRepository) UpdateCategory(ctx context.Context, companyID string, c *MenuCategory) error {
	return nil
}
func (f *fakeRepository) DeleteCategory(ctx context.Context, companyID, id string) error {
	return nil
}
func (f *fakeRepository) CategoryInUse(ctx context.Context, companyID, id string) (bool, error) {
	return false, nil
}

func (f *fakeRepository) ListTypes(ctx context.Context, companyID string) ([]MenuType, error) {
	return f.types, nil
}
func (f *fakeRepository) GetType(ctx context.Context, companyID, id string) (*MenuType, error) {
	for _, t := range f.types {
		if t.ID == id {
			return &t, nil
		}
	}
	return nil, httpx.ErrNotFound
}
func (f *fakeRepository) CreateType(ctx context.Context, companyID string, t *MenuType) error {
	t.ID = "type-" + t.Name
	f.types = append(f.types, *t)
	return nil
}
func (f *fakeRepository) UpdateType(ctx context.Context, companyID string, t *MenuType) error {
	f.updates = append(f.updates, t.ID)
	return nil
}
func (f *fakeRepository) DeleteType(ctx context.Context, companyID, id string) error { return nil }
func (f *fakeRepository) TypeInUse(ctx context.Context, companyID, id string) (bool, error) {
	return f.usedTypes[id], nil
}

func (f *fakeRepository) ListQuickAccesses(ctx context.Context, companyID string) ([]QuickAccess, error) {
	return f.quick, nil
}
func (f *fakeRepository) CreateQuickAccess(ctx context.Context, companyID string, q *QuickAccess) error {
	q.ID = "qa-" + q.Name
	f.quick = append(f.quick, *q)
	return nil
}
func (f *fakeRepository) UpdateQuickAccess(ctx context.Context, companyID string, q *QuickAccess) error {
	return nil
}
func (f *fakeRepository) DeleteQuickAccess(ctx context.Context, companyID, id string) error {
	return nil
}
func (f *fakeRepository) ReplaceQuickAccesses(ctx context.Context, companyID string, set []QuickAccess) ([]QuickAccess, error) {
	f.quick = set
	return set, nil
}

func TestReorderTypesOnlyWritesMovedRows(t *testing.T) {
	repo := &fakeRepository{types: []MenuType{
		{ID: "a", Name: "Starters", Position: 0},
		{ID: "b", Name: "Mains", Position: 1},
		{ID: "c", Name: "Desserts", Position: 2},
	}}
	service := NewService(repo)

	_, err := service.ReorderTypes(context.Background(), "c1", []MenuType{
		{ID: "a", Position: 0},
		{ID: "b", Position: 2},
		{ID: "c", Position: 1},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.updates) != 2 {
		t.Fatalf("expected 2 updates, got %v", repo.updates)
	}
	for _, id := range repo.updates {
		if id == "a" {
			t.Errorf("unmoved row must not be rewritten")
		}
	}
}

func TestReorderTypesRejectsUnknownType(t *testing.T) {
	repo := &fakeRepository{types: []MenuType{
		{ID: "a", Name: "Starters", Position: 0},
	}}
	service := NewService(repo)

	_, err := service.ReorderTypes(context.Background(), "c1", []MenuType{
		{ID: "ghost", Position: 0},
	})
	if !errors.Is(err, httpx.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeleteTypeConflictsWhenUsedByMenu(t *testing.T) {
	repo := &fakeRepository{
		types:     []MenuType{{ID: "a", Name: "Starters"}},
		usedTypes: map[string]bool{"a": true},
	}
	service := NewService(repo)

	err := service.DeleteType(context.Background(), "c1", "a")
	if !errors.Is(err, httpx.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestCreateTypeAppendsAtEnd(t *testing.T) {
	repo := &fakeRepository{types: []MenuType{
		{ID: "a", Name: "Starters", Position: 0},
		{ID: "b", Name: "Mains", Position: 1},
	}}
	service := NewService(repo)

	created, err := service.CreateType(context.Background(), "c1", "Desserts")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Position != 2 {
		t.Errorf("new type should land at position 2, got %d", created.Position)
	}
}

func TestResetQuickAccessesRestoresFactorySet(t *testing.T) {
	repo := &fakeRepository{quick: []QuickAccess{
		{ID: "custom", Name: "My shortcut", URLKey: "custom"},
	}}
	service := NewService(repo)

	restored, err := service.ResetQuickAccesses(context.Background(), "c1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(restored) != len(defaultQuickAccesses) {
		t.Fatalf("expected %d defaults, got %d", len(defaultQuickAccesses), len(restored))
	}
	for i, q := range restored {
		if q.URLKey != defaultQuickAccesses[i].URLKey {
			t.Errorf("slot %d: expected %s, got %s", i, defaultQuickAccesses[i].URLKey, q.URLKey)
		}
	}
}
