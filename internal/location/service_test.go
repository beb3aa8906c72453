package location

import (
	"context"
	"errors"
	"testing"

	"khp/internal/httpx"
	"khp/internal/pagination"
)

type fakeRepository struct {
	types   map[string]*LocationType
	inUse   map[string]bool
	deleted []string
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		types: map[string]*LocationType{},
		inUse: map[string]bool{},
	}
}

func (f *fakeRepository) List(ctx context.Context, companyID string, p pagination.Params) ([]*Location, int, error) {
	return nil, 0, nil
}
func (f *fakeRepository) Get(ctx context.Context, companyID, id string) (*Location, error) {
	return nil, httpx.ErrNotFound
}
func (f *fakeRepository) Create(ctx context.Context, companyID string, loc *Location) error {
	return nil
}
func (f *fakeRepository) Update(ctx context.Context, companyID string, loc *Location) error {
	return nil
}
func (f *fakeRepository) Delete(ctx context.Context, companyID, id string) error { return nil }
func (f *fakeRepository) HoldsStock(ctx context.Context, id string) (bool, error) {
	return false, nil
}

func (f *fakeRepository) ListTypes(ctx context.Context, companyID string) ([]*LocationType, error) {
	var out []*LocationType
	for _, lt := range f.types {
		out = append(out, lt)
	}
	return out, nil
}

func (f *fakeRepository) GetType(ctx context.Context, companyID, id string) (*LocationType, error) {
	lt, ok := f.types[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	return lt, nil
}

func (f *fakeRepository) CreateType(ctx context.Context, companyID string, lt *LocationType) error {
	if lt.ID == "" {
		lt.ID = "type-" + lt.Name
	}
	f.types[lt.ID] = lt
	return nil
}

func (f *fakeRepository) UpdateType(ctx context.Context, companyID string, lt *LocationType) error {
	return nil
}

func (f *fakeRepository) DeleteType(ctx context.Context, companyID, id string) error {
	delete(f.types, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeRepository) TypeInUse(ctx context.Context, id string) (bool, error) {
	return f.inUse[id], nil
}

func TestDeleteTypeRefusesDefaultType(t *testing.T) {
	repo := newFakeRepository()
	repo.types["t1"] = &LocationType{ID: "t1", Name: "Fridge", IsDefault: true}
	service := NewService(repo)

	err := service.DeleteType(context.Background(), "c1", "t1")
	if err == nil {
		t.Fatalf("expected error when deleting a default type")
	}

	var ve *httpx.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %T", err)
	}
	if len(repo.deleted) != 0 {
		t.Errorf("default type must not be deleted")
	}
}

func TestDeleteTypeConflictsWhenReferenced(t *testing.T) {
	repo := newFakeRepository()
	repo.types["t2"] = &LocationType{ID: "t2", Name: "Cellar"}
	repo.inUse["t2"] = true
	service := NewService(repo)

	err := service.DeleteType(context.Background(), "c1", "t2")
	if !errors.Is(err, httpx.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestDeleteTypeRemovesUnusedCustomType(t *testing.T) {
	repo := newFakeRepository()
	repo.types["t3"] = &LocationType{ID: "t3", Name: "Cellar"}
	service := NewService(repo)

	if err := service.DeleteType(context.Background(), "c1", "t3"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != "t3" {
		t.Errorf("expected t3 deleted, got %v", repo.deleted)
	}
}

func TestListTypesMarksDefaultsUndeletable(t *testing.T) {
	repo := newFakeRepository()
	repo.types["t1"] = &LocationType{ID: "t1", Name: "Fridge", IsDefault: true}
	repo.types["t2"] = &LocationType{ID: "t2", Name: "Cellar"}
	service := NewService(repo)

	types, err := service.ListTypes(context.Background(), "c1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, lt := range types {
		if lt.IsDefault && lt.CanDelete {
			t.Errorf("default type %s must not be deletable", lt.Name)
		}
		if !lt.IsDefault && !lt.CanDelete {
			t.Errorf("custom type %s should be deletable", lt.Name)
		}
	}
}

func TestSeedDefaultsCreatesProtectedTypes(t *testing.T) {
	repo := newFakeRepository()
	service := NewService(repo)

	if err := service.SeedDefaults(context.Background(), "c1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.types) != len(defaultTypeNames) {
		t.Fatalf("expected %d default types, got %d", len(defaultTypeNames), len(repo.types))
	}
	for _, lt := range repo.types {
		if !lt.IsDefault {
			t.Errorf("seeded type %s should be default", lt.Name)
		}
	}
}
