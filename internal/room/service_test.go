package room

import (
	"context"
	"errors"
	"testing"

	"khp/internal/httpx"
)

type fakeRepository struct {
	rooms        map[string]*Room
	roomOrders   map[string]bool
	tableOrders  map[string]bool
	deletedRooms []string
	deletedTabs  []string
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		rooms:       map[string]*Room{},
		roomOrders:  map[string]bool{},
		tableOrders: map[string]bool{},
	}
}

func (f *fakeRepository) List(ctx context.Context, companyID string) ([]Room, error) {
	return nil, nil
}
func (f *fakeRepository) Get(ctx context.Context, companyID, id string) (*Room, error) {
	r, ok := f.rooms[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	return r, nil
}
func (f *fakeRepository) Create(ctx context.Context, companyID string, r *Room) error {
	r.ID = "room-" + r.Code
	f.rooms[r.ID] = r
	return nil
}
func (f *fakeRepository) Update(ctx context.Context, companyID string, r *Room) error {
	f.rooms[r.ID] = r
	return nil
}
func (f *fakeRepository) Delete(ctx context.Context, companyID, id string) error {
	delete(f.rooms, id)
	f.deletedRooms = append(f.deletedRooms, id)
	return nil
}
func (f *fakeRepository) HasOrders(ctx context.Context, companyID, roomID string) (bool, error) {
	return f.roomOrders[roomID], nil
}
func (f *fakeRepository) CreateTable(ctx context.Context, companyID string, t *Table) error {
	t.ID = "table-" + t.Label
	return nil
}
func (f *fakeRepository) UpdateTable(ctx context.Context, companyID string, t *Table) error {
	return nil
}
func (f *fakeRepository) DeleteTable(ctx context.Context, companyID, id string) error {
	f.deletedTabs = append(f.deletedTabs, id)
	return nil
}
func (f *fakeRepository) TableHasOrders(ctx context.Context, companyID, tableID string) (bool, error) {
	return f.tableOrders[tableID], nil
}

func TestCreateRoomNormalizesCode(t *testing.T) {
	repo := newFakeRepository()
	service := NewService(repo)

	rm, err := service.Create(context.Background(), "c1", "Main hall", " mh1 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rm.Code != "MH1" {
		t.Errorf("expected code MH1, got %q", rm.Code)
	}
}

func TestCreateRoomRequiresNameAndCode(t *testing.T) {
	service := NewService(newFakeRepository())

	_, err := service.Create(context.Background(), "c1", "", "")
	if err == nil {
		t.Fatalf("expected validation error")
	}

	var ve *httpx.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %T", err)
	}
	if len(ve.Fields["name"]) == 0 || len(ve.Fields["code"]) == 0 {
		t.Errorf("both fields should be flagged: %v", ve.Fields)
	}
}

func TestDeleteRoomConflictsWhenOrdersExist(t *testing.T) {
	repo := newFakeRepository()
	repo.rooms["r1"] = &Room{ID: "r1"}
	repo.roomOrders["r1"] = true
	service := NewService(repo)

	err := service.Delete(context.Background(), "c1", "r1")
	if !errors.Is(err, httpx.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if len(repo.deletedRooms) != 0 {
		t.Errorf("room must not be deleted")
	}
}

func TestDeleteTableConflictsWhenOrdersExist(t *testing.T) {
	repo := newFakeRepository()
	repo.tableOrders["t1"] = true
	service := NewService(repo)

	err := service.DeleteTable(context.Background(), "c1", "t1")
	if !errors.Is(err, httpx.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestCreateTableRejectsNonPositiveSeats(t *testing.T) {
	service := NewService(newFakeRepository())

	_, err := service.CreateTable(context.Background(), "c1", "r1", "T1", 0)
	if err == nil {
		t.Fatalf("expected validation error for zero seats")
	}
}
