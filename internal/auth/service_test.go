package auth

import (
	"context"
	"errors"
	"testing"
)

type fakeUserRepository struct {
	users     map[string]*User
	lookupErr error
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: map[string]*User{}}
}

func (f *fakeUserRepository) Save(ctx context.Context, u *User) error {
	u.ID = "user-" + u.Email
	f.users[u.Email] = u
	return nil
}

func (f *fakeUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if f.lookupErr != nil {
		return false, f.lookupErr
	}
	_, ok := f.users[email]
	return ok, nil
}

func (f *fakeUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, errors.New("not found")
	}
	return u, nil
}

func (f *fakeUserRepository) FindByID(ctx context.Context, id string) (*User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeUserRepository) UpdateProfile(ctx context.Context, userID, name, email string) error {
	return nil
}

func (f *fakeUserRepository) UpdatePassword(ctx context.Context, userID, hash string) error {
	return nil
}

func TestRegisterHashesPassword(t *testing.T) {
	repo := newFakeUserRepository()
	service := NewService(repo, nil)

	password := "Password@123"
	_, err := service.Register(context.Background(), "c1", "", "Test User", "test@example.com", password, RoleUser)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	user := repo.users["test@example.com"]
	if user == nil {
		t.Fatalf("user not found")
	}
	if user.Password == password {
		t.Fatalf("password was stored in plain text")
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepository()
	repo.users["taken@example.com"] = &User{Email: "taken@example.com"}
	service := NewService(repo, nil)

	_, err := service.Register(context.Background(), "c1", "", "Test User", "taken@example.com", "Password@123", RoleUser)
	if err == nil {
		t.Fatalf("expected error for duplicate email")
	}
}

func TestRegisterFailsWhenEmailLookupFails(t *testing.T) {
	repo := newFakeUserRepository()
	repo.lookupErr = errors.New("connection reset")
	service := NewService(repo, nil)

	_, err := service.Register(context.Background(), "c1", "", "Test User", "test@example.com", "Password@123", RoleUser)
	if err == nil {
		t.Fatalf("a failing email lookup must not let registration proceed")
	}
	if len(repo.users) != 0 {
		t.Errorf("no user should be saved when the lookup fails")
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	service := NewService(newFakeUserRepository(), nil)

	_, err := service.Register(context.Background(), "c1", "", "Test User", "test@example.com", "short", RoleUser)
	if err == nil {
		t.Fatalf("expected error for short password")
	}
}

type fakeCompanyCreator struct {
	created []string
}

func (f *fakeCompanyCreator) CreateCompany(ctx context.Context, name string) (string, error) {
	f.created = append(f.created, name)
	return "company-1", nil
}

func TestRegisterWithoutCompanyCreatesOne(t *testing.T) {
	repo := newFakeUserRepository()
	companies := &fakeCompanyCreator{}
	service := NewService(repo, companies)

	user, err := service.Register(context.Background(), "", "Chez Test", "Test User", "test@example.com", "Password@123", RoleUser)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(companies.created) != 1 || companies.created[0] != "Chez Test" {
		t.Errorf("expected one company created, got %v", companies.created)
	}
	if user.CompanyID != "company-1" {
		t.Errorf("user should belong to the new company, got %s", user.CompanyID)
	}
}
