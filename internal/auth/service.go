package auth

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"khp/internal/httpx"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// CompanyCreator provisions a company for first-user registration.
type CompanyCreator interface {
	CreateCompany(ctx context.Context, name string) (string, error)
}

type Service struct {
	repo      UserRepository
	companies CompanyCreator
}

func NewService(repo UserRepository, companies CompanyCreator) *Service {
	return &Service{repo: repo, companies: companies}
}

// REGISTER
// companyID attaches the user to an existing company; when it is empty a new
// company named companyName is created and the user becomes its first member.
func (s *Service) Register(ctx context.Context, companyID, companyName, name, email, password, role string) (*User, error) {
	if name == "" || email == "" || password == "" {
		return nil, errors.New("missing required fields")
	}
	if companyID == "" {
		if s.companies == nil {
			return nil, errors.New("company_id is required")
		}
		id, err := s.companies.CreateCompany(ctx, companyName)
		if err != nil {
			return nil, err
		}
		companyID = id
	}
	if len(password) < 8 {
		return nil, httpx.NewValidationError("password", "password must be at least 8 characters")
	}
	if role == "" {
		role = RoleUser
	}

	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.New("email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword(
		[]byte(password),
		bcrypt.DefaultCost,
	)
	if err != nil {
		return nil, err
	}

	user := &User{
		CompanyID: companyID,
		Name:      name,
		Email:     strings.ToLower(email),
		Password:  string(hashedPassword),
		Role:      role,
	}

	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// LOGIN
func (s *Service) Login(ctx context.Context, email, password string) (*User, error) {
	user, err := s.repo.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	err = bcrypt.CompareHashAndPassword(
		[]byte(user.Password),
		[]byte(password),
	)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// PROFILE
func (s *Service) GetProfile(ctx context.Context, userID string) (*User, error) {
	return s.repo.FindByID(ctx, userID)
}

func (s *Service) UpdateProfile(ctx context.Context, userID, name, email string) (*User, error) {
	if name == "" {
		return nil, httpx.NewValidationError("name", "name is required")
	}
	if email == "" {
		return nil, httpx.NewValidationError("email", "email is required")
	}

	current, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	email = strings.ToLower(email)
	if email != current.Email {
		exists, err := s.repo.ExistsByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, httpx.NewValidationError("email", "email already exists")
		}
	}

	if err := s.repo.UpdateProfile(ctx, userID, name, email); err != nil {
		return nil, err
	}

	current.Name = name
	current.Email = email
	return current, nil
}

// PASSWORD
func (s *Service) UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if len(newPassword) < 8 {
		return httpx.NewValidationError("new_password", "password must be at least 8 characters")
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword(
		[]byte(user.Password),
		[]byte(currentPassword),
	); err != nil {
		return httpx.NewValidationError("current_password", "current password is incorrect")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.repo.UpdatePassword(ctx, userID, string(hashed))
}
