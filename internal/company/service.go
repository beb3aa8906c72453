package company

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"khp/internal/httpx"
)

// DefaultPublicBaseURL is used when APP_URL is not configured.
const DefaultPublicBaseURL = "https://khp.goofyteam.fr"

type Storage interface {
	Upload(ctx context.Context, key string, file multipart.File) (string, error)
}

// Seeder provisions the per-company defaults (location types and such) right
// after a company is created.
type Seeder interface {
	SeedDefaults(ctx context.Context, companyID string) error
}

type Service struct {
	repo    Repository
	storage Storage
	seeder  Seeder
}

func NewService(repo Repository, storage Storage, seeder Seeder) *Service {
	return &Service{repo: repo, storage: storage, seeder: seeder}
}

func (s *Service) Get(ctx context.Context, companyID string) (*Company, error) {
	return s.repo.Get(ctx, companyID)
}

// CreateCompany provisions a new company and its default fixtures. It returns
// the new company ID so registration can attach the first user to it.
func (s *Service) CreateCompany(ctx context.Context, name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", httpx.NewValidationError("company_name", "company name is required")
	}

	company := &Company{Name: strings.TrimSpace(name)}
	if err := s.repo.Create(ctx, company); err != nil {
		return "", err
	}
	if s.seeder != nil {
		if err := s.seeder.SeedDefaults(ctx, company.ID); err != nil {
			return "", err
		}
	}
	return company.ID, nil
}

func (s *Service) UpdateName(ctx context.Context, companyID, name string) (*Company, error) {
	if strings.TrimSpace(name) == "" {
		return nil, httpx.NewValidationError("name", "name is required")
	}

	if err := s.repo.UpdateName(ctx, companyID, name); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, companyID)
}

// UploadLogo stores the file under logos/<company>/<uuid><ext> and records
// the public URL.
func (s *Service) UploadLogo(
	ctx context.Context,
	companyID string,
	file multipart.File,
	filename string,
) (string, error) {

	ext := strings.ToLower(filepath.Ext(filename))
	key := fmt.Sprintf("logos/%s/%s%s", companyID, uuid.New().String(), ext)

	url, err := s.storage.Upload(ctx, key, file)
	if err != nil {
		return "", err
	}

	if err := s.repo.UpdateLogo(ctx, companyID, url); err != nil {
		return "", err
	}

	return url, nil
}

// PublicMenuURL builds the shareable menu page address from APP_URL,
// falling back to the production domain.
func (s *Service) PublicMenuURL(company *Company) string {
	base := os.Getenv("APP_URL")
	if base == "" {
		base = DefaultPublicBaseURL
	}
	return fmt.Sprintf("%s/menu/%s", strings.TrimRight(base, "/"), company.PublicMenuKey)
}
