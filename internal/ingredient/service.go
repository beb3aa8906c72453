package ingredient

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"khp/internal/httpx"
	"khp/internal/pagination"
)

type Storage interface {
	Upload(ctx context.Context, key string, file multipart.File) (string, error)
}

type Service struct {
	repo    Repository
	storage Storage
}

func NewService(repo Repository, storage Storage) *Service {
	return &Service{repo: repo, storage: storage}
}

// Input carries the writable ingredient fields.
type Input struct {
	Name         string   `json:"name"`
	Unit         string   `json:"unit"`
	BaseQuantity float64  `json:"base_quantity"`
	BaseUnit     string   `json:"base_unit"`
	CategoryID   *string  `json:"category_id"`
	Allergens    []string `json:"allergens"`
}

func (in Input) validate() error {
	ve := &httpx.ValidationError{}
	if strings.TrimSpace(in.Name) == "" {
		ve.AddField("name", "name is required")
	}
	if strings.TrimSpace(in.Unit) == "" {
		ve.AddField("unit", "unit is required")
	}
	if in.BaseQuantity <= 0 {
		ve.AddField("base_quantity", "base quantity must be greater than 0")
	}
	if len(ve.Fields) > 0 {
		return ve
	}
	return nil
}

func (s *Service) List(ctx context.Context, companyID string, p pagination.Params, f Filter) ([]*Ingredient, int, error) {
	return s.repo.List(ctx, companyID, p, f)
}

func (s *Service) Get(ctx context.Context, companyID, id string) (*Ingredient, error) {
	return s.repo.Get(ctx, companyID, id)
}

func (s *Service) Create(ctx context.Context, companyID string, in Input) (*Ingredient, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	baseUnit := in.BaseUnit
	if baseUnit == "" {
		baseUnit = in.Unit
	}

	ing := &Ingredient{
		Name:         in.Name,
		Unit:         in.Unit,
		BaseQuantity: in.BaseQuantity,
		BaseUnit:     baseUnit,
		CategoryID:   in.CategoryID,
		Allergens:    in.Allergens,
	}

	if err := s.repo.Create(ctx, companyID, ing); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, companyID, ing.ID)
}

func (s *Service) Update(ctx context.Context, companyID, id string, in Input) (*Ingredient, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	baseUnit := in.BaseUnit
	if baseUnit == "" {
		baseUnit = in.Unit
	}

	ing := &Ingredient{
		ID:           id,
		Name:         in.Name,
		Unit:         in.Unit,
		BaseQuantity: in.BaseQuantity,
		BaseUnit:     baseUnit,
		CategoryID:   in.CategoryID,
		Allergens:    in.Allergens,
	}

	if err := s.repo.Update(ctx, companyID, ing); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, companyID, id)
}

func (s *Service) Delete(ctx context.Context, companyID, id string) error {
	if _, err := s.repo.Get(ctx, companyID, id); err != nil {
		return err
	}

	inUse, err := s.repo.InUse(ctx, id)
	if err != nil {
		return err
	}
	if inUse {
		return fmt.Errorf("%w: ingredient is still referenced elsewhere", httpx.ErrConflict)
	}

	return s.repo.Delete(ctx, companyID, id)
}

// UploadImage stores the file under ingredients/<company>/<uuid><ext>.
func (s *Service) UploadImage(
	ctx context.Context,
	companyID, id string,
	file multipart.File,
	filename string,
) (string, error) {

	if _, err := s.repo.Get(ctx, companyID, id); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	key := fmt.Sprintf("ingredients/%s/%s%s", companyID, uuid.New().String(), ext)

	url, err := s.storage.Upload(ctx, key, file)
	if err != nil {
		return "", err
	}

	if err := s.repo.UpdateImage(ctx, companyID, id, url); err != nil {
		return "", err
	}
	return url, nil
}

// SetStock replaces the on-hand quantity at one location.
func (s *Service) SetStock(ctx context.Context, companyID, id, locationID string, quantity float64) (*Ingredient, error) {
	if quantity < 0 {
		return nil, httpx.NewValidationError("quantity", "quantity cannot be negative")
	}

	if _, err := s.repo.Get(ctx, companyID, id); err != nil {
		return nil, err
	}

	if err := s.repo.SetStock(ctx, id, locationID, quantity); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, companyID, id)
}

func (s *Service) ListCategories(ctx context.Context, companyID string) ([]*Category, error) {
	return s.repo.ListCategories(ctx, companyID)
}

func (s *Service) CreateCategory(ctx context.Context, companyID, name string) (*Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, httpx.NewValidationError("name", "name is required")
	}

	cat := &Category{Name: name}
	if err := s.repo.CreateCategory(ctx, companyID, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (s *Service) StockSummary(ctx context.Context, companyID string) ([]*StockSummary, error) {
	return s.repo.StockSummary(ctx, companyID)
}
