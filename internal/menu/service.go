package menu

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

// Input carries the writable menu fields.
type Input struct {
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	CategoryID *string `json:"category_id"`
	TypeID     *string `json:"type_id"`
	IsPublic   bool    `json:"is_public"`
	Items      []Item  `json:"items"`
}

func (in Input) validate() error {
	ve := &httpx.ValidationError{}
	if strings.TrimSpace(in.Name) == "" {
		ve.AddField("name", "name is required")
	}
	if in.Price < 0 {
		ve.AddField("price", "price cannot be negative")
	}
	for _, it := range in.Items {
		if it.EntityType != EntityIngredient && it.EntityType != EntityPreparation {
			ve.AddField("items", "item type must be ingredient or preparation")
			break
		}
		if it.Quantity <= 0 {
			ve.AddField("items", "item quantity must be greater than 0")
			break
		}
	}
	if len(ve.Fields) > 0 {
		return ve
	}
	return nil
}

func (s *Service) List(ctx context.Context, companyID string, p pagination.Params, f Filter) ([]*Menu, int, error) {
	return s.repo.List(ctx, companyID, p, f)
}

// ListPublic serves the unauthenticated menu page looked up by company key.
func (s *Service) ListPublic(ctx context.Context, publicMenuKey string) ([]*Menu, error) {
	return s.repo.ListPublic(ctx, publicMenuKey)
}

func (s *Service) Get(ctx context.Context, companyID, id string) (*Menu, error) {
	return s.repo.Get(ctx, companyID, id)
}

func (s *Service) Create(ctx context.Context, companyID string, in Input) (*Menu, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	m := &Menu{
		Name:       in.Name,
		Price:      in.Price,
		CategoryID: in.CategoryID,
		TypeID:     in.TypeID,
		IsPublic:   in.IsPublic,
		Items:      in.Items,
	}

	if err := s.repo.Create(ctx, companyID, m); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, companyID, m.ID)
}

func (s *Service) Update(ctx context.Context, companyID, id string, in Input) (*Menu, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	m := &Menu{
		ID:         id,
		Name:       in.Name,
		Price:      in.Price,
		CategoryID: in.CategoryID,
		TypeID:     in.TypeID,
		IsPublic:   in.IsPublic,
		Items:      in.Items,
	}

	if err := s.repo.Update(ctx, companyID, m); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, companyID, id)
}

func (s *Service) Delete(ctx context.Context, companyID, id string) error {
	if _, err := s.repo.Get(ctx, companyID, id); err != nil {
		return err
	}

	open, err := s.repo.InOpenOrder(ctx, id)
	if err != nil {
		return err
	}
	if open {
		return fmt.Errorf("%w: menu appears in an open order", httpx.ErrConflict)
	}

	return s.repo.Delete(ctx, companyID, id)
}

// UploadImage stores the file under menus/<company>/<uuid><ext>.
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
	key := fmt.Sprintf("menus/%s/%s%s", companyID, uuid.New().String(), ext)

	url, err := s.storage.Upload(ctx, key, file)
	if err != nil {
		return "", err
	}

	if err := s.repo.UpdateImage(ctx, companyID, id, url); err != nil {
		return "", err
	}
	return url, nil
}
