package company

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"khp/internal/httpx"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*Company, error) {
	var c Company
	err := r.db.QueryRow(ctx, `
		SELECT id, name, logo_url, public_menu_key, created_at
		FROM companies
		WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.LogoURL, &c.PublicMenuKey, &c.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *PostgresRepository) Create(ctx context.Context, company *Company) error {
	if company.ID == "" {
		company.ID = uuid.New().String()
	}
	if company.PublicMenuKey == "" {
		company.PublicMenuKey = uuid.New().String()[:8]
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO companies (id, name, public_menu_key)
		VALUES ($1, $2, $3)
	`, company.ID, company.Name, company.PublicMenuKey)
	return err
}

func (r *PostgresRepository) UpdateName(ctx context.Context, id, name string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE companies SET name = $1 WHERE id = $2
	`, name, id)
	return err
}

func (r *PostgresRepository) UpdateLogo(ctx context.Context, id, logoURL string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE companies SET logo_url = $1 WHERE id = $2
	`, logoURL, id)
	return err
}
