package perishable

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"khp/internal/httpx"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) List(ctx context.Context, companyID string) ([]*Perishable, error) {
	rows, err := r.db.Query(ctx, `
		SELECT p.id, p.ingredient_id, i.name, p.location_id, p.quantity,
		       p.expiration_at, p.read_at, p.expired, p.created_at
		FROM perishables p
		JOIN ingredients i ON i.id = p.ingredient_id
		WHERE p.company_id = $1
		ORDER BY p.expiration_at, p.id
	`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lots []*Perishable
	for rows.Next() {
		p := &Perishable{}
		err := rows.Scan(
			&p.ID, &p.IngredientID, &p.IngredientName, &p.LocationID, &p.Quantity,
			&p.ExpirationAt, &p.ReadAt, &p.Expired, &p.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		lots = append(lots, p)
	}
	return lots, rows.Err()
}

func (r *Repository) Create(ctx context.Context, companyID string, p *Perishable) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO perishables (id, company_id, ingredient_id, location_id, quantity, expiration_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, p.ID, companyID, p.IngredientID, p.LocationID, p.Quantity, p.ExpirationAt)
	return err
}

func (r *Repository) MarkRead(ctx context.Context, companyID, id string) (*Perishable, error) {
	var p Perishable
	err := r.db.QueryRow(ctx, `
		UPDATE perishables
		SET read_at = now()
		WHERE company_id = $1 AND id = $2
		RETURNING id, ingredient_id, location_id, quantity, expiration_at, read_at, expired, created_at
	`, companyID, id).Scan(
		&p.ID, &p.IngredientID, &p.LocationID, &p.Quantity,
		&p.ExpirationAt, &p.ReadAt, &p.Expired, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// SweepExpired flags every unflagged lot past its expiration and returns
// the flagged IDs so the worker can publish one event per lot.
func (r *Repository) SweepExpired(ctx context.Context, now time.Time) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		UPDATE perishables
		SET expired = TRUE
		WHERE expired = FALSE AND expiration_at <= $1
		RETURNING id
	`, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
