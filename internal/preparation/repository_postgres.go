package preparation

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"khp/internal/httpx"
	"khp/internal/pagination"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(
	ctx context.Context,
	companyID string,
	p pagination.Params,
) ([]*Preparation, int, error) {

	var total int
	err := r.db.QueryRow(ctx, `
		SELECT count(*) FROM preparations
		WHERE company_id = $1
		  AND ($2 = '' OR name ILIKE '%' || $2 || '%')
	`, companyID, p.Search).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, name, unit, image_url, created_at
		FROM preparations
		WHERE company_id = $1
		  AND ($2 = '' OR name ILIKE '%' || $2 || '%')
		ORDER BY name, id
		LIMIT $3 OFFSET $4
	`, companyID, p.Search, p.PerPage, p.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var preps []*Preparation
	for rows.Next() {
		prep := &Preparation{}
		if err := rows.Scan(&prep.ID, &prep.Name, &prep.Unit, &prep.ImageURL, &prep.CreatedAt); err != nil {
			return nil, 0, err
		}
		preps = append(preps, prep)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for _, prep := range preps {
		if err := r.loadDetails(ctx, prep); err != nil {
			return nil, 0, err
		}
	}

	return preps, total, nil
}

func (r *PostgresRepository) loadDetails(ctx context.Context, prep *Preparation) error {
	rows, err := r.db.Query(ctx, `
		SELECT e.id, e.entity_type, e.entity_id, e.quantity, e.unit, e.location_id,
		       COALESCE(i.name, p.name, '')
		FROM preparation_entities e
		LEFT JOIN ingredients i ON e.entity_type = 'ingredient' AND i.id = e.entity_id
		LEFT JOIN preparations p ON e.entity_type = 'preparation' AND p.id = e.entity_id
		WHERE e.preparation_id = $1
	`, prep.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	prep.Entities = []Entity{}
	for rows.Next() {
		var e Entity
		if err := rows.Scan(&e.ID, &e.EntityType, &e.EntityID, &e.Quantity, &e.Unit, &e.LocationID, &e.EntityName); err != nil {
			return err
		}
		prep.Entities = append(prep.Entities, e)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	stockRows, err := r.db.Query(ctx, `
		SELECT s.location_id, l.name, s.quantity
		FROM preparation_stocks s
		JOIN locations l ON l.id = s.location_id
		WHERE s.preparation_id = $1
		ORDER BY l.name
	`, prep.ID)
	if err != nil {
		return err
	}
	defer stockRows.Close()

	prep.Stocks = []LocationStock{}
	prep.TotalStock = 0
	for stockRows.Next() {
		var st LocationStock
		if err := stockRows.Scan(&st.LocationID, &st.LocationName, &st.Quantity); err != nil {
			return err
		}
		prep.Stocks = append(prep.Stocks, st)
		prep.TotalStock += st.Quantity
	}
	return stockRows.Err()
}

func (r *PostgresRepository) Get(ctx context.Context, companyID, id string) (*Preparation, error) {
	prep := &Preparation{}
	err := r.db.QueryRow(ctx, `
		SELECT id, name, unit, image_url, created_at
		FROM preparations
		WHERE company_id = $1 AND id = $2
	`, companyID, id).Scan(&prep.ID, &prep.Name, &prep.Unit, &prep.ImageURL, &prep.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}

	if err := r.loadDetails(ctx, prep); err != nil {
		return nil, err
	}
	return prep, nil
}

func (r *PostgresRepository) Create(ctx context.Context, companyID string, prep *Preparation) error {
	if prep.ID == "" {
		prep.ID = uuid.New().String()
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO preparations (id, company_id, name, unit)
		VALUES ($1, $2, $3, $4)
	`, prep.ID, companyID, prep.Name, prep.Unit)
	if err != nil {
		return err
	}

	for _, e := range prep.Entities {
		_, err = tx.Exec(ctx, `
			INSERT INTO preparation_entities (id, preparation_id, entity_type, entity_id, quantity, unit, location_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, uuid.New().String(), prep.ID, e.EntityType, e.EntityID, e.Quantity, e.Unit, e.LocationID)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PostgresRepository) Update(ctx context.Context, companyID string, prep *Preparation) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE preparations
		SET name = $1, unit = $2
		WHERE company_id = $3 AND id = $4
	`, prep.Name, prep.Unit, companyID, prep.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}

	// Entities are replaced wholesale on edit
	if _, err := tx.Exec(ctx, `
		DELETE FROM preparation_entities WHERE preparation_id = $1
	`, prep.ID); err != nil {
		return err
	}

	for _, e := range prep.Entities {
		_, err = tx.Exec(ctx, `
			INSERT INTO preparation_entities (id, preparation_id, entity_type, entity_id, quantity, unit, location_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, uuid.New().String(), prep.ID, e.EntityType, e.EntityID, e.Quantity, e.Unit, e.LocationID)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PostgresRepository) Delete(ctx context.Context, companyID, id string) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM preparations WHERE company_id = $1 AND id = $2
	`, companyID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) InUse(ctx context.Context, id string) (bool, error) {
	var exists int
	err := r.db.QueryRow(ctx, `
		SELECT 1 WHERE EXISTS (
			SELECT 1 FROM preparation_entities WHERE entity_type = 'preparation' AND entity_id = $1
		) OR EXISTS (
			SELECT 1 FROM menu_items WHERE entity_type = 'preparation' AND entity_id = $1
		)
	`, id).Scan(&exists)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// --------------------------------------------------
// STOCKS
// --------------------------------------------------

func (r *PostgresRepository) GetStock(ctx context.Context, preparationID, locationID string) (float64, error) {
	var qty float64
	err := r.db.QueryRow(ctx, `
		SELECT quantity FROM preparation_stocks
		WHERE preparation_id = $1 AND location_id = $2
	`, preparationID, locationID).Scan(&qty)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}
	return qty, nil
}

func (r *PostgresRepository) SetStock(ctx context.Context, preparationID, locationID string, quantity float64) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO preparation_stocks (preparation_id, location_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (preparation_id, location_id)
		DO UPDATE SET quantity = EXCLUDED.quantity
	`, preparationID, locationID, quantity)
	return err
}

func (r *PostgresRepository) ListLocations(ctx context.Context, companyID string) ([]LocationRef, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name FROM locations
		WHERE company_id = $1
		ORDER BY name
	`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var refs []LocationRef
	for rows.Next() {
		var ref LocationRef
		if err := rows.Scan(&ref.ID, &ref.Name); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}
