package location

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

// --------------------------------------------------
// LOCATIONS
// --------------------------------------------------

func (r *PostgresRepository) List(
	ctx context.Context,
	companyID string,
	p pagination.Params,
) ([]*Location, int, error) {

	var total int
	err := r.db.QueryRow(ctx, `
		SELECT count(*) FROM locations
		WHERE company_id = $1
		  AND ($2 = '' OR name ILIKE '%' || $2 || '%')
	`, companyID, p.Search).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT l.id, l.name, l.location_type_id, lt.name, l.created_at
		FROM locations l
		LEFT JOIN location_types lt ON lt.id = l.location_type_id
		WHERE l.company_id = $1
		  AND ($2 = '' OR l.name ILIKE '%' || $2 || '%')
		ORDER BY l.name, l.id
		LIMIT $3 OFFSET $4
	`, companyID, p.Search, p.PerPage, p.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var locations []*Location
	for rows.Next() {
		loc := &Location{}
		if err := rows.Scan(&loc.ID, &loc.Name, &loc.LocationTypeID, &loc.TypeName, &loc.CreatedAt); err != nil {
			return nil, 0, err
		}
		locations = append(locations, loc)
	}

	return locations, total, rows.Err()
}

func (r *PostgresRepository) Get(ctx context.Context, companyID, id string) (*Location, error) {
	loc := &Location{}
	err := r.db.QueryRow(ctx, `
		SELECT l.id, l.name, l.location_type_id, lt.name, l.created_at
		FROM locations l
		LEFT JOIN location_types lt ON lt.id = l.location_type_id
		WHERE l.company_id = $1 AND l.id = $2
	`, companyID, id).Scan(&loc.ID, &loc.Name, &loc.LocationTypeID, &loc.TypeName, &loc.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return loc, nil
}

func (r *PostgresRepository) Create(ctx context.Context, companyID string, loc *Location) error {
	if loc.ID == "" {
		loc.ID = uuid.New().String()
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO locations (id, company_id, location_type_id, name)
		VALUES ($1, $2, $3, $4)
	`, loc.ID, companyID, loc.LocationTypeID, loc.Name)
	return err
}

func (r *PostgresRepository) Update(ctx context.Context, companyID string, loc *Location) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE locations
		SET name = $1, location_type_id = $2
		WHERE company_id = $3 AND id = $4
	`, loc.Name, loc.LocationTypeID, companyID, loc.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, companyID, id string) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM locations WHERE company_id = $1 AND id = $2
	`, companyID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) HoldsStock(ctx context.Context, id string) (bool, error) {
	var exists int
	err := r.db.QueryRow(ctx, `
		SELECT 1 WHERE EXISTS (
			SELECT 1 FROM ingredient_stocks WHERE location_id = $1 AND quantity > 0
		) OR EXISTS (
			SELECT 1 FROM preparation_stocks WHERE location_id = $1 AND quantity > 0
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
// LOCATION TYPES
// --------------------------------------------------

func (r *PostgresRepository) ListTypes(ctx context.Context, companyID string) ([]*LocationType, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, is_default
		FROM location_types
		WHERE company_id = $1
		ORDER BY name, id
	`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []*LocationType
	for rows.Next() {
		lt := &LocationType{}
		if err := rows.Scan(&lt.ID, &lt.Name, &lt.IsDefault); err != nil {
			return nil, err
		}
		types = append(types, lt)
	}
	return types, rows.Err()
}

func (r *PostgresRepository) GetType(ctx context.Context, companyID, id string) (*LocationType, error) {
	lt := &LocationType{}
	err := r.db.QueryRow(ctx, `
		SELECT id, name, is_default
		FROM location_types
		WHERE company_id = $1 AND id = $2
	`, companyID, id).Scan(&lt.ID, &lt.Name, &lt.IsDefault)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return lt, nil
}

func (r *PostgresRepository) CreateType(ctx context.Context, companyID string, lt *LocationType) error {
	if lt.ID == "" {
		lt.ID = uuid.New().String()
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO location_types (id, company_id, name, is_default)
		VALUES ($1, $2, $3, $4)
	`, lt.ID, companyID, lt.Name, lt.IsDefault)
	return err
}

func (r *PostgresRepository) UpdateType(ctx context.Context, companyID string, lt *LocationType) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE location_types
		SET name = $1
		WHERE company_id = $2 AND id = $3
	`, lt.Name, companyID, lt.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteType(ctx context.Context, companyID, id string) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM location_types WHERE company_id = $1 AND id = $2
	`, companyID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) TypeInUse(ctx context.Context, id string) (bool, error) {
	var exists int
	err := r.db.QueryRow(ctx, `
		SELECT 1 FROM locations WHERE location_type_id = $1 LIMIT 1
	`, id).Scan(&exists)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
