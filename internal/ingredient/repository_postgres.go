package ingredient

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
// LIST (search + category filter, stable order)
// --------------------------------------------------
func (r *PostgresRepository) List(
	ctx context.Context,
	companyID string,
	p pagination.Params,
	f Filter,
) ([]*Ingredient, int, error) {

	var total int
	err := r.db.QueryRow(ctx, `
		SELECT count(*)
		FROM ingredients
		WHERE company_id = $1
		  AND ($2 = '' OR name ILIKE '%' || $2 || '%')
		  AND (cardinality($3::uuid[]) = 0 OR category_id = ANY($3::uuid[]))
	`, companyID, p.Search, f.CategoryIDs).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT i.id, i.name, i.unit, i.base_quantity, i.base_unit,
		       i.category_id, c.name, i.allergens, i.image_url, i.created_at
		FROM ingredients i
		LEFT JOIN ingredient_categories c ON c.id = i.category_id
		WHERE i.company_id = $1
		  AND ($2 = '' OR i.name ILIKE '%' || $2 || '%')
		  AND (cardinality($3::uuid[]) = 0 OR i.category_id = ANY($3::uuid[]))
		ORDER BY i.name, i.id
		LIMIT $4 OFFSET $5
	`, companyID, p.Search, f.CategoryIDs, p.PerPage, p.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var ingredients []*Ingredient
	for rows.Next() {
		ing := &Ingredient{}
		err := rows.Scan(
			&ing.ID, &ing.Name, &ing.Unit, &ing.BaseQuantity, &ing.BaseUnit,
			&ing.CategoryID, &ing.CategoryName, &ing.Allergens, &ing.ImageURL, &ing.CreatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		ingredients = append(ingredients, ing)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for _, ing := range ingredients {
		if err := r.loadStocks(ctx, ing); err != nil {
			return nil, 0, err
		}
	}

	return ingredients, total, nil
}

func (r *PostgresRepository) loadStocks(ctx context.Context, ing *Ingredient) error {
	rows, err := r.db.Query(ctx, `
		SELECT s.location_id, l.name, s.quantity
		FROM ingredient_stocks s
		JOIN locations l ON l.id = s.location_id
		WHERE s.ingredient_id = $1
		ORDER BY l.name
	`, ing.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	ing.Stocks = []LocationStock{}
	ing.TotalStock = 0
	for rows.Next() {
		var st LocationStock
		if err := rows.Scan(&st.LocationID, &st.LocationName, &st.Quantity); err != nil {
			return err
		}
		ing.Stocks = append(ing.Stocks, st)
		ing.TotalStock += st.Quantity
	}
	return rows.Err()
}

func (r *PostgresRepository) Get(ctx context.Context, companyID, id string) (*Ingredient, error) {
	ing := &Ingredient{}
	err := r.db.QueryRow(ctx, `
		SELECT i.id, i.name, i.unit, i.base_quantity, i.base_unit,
		       i.category_id, c.name, i.allergens, i.image_url, i.created_at
		FROM ingredients i
		LEFT JOIN ingredient_categories c ON c.id = i.category_id
		WHERE i.company_id = $1 AND i.id = $2
	`, companyID, id).Scan(
		&ing.ID, &ing.Name, &ing.Unit, &ing.BaseQuantity, &ing.BaseUnit,
		&ing.CategoryID, &ing.CategoryName, &ing.Allergens, &ing.ImageURL, &ing.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}

	if err := r.loadStocks(ctx, ing); err != nil {
		return nil, err
	}
	return ing, nil
}

func (r *PostgresRepository) Create(ctx context.Context, companyID string, ing *Ingredient) error {
	if ing.ID == "" {
		ing.ID = uuid.New().String()
	}
	if ing.Allergens == nil {
		ing.Allergens = []string{}
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO ingredients (id, company_id, category_id, name, unit, base_quantity, base_unit, allergens, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, ing.ID, companyID, ing.CategoryID, ing.Name, ing.Unit, ing.BaseQuantity, ing.BaseUnit, ing.Allergens, ing.ImageURL)
	return err
}

func (r *PostgresRepository) Update(ctx context.Context, companyID string, ing *Ingredient) error {
	if ing.Allergens == nil {
		ing.Allergens = []string{}
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE ingredients
		SET name = $1, unit = $2, base_quantity = $3, base_unit = $4,
		    category_id = $5, allergens = $6
		WHERE company_id = $7 AND id = $8
	`, ing.Name, ing.Unit, ing.BaseQuantity, ing.BaseUnit, ing.CategoryID, ing.Allergens, companyID, ing.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) UpdateImage(ctx context.Context, companyID, id, imageURL string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE ingredients
		SET image_url = $1
		WHERE company_id = $2 AND id = $3
	`, imageURL, companyID, id)
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
		DELETE FROM ingredients WHERE company_id = $1 AND id = $2
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
			SELECT 1 FROM preparation_entities WHERE entity_type = 'ingredient' AND entity_id = $1
		) OR EXISTS (
			SELECT 1 FROM menu_items WHERE entity_type = 'ingredient' AND entity_id = $1
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
// CATEGORIES
// --------------------------------------------------

func (r *PostgresRepository) ListCategories(ctx context.Context, companyID string) ([]*Category, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name FROM ingredient_categories
		WHERE company_id = $1
		ORDER BY name
	`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		cat := &Category{}
		if err := rows.Scan(&cat.ID, &cat.Name); err != nil {
			return nil, err
		}
		categories = append(categories, cat)
	}
	return categories, rows.Err()
}

func (r *PostgresRepository) CreateCategory(ctx context.Context, companyID string, cat *Category) error {
	if cat.ID == "" {
		cat.ID = uuid.New().String()
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO ingredient_categories (id, company_id, name)
		VALUES ($1, $2, $3)
	`, cat.ID, companyID, cat.Name)
	return err
}

// --------------------------------------------------
// STOCKS
// --------------------------------------------------

func (r *PostgresRepository) SetStock(ctx context.Context, ingredientID, locationID string, quantity float64) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO ingredient_stocks (ingredient_id, location_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (ingredient_id, location_id)
		DO UPDATE SET quantity = EXCLUDED.quantity
	`, ingredientID, locationID, quantity)
	return err
}

func (r *PostgresRepository) GetStock(ctx context.Context, ingredientID, locationID string) (float64, error) {
	var qty float64
	err := r.db.QueryRow(ctx, `
		SELECT quantity FROM ingredient_stocks
		WHERE ingredient_id = $1 AND location_id = $2
	`, ingredientID, locationID).Scan(&qty)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}
	return qty, nil
}

func (r *PostgresRepository) StockSummary(ctx context.Context, companyID string) ([]*StockSummary, error) {
	rows, err := r.db.Query(ctx, `
		SELECT l.id, l.name, count(s.ingredient_id), COALESCE(sum(s.quantity), 0)
		FROM locations l
		LEFT JOIN ingredient_stocks s ON s.location_id = l.id AND s.quantity > 0
		WHERE l.company_id = $1
		GROUP BY l.id, l.name
		ORDER BY l.name
	`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summary []*StockSummary
	for rows.Next() {
		s := &StockSummary{}
		if err := rows.Scan(&s.LocationID, &s.LocationName, &s.Ingredients, &s.Quantity); err != nil {
			return nil, err
		}
		summary = append(summary, s)
	}
	return summary, rows.Err()
}
