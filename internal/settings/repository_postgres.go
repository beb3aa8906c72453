package settings

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"khp/internal/httpx"
)

// ---------------------------------------------------------------------------
// Postgres implementation
// ---------------------------------------------------------------------------

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --- menu categories -------------------------------------------------------

func (r *PostgresRepository) ListCategories(ctx context.Context, companyID string) ([]MenuCategory, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, position FROM menu_categories
		 WHERE company_id = $1 ORDER BY position, name`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MenuCategory
	for rows.Next() {
		var c MenuCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Position); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetCategory(ctx context.Context, companyID, id string) (*MenuCategory, error) {
	var c MenuCategory
	err := r.db.QueryRow(ctx,
		`SELECT id, name, position FROM menu_categories
		 WHERE company_id = $1 AND id = $2`, companyID, id).
		Scan(&c.ID, &c.Name, &c.Position)
	if err == pgx.ErrNoRows {
		return nil, httpx.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PostgresRepository) CreateCategory(ctx context.Context, companyID string, c *MenuCategory) error {
	c.ID = uuid.New().String()
	_, err := r.db.Exec(ctx,
		`INSERT INTO menu_categories (id, company_id, name, position)
		 VALUES ($1, $2, $3, $4)`, c.ID, companyID, c.Name, c.Position)
	return err
}

func (r *PostgresRepository) UpdateCategory(ctx context.Context, companyID string, c *MenuCategory) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE menu_categories SET name = $3, position = $4
		 WHERE company_id = $1 AND id = $2`, companyID, c.ID, c.Name, c.Position)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteCategory(ctx context.Context, companyID, id string) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM menu_categories WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) CategoryInUse(ctx context.Context, companyID, id string) (bool, error) {
	var used bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM menus WHERE company_id = $1 AND category_id = $2)`,
		companyID, id).Scan(&used)
	return used, err
}

// --- menu types ------------------------------------------------------------

func (r *PostgresRepository) ListTypes(ctx context.Context, companyID string) ([]MenuType, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, position FROM menu_types
		 WHERE company_id = $1 ORDER BY position, name`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MenuType
	for rows.Next() {
		var t MenuType
		if err := rows.Scan(&t.ID, &t.Name, &t.Position); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetType(ctx context.Context, companyID, id string) (*MenuType, error) {
	var t MenuType
	err := r.db.QueryRow(ctx,
		`SELECT id, name, position FROM menu_types
		 WHERE company_id = $1 AND id = $2`, companyID, id).
		Scan(&t.ID, &t.Name, &t.Position)
	if err == pgx.ErrNoRows {
		return nil, httpx.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *PostgresRepository) CreateType(ctx context.Context, companyID string, t *MenuType) error {
	t.ID = uuid.New().String()
	_, err := r.db.Exec(ctx,
		`INSERT INTO menu_types (id, company_id, name, position)
		 VALUES ($1, $2, $3, $4)`, t.ID, companyID, t.Name, t.Position)
	return err
}

func (r *PostgresRepository) UpdateType(ctx context.Context, companyID string, t *MenuType) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE menu_types SET name = $3, position = $4
		 WHERE company_id = $1 AND id = $2`, companyID, t.ID, t.Name, t.Position)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteType(ctx context.Context, companyID, id string) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM menu_types WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) TypeInUse(ctx context.Context, companyID, id string) (bool, error) {
	var used bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM menus WHERE company_id = $1 AND type_id = $2)`,
		companyID, id).Scan(&used)
	return used, err
}

// --- quick accesses --------------------------------------------------------

func (r *PostgresRepository) ListQuickAccesses(ctx context.Context, companyID string) ([]QuickAccess, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, icon, color, url_key, position FROM quick_accesses
		 WHERE company_id = $1 ORDER BY position, name`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []QuickAccess
	for rows.Next() {
		var q QuickAccess
		if err := rows.Scan(&q.ID, &q.Name, &q.Icon, &q.Color, &q.URLKey, &q.Position); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) CreateQuickAccess(ctx context.Context, companyID string, q *QuickAccess) error {
	q.ID = uuid.New().String()
	_, err := r.db.Exec(ctx,
		`INSERT INTO quick_accesses (id, company_id, name, icon, color, url_key, position)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		q.ID, companyID, q.Name, q.Icon, q.Color, q.URLKey, q.Position)
	return err
}

func (r *PostgresRepository) UpdateQuickAccess(ctx context.Context, companyID string, q *QuickAccess) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE quick_accesses SET name = $3, icon = $4, color = $5, url_key = $6, position = $7
		 WHERE company_id = $1 AND id = $2`,
		companyID, q.ID, q.Name, q.Icon, q.Color, q.URLKey, q.Position)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteQuickAccess(ctx context.Context, companyID, id string) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM quick_accesses WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

// ReplaceQuickAccesses swaps the whole set inside one transaction.
func (r *PostgresRepository) ReplaceQuickAccesses(ctx context.Context, companyID string, set []QuickAccess) ([]QuickAccess, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM quick_accesses WHERE company_id = $1`, companyID); err != nil {
		return nil, err
	}
	out := make([]QuickAccess, 0, len(set))
	for _, q := range set {
		q.ID = uuid.New().String()
		if _, err := tx.Exec(ctx,
			`INSERT INTO quick_accesses (id, company_id, name, icon, color, url_key, position)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			q.ID, companyID, q.Name, q.Icon, q.Color, q.URLKey, q.Position); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return out, nil
}
