package menu

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

const menuSelect = `
	SELECT m.id, m.name, m.price, m.category_id, c.name, m.type_id, t.name,
	       m.is_public, m.image_url, m.created_at
	FROM menus m
	LEFT JOIN menu_categories c ON c.id = m.category_id
	LEFT JOIN menu_types t ON t.id = m.type_id
`

func scanMenu(row pgx.Row) (*Menu, error) {
	m := &Menu{}
	err := row.Scan(
		&m.ID, &m.Name, &m.Price, &m.CategoryID, &m.CategoryName,
		&m.TypeID, &m.TypeName, &m.IsPublic, &m.ImageURL, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *PostgresRepository) List(
	ctx context.Context,
	companyID string,
	p pagination.Params,
	f Filter,
) ([]*Menu, int, error) {

	if f.CategoryIDs == nil {
		f.CategoryIDs = []string{}
	}
	if f.TypeIDs == nil {
		f.TypeIDs = []string{}
	}

	var total int
	err := r.db.QueryRow(ctx, `
		SELECT count(*) FROM menus
		WHERE company_id = $1
		  AND ($2 = '' OR name ILIKE '%' || $2 || '%')
		  AND (cardinality($3::uuid[]) = 0 OR category_id = ANY($3::uuid[]))
		  AND (cardinality($4::uuid[]) = 0 OR type_id = ANY($4::uuid[]))
	`, companyID, p.Search, f.CategoryIDs, f.TypeIDs).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, menuSelect+`
		WHERE m.company_id = $1
		  AND ($2 = '' OR m.name ILIKE '%' || $2 || '%')
		  AND (cardinality($3::uuid[]) = 0 OR m.category_id = ANY($3::uuid[]))
		  AND (cardinality($4::uuid[]) = 0 OR m.type_id = ANY($4::uuid[]))
		ORDER BY m.name, m.id
		LIMIT $5 OFFSET $6
	`, companyID, p.Search, f.CategoryIDs, f.TypeIDs, p.PerPage, p.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var menus []*Menu
	for rows.Next() {
		m, err := scanMenu(rows)
		if err != nil {
			return nil, 0, err
		}
		menus = append(menus, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for _, m := range menus {
		if err := r.loadItems(ctx, m); err != nil {
			return nil, 0, err
		}
	}

	return menus, total, nil
}

func (r *PostgresRepository) ListPublic(ctx context.Context, publicMenuKey string) ([]*Menu, error) {
	rows, err := r.db.Query(ctx, menuSelect+`
		JOIN companies co ON co.id = m.company_id
		WHERE co.public_menu_key = $1 AND m.is_public = TRUE
		ORDER BY t.position, c.position, m.name
	`, publicMenuKey)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var menus []*Menu
	for rows.Next() {
		m, err := scanMenu(rows)
		if err != nil {
			return nil, err
		}
		m.Items = []Item{}
		menus = append(menus, m)
	}
	return menus, rows.Err()
}

func (r *PostgresRepository) loadItems(ctx context.Context, m *Menu) error {
	rows, err := r.db.Query(ctx, `
		SELECT mi.id, mi.entity_type, mi.entity_id, mi.quantity, mi.unit, mi.location_id,
		       COALESCE(i.name, p.name, '')
		FROM menu_items mi
		LEFT JOIN ingredients i ON mi.entity_type = 'ingredient' AND i.id = mi.entity_id
		LEFT JOIN preparations p ON mi.entity_type = 'preparation' AND p.id = mi.entity_id
		WHERE mi.menu_id = $1
	`, m.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	m.Items = []Item{}
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.EntityType, &it.EntityID, &it.Quantity, &it.Unit, &it.LocationID, &it.EntityName); err != nil {
			return err
		}
		m.Items = append(m.Items, it)
	}
	return rows.Err()
}

func (r *PostgresRepository) Get(ctx context.Context, companyID, id string) (*Menu, error) {
	m, err := scanMenu(r.db.QueryRow(ctx, menuSelect+`
		WHERE m.company_id = $1 AND m.id = $2
	`, companyID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}

	if err := r.loadItems(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (r *PostgresRepository) Create(ctx context.Context, companyID string, m *Menu) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO menus (id, company_id, category_id, type_id, name, price, is_public)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, m.ID, companyID, m.CategoryID, m.TypeID, m.Name, m.Price, m.IsPublic)
	if err != nil {
		return err
	}

	for _, it := range m.Items {
		_, err = tx.Exec(ctx, `
			INSERT INTO menu_items (id, menu_id, entity_type, entity_id, quantity, unit, location_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, uuid.New().String(), m.ID, it.EntityType, it.EntityID, it.Quantity, it.Unit, it.LocationID)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PostgresRepository) Update(ctx context.Context, companyID string, m *Menu) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE menus
		SET name = $1, price = $2, category_id = $3, type_id = $4, is_public = $5
		WHERE company_id = $6 AND id = $7
	`, m.Name, m.Price, m.CategoryID, m.TypeID, m.IsPublic, companyID, m.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}

	// Items are replaced wholesale on edit
	if _, err := tx.Exec(ctx, `DELETE FROM menu_items WHERE menu_id = $1`, m.ID); err != nil {
		return err
	}

	for _, it := range m.Items {
		_, err = tx.Exec(ctx, `
			INSERT INTO menu_items (id, menu_id, entity_type, entity_id, quantity, unit, location_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, uuid.New().String(), m.ID, it.EntityType, it.EntityID, it.Quantity, it.Unit, it.LocationID)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PostgresRepository) UpdateImage(ctx context.Context, companyID, id, imageURL string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE menus SET image_url = $1
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
		DELETE FROM menus WHERE company_id = $1 AND id = $2
	`, companyID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) InOpenOrder(ctx context.Context, id string) (bool, error) {
	var exists int
	err := r.db.QueryRow(ctx, `
		SELECT 1
		FROM step_menus sm
		JOIN order_steps os ON os.id = sm.step_id
		JOIN orders o ON o.id = os.order_id
		WHERE sm.menu_id = $1 AND o.status = 'PENDING'
		LIMIT 1
	`, id).Scan(&exists)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
