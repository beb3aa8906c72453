package room

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

// A table is occupied while a PENDING order points at it.
const tableSelect = `
	SELECT t.id, t.room_id, t.label, t.seats,
	       EXISTS (SELECT 1 FROM orders o WHERE o.table_id = t.id AND o.status = 'PENDING')
	FROM tables t`

func (r *PostgresRepository) List(ctx context.Context, companyID string) ([]Room, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, code FROM rooms WHERE company_id = $1 ORDER BY name`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Room
	for rows.Next() {
		var rm Room
		if err := rows.Scan(&rm.ID, &rm.Name, &rm.Code); err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		tables, err := r.loadTables(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Tables = tables
	}
	return out, nil
}

func (r *PostgresRepository) Get(ctx context.Context, companyID, id string) (*Room, error) {
	var rm Room
	err := r.db.QueryRow(ctx,
		`SELECT id, name, code FROM rooms WHERE company_id = $1 AND id = $2`,
		companyID, id).Scan(&rm.ID, &rm.Name, &rm.Code)
	if err == pgx.ErrNoRows {
		return nil, httpx.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	rm.Tables, err = r.loadTables(ctx, rm.ID)
	if err != nil {
		return nil, err
	}
	return &rm, nil
}

func (r *PostgresRepository) loadTables(ctx context.Context, roomID string) ([]Table, error) {
	rows, err := r.db.Query(ctx, tableSelect+` WHERE t.room_id = $1 ORDER BY t.label`, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tables := []Table{}
	for rows.Next() {
		var t Table
		if err := rows.Scan(&t.ID, &t.RoomID, &t.Label, &t.Seats, &t.Occupied); err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, rows.Err()
}

func (r *PostgresRepository) Create(ctx context.Context, companyID string, rm *Room) error {
	rm.ID = uuid.New().String()
	_, err := r.db.Exec(ctx,
		`INSERT INTO rooms (id, company_id, code, name) VALUES ($1, $2, $3, $4)`,
		rm.ID, companyID, rm.Code, rm.Name)
	return err
}

func (r *PostgresRepository) Update(ctx context.Context, companyID string, rm *Room) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE rooms SET code = $3, name = $4 WHERE company_id = $1 AND id = $2`,
		companyID, rm.ID, rm.Code, rm.Name)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, companyID, id string) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM rooms WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) HasOrders(ctx context.Context, companyID, roomID string) (bool, error) {
	var has bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM orders o
			JOIN tables t ON t.id = o.table_id
			WHERE o.company_id = $1 AND t.room_id = $2
		)`, companyID, roomID).Scan(&has)
	return has, err
}

func (r *PostgresRepository) CreateTable(ctx context.Context, companyID string, t *Table) error {
	// Room must belong to the company before the table is attached to it.
	var ok bool
	if err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM rooms WHERE company_id = $1 AND id = $2)`,
		companyID, t.RoomID).Scan(&ok); err != nil {
		return err
	}
	if !ok {
		return httpx.ErrNotFound
	}
	t.ID = uuid.New().String()
	_, err := r.db.Exec(ctx,
		`INSERT INTO tables (id, room_id, label, seats) VALUES ($1, $2, $3, $4)`,
		t.ID, t.RoomID, t.Label, t.Seats)
	return err
}

func (r *PostgresRepository) UpdateTable(ctx context.Context, companyID string, t *Table) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE tables SET label = $3, seats = $4
		 WHERE id = $2 AND room_id IN (SELECT id FROM rooms WHERE company_id = $1)`,
		companyID, t.ID, t.Label, t.Seats)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteTable(ctx context.Context, companyID, id string) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM tables
		 WHERE id = $2 AND room_id IN (SELECT id FROM rooms WHERE company_id = $1)`,
		companyID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) TableHasOrders(ctx context.Context, companyID, tableID string) (bool, error) {
	var has bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM orders WHERE company_id = $1 AND table_id = $2
		)`, companyID, tableID).Scan(&has)
	return has, err
}
