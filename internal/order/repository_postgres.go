package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"khp/internal/httpx"
	"khp/internal/pagination"
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

const orderSelect = `
	SELECT o.id, o.table_id, COALESCE(t.label, ''), o.status, o.created_at, o.updated_at
	FROM orders o
	LEFT JOIN tables t ON t.id = o.table_id`

func scanOrder(row pgx.Row) (*Order, error) {
	var o Order
	if err := row.Scan(&o.ID, &o.TableID, &o.TableName, &o.Status, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *PostgresRepository) List(ctx context.Context, companyID string, f Filter, p pagination.Params) ([]Order, int, error) {
	where := []string{"o.company_id = $1"}
	args := []any{companyID}

	if len(f.Statuses) > 0 {
		args = append(args, f.Statuses)
		where = append(where, fmt.Sprintf("o.status = ANY($%d)", len(args)))
	}
	if f.TableID != "" {
		args = append(args, f.TableID)
		where = append(where, fmt.Sprintf("o.table_id = $%d", len(args)))
	}
	cond := strings.Join(where, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM orders o WHERE ` + cond
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, p.PerPage, p.Offset())
	query := fmt.Sprintf(
		`%s WHERE %s ORDER BY o.created_at DESC LIMIT $%d OFFSET $%d`,
		orderSelect, cond, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	for i := range out {
		steps, err := r.loadSteps(ctx, out[i].ID)
		if err != nil {
			return nil, 0, err
		}
		out[i].Steps = steps
	}
	return out, total, nil
}

func (r *PostgresRepository) Get(ctx context.Context, companyID, id string) (*Order, error) {
	o, err := scanOrder(r.db.QueryRow(ctx,
		orderSelect+` WHERE o.company_id = $1 AND o.id = $2`, companyID, id))
	if err == pgx.ErrNoRows {
		return nil, httpx.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	o.Steps, err = r.loadSteps(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *PostgresRepository) loadSteps(ctx context.Context, orderID string) ([]Step, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, order_id, position, status FROM order_steps
		 WHERE order_id = $1 ORDER BY position`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	steps := []Step{}
	for rows.Next() {
		var s Step
		if err := rows.Scan(&s.ID, &s.OrderID, &s.Position, &s.Status); err != nil {
			return nil, err
		}
		steps = append(steps, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range steps {
		menus, err := r.loadStepMenus(ctx, steps[i].ID)
		if err != nil {
			return nil, err
		}
		steps[i].Menus = menus
	}
	return steps, nil
}

func (r *PostgresRepository) loadStepMenus(ctx context.Context, stepID string) ([]StepMenu, error) {
	rows, err := r.db.Query(ctx,
		`SELECT sm.id, sm.step_id, sm.menu_id, m.name, sm.quantity, sm.service_type, sm.status, sm.served_at
		 FROM step_menus sm
		 JOIN menus m ON m.id = sm.menu_id
		 WHERE sm.step_id = $1
		 ORDER BY m.name`, stepID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	menus := []StepMenu{}
	for rows.Next() {
		var sm StepMenu
		if err := rows.Scan(&sm.ID, &sm.StepID, &sm.MenuID, &sm.MenuName, &sm.Quantity,
			&sm.ServiceType, &sm.Status, &sm.ServedAt); err != nil {
			return nil, err
		}
		menus = append(menus, sm)
	}
	return menus, rows.Err()
}

func (r *PostgresRepository) Create(ctx context.Context, companyID string, o *Order, menus []StepMenuInput) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	o.ID = uuid.New().String()
	o.Status = OrderPending
	now := time.Now()
	o.CreatedAt = now
	o.UpdatedAt = now
	if _, err := tx.Exec(ctx,
		`INSERT INTO orders (id, company_id, table_id, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $5)`,
		o.ID, companyID, o.TableID, o.Status, now); err != nil {
		return err
	}
	if err := insertStep(ctx, tx, o.ID, 0, menus); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *PostgresRepository) AppendStep(ctx context.Context, companyID, orderID string, menus []StepMenuInput) (*Step, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var status string
	err = tx.QueryRow(ctx,
		`SELECT status FROM orders WHERE company_id = $1 AND id = $2`,
		companyID, orderID).Scan(&status)
	if err == pgx.ErrNoRows {
		return nil, httpx.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if status != OrderPending {
		return nil, httpx.ErrConflict
	}

	var next int
	if err := tx.QueryRow(ctx,
		`SELECT COALESCE(MAX(position), -1) + 1 FROM order_steps WHERE order_id = $1`,
		orderID).Scan(&next); err != nil {
		return nil, err
	}
	stepID, err := insertStepReturning(ctx, tx, orderID, next, menus)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(ctx,
		`UPDATE orders SET updated_at = CURRENT_TIMESTAMP WHERE id = $1`, orderID); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	step := &Step{ID: stepID, OrderID: orderID, Position: next, Status: StatusPending}
	step.Menus, err = r.loadStepMenus(ctx, stepID)
	return step, err
}

func insertStep(ctx context.Context, tx pgx.Tx, orderID string, position int, menus []StepMenuInput) error {
	_, err := insertStepReturning(ctx, tx, orderID, position, menus)
	return err
}

func insertStepReturning(ctx context.Context, tx pgx.Tx, orderID string, position int, menus []StepMenuInput) (string, error) {
	stepID := uuid.New().String()
	if _, err := tx.Exec(ctx,
		`INSERT INTO order_steps (id, order_id, position, status)
		 VALUES ($1, $2, $3, $4)`, stepID, orderID, position, StatusPending); err != nil {
		return "", err
	}
	for _, m := range menus {
		if _, err := tx.Exec(ctx,
			`INSERT INTO step_menus (id, step_id, menu_id, quantity, service_type, status)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			uuid.New().String(), stepID, m.MenuID, m.Quantity, m.ServiceType, StatusPending); err != nil {
			return "", err
		}
	}
	return stepID, nil
}

func (r *PostgresRepository) GetStepMenu(ctx context.Context, companyID, id string) (*StepMenu, string, error) {
	var sm StepMenu
	var orderID string
	err := r.db.QueryRow(ctx,
		`SELECT sm.id, sm.step_id, sm.menu_id, m.name, sm.quantity, sm.service_type, sm.status, sm.served_at, o.id
		 FROM step_menus sm
		 JOIN menus m ON m.id = sm.menu_id
		 JOIN order_steps s ON s.id = sm.step_id
		 JOIN orders o ON o.id = s.order_id
		 WHERE o.company_id = $1 AND sm.id = $2`, companyID, id).
		Scan(&sm.ID, &sm.StepID, &sm.MenuID, &sm.MenuName, &sm.Quantity,
			&sm.ServiceType, &sm.Status, &sm.ServedAt, &orderID)
	if err == pgx.ErrNoRows {
		return nil, "", httpx.ErrNotFound
	}
	if err != nil {
		return nil, "", err
	}
	return &sm, orderID, nil
}

func (r *PostgresRepository) SetStepMenuStatus(ctx context.Context, companyID, id, status string, served bool) error {
	var servedAt *time.Time
	if served {
		now := time.Now()
		servedAt = &now
	}
	tag, err := r.db.Exec(ctx,
		`UPDATE step_menus SET status = $3, served_at = $4
		 WHERE id = $2 AND step_id IN (
			SELECT s.id FROM order_steps s
			JOIN orders o ON o.id = s.order_id
			WHERE o.company_id = $1
		 )`, companyID, id, status, servedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) SetOrderStatus(ctx context.Context, companyID, id, status string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE orders SET status = $3, updated_at = CURRENT_TIMESTAMP
		 WHERE company_id = $1 AND id = $2`, companyID, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) ListOpen(ctx context.Context, companyID string) ([]Order, error) {
	rows, err := r.db.Query(ctx,
		orderSelect+` WHERE o.company_id = $1 AND o.status = 'PENDING' ORDER BY o.created_at`,
		companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		steps, err := r.loadSteps(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Steps = steps
	}
	return out, nil
}
