package loss

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

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
) ([]*Loss, int, error) {

	var total int
	err := r.db.QueryRow(ctx, `
		SELECT count(*) FROM losses WHERE company_id = $1
	`, companyID).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT ls.id, ls.entity_type, ls.entity_id, ls.location_id,
		       ls.quantity, ls.reason, ls.created_at,
		       COALESCE(i.name, p.name, '')
		FROM losses ls
		LEFT JOIN ingredients i ON ls.entity_type = 'ingredient' AND i.id = ls.entity_id
		LEFT JOIN preparations p ON ls.entity_type = 'preparation' AND p.id = ls.entity_id
		WHERE ls.company_id = $1
		ORDER BY ls.created_at DESC, ls.id
		LIMIT $2 OFFSET $3
	`, companyID, p.PerPage, p.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var losses []*Loss
	for rows.Next() {
		l := &Loss{}
		err := rows.Scan(
			&l.ID, &l.EntityType, &l.EntityID, &l.LocationID,
			&l.Quantity, &l.Reason, &l.CreatedAt, &l.EntityName,
		)
		if err != nil {
			return nil, 0, err
		}
		losses = append(losses, l)
	}

	return losses, total, rows.Err()
}

func (r *PostgresRepository) Insert(ctx context.Context, companyID string, l *Loss) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO losses (id, company_id, entity_type, entity_id, location_id, quantity, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, l.ID, companyID, l.EntityType, l.EntityID, l.LocationID, l.Quantity, l.Reason)
	return err
}

func stockTable(entityType string) (table, column string, err error) {
	switch entityType {
	case EntityIngredient:
		return "ingredient_stocks", "ingredient_id", nil
	case EntityPreparation:
		return "preparation_stocks", "preparation_id", nil
	default:
		return "", "", fmt.Errorf("unknown entity type %q", entityType)
	}
}

func (r *PostgresRepository) GetEntityStock(ctx context.Context, entityType, entityID, locationID string) (float64, error) {
	table, column, err := stockTable(entityType)
	if err != nil {
		return 0, err
	}

	var qty float64
	query := fmt.Sprintf(`SELECT quantity FROM %s WHERE %s = $1 AND location_id = $2`, table, column)
	err = r.db.QueryRow(ctx, query, entityID, locationID).Scan(&qty)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}
	return qty, nil
}

func (r *PostgresRepository) SetEntityStock(ctx context.Context, entityType, entityID, locationID string, quantity float64) error {
	table, column, err := stockTable(entityType)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, location_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (%s, location_id)
		DO UPDATE SET quantity = EXCLUDED.quantity
	`, table, column, column)
	_, err = r.db.Exec(ctx, query, entityID, locationID, quantity)
	return err
}
