package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del puerto StockMovementRepository sobre PostgreSQL (usable con pool o tx).
// Solo inserta y lee: la tabla no tiene UPDATE ni DELETE.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador de persistencia para movimientos. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento de stock inmutable.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, company_id, item_kind, item_id, type, quantity, order_ref, reason, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.CompanyID, movement.ItemKind, movement.ItemID,
		movement.Type, movement.Quantity, movement.OrderRef, movement.Reason,
		movement.CreatedAt, movement.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *StockMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	query := `
		SELECT id, company_id, item_kind, item_id, type, quantity, order_ref, reason, created_at, created_by
		FROM stock_movements WHERE id = $1`
	var m entity.StockMovement
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.CompanyID, &m.ItemKind, &m.ItemID, &m.Type, &m.Quantity,
		&m.OrderRef, &m.Reason, &m.CreatedAt, &m.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock movement: %w", err)
	}
	return &m, nil
}

// ListByItem lista el historial de movimientos de un ítem, más reciente
// primero, con filtro opcional de rango de fechas.
func (r *StockMovementRepo) ListByItem(itemKind, itemID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, company_id, item_kind, item_id, type, quantity, order_ref, reason, created_at, created_by
		FROM stock_movements
		WHERE item_kind = $1 AND item_id = $2
		  AND ($3::timestamptz IS NULL OR created_at >= $3)
		  AND ($4::timestamptz IS NULL OR created_at <= $4)
		ORDER BY created_at DESC LIMIT $5 OFFSET $6`
	rows, err := r.q.Query(context.Background(), query, itemKind, itemID, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

// ListByOrder lista todos los movimientos originados por un pedido
// (DeleteOrder los usa para calcular los movimientos compensatorios).
func (r *StockMovementRepo) ListByOrder(orderRef string) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, company_id, item_kind, item_id, type, quantity, order_ref, reason, created_at, created_by
		FROM stock_movements WHERE order_ref = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, orderRef)
	if err != nil {
		return nil, fmt.Errorf("list stock movements by order: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

func scanMovements(rows pgx.Rows) ([]*entity.StockMovement, error) {
	var movements []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(
			&m.ID, &m.CompanyID, &m.ItemKind, &m.ItemID, &m.Type, &m.Quantity,
			&m.OrderRef, &m.Reason, &m.CreatedAt, &m.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		movements = append(movements, &m)
	}
	return movements, rows.Err()
}
