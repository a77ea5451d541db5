package repository

import (
	"time"

	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia para movimientos
// de stock. Solo hay Create y lecturas: los movimientos son inmutables.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	ListByItem(itemKind, itemID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	ListByOrder(orderRef string) ([]*entity.StockMovement, error)
}
