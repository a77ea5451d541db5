package loans

import (
	"context"
	"time"

	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción que agrupa el
// préstamo, su fila de auditoría y el movimiento de stock de la devolución.
type TxRunner interface {
	RunLoan(ctx context.Context, fn func(
		loanRepo repository.EquipmentLoanRepository,
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		equipmentRepo repository.EquipmentRepository,
	) error) error
}

// StockLedger integra los préstamos con el libro de stock: ApplyInTx
// registra el movimiento usando los repositorios del caller (misma
// transacción); si retorna error el caller hace rollback.
type StockLedger interface {
	ApplyInTx(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		equipmentRepo repository.EquipmentRepository,
		companyID, userID, itemKind, itemID, movType string,
		quantity int,
		orderRef, reason string,
		now time.Time,
	) error
}
