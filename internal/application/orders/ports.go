package orders

import (
	"context"
	"time"

	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción que cubre el pedido
// y todos sus efectos colaterales (cliente, préstamos, movimientos de stock).
// Hace de las transiciones de estado una unidad compensable: o cae todo el
// efecto de la transición o no cae nada.
type TxRunner interface {
	RunOrder(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		customerRepo repository.CustomerRepository,
		loanRepo repository.EquipmentLoanRepository,
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		equipmentRepo repository.EquipmentRepository,
	) error) error
}

// StockLedger integra el ciclo de vida del pedido con el libro de stock
// (misma transacción del caller).
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

// LoanTracker integra el ciclo de vida con los préstamos de equipo (misma
// transacción del caller).
type LoanTracker interface {
	RegisterLoanInTx(
		loanRepo repository.EquipmentLoanRepository,
		companyID, customerID string,
		equipment *entity.Equipment,
		quantity int,
		orderRef string,
		now time.Time,
	) (*entity.EquipmentLoan, error)
	ReturnLoanInTx(
		loanRepo repository.EquipmentLoanRepository,
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		equipmentRepo repository.EquipmentRepository,
		companyID, userID, loanID string,
		quantity int,
		now time.Time,
	) (*entity.EquipmentLoan, error)
}

// AvailabilityChecker verificación consultiva de disponibilidad al crear un
// pedido (advierte; solo bloquea si la política de stock lo exige).
type AvailabilityChecker interface {
	CheckAvailability(ctx context.Context, companyID, productID string, wanted int) (string, error)
}
