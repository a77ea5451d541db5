package loans

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/distribuidora-api/internal/application/dto"
	"github.com/jhoicas/distribuidora-api/internal/application/ports"
	"github.com/jhoicas/distribuidora-api/internal/domain"
	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
)

// TrackerUseCase administra los préstamos de equipo retornable: registro
// contra un cliente (normalmente al confirmar una entrega) y devoluciones
// parciales o totales. La devolución acredita el stock del equipo con un
// movimiento de tipo return en la misma transacción; la salida física la
// representa el préstamo activo, no un movimiento.
type TrackerUseCase struct {
	txRunner      TxRunner
	ledger        StockLedger
	loanRepo      repository.EquipmentLoanRepository
	customerRepo  repository.CustomerRepository
	equipmentRepo repository.EquipmentRepository
	events        ports.EventPublisher
}

// NewTrackerUseCase construye el caso de uso.
func NewTrackerUseCase(
	txRunner TxRunner,
	ledger StockLedger,
	loanRepo repository.EquipmentLoanRepository,
	customerRepo repository.CustomerRepository,
	equipmentRepo repository.EquipmentRepository,
	events ports.EventPublisher,
) *TrackerUseCase {
	return &TrackerUseCase{
		txRunner:      txRunner,
		ledger:        ledger,
		loanRepo:      loanRepo,
		customerRepo:  customerRepo,
		equipmentRepo: equipmentRepo,
		events:        events,
	}
}

// RegisterLoan registra un préstamo manual (fuera del flujo de entrega).
func (uc *TrackerUseCase) RegisterLoan(ctx context.Context, companyID, userID string, in dto.RegisterLoanRequest) (*dto.LoanResponse, error) {
	if in.CustomerID == "" || in.EquipmentID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil || customer.CompanyID != companyID {
		return nil, domain.ErrCustomerNotFound
	}
	equipment, err := uc.equipmentRepo.GetByID(in.EquipmentID)
	if err != nil {
		return nil, err
	}
	if equipment == nil || equipment.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	var loan *entity.EquipmentLoan
	err = uc.txRunner.RunLoan(ctx, func(
		loanRepo repository.EquipmentLoanRepository,
		_ repository.StockMovementRepository,
		_ repository.ProductRepository,
		_ repository.EquipmentRepository,
	) error {
		var err error
		loan, err = uc.RegisterLoanInTx(loanRepo, companyID, in.CustomerID, equipment, in.Quantity, in.OrderRef, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.events.LoanRegistered(ctx, loan)
	return toLoanResponse(loan), nil
}

// RegisterLoanInTx crea el préstamo usando el repositorio del caller (misma
// transacción). Lo usa ConfirmDelivery para que préstamos y avance de estado
// caigan juntos.
func (uc *TrackerUseCase) RegisterLoanInTx(
	loanRepo repository.EquipmentLoanRepository,
	companyID, customerID string,
	equipment *entity.Equipment,
	quantity int,
	orderRef string,
	now time.Time,
) (*entity.EquipmentLoan, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	loan := &entity.EquipmentLoan{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		CustomerID:    customerID,
		EquipmentID:   equipment.ID,
		EquipmentName: equipment.Name,
		Quantity:      quantity,
		Status:        entity.LoanStatusActive,
		OrderRef:      orderRef,
		LoanDate:      now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := loanRepo.Create(loan); err != nil {
		return nil, err
	}
	return loan, nil
}

// ReturnLoan procesa una devolución parcial o total de un préstamo.
func (uc *TrackerUseCase) ReturnLoan(ctx context.Context, companyID, userID, loanID string, quantity int) (*dto.LoanResponse, error) {
	now := time.Now()
	var loan *entity.EquipmentLoan
	err := uc.txRunner.RunLoan(ctx, func(
		loanRepo repository.EquipmentLoanRepository,
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		equipmentRepo repository.EquipmentRepository,
	) error {
		var err error
		loan, err = uc.ReturnLoanInTx(loanRepo, movRepo, productRepo, equipmentRepo, companyID, userID, loanID, quantity, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.events.LoanReturned(ctx, loan, quantity)
	return toLoanResponse(loan), nil
}

// ReturnLoanInTx aplica la devolución con los repositorios del caller.
// Regla: la cantidad devuelta nunca puede exceder lo pendiente
// (original - ya devuelto); exceder o devolver sobre un préstamo cerrado es
// ErrPreconditionFailed. Acredita el stock del equipo y deja la fila de
// auditoría en la misma transacción.
func (uc *TrackerUseCase) ReturnLoanInTx(
	loanRepo repository.EquipmentLoanRepository,
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	equipmentRepo repository.EquipmentRepository,
	companyID, userID, loanID string,
	quantity int,
	now time.Time,
) (*entity.EquipmentLoan, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	loan, err := loanRepo.GetForUpdate(loanID)
	if err != nil {
		return nil, err
	}
	if loan == nil || loan.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	if loan.Status == entity.LoanStatusReturned || quantity > loan.Outstanding() {
		return nil, domain.ErrPreconditionFailed
	}

	loan.ReturnedQuantity += quantity
	if loan.Outstanding() == 0 {
		loan.Status = entity.LoanStatusReturned
		returnDate := now
		loan.ReturnDate = &returnDate
	} else {
		loan.Status = entity.LoanStatusPartiallyReturned
	}
	loan.UpdatedAt = now
	if err := loanRepo.Update(loan); err != nil {
		return nil, err
	}

	audit := &entity.LoanReturn{
		ID:         uuid.New().String(),
		LoanID:     loan.ID,
		Quantity:   quantity,
		Remaining:  loan.Outstanding(),
		ReturnedBy: userID,
		ReturnedAt: now,
	}
	if err := loanRepo.CreateReturn(audit); err != nil {
		return nil, err
	}

	if err := uc.ledger.ApplyInTx(
		movRepo, productRepo, equipmentRepo,
		companyID, userID,
		entity.ItemKindEquipment, loan.EquipmentID, entity.MovementTypeReturn,
		quantity, loan.OrderRef, "devolución de préstamo de equipo", now,
	); err != nil {
		return nil, err
	}
	return loan, nil
}

// ListOpenByCustomer lista los préstamos con unidades pendientes de un
// cliente (para la confirmación de coleta).
func (uc *TrackerUseCase) ListOpenByCustomer(ctx context.Context, companyID, customerID string) ([]*dto.LoanResponse, error) {
	loans, err := uc.loanRepo.ListOpenByCustomer(companyID, customerID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.LoanResponse, 0, len(loans))
	for _, l := range loans {
		out = append(out, toLoanResponse(l))
	}
	return out, nil
}

// ListReturns lista la auditoría de devoluciones de un préstamo.
func (uc *TrackerUseCase) ListReturns(ctx context.Context, companyID, loanID string) ([]*dto.LoanReturnAudit, error) {
	loan, err := uc.loanRepo.GetByID(loanID)
	if err != nil {
		return nil, err
	}
	if loan == nil || loan.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	returns, err := uc.loanRepo.ListReturns(loanID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.LoanReturnAudit, 0, len(returns))
	for _, r := range returns {
		out = append(out, &dto.LoanReturnAudit{
			ID:         r.ID,
			LoanID:     r.LoanID,
			Quantity:   r.Quantity,
			Remaining:  r.Remaining,
			ReturnedBy: r.ReturnedBy,
			ReturnedAt: r.ReturnedAt,
		})
	}
	return out, nil
}

func toLoanResponse(l *entity.EquipmentLoan) *dto.LoanResponse {
	return &dto.LoanResponse{
		ID:               l.ID,
		CustomerID:       l.CustomerID,
		EquipmentID:      l.EquipmentID,
		EquipmentName:    l.EquipmentName,
		Quantity:         l.Quantity,
		ReturnedQuantity: l.ReturnedQuantity,
		Outstanding:      l.Outstanding(),
		Status:           l.Status,
		OrderRef:         l.OrderRef,
		LoanDate:         l.LoanDate,
		ReturnDate:       l.ReturnDate,
	}
}
