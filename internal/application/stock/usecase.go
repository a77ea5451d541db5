package stock

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

// Policy política de stock. Por decisión de negocio la verificación de
// reserva es consultiva (advertir, no bloquear la venta); BlockOnInsufficient
// la endurece por configuración.
type Policy struct {
	BlockOnInsufficient bool
}

// LedgerUseCase es el libro de stock: el único camino legítimo para mutar el
// conteo de un producto o equipo es un movimiento inmutable registrado aquí,
// dentro de una transacción que agrupa la fila y el ajuste.
type LedgerUseCase struct {
	txRunner      TxRunner
	orderRepo     repository.OrderRepository
	productRepo   repository.ProductRepository
	equipmentRepo repository.EquipmentRepository
	events        ports.EventPublisher
	policy        Policy
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner TxRunner,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	equipmentRepo repository.EquipmentRepository,
	events ports.EventPublisher,
	policy Policy,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:      txRunner,
		orderRepo:     orderRepo,
		productRepo:   productRepo,
		equipmentRepo: equipmentRepo,
		events:        events,
		policy:        policy,
	}
}

// MovementInput entrada para registrar un movimiento. Quantity siempre
// positivo; Type (sale_deduction/return/adjustment) define el signo.
type MovementInput struct {
	CompanyID string
	UserID    string
	ItemKind  string // product | equipment
	ItemID    string
	Type      string
	Quantity  int
	OrderRef  string
	Reason    string
}

func validMovementType(t string) bool {
	switch t {
	case entity.MovementTypeSaleDeduction, entity.MovementTypeReturn, entity.MovementTypeAdjustment:
		return true
	}
	return false
}

func validItemKind(k string) bool {
	return k == entity.ItemKindProduct || k == entity.ItemKindEquipment
}

// ApplyMovement valida la entrada, abre una transacción y registra el
// movimiento junto con el ajuste del conteo. El libro no rechaza un conteo
// resultante negativo: la verificación previa es responsabilidad del caller
// vía el cálculo de reserva (política consultiva).
func (uc *LedgerUseCase) ApplyMovement(ctx context.Context, input MovementInput) (*dto.MovementResponse, error) {
	if !validMovementType(input.Type) || !validItemKind(input.ItemKind) {
		return nil, domain.ErrInvalidInput
	}
	if input.ItemID == "" || input.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var movement *entity.StockMovement
	var newStock int
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		equipmentRepo repository.EquipmentRepository,
	) error {
		var err error
		movement, newStock, err = uc.applyInTx(movRepo, productRepo, equipmentRepo, input, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.events.MovementRegistered(ctx, movement)
	return &dto.MovementResponse{
		ID:        movement.ID,
		ItemKind:  movement.ItemKind,
		ItemID:    movement.ItemID,
		Type:      movement.Type,
		Quantity:  movement.Quantity,
		OrderRef:  movement.OrderRef,
		Reason:    movement.Reason,
		CreatedAt: movement.CreatedAt,
		CreatedBy: movement.CreatedBy,
		NewStock:  newStock,
	}, nil
}

// ApplyInTx registra un movimiento usando los repositorios del caller (misma
// transacción). Lo usan el ciclo de vida del pedido, las devoluciones y los
// préstamos para que sus efectos de stock caigan con su propia transacción.
func (uc *LedgerUseCase) ApplyInTx(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	equipmentRepo repository.EquipmentRepository,
	companyID, userID, itemKind, itemID, movType string,
	quantity int,
	orderRef, reason string,
	now time.Time,
) error {
	input := MovementInput{
		CompanyID: companyID,
		UserID:    userID,
		ItemKind:  itemKind,
		ItemID:    itemID,
		Type:      movType,
		Quantity:  quantity,
		OrderRef:  orderRef,
		Reason:    reason,
	}
	if !validMovementType(input.Type) || !validItemKind(input.ItemKind) || input.Quantity <= 0 {
		return domain.ErrInvalidInput
	}
	_, _, err := uc.applyInTx(movRepo, productRepo, equipmentRepo, input, now)
	return err
}

// applyInTx bloquea la fila del ítem, inserta el movimiento inmutable y
// aplica el delta al conteo. Todo o nada: el runner del caller hace
// Commit/Rollback.
func (uc *LedgerUseCase) applyInTx(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	equipmentRepo repository.EquipmentRepository,
	input MovementInput,
	now time.Time,
) (*entity.StockMovement, int, error) {
	movement := &entity.StockMovement{
		ID:        uuid.New().String(),
		CompanyID: input.CompanyID,
		ItemKind:  input.ItemKind,
		ItemID:    input.ItemID,
		Type:      input.Type,
		Quantity:  input.Quantity,
		OrderRef:  input.OrderRef,
		Reason:    input.Reason,
		CreatedAt: now,
		CreatedBy: input.UserID,
	}

	var current int
	switch input.ItemKind {
	case entity.ItemKindProduct:
		product, err := productRepo.GetForUpdate(input.ItemID)
		if err != nil {
			return nil, 0, err
		}
		if product == nil || product.CompanyID != input.CompanyID {
			return nil, 0, domain.ErrNotFound
		}
		current = product.Stock
		if err := productRepo.AdjustStock(input.ItemID, movement.Delta()); err != nil {
			return nil, 0, err
		}
	case entity.ItemKindEquipment:
		equipment, err := equipmentRepo.GetForUpdate(input.ItemID)
		if err != nil {
			return nil, 0, err
		}
		if equipment == nil || equipment.CompanyID != input.CompanyID {
			return nil, 0, domain.ErrNotFound
		}
		current = equipment.Stock
		if err := equipmentRepo.AdjustStock(input.ItemID, movement.Delta()); err != nil {
			return nil, 0, err
		}
	default:
		return nil, 0, domain.ErrInvalidInput
	}

	if err := movRepo.Create(movement); err != nil {
		return nil, 0, err
	}
	return movement, current + movement.Delta(), nil
}

// ListMovements lista los movimientos de un ítem (historial del libro).
func (uc *LedgerUseCase) ListMovements(ctx context.Context, companyID, itemKind, itemID string, from, to *time.Time, limit, offset int) ([]*dto.MovementResponse, error) {
	if !validItemKind(itemKind) || itemID == "" {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	var movements []*entity.StockMovement
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		_ repository.ProductRepository,
		_ repository.EquipmentRepository,
	) error {
		var err error
		movements, err = movRepo.ListByItem(itemKind, itemID, from, to, limit, offset)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		if m.CompanyID != companyID {
			continue
		}
		out = append(out, &dto.MovementResponse{
			ID:        m.ID,
			ItemKind:  m.ItemKind,
			ItemID:    m.ItemID,
			Type:      m.Type,
			Quantity:  m.Quantity,
			OrderRef:  m.OrderRef,
			Reason:    m.Reason,
			CreatedAt: m.CreatedAt,
			CreatedBy: m.CreatedBy,
		})
	}
	return out, nil
}
