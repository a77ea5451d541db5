package orders

import (
	"context"
	"time"

	"github.com/jhoicas/distribuidora-api/internal/domain"
	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
)

// DeleteOrder elimina un pedido por vía administrativa. Antes de borrar
// reversa todo efecto de stock que el pedido causó: por cada sale_deduction
// que lo referencia emite un movimiento return compensatorio (los
// movimientos son inmutables, la reversa es un movimiento nuevo). Los
// préstamos de equipo no se tocan: son rastro de auditoría y se cierran por
// su propio flujo de devolución.
func (uc *LifecycleUseCase) DeleteOrder(ctx context.Context, companyID, userID, orderID string) error {
	now := time.Now()
	return uc.txRunner.RunOrder(ctx, func(
		orderRepo repository.OrderRepository,
		_ repository.CustomerRepository,
		_ repository.EquipmentLoanRepository,
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		equipmentRepo repository.EquipmentRepository,
	) error {
		order, err := orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil || order.CompanyID != companyID {
			return domain.ErrNotFound
		}

		movements, err := movRepo.ListByOrder(orderID)
		if err != nil {
			return err
		}
		// Neto descontado por ítem: deducciones menos devoluciones ya
		// aplicadas, para no acreditar dos veces.
		type key struct{ kind, id string }
		net := make(map[key]int)
		for _, m := range movements {
			k := key{m.ItemKind, m.ItemID}
			switch m.Type {
			case entity.MovementTypeSaleDeduction:
				net[k] += m.Quantity
			case entity.MovementTypeReturn:
				net[k] -= m.Quantity
			}
		}
		for k, qty := range net {
			if qty <= 0 {
				continue
			}
			if err := uc.ledger.ApplyInTx(
				movRepo, productRepo, equipmentRepo,
				companyID, userID,
				k.kind, k.id, entity.MovementTypeReturn,
				qty, orderID, "reverso por eliminación de pedido", now,
			); err != nil {
				return err
			}
		}

		return orderRepo.Delete(orderID)
	})
}
