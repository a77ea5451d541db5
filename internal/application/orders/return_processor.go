package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/distribuidora-api/internal/application/dto"
	"github.com/jhoicas/distribuidora-api/internal/domain"
	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
)

// ProcessProductReturn procesa la devolución de mercadería vendida (distinta
// de la devolución de equipo prestado, que va por los préstamos). Por cada
// par producto/cantidad busca el precio unitario cobrado en la línea del
// pedido (nunca el precio de catálogo vigente), acredita el stock con un
// movimiento return y descuenta el total del pedido. Todo en una
// transacción: una línea irresoluble aborta la operación completa, sin
// créditos parciales. Cero ítems es un no-op.
func (uc *LifecycleUseCase) ProcessProductReturn(ctx context.Context, companyID, userID, orderID string, in dto.ProductReturnRequest) (*dto.OrderResponse, error) {
	if len(in.Items) == 0 {
		order, items, err := uc.getOrderWithItems(companyID, orderID)
		if err != nil {
			return nil, err
		}
		return uc.toResponse(order, items), nil
	}

	now := time.Now()
	var updated *entity.Order
	var updatedItems []*entity.OrderItem
	err := uc.txRunner.RunOrder(ctx, func(
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
		if order.DeliveryStatus != entity.DeliveryStatusColetado {
			// Solo se devuelve mercadería ya descontada del stock.
			return domain.ErrPreconditionFailed
		}

		items, err := orderRepo.ListItems(order.ID)
		if err != nil {
			return err
		}
		linesByProduct := make(map[string]*entity.OrderItem, len(items))
		for _, item := range items {
			if item.ItemKind == entity.ItemKindProduct {
				linesByProduct[item.ItemID] = item
			}
		}

		totalDiscount := decimal.Zero
		for _, ret := range in.Items {
			if ret.Quantity <= 0 || ret.ProductID == "" {
				return domain.ErrInvalidInput
			}
			line, ok := linesByProduct[ret.ProductID]
			if !ok {
				return domain.ErrLinePriceMissing
			}
			if ret.Quantity > line.Returnable() {
				return domain.ErrPreconditionFailed
			}
			totalDiscount = totalDiscount.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(ret.Quantity))))

			if err := uc.ledger.ApplyInTx(
				movRepo, productRepo, equipmentRepo,
				companyID, userID,
				entity.ItemKindProduct, ret.ProductID, entity.MovementTypeReturn,
				ret.Quantity, order.ID, fmt.Sprintf("devolución de venta: %s", line.ItemName), now,
			); err != nil {
				return err
			}

			line.ReturnedQuantity += ret.Quantity
			if err := orderRepo.UpdateItem(line); err != nil {
				return err
			}
		}

		order.Total = order.Total.Sub(totalDiscount)
		if order.Remaining().LessThanOrEqual(decimal.Zero) {
			order.PaymentStatus = entity.PaymentStatusPaid
		}
		order.UpdatedAt = now
		if err := orderRepo.Update(order); err != nil {
			return err
		}
		updated = order
		updatedItems = items
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.toResponse(updated, updatedItems), nil
}
