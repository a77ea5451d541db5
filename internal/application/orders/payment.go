package orders

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/distribuidora-api/internal/application/dto"
	"github.com/jhoicas/distribuidora-api/internal/domain"
	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
)

// RegisterPayment abona un monto al pedido. La validación de no pagar de más
// ocurre al momento del pago, con la fila bloqueada: dos abonos concurrentes
// no pueden exceder el saldo pendiente (Total - TotalPayed).
func (uc *LifecycleUseCase) RegisterPayment(ctx context.Context, companyID, orderID string, amount decimal.Decimal) (*dto.OrderResponse, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	var updated *entity.Order
	err := uc.txRunner.RunOrder(ctx, func(
		orderRepo repository.OrderRepository,
		_ repository.CustomerRepository,
		_ repository.EquipmentLoanRepository,
		_ repository.StockMovementRepository,
		_ repository.ProductRepository,
		_ repository.EquipmentRepository,
	) error {
		order, err := orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil || order.CompanyID != companyID {
			return domain.ErrNotFound
		}
		if amount.GreaterThan(order.Remaining()) {
			return domain.ErrPreconditionFailed
		}

		order.TotalPayed = order.TotalPayed.Add(amount)
		if order.Remaining().LessThanOrEqual(decimal.Zero) {
			order.PaymentStatus = entity.PaymentStatusPaid
		} else {
			order.PaymentStatus = entity.PaymentStatusUnpaid
		}
		order.UpdatedAt = time.Now()
		if err := orderRepo.Update(order); err != nil {
			return err
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.toResponse(updated, nil), nil
}
