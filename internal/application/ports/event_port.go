package ports

import (
	"context"

	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
)

// EventPublisher publica eventos de negocio hacia el broker (fire-and-forget:
// un fallo de publicación se registra en el log pero nunca afecta la
// transacción que lo originó).
type EventPublisher interface {
	MovementRegistered(ctx context.Context, movement *entity.StockMovement)
	LoanRegistered(ctx context.Context, loan *entity.EquipmentLoan)
	LoanReturned(ctx context.Context, loan *entity.EquipmentLoan, returnedQty int)
	DeliveryAdvanced(ctx context.Context, order *entity.Order)
}

// NopPublisher implementación nula para entornos sin broker configurado.
type NopPublisher struct{}

func (NopPublisher) MovementRegistered(context.Context, *entity.StockMovement) {}
func (NopPublisher) LoanRegistered(context.Context, *entity.EquipmentLoan)     {}
func (NopPublisher) LoanReturned(context.Context, *entity.EquipmentLoan, int)  {}
func (NopPublisher) DeliveryAdvanced(context.Context, *entity.Order)           {}
