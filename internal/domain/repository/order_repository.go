package repository

import (
	"time"

	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para Order y sus líneas.
// SumReservedQuantity suma las unidades de un producto comprometidas en
// pedidos con cita futura aún no coletados (cálculo de reserva, en SQL).
type OrderRepository interface {
	Create(order *entity.Order) error
	GetByID(id string) (*entity.Order, error)
	GetForUpdate(id string) (*entity.Order, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Order, error)
	Update(order *entity.Order) error
	Delete(id string) error

	CreateItem(item *entity.OrderItem) error
	ListItems(orderID string) ([]*entity.OrderItem, error)
	UpdateItem(item *entity.OrderItem) error

	SumReservedQuantity(companyID, productID string, after time.Time) (int, error)
}
