package repository

import "github.com/jhoicas/distribuidora-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// AdjustStock es el único camino de mutación del conteo y solo lo invoca el
// libro de stock dentro de una transacción, junto al movimiento que lo
// justifica.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByName(companyID, normalizedName string) (*entity.Product, error)
	GetForUpdate(id string) (*entity.Product, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error)
	Update(product *entity.Product) error
	AdjustStock(id string, delta int) error
}
