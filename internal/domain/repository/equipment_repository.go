package repository

import "github.com/jhoicas/distribuidora-api/internal/domain/entity"

// EquipmentRepository define el puerto de persistencia para Equipment.
// Mismo contrato de stock que ProductRepository (mutación solo vía
// AdjustStock dentro del libro de movimientos).
type EquipmentRepository interface {
	Create(equipment *entity.Equipment) error
	GetByID(id string) (*entity.Equipment, error)
	GetByName(companyID, normalizedName string) (*entity.Equipment, error)
	GetForUpdate(id string) (*entity.Equipment, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Equipment, error)
	Update(equipment *entity.Equipment) error
	AdjustStock(id string, delta int) error
}
