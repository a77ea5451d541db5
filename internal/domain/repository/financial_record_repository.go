package repository

import "github.com/jhoicas/distribuidora-api/internal/domain/entity"

// FinancialRecordRepository define el puerto de persistencia para registros
// financieros manuales.
type FinancialRecordRepository interface {
	Create(record *entity.FinancialRecord) error
	GetByID(id string) (*entity.FinancialRecord, error)
	GetForUpdate(id string) (*entity.FinancialRecord, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.FinancialRecord, error)
	Update(record *entity.FinancialRecord) error
	Delete(id string) error
}
