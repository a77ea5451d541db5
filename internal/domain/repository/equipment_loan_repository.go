package repository

import "github.com/jhoicas/distribuidora-api/internal/domain/entity"

// EquipmentLoanRepository define el puerto de persistencia para préstamos de
// equipo y sus filas de auditoría de devolución. Los préstamos nunca se
// eliminan.
type EquipmentLoanRepository interface {
	Create(loan *entity.EquipmentLoan) error
	GetByID(id string) (*entity.EquipmentLoan, error)
	GetForUpdate(id string) (*entity.EquipmentLoan, error)
	Update(loan *entity.EquipmentLoan) error
	ListOpenByCustomer(companyID, customerID string) ([]*entity.EquipmentLoan, error)
	ListByOrder(orderRef string) ([]*entity.EquipmentLoan, error)

	CreateReturn(ret *entity.LoanReturn) error
	ListReturns(loanID string) ([]*entity.LoanReturn, error)
}
