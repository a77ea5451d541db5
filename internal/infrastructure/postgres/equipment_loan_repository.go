package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/distribuidora-api/internal/domain"
	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
)

var _ repository.EquipmentLoanRepository = (*EquipmentLoanRepo)(nil)

// EquipmentLoanRepo implementación del puerto EquipmentLoanRepository sobre PostgreSQL (usable con pool o tx).
// No hay Delete: los préstamos son rastro de auditoría permanente.
type EquipmentLoanRepo struct {
	q Querier
}

// NewEquipmentLoanRepository construye el adaptador de persistencia para préstamos. Pasar pool o tx (Querier).
func NewEquipmentLoanRepository(q Querier) *EquipmentLoanRepo {
	return &EquipmentLoanRepo{q: q}
}

const loanColumns = `id, company_id, customer_id, equipment_id, equipment_name, quantity, returned_quantity,
		status, order_ref, loan_date, return_date, created_at, updated_at`

// Create persiste un nuevo préstamo de equipo.
func (r *EquipmentLoanRepo) Create(loan *entity.EquipmentLoan) error {
	query := `
		INSERT INTO equipment_loans (` + loanColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		loan.ID, loan.CompanyID, loan.CustomerID, loan.EquipmentID, loan.EquipmentName,
		loan.Quantity, loan.ReturnedQuantity, loan.Status, loan.OrderRef,
		loan.LoanDate, loan.ReturnDate, loan.CreatedAt, loan.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert equipment loan: %w", err)
	}
	return nil
}

// GetByID obtiene un préstamo por ID.
func (r *EquipmentLoanRepo) GetByID(id string) (*entity.EquipmentLoan, error) {
	query := `SELECT ` + loanColumns + ` FROM equipment_loans WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetForUpdate obtiene un préstamo con lock de fila (FOR UPDATE). Serializa
// devoluciones concurrentes sobre el mismo préstamo.
func (r *EquipmentLoanRepo) GetForUpdate(id string) (*entity.EquipmentLoan, error) {
	query := `SELECT ` + loanColumns + ` FROM equipment_loans WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// Update actualiza el avance de devolución del préstamo.
func (r *EquipmentLoanRepo) Update(loan *entity.EquipmentLoan) error {
	query := `
		UPDATE equipment_loans SET returned_quantity = $2, status = $3, return_date = $4, updated_at = $5
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		loan.ID, loan.ReturnedQuantity, loan.Status, loan.ReturnDate, loan.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update equipment loan: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListOpenByCustomer lista los préstamos con unidades pendientes de un
// cliente (lo que PrepareCollection muestra al operador).
func (r *EquipmentLoanRepo) ListOpenByCustomer(companyID, customerID string) ([]*entity.EquipmentLoan, error) {
	query := `SELECT ` + loanColumns + ` FROM equipment_loans
		WHERE company_id = $1 AND customer_id = $2 AND status <> 'returned'
		ORDER BY loan_date`
	rows, err := r.q.Query(context.Background(), query, companyID, customerID)
	if err != nil {
		return nil, fmt.Errorf("list open loans: %w", err)
	}
	defer rows.Close()
	return scanLoans(rows)
}

// ListByOrder lista los préstamos originados por un pedido.
func (r *EquipmentLoanRepo) ListByOrder(orderRef string) ([]*entity.EquipmentLoan, error) {
	query := `SELECT ` + loanColumns + ` FROM equipment_loans WHERE order_ref = $1 ORDER BY loan_date`
	rows, err := r.q.Query(context.Background(), query, orderRef)
	if err != nil {
		return nil, fmt.Errorf("list loans by order: %w", err)
	}
	defer rows.Close()
	return scanLoans(rows)
}

// CreateReturn persiste la fila de auditoría de una devolución.
func (r *EquipmentLoanRepo) CreateReturn(ret *entity.LoanReturn) error {
	query := `
		INSERT INTO loan_returns (id, loan_id, quantity, remaining, returned_by, returned_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		ret.ID, ret.LoanID, ret.Quantity, ret.Remaining, ret.ReturnedBy, ret.ReturnedAt,
	)
	if err != nil {
		return fmt.Errorf("insert loan return: %w", err)
	}
	return nil
}

// ListReturns lista las devoluciones de un préstamo en orden cronológico.
func (r *EquipmentLoanRepo) ListReturns(loanID string) ([]*entity.LoanReturn, error) {
	query := `
		SELECT id, loan_id, quantity, remaining, returned_by, returned_at
		FROM loan_returns WHERE loan_id = $1 ORDER BY returned_at`
	rows, err := r.q.Query(context.Background(), query, loanID)
	if err != nil {
		return nil, fmt.Errorf("list loan returns: %w", err)
	}
	defer rows.Close()

	var returns []*entity.LoanReturn
	for rows.Next() {
		var lr entity.LoanReturn
		if err := rows.Scan(&lr.ID, &lr.LoanID, &lr.Quantity, &lr.Remaining, &lr.ReturnedBy, &lr.ReturnedAt); err != nil {
			return nil, fmt.Errorf("scan loan return: %w", err)
		}
		returns = append(returns, &lr)
	}
	return returns, rows.Err()
}

func (r *EquipmentLoanRepo) scanOne(row pgx.Row) (*entity.EquipmentLoan, error) {
	l, err := scanLoanRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get equipment loan: %w", err)
	}
	return l, nil
}

func scanLoans(rows pgx.Rows) ([]*entity.EquipmentLoan, error) {
	var loans []*entity.EquipmentLoan
	for rows.Next() {
		l, err := scanLoanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan equipment loan: %w", err)
		}
		loans = append(loans, l)
	}
	return loans, rows.Err()
}

func scanLoanRow(row pgx.Row) (*entity.EquipmentLoan, error) {
	var l entity.EquipmentLoan
	err := row.Scan(
		&l.ID, &l.CompanyID, &l.CustomerID, &l.EquipmentID, &l.EquipmentName,
		&l.Quantity, &l.ReturnedQuantity, &l.Status, &l.OrderRef,
		&l.LoanDate, &l.ReturnDate, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}
