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

var _ repository.FinancialRecordRepository = (*FinancialRecordRepo)(nil)

// FinancialRecordRepo implementación del puerto FinancialRecordRepository sobre PostgreSQL (usable con pool o tx).
type FinancialRecordRepo struct {
	q Querier
}

// NewFinancialRecordRepository construye el adaptador de persistencia para registros financieros. Pasar pool o tx (Querier).
func NewFinancialRecordRepository(q Querier) *FinancialRecordRepo {
	return &FinancialRecordRepo{q: q}
}

const recordColumns = `id, company_id, counterparty, category, type, amount, amount_paid,
		payment_method, notes, issue_date, due_date, created_at, updated_at`

// Create persiste un nuevo registro financiero.
func (r *FinancialRecordRepo) Create(record *entity.FinancialRecord) error {
	query := `
		INSERT INTO financial_records (` + recordColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		record.ID, record.CompanyID, record.Counterparty, record.Category, record.Type,
		record.Amount, record.AmountPaid, record.PaymentMethod, record.Notes,
		record.IssueDate, record.DueDate, record.CreatedAt, record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert financial record: %w", err)
	}
	return nil
}

// GetByID obtiene un registro por ID.
func (r *FinancialRecordRepo) GetByID(id string) (*entity.FinancialRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM financial_records WHERE id = $1`
	var rec entity.FinancialRecord
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&rec.ID, &rec.CompanyID, &rec.Counterparty, &rec.Category, &rec.Type,
		&rec.Amount, &rec.AmountPaid, &rec.PaymentMethod, &rec.Notes,
		&rec.IssueDate, &rec.DueDate, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get financial record: %w", err)
	}
	return &rec, nil
}

// GetForUpdate obtiene un registro por ID bloqueando la fila (abonos).
func (r *FinancialRecordRepo) GetForUpdate(id string) (*entity.FinancialRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM financial_records WHERE id = $1 FOR UPDATE`
	var rec entity.FinancialRecord
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&rec.ID, &rec.CompanyID, &rec.Counterparty, &rec.Category, &rec.Type,
		&rec.Amount, &rec.AmountPaid, &rec.PaymentMethod, &rec.Notes,
		&rec.IssueDate, &rec.DueDate, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get financial record for update: %w", err)
	}
	return &rec, nil
}

// ListByCompany lista registros por empresa, emisión más reciente primero.
func (r *FinancialRecordRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.FinancialRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM financial_records
		WHERE company_id = $1 ORDER BY issue_date DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list financial records: %w", err)
	}
	defer rows.Close()

	var records []*entity.FinancialRecord
	for rows.Next() {
		var rec entity.FinancialRecord
		if err := rows.Scan(
			&rec.ID, &rec.CompanyID, &rec.Counterparty, &rec.Category, &rec.Type,
			&rec.Amount, &rec.AmountPaid, &rec.PaymentMethod, &rec.Notes,
			&rec.IssueDate, &rec.DueDate, &rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan financial record: %w", err)
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}

// Update actualiza un registro existente.
func (r *FinancialRecordRepo) Update(record *entity.FinancialRecord) error {
	query := `
		UPDATE financial_records SET counterparty = $2, category = $3, type = $4, amount = $5,
			amount_paid = $6, payment_method = $7, notes = $8, issue_date = $9, due_date = $10, updated_at = $11
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		record.ID, record.Counterparty, record.Category, record.Type, record.Amount,
		record.AmountPaid, record.PaymentMethod, record.Notes,
		record.IssueDate, record.DueDate, record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update financial record: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un registro financiero manual.
func (r *FinancialRecordRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM financial_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete financial record: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
