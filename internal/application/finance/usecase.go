package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/distribuidora-api/internal/application/dto"
	"github.com/jhoicas/distribuidora-api/internal/domain"
	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
)

// Tope de registros leídos para armar el libro (sin paginación de libro:
// la vista es mensual y se consume completa).
const ledgerFetchLimit = 5000

// ReconcilerUseCase arma el libro unificado y administra los asientos
// financieros manuales.
type ReconcilerUseCase struct {
	txRunner   TxRunner
	orderRepo  repository.OrderRepository
	recordRepo repository.FinancialRecordRepository
}

// NewReconcilerUseCase construye el caso de uso.
func NewReconcilerUseCase(txRunner TxRunner, orderRepo repository.OrderRepository, recordRepo repository.FinancialRecordRepository) *ReconcilerUseCase {
	return &ReconcilerUseCase{txRunner: txRunner, orderRepo: orderRepo, recordRepo: recordRepo}
}

// Ledger lee pedidos y asientos de la empresa y devuelve el libro combinado
// con buckets mensuales descendentes y totales globales.
func (uc *ReconcilerUseCase) Ledger(ctx context.Context, companyID string) (*dto.CombinedLedgerResponse, error) {
	orders, err := uc.orderRepo.ListByCompany(companyID, ledgerFetchLimit, 0)
	if err != nil {
		return nil, err
	}
	records, err := uc.recordRepo.ListByCompany(companyID, ledgerFetchLimit, 0)
	if err != nil {
		return nil, err
	}
	combined := CombinedLedger(orders, records)
	now := time.Now()
	return &dto.CombinedLedgerResponse{
		Buckets: BucketByMonth(combined, now),
		Totals:  Totals(combined, now),
	}, nil
}

// CreateRecord crea un asiento financiero manual.
func (uc *ReconcilerUseCase) CreateRecord(ctx context.Context, companyID string, in dto.CreateFinancialRecordRequest) (*dto.FinancialRecordResponse, error) {
	if in.Counterparty == "" || in.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.Type != entity.RecordTypeInput && in.Type != entity.RecordTypeOutput {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	issue := in.IssueDate
	if issue.IsZero() {
		issue = now
	}
	record := &entity.FinancialRecord{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		Counterparty:  in.Counterparty,
		Category:      in.Category,
		Type:          in.Type,
		Amount:        in.Amount,
		AmountPaid:    decimal.Zero,
		PaymentMethod: in.PaymentMethod,
		Notes:         in.Notes,
		IssueDate:     issue,
		DueDate:       in.DueDate,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.recordRepo.Create(record); err != nil {
		return nil, err
	}
	return toRecordResponse(record), nil
}

// RegisterPayment abona un monto al asiento; mismo modelo de pago parcial
// que los pedidos. La verificación contra el saldo se hace con la fila
// bloqueada: dos abonos concurrentes no pueden exceder el monto.
func (uc *ReconcilerUseCase) RegisterPayment(ctx context.Context, companyID, recordID string, amount decimal.Decimal) (*dto.FinancialRecordResponse, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	var updated *entity.FinancialRecord
	err := uc.txRunner.RunRecord(ctx, func(recordRepo repository.FinancialRecordRepository) error {
		record, err := recordRepo.GetForUpdate(recordID)
		if err != nil {
			return err
		}
		if record == nil || record.CompanyID != companyID {
			return domain.ErrNotFound
		}
		if amount.GreaterThan(record.Remaining()) {
			return domain.ErrPreconditionFailed
		}
		record.AmountPaid = record.AmountPaid.Add(amount)
		record.UpdatedAt = time.Now()
		if err := recordRepo.Update(record); err != nil {
			return err
		}
		updated = record
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toRecordResponse(updated), nil
}

// ListRecords lista los asientos manuales de la empresa.
func (uc *ReconcilerUseCase) ListRecords(ctx context.Context, companyID string, limit, offset int) ([]*dto.FinancialRecordResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	records, err := uc.recordRepo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.FinancialRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, toRecordResponse(r))
	}
	return out, nil
}

// DeleteRecord elimina un asiento manual (no tiene efectos de stock que
// revertir, a diferencia de los pedidos).
func (uc *ReconcilerUseCase) DeleteRecord(ctx context.Context, companyID, recordID string) error {
	record, err := uc.recordRepo.GetByID(recordID)
	if err != nil {
		return err
	}
	if record == nil || record.CompanyID != companyID {
		return domain.ErrNotFound
	}
	return uc.recordRepo.Delete(recordID)
}

func toRecordResponse(r *entity.FinancialRecord) *dto.FinancialRecordResponse {
	return &dto.FinancialRecordResponse{
		ID:            r.ID,
		Counterparty:  r.Counterparty,
		Category:      r.Category,
		Type:          r.Type,
		Amount:        r.Amount,
		AmountPaid:    r.AmountPaid,
		Remaining:     r.Remaining(),
		Status:        r.Status(),
		PaymentMethod: r.PaymentMethod,
		Notes:         r.Notes,
		IssueDate:     r.IssueDate,
		DueDate:       r.DueDate,
	}
}
