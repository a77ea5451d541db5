package finance_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/distribuidora-api/internal/application/dto"
	"github.com/jhoicas/distribuidora-api/internal/application/finance"
	"github.com/jhoicas/distribuidora-api/internal/domain"
	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
)

const testCompany = "company-1"

type memRecordRepo struct {
	records map[string]*entity.FinancialRecord
}

func newMemRecordRepo() *memRecordRepo {
	return &memRecordRepo{records: make(map[string]*entity.FinancialRecord)}
}

func (r *memRecordRepo) Create(record *entity.FinancialRecord) error {
	cp := *record
	r.records[record.ID] = &cp
	return nil
}

func (r *memRecordRepo) GetByID(id string) (*entity.FinancialRecord, error) {
	rec, ok := r.records[id]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (r *memRecordRepo) GetForUpdate(id string) (*entity.FinancialRecord, error) {
	return r.GetByID(id)
}

func (r *memRecordRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.FinancialRecord, error) {
	var out []*entity.FinancialRecord
	for _, rec := range r.records {
		if rec.CompanyID == companyID {
			cp := *rec
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memRecordRepo) Update(record *entity.FinancialRecord) error {
	if _, ok := r.records[record.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *record
	r.records[record.ID] = &cp
	return nil
}

func (r *memRecordRepo) Delete(id string) error {
	if _, ok := r.records[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.records, id)
	return nil
}

var _ repository.FinancialRecordRepository = (*memRecordRepo)(nil)

// passRecordRunner ejecuta el callback directamente sobre el repositorio en
// memoria (sin transacción real).
type passRecordRunner struct {
	records *memRecordRepo
}

func (p *passRecordRunner) RunRecord(ctx context.Context, fn func(recordRepo repository.FinancialRecordRepository) error) error {
	return fn(p.records)
}

func newReconciler() (*finance.ReconcilerUseCase, *memRecordRepo) {
	records := newMemRecordRepo()
	uc := finance.NewReconcilerUseCase(&passRecordRunner{records: records}, nil, records)
	return uc, records
}

func createRecord(t *testing.T, uc *finance.ReconcilerUseCase, amount int64) *dto.FinancialRecordResponse {
	t.Helper()
	resp, err := uc.CreateRecord(context.Background(), testCompany, dto.CreateFinancialRecordRequest{
		Counterparty: "Distribuidora Sul",
		Category:     "compra",
		Type:         entity.RecordTypeInput,
		Amount:       decimal.NewFromInt(amount),
		IssueDate:    time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return resp
}

func TestCreateRecord_EntradaInvalida(t *testing.T) {
	uc, _ := newReconciler()

	_, err := uc.CreateRecord(context.Background(), testCompany, dto.CreateFinancialRecordRequest{
		Counterparty: "", Type: entity.RecordTypeInput, Amount: decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateRecord(context.Background(), testCompany, dto.CreateFinancialRecordRequest{
		Counterparty: "Proveedor", Type: "transferencia", Amount: decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterPayment_AbonosParcialesYSaldo(t *testing.T) {
	uc, _ := newReconciler()
	rec := createRecord(t, uc, 200)

	resp, err := uc.RegisterPayment(context.Background(), testCompany, rec.ID, decimal.NewFromInt(120))
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusUnpaid, resp.Status)
	assert.True(t, decimal.NewFromInt(80).Equal(resp.Remaining))

	resp, err = uc.RegisterPayment(context.Background(), testCompany, rec.ID, decimal.NewFromInt(80))
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPaid, resp.Status)
	assert.True(t, resp.Remaining.IsZero())
}

func TestRegisterPayment_NoExcedeElSaldo(t *testing.T) {
	uc, records := newReconciler()
	rec := createRecord(t, uc, 200)

	_, err := uc.RegisterPayment(context.Background(), testCompany, rec.ID, decimal.NewFromInt(150))
	require.NoError(t, err)

	// El segundo abono se valida contra el saldo ya actualizado.
	_, err = uc.RegisterPayment(context.Background(), testCompany, rec.ID, decimal.NewFromInt(60))
	assert.ErrorIs(t, err, domain.ErrPreconditionFailed)

	stored, _ := records.GetByID(rec.ID)
	assert.True(t, decimal.NewFromInt(150).Equal(stored.AmountPaid), "amount_paid %s", stored.AmountPaid)
}

func TestRegisterPayment_AsientoDeOtraEmpresa(t *testing.T) {
	uc, _ := newReconciler()
	rec := createRecord(t, uc, 100)

	_, err := uc.RegisterPayment(context.Background(), "otra-empresa", rec.ID, decimal.NewFromInt(10))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteRecord_SoloDeLaEmpresa(t *testing.T) {
	uc, records := newReconciler()
	rec := createRecord(t, uc, 100)

	err := uc.DeleteRecord(context.Background(), "otra-empresa", rec.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, uc.DeleteRecord(context.Background(), testCompany, rec.ID))
	stored, _ := records.GetByID(rec.ID)
	assert.Nil(t, stored)
}
