package finance_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/distribuidora-api/internal/application/finance"
	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
)

var today = time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func sampleOrders() []*entity.Order {
	return []*entity.Order{
		{
			ID: "order-1", CustomerName: "Bar do João",
			Total: decimal.NewFromInt(100), TotalPayed: decimal.NewFromInt(40),
			PaymentStatus: entity.PaymentStatusUnpaid,
			IssueDate:     date(2026, time.March, 1),
		},
		{
			ID: "order-2", CustomerName: "Adega Central",
			Total: decimal.NewFromInt(50), TotalPayed: decimal.NewFromInt(50),
			PaymentStatus: entity.PaymentStatusPaid,
			IssueDate:     date(2026, time.February, 10),
		},
	}
}

func sampleRecords() []*entity.FinancialRecord {
	return []*entity.FinancialRecord{
		{
			ID: "rec-1", Counterparty: "Distribuidora Sul", Category: "compra",
			Type:   entity.RecordTypeInput,
			Amount: decimal.NewFromInt(200), AmountPaid: decimal.Zero,
			IssueDate: date(2026, time.January, 5), DueDate: datePtr(2026, time.February, 5),
		},
		{
			ID: "rec-2", Counterparty: "Transportes Lima", Category: "flete",
			Type:   entity.RecordTypeOutput,
			Amount: decimal.NewFromInt(80), AmountPaid: decimal.NewFromInt(80),
			IssueDate: date(2026, time.March, 2),
		},
	}
}

func TestCombinedLedger_ProyectaAmbasFuentes(t *testing.T) {
	combined := finance.CombinedLedger(sampleOrders(), sampleRecords())
	require.Len(t, combined, 4)

	// Los pedidos se proyectan como salidas con categoría fija.
	first := combined[0]
	assert.Equal(t, finance.SourceOrder, first.Source)
	assert.Equal(t, "Bar do João", first.Description)
	assert.Equal(t, "order", first.Category)
	assert.Equal(t, entity.RecordTypeOutput, first.Type)
	assert.True(t, decimal.NewFromInt(60).Equal(first.Remaining), "remaining %s", first.Remaining)

	// El asiento deriva su estado del saldo, no de un campo guardado.
	byID := map[string]string{}
	for _, r := range combined {
		byID[r.ID] = r.Status
	}
	assert.Equal(t, entity.PaymentStatusUnpaid, byID["rec-1"])
	assert.Equal(t, entity.PaymentStatusPaid, byID["rec-2"])
	assert.Equal(t, entity.PaymentStatusPaid, byID["order-2"])
}

func TestTotals_AgregadosPorDireccionYSaldo(t *testing.T) {
	combined := finance.CombinedLedger(sampleOrders(), sampleRecords())
	totals := finance.Totals(combined, today)

	assert.True(t, decimal.NewFromInt(200).Equal(totals.InputTotal))
	assert.True(t, totals.InputPaid.IsZero())
	// rec-1 vence el 05/02 y sigue impago: vencido al 15/03.
	assert.True(t, decimal.NewFromInt(200).Equal(totals.InputOverdue))

	assert.True(t, decimal.NewFromInt(230).Equal(totals.OutputTotal))
	assert.True(t, decimal.NewFromInt(130).Equal(totals.OutputPaid))
	assert.True(t, totals.OutputOverdue.IsZero(), "sin vencimiento no hay mora")

	// 60 + 0 + 200 + 0
	assert.True(t, decimal.NewFromInt(260).Equal(totals.Remaining), "remaining %s", totals.Remaining)
}

func TestTotals_VencimientoHoyNoEsMora(t *testing.T) {
	due := date(2026, time.March, 15)
	records := finance.CombinedLedger(nil, []*entity.FinancialRecord{{
		ID: "rec-hoy", Counterparty: "Proveedor", Type: entity.RecordTypeInput,
		Amount: decimal.NewFromInt(10), AmountPaid: decimal.Zero,
		IssueDate: date(2026, time.March, 1), DueDate: &due,
	}})
	totals := finance.Totals(records, today)
	// La mora empieza al día siguiente del vencimiento.
	assert.True(t, totals.InputOverdue.IsZero())
}

func TestBucketByMonth_AgrupaPorVencimientoDescendente(t *testing.T) {
	combined := finance.CombinedLedger(sampleOrders(), sampleRecords())
	buckets := finance.BucketByMonth(combined, today)

	// order-1 y rec-2 caen en 03/2026 por emisión; rec-1 agrupa por su
	// vencimiento (02/2026) junto a order-2, que agrupa por emisión al no
	// tener vencimiento.
	require.Len(t, buckets, 2)
	assert.Equal(t, "03/2026", buckets[0].Key)
	assert.Equal(t, "02/2026", buckets[1].Key)
	assert.Len(t, buckets[0].Records, 2)
	assert.Len(t, buckets[1].Records, 2)

	// Cada bucket trae sus propios agregados.
	assert.True(t, decimal.NewFromInt(200).Equal(buckets[1].Totals.InputTotal))
}

func TestBucketKey_Formato(t *testing.T) {
	assert.Equal(t, "02/2026", finance.BucketKey(date(2026, time.February, 5)))
	assert.Equal(t, "12/2025", finance.BucketKey(date(2025, time.December, 31)))
}
