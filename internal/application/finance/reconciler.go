// Package finance implementa el libro financiero unificado: pedidos de
// venta y asientos manuales proyectados a una sola lista conciliada con
// saldo pendiente por registro.
package finance

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/distribuidora-api/internal/application/dto"
	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
)

// Fuente de un registro combinado (unión etiquetada: el switch sobre Source
// es exhaustivo, no hay chequeos ad hoc de "es pedido / es asiento").
const (
	SourceOrder     = "order"
	SourceFinancial = "financial"
)

// Categoría fija con la que se proyectan los pedidos en el libro.
const orderCategory = "order"

// CombinedLedger proyecta pedidos y asientos al mismo tipo y los concatena.
// Cada entrada reporta su saldo (Amount - AmountPaid) independiente de la
// fuente: ambos modelos comparten el esquema de pago parcial.
func CombinedLedger(orders []*entity.Order, records []*entity.FinancialRecord) []dto.CombinedRecordDTO {
	out := make([]dto.CombinedRecordDTO, 0, len(orders)+len(records))
	for _, o := range orders {
		out = append(out, dto.CombinedRecordDTO{
			ID:          o.ID,
			Source:      SourceOrder,
			Description: o.CustomerName,
			Category:    orderCategory,
			Type:        entity.RecordTypeOutput,
			Amount:      o.Total,
			AmountPaid:  o.TotalPayed,
			Remaining:   o.Remaining(),
			Status:      o.PaymentStatus,
			IssueDate:   o.IssueDate,
			DueDate:     o.DueDate,
		})
	}
	for _, r := range records {
		out = append(out, dto.CombinedRecordDTO{
			ID:          r.ID,
			Source:      SourceFinancial,
			Description: r.Counterparty,
			Category:    r.Category,
			Type:        r.Type,
			Amount:      r.Amount,
			AmountPaid:  r.AmountPaid,
			Remaining:   r.Remaining(),
			Status:      r.Status(),
			IssueDate:   r.IssueDate,
			DueDate:     r.DueDate,
		})
	}
	return out
}

// bucketDate devuelve la fecha que define el mes del registro: vencimiento,
// o emisión si no tiene.
func bucketDate(r dto.CombinedRecordDTO) time.Time {
	if r.DueDate != nil {
		return *r.DueDate
	}
	return r.IssueDate
}

// BucketKey clave de agrupación mensual, formato "MM/YYYY".
func BucketKey(t time.Time) string {
	return fmt.Sprintf("%02d/%04d", int(t.Month()), t.Year())
}

// Totals calcula los agregados de una lista de registros combinados:
// totales, pagados y vencidos-impagos por dirección (input/output) más el
// saldo global. Valores puros derivados, nunca persistidos.
func Totals(records []dto.CombinedRecordDTO, today time.Time) dto.LedgerTotalsDTO {
	t := dto.LedgerTotalsDTO{
		InputTotal:    decimal.Zero,
		InputPaid:     decimal.Zero,
		InputOverdue:  decimal.Zero,
		OutputTotal:   decimal.Zero,
		OutputPaid:    decimal.Zero,
		OutputOverdue: decimal.Zero,
		Remaining:     decimal.Zero,
	}
	startOfToday := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	for _, r := range records {
		paid := r.Status == entity.PaymentStatusPaid
		overdue := !paid && r.DueDate != nil && r.DueDate.Before(startOfToday)
		switch r.Type {
		case entity.RecordTypeInput:
			t.InputTotal = t.InputTotal.Add(r.Amount)
			if paid {
				t.InputPaid = t.InputPaid.Add(r.Amount)
			}
			if overdue {
				t.InputOverdue = t.InputOverdue.Add(r.Amount)
			}
		case entity.RecordTypeOutput:
			t.OutputTotal = t.OutputTotal.Add(r.Amount)
			if paid {
				t.OutputPaid = t.OutputPaid.Add(r.Amount)
			}
			if overdue {
				t.OutputOverdue = t.OutputOverdue.Add(r.Amount)
			}
		}
		t.Remaining = t.Remaining.Add(r.Remaining)
	}
	return t
}

// BucketByMonth agrupa los registros por mes de vencimiento (clave
// "MM/YYYY") y ordena los buckets del más reciente al más antiguo, cada uno
// con sus propios agregados.
func BucketByMonth(records []dto.CombinedRecordDTO, today time.Time) []dto.LedgerBucketDTO {
	type monthKey struct {
		year  int
		month time.Month
	}
	grouped := make(map[monthKey][]dto.CombinedRecordDTO)
	for _, r := range records {
		d := bucketDate(r)
		k := monthKey{d.Year(), d.Month()}
		grouped[k] = append(grouped[k], r)
	}
	keys := make([]monthKey, 0, len(grouped))
	for k := range grouped {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year > keys[j].year
		}
		return keys[i].month > keys[j].month
	})
	buckets := make([]dto.LedgerBucketDTO, 0, len(keys))
	for _, k := range keys {
		recs := grouped[k]
		buckets = append(buckets, dto.LedgerBucketDTO{
			Key:     fmt.Sprintf("%02d/%04d", int(k.month), k.year),
			Records: recs,
			Totals:  Totals(recs, today),
		})
	}
	return buckets
}
