package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Dirección del registro financiero.
const (
	RecordTypeInput  = "input"  // cuenta por cobrar / ingreso
	RecordTypeOutput = "output" // cuenta por pagar / egreso
)

// FinancialRecord es un asiento financiero manual, independiente de los
// pedidos. AmountPaid unifica el modelo de pago parcial con Order.TotalPayed;
// el estado Paid/Unpaid se deriva, no se guarda por separado.
type FinancialRecord struct {
	ID            string
	CompanyID     string
	Counterparty  string // proveedor o cliente
	Category      string
	Type          string // input | output
	Amount        decimal.Decimal
	AmountPaid    decimal.Decimal
	PaymentMethod string
	Notes         string
	IssueDate     time.Time
	DueDate       *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Remaining devuelve el saldo pendiente del registro.
func (r *FinancialRecord) Remaining() decimal.Decimal {
	return r.Amount.Sub(r.AmountPaid)
}

// Status deriva el estado de pago a partir del saldo.
func (r *FinancialRecord) Status() string {
	if r.Remaining().LessThanOrEqual(decimal.Zero) {
		return PaymentStatusPaid
	}
	return PaymentStatusUnpaid
}
