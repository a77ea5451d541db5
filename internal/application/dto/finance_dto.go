package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateFinancialRecordRequest entrada para un asiento financiero manual.
type CreateFinancialRecordRequest struct {
	Counterparty  string          `json:"counterparty"`
	Category      string          `json:"category"`
	Type          string          `json:"type"` // input | output
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	Notes         string          `json:"notes,omitempty"`
	IssueDate     time.Time       `json:"issue_date"`
	DueDate       *time.Time      `json:"due_date,omitempty"`
}

// FinancialRecordResponse representación de un registro financiero.
type FinancialRecordResponse struct {
	ID            string          `json:"id"`
	Counterparty  string          `json:"counterparty"`
	Category      string          `json:"category"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	Remaining     decimal.Decimal `json:"remaining"`
	Status        string          `json:"status"`
	PaymentMethod string          `json:"payment_method"`
	Notes         string          `json:"notes,omitempty"`
	IssueDate     time.Time       `json:"issue_date"`
	DueDate       *time.Time      `json:"due_date,omitempty"`
}

// CombinedRecordDTO una entrada del libro unificado (pedido o asiento).
type CombinedRecordDTO struct {
	ID          string          `json:"id"`
	Source      string          `json:"source"` // order | financial
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Type        string          `json:"type"` // input | output
	Amount      decimal.Decimal `json:"amount"`
	AmountPaid  decimal.Decimal `json:"amount_paid"`
	Remaining   decimal.Decimal `json:"remaining"`
	Status      string          `json:"status"`
	IssueDate   time.Time       `json:"issue_date"`
	DueDate     *time.Time      `json:"due_date,omitempty"`
}

// LedgerTotalsDTO agregados derivados (nunca persistidos) de una lista de
// registros combinados.
type LedgerTotalsDTO struct {
	InputTotal    decimal.Decimal `json:"input_total"`
	InputPaid     decimal.Decimal `json:"input_paid"`
	InputOverdue  decimal.Decimal `json:"input_overdue"`
	OutputTotal   decimal.Decimal `json:"output_total"`
	OutputPaid    decimal.Decimal `json:"output_paid"`
	OutputOverdue decimal.Decimal `json:"output_overdue"`
	Remaining     decimal.Decimal `json:"remaining"`
}

// LedgerBucketDTO registros de un mes (clave "MM/YYYY") con sus totales.
type LedgerBucketDTO struct {
	Key     string              `json:"key"`
	Records []CombinedRecordDTO `json:"records"`
	Totals  LedgerTotalsDTO     `json:"totals"`
}

// CombinedLedgerResponse libro unificado: buckets por mes (descendente) y
// totales globales.
type CombinedLedgerResponse struct {
	Buckets []LedgerBucketDTO `json:"buckets"`
	Totals  LedgerTotalsDTO   `json:"totals"`
}
