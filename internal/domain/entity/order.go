package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de entrega del pedido. El flujo es estrictamente
// Entregar -> Coletar -> Coletado; nunca retrocede y Coletado es terminal.
const (
	DeliveryStatusEntregar = "Entregar" // por entregar (inicial)
	DeliveryStatusColetar  = "Coletar"  // entregado, por coletar el equipo
	DeliveryStatusColetado = "Coletado" // equipo coletado (terminal)
)

// Estados de pago (unificados con FinancialRecord).
const (
	PaymentStatusPaid   = "paid"
	PaymentStatusUnpaid = "unpaid"
)

// Order representa un pedido de venta con cita de entrega.
// ProductsText es un campo derivado para display ("Nombre (Nx), ..."); la
// fuente de verdad son las líneas (OrderItem).
type Order struct {
	ID              string
	CompanyID       string
	CustomerID      string // vacío hasta que ConfirmDelivery resuelve el cliente
	CustomerName    string // nombre capturado al crear el pedido
	ProductsText    string
	Freight         decimal.Decimal
	Total           decimal.Decimal
	TotalPayed      decimal.Decimal
	PaymentStatus   string
	PaymentMethod   string
	DeliveryStatus  string
	Signature       []byte // firma del cliente (nil = sin firmar)
	AppointmentAt   time.Time
	AppointmentSite string
	IssueDate       time.Time
	DueDate         *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Remaining devuelve el saldo pendiente del pedido (Total - TotalPayed).
func (o *Order) Remaining() decimal.Decimal {
	return o.Total.Sub(o.TotalPayed)
}

// Signed indica si el cliente ya firmó el pedido.
func (o *Order) Signed() bool {
	return len(o.Signature) > 0
}

// NextDeliveryStatus devuelve el estado siguiente en el flujo, o "" si el
// estado actual es terminal o desconocido.
func NextDeliveryStatus(current string) string {
	switch current {
	case DeliveryStatusEntregar:
		return DeliveryStatusColetar
	case DeliveryStatusColetar:
		return DeliveryStatusColetado
	}
	return ""
}
