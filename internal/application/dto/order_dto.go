package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest línea de pedido al crear.
type OrderItemRequest struct {
	ItemKind  string          `json:"item_kind"` // product | equipment
	ItemID    string          `json:"item_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"` // cero = usar precio de catálogo
}

// CreateOrderRequest entrada para crear un pedido con cita de entrega.
type CreateOrderRequest struct {
	CustomerName    string             `json:"customer_name"`
	Items           []OrderItemRequest `json:"items"`
	Freight         decimal.Decimal    `json:"freight"`
	PaymentMethod   string             `json:"payment_method"`
	AppointmentAt   time.Time          `json:"appointment_at"`
	AppointmentSite string             `json:"appointment_site"`
	DueDate         *time.Time         `json:"due_date,omitempty"`
}

// OrderItemResponse línea de pedido en respuestas.
type OrderItemResponse struct {
	ID        string          `json:"id"`
	ItemKind  string          `json:"item_kind"`
	ItemID    string          `json:"item_id"`
	ItemName  string          `json:"item_name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// OrderResponse representación completa del pedido.
type OrderResponse struct {
	ID              string              `json:"id"`
	CustomerID      string              `json:"customer_id,omitempty"`
	CustomerName    string              `json:"customer_name"`
	ProductsText    string              `json:"products_text"`
	Items           []OrderItemResponse `json:"items,omitempty"`
	Freight         decimal.Decimal     `json:"freight"`
	Total           decimal.Decimal     `json:"total"`
	TotalPayed      decimal.Decimal     `json:"total_payed"`
	Remaining       decimal.Decimal     `json:"remaining"`
	PaymentStatus   string              `json:"payment_status"`
	PaymentMethod   string              `json:"payment_method"`
	DeliveryStatus  string              `json:"delivery_status"`
	Signed          bool                `json:"signed"`
	AppointmentAt   time.Time           `json:"appointment_at"`
	AppointmentSite string              `json:"appointment_site"`
	IssueDate       time.Time           `json:"issue_date"`
	DueDate         *time.Time          `json:"due_date,omitempty"`
	StockWarnings   []string            `json:"stock_warnings,omitempty"`
}

// ImportLegacyOrderRequest pedido importado del sistema anterior: no trae
// líneas, solo el texto "Nombre (Nx)"; las líneas se reconstruyen
// resolviendo cada nombre contra el catálogo.
type ImportLegacyOrderRequest struct {
	CustomerName    string          `json:"customer_name"`
	ProductsText    string          `json:"products_text"`
	Freight         decimal.Decimal `json:"freight"`
	PaymentMethod   string          `json:"payment_method"`
	AppointmentAt   time.Time       `json:"appointment_at"`
	AppointmentSite string          `json:"appointment_site"`
	DueDate         *time.Time      `json:"due_date,omitempty"`
}

// ImportLegacyOrderResponse resultado del import: el pedido creado con las
// líneas que se pudieron aplicar, y los segmentos descartados (malformados
// o sin correspondencia en el catálogo) reportados, nunca perdidos.
type ImportLegacyOrderResponse struct {
	Order   *OrderResponse `json:"order"`
	Skipped []string       `json:"skipped,omitempty"`
}

// CaptureSignatureRequest captura (o recaptura con Overwrite explícito) la
// firma del cliente.
type CaptureSignatureRequest struct {
	Signature []byte `json:"signature"`
	Overwrite bool   `json:"overwrite"`
}

// DeliveryPreviewResponse vista previa del paso de confirmación de entrega:
// equipo que quedará en préstamo al cliente.
type DeliveryPreviewResponse struct {
	OrderID      string              `json:"order_id"`
	CustomerName string              `json:"customer_name"`
	Equipment    []OrderItemResponse `json:"equipment"`
}

// LoanReturnRequest devolución (parcial o total) de un préstamo dentro de la
// confirmación de coleta o por la ruta directa de préstamos.
type LoanReturnRequest struct {
	LoanID   string `json:"loan_id"`
	Quantity int    `json:"quantity"`
}

// ConfirmCollectionRequest confirma la coleta: devoluciones de préstamo a
// aplicar. El descuento de stock de las líneas de producto es implícito.
type ConfirmCollectionRequest struct {
	Returns []LoanReturnRequest `json:"returns"`
}

// AdvanceResult resultado de una transición de estado de entrega.
type AdvanceResult struct {
	OrderID        string `json:"order_id"`
	DeliveryStatus string `json:"delivery_status"`
	NoOp           bool   `json:"no_op"` // pedido ya estaba en estado terminal
	Message        string `json:"message"`
}

// ProductReturnItem par producto/cantidad de una devolución de mercadería
// vendida (distinta de la devolución de equipo prestado).
type ProductReturnItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// ProductReturnRequest entrada de ProcessProductReturn.
type ProductReturnRequest struct {
	Items []ProductReturnItem `json:"items"`
}

// RegisterPaymentRequest abono a un pedido o registro financiero.
type RegisterPaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
}
