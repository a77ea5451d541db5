package dto

import "time"

// ApplyMovementRequest entrada HTTP para registrar un movimiento de stock.
// Quantity siempre positivo; el tipo (sale_deduction/return/adjustment)
// determina el signo aplicado al conteo.
type ApplyMovementRequest struct {
	ItemKind string `json:"item_kind"` // product | equipment
	ItemID   string `json:"item_id"`
	Type     string `json:"type"`
	Quantity int    `json:"quantity"`
	OrderRef string `json:"order_ref,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// MovementResponse representación de un movimiento registrado.
type MovementResponse struct {
	ID        string    `json:"id"`
	ItemKind  string    `json:"item_kind"`
	ItemID    string    `json:"item_id"`
	Type      string    `json:"type"`
	Quantity  int       `json:"quantity"`
	OrderRef  string    `json:"order_ref,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	CreatedBy string    `json:"created_by"`
	NewStock  int       `json:"new_stock"`
}

// AvailabilityResponse resultado del cálculo de disponibilidad de un
// producto: stock físico menos unidades reservadas por pedidos futuros.
type AvailabilityResponse struct {
	ProductID string `json:"product_id"`
	Stock     int    `json:"stock"`
	Reserved  int    `json:"reserved"`
	Available int    `json:"available"`
	Warning   string `json:"warning,omitempty"`
}
