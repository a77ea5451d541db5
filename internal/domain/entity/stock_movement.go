package entity

import "time"

// Tipos de movimiento de stock. El tipo determina el signo aplicado al
// conteo: sale_deduction resta, return y adjustment suman.
const (
	MovementTypeSaleDeduction = "sale_deduction"
	MovementTypeReturn        = "return"
	MovementTypeAdjustment    = "adjustment"
)

// StockMovement es un registro inmutable de cambio de stock; las reversas
// son movimientos nuevos, nunca ediciones.
type StockMovement struct {
	ID        string
	CompanyID string
	ItemKind  string // product | equipment
	ItemID    string
	Type      string
	Quantity  int    // siempre positivo; el tipo define el signo
	OrderRef  string // pedido que originó el movimiento (vacío en ajustes)
	Reason    string
	CreatedAt time.Time
	CreatedBy string // UserID del actor
}

// Delta devuelve el efecto del movimiento sobre el conteo de stock.
func (m *StockMovement) Delta() int {
	if m.Type == MovementTypeSaleDeduction {
		return -m.Quantity
	}
	return m.Quantity
}
