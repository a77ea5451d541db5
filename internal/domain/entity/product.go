package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto consumible (cerveza, refrigerante, gas).
// Stock es el conteo autoritativo de unidades; solo el libro de movimientos
// (StockMovement) puede modificarlo.
type Product struct {
	ID          string
	CompanyID   string
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta por unidad
	Stock       int             // unidades disponibles
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
