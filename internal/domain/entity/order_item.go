package entity

import "github.com/shopspring/decimal"

// Tipos de ítem en una línea de pedido.
const (
	ItemKindProduct   = "product"
	ItemKindEquipment = "equipment"
)

// OrderItem es una línea del pedido: el precio unitario queda congelado al
// precio cobrado en la venta (las devoluciones usan este precio, nunca el
// precio de catálogo vigente).
type OrderItem struct {
	ID               string
	OrderID          string
	ItemKind         string // product | equipment
	ItemID           string
	ItemName         string
	Quantity         int
	ReturnedQuantity int // unidades ya devueltas por el cliente
	UnitPrice        decimal.Decimal
}

// Returnable devuelve las unidades de la línea que todavía admiten
// devolución.
func (i *OrderItem) Returnable() int {
	return i.Quantity - i.ReturnedQuantity
}

// Subtotal devuelve cantidad x precio unitario.
func (i *OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
