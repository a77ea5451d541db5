package entity

import "time"

// Equipment representa un equipo retornable (barril, chopera, cilindro).
// Misma forma que Product para el stock, pero su ciclo de vida pasa por
// préstamos (EquipmentLoan) en lugar de ventas consumidas.
type Equipment struct {
	ID        string
	CompanyID string
	Name      string
	Stock     int // unidades en bodega (las prestadas no cuentan aquí)
	CreatedAt time.Time
	UpdatedAt time.Time
}
