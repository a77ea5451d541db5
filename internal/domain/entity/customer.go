package entity

import "time"

// Customer representa un cliente de la distribuidora.
// Se resuelve por nombre al confirmar una entrega; si no existe se crea
// en la misma transacción (los préstamos de equipo cuelgan del cliente).
type Customer struct {
	ID        string
	CompanyID string
	Name      string
	TaxID     string // CNPJ o CPF
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
