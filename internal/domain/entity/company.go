package entity

import "time"

// Company representa la distribuidora (empresa, bodega única).
type Company struct {
	ID        string
	Name      string
	TaxID     string // CNPJ
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
