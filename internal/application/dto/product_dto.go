package dto

import "github.com/shopspring/decimal"

// CreateProductRequest alta de producto consumible.
type CreateProductRequest struct {
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Price        decimal.Decimal `json:"price"`
	InitialStock int             `json:"initial_stock"`
}

// ProductResponse representación de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
}

// CreateEquipmentRequest alta de equipo retornable.
type CreateEquipmentRequest struct {
	Name         string `json:"name"`
	InitialStock int    `json:"initial_stock"`
}

// EquipmentResponse representación de un equipo.
type EquipmentResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Stock int    `json:"stock"`
}
