package dto

import "time"

// RegisterLoanRequest entrada para registrar un préstamo manual (los
// préstamos por entrega de pedido se crean en ConfirmDelivery).
type RegisterLoanRequest struct {
	CustomerID  string `json:"customer_id"`
	EquipmentID string `json:"equipment_id"`
	Quantity    int    `json:"quantity"`
	OrderRef    string `json:"order_ref,omitempty"`
}

// LoanResponse representación de un préstamo de equipo.
type LoanResponse struct {
	ID               string     `json:"id"`
	CustomerID       string     `json:"customer_id"`
	EquipmentID      string     `json:"equipment_id"`
	EquipmentName    string     `json:"equipment_name"`
	Quantity         int        `json:"quantity"`
	ReturnedQuantity int        `json:"returned_quantity"`
	Outstanding      int        `json:"outstanding"`
	Status           string     `json:"status"`
	OrderRef         string     `json:"order_ref,omitempty"`
	LoanDate         time.Time  `json:"loan_date"`
	ReturnDate       *time.Time `json:"return_date,omitempty"`
}

// LoanReturnAudit fila de auditoría de una devolución.
type LoanReturnAudit struct {
	ID         string    `json:"id"`
	LoanID     string    `json:"loan_id"`
	Quantity   int       `json:"quantity"`
	Remaining  int       `json:"remaining"`
	ReturnedBy string    `json:"returned_by"`
	ReturnedAt time.Time `json:"returned_at"`
}
