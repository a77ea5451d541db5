package entity

import "time"

// Estados de un préstamo de equipo.
const (
	LoanStatusActive            = "active"
	LoanStatusPartiallyReturned = "partially_returned"
	LoanStatusReturned          = "returned"
)

// EquipmentLoan registra equipo retornable prestado a un cliente contra un
// pedido. Nunca se elimina (rastro de auditoría); las devoluciones parciales
// acumulan ReturnedQuantity hasta cerrar el préstamo.
type EquipmentLoan struct {
	ID               string
	CompanyID        string
	CustomerID       string
	EquipmentID      string
	EquipmentName    string
	Quantity         int
	ReturnedQuantity int
	Status           string
	OrderRef         string // pedido que originó el préstamo (opcional)
	LoanDate         time.Time
	ReturnDate       *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Outstanding devuelve las unidades aún en manos del cliente.
func (l *EquipmentLoan) Outstanding() int {
	return l.Quantity - l.ReturnedQuantity
}

// Open indica si el préstamo sigue con unidades pendientes.
func (l *EquipmentLoan) Open() bool {
	return l.Status != LoanStatusReturned
}

// LoanReturn es la fila de auditoría de cada devolución (quién, cuándo,
// cuánto y cuánto queda pendiente).
type LoanReturn struct {
	ID         string
	LoanID     string
	Quantity   int
	Remaining  int
	ReturnedBy string // UserID
	ReturnedAt time.Time
}
