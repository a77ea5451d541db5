package entity

import "time"

// Roles de usuario dentro de la empresa.
const (
	RoleAdmin    = "admin"
	RoleOperator = "operador" // registra entregas, coletas y movimientos
)

// User representa un operador de la distribuidora.
// PasswordHash es bcrypt; nunca se expone en DTOs.
type User struct {
	ID           string
	CompanyID    string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
