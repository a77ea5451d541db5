package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrCustomerNotFound   = errors.New("cliente no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrPreconditionFailed = errors.New("precondición no cumplida")
	ErrSignatureMissing   = errors.New("el cliente debe firmar antes de avanzar la entrega")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrLinePriceMissing   = errors.New("precio de línea no encontrado en el pedido")
)
