package dto

// ErrorResponse formato estándar de error de la API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse confirmación simple (toda acción termina en exactamente
// un resultado visible: éxito, advertencia específica o fallo).
type MessageResponse struct {
	Message string `json:"message"`
}
