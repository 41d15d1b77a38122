package dto

import "github.com/jhoicas/adoptease-api/internal/domain"

// ErrorResponse cuerpo de error HTTP. Fields lista los errores por campo en validaciones.
type ErrorResponse struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Fields  []domain.FieldError `json:"fields,omitempty"`
}

// MessageResponse respuesta simple de confirmación.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse estado del servicio y del almacén primario.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}
