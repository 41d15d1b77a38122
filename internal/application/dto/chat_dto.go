package dto

// ChatRequest mensaje del usuario al asistente.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse texto devuelto por el proveedor, sin modificar.
type ChatResponse struct {
	Response string `json:"response"`
}
