package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse respuesta con mensaje y recurso afectado (ej. borrados).
type MessageResponse struct {
	Message string      `json:"message"`
	Item    interface{} `json:"item,omitempty"`
}
