package dto

// Estados del campo "status" de las respuestas.
const (
	StatusOK    = "OK"
	StatusError = "ERROR"
)

// ErrorResponse cuerpo de error HTTP. Code identifica el tipo de error; Detalle es el mensaje legible.
type ErrorResponse struct {
	Status  string `json:"status" example:"ERROR"`
	Code    string `json:"code" example:"AUTH_FAULT"`
	Detalle string `json:"detalle" example:"WSAA rechazó la autenticación: Computador no autorizado a acceder al servicio"`
}

// NewError arma un ErrorResponse con status ERROR.
func NewError(code, detalle string) ErrorResponse {
	return ErrorResponse{Status: StatusError, Code: code, Detalle: detalle}
}
