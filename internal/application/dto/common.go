package dto

// ErrorResponse cuerpo de error HTTP ({error, detail}).
type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
	Code   string `json:"code,omitempty"`
}

// MessageResponse confirmación simple ({message}).
type MessageResponse struct {
	Message string `json:"message"`
}
