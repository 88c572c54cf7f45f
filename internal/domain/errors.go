package domain

import (
	"errors"
	"sort"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidCredentials = errors.New("credenciales incorrectas")
	ErrInactiveAccount    = errors.New("usuario inactivo")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrInvalidInput       = errors.New("entrada inválida")
)

// ValidationError agrupa errores por campo (campo -> mensaje).
// Business crea uno con un solo campo (fail-fast); registro los acumula.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError crea un error con un único campo.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// Add registra el mensaje del campo. Conserva el primero si el campo ya tenía uno.
func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, ok := e.Fields[field]; ok {
		return
	}
	e.Fields[field] = message
}

// HasErrors indica si hay al menos un campo con error.
func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.Fields) > 0
}

// OrNil devuelve nil cuando no hay errores, para poder retornarlo como error.
func (e *ValidationError) OrNil() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validación: " + strings.Join(parts, "; ")
}

// Is permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// ConflictError violación de unicidad detectada por el almacén.
// Message es el texto para el cliente; Detail el mensaje original del almacén.
type ConflictError struct {
	Message string
	Detail  string
}

func (e *ConflictError) Error() string {
	if e.Detail == "" {
		return e.Message
	}
	return e.Message + ": " + e.Detail
}

// Is permite errors.Is(err, ErrDuplicate).
func (e *ConflictError) Is(target error) bool {
	return target == ErrDuplicate
}

// InternalError fallo inesperado que se reporta con el mensaje original como detalle.
type InternalError struct {
	Message string
	Err     error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *InternalError) Unwrap() error { return e.Err }
