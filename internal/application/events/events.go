// Package events define los eventos de integración entre servicios y el puerto de publicación.
package events

import (
	"context"
	"time"
)

// TipoUsuarioCreado nombre del evento emitido tras un registro exitoso.
const TipoUsuarioCreado = "usuario.creado"

// UsuarioCreado payload publicado en el stream usuarios.creados.
type UsuarioCreado struct {
	Evento    string    `json:"evento"`
	IDUsuario int64     `json:"id_usuario"`
	Username  string    `json:"username"`
	Correo    string    `json:"correo"`
	Nombre    string    `json:"nombre"`
	IDRol     int64     `json:"id_rol"`
	TenantID  string    `json:"tenant_id"`
	CreadoEn  time.Time `json:"creado_en"`
}

// Publisher puerto de salida hacia el bus de eventos.
type Publisher interface {
	PublishUsuarioCreado(ctx context.Context, ev UsuarioCreado) error
}

// NopPublisher descarta los eventos (sin Redis configurado).
type NopPublisher struct{}

// PublishUsuarioCreado no hace nada.
func (NopPublisher) PublishUsuarioCreado(context.Context, UsuarioCreado) error { return nil }
