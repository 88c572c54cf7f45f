package entity

import "time"

// Roles del catálogo fijo (id asignado, no autogenerado).
const (
	RolAdminID       int64 = 1
	RolPropietarioID int64 = 2
	RolClienteID     int64 = 3
)

// Rol representa un rol del sistema (tabla roles).
type Rol struct {
	ID          int64
	Nombre      string
	Descripcion string
}

// CatalogoRoles filas semilla que init_roles mantiene sincronizadas.
func CatalogoRoles() []Rol {
	return []Rol{
		{ID: RolAdminID, Nombre: "admin", Descripcion: "Administrador del sistema"},
		{ID: RolPropietarioID, Nombre: "propietario", Descripcion: "Propietario de negocio"},
		{ID: RolClienteID, Nombre: "cliente", Descripcion: "Cliente final"},
	}
}

// RolPorID devuelve una copia del rol del catálogo, o nil si el id no pertenece a él.
func RolPorID(id int64) *Rol {
	for _, r := range CatalogoRoles() {
		if r.ID == id {
			return &r
		}
	}
	return nil
}

// Usuario representa un usuario de la plataforma (tabla usuarios).
type Usuario struct {
	ID              int64 // id_usuario, es el principal de los tokens
	TenantID        string
	Username        string
	Correo          string
	Nombre          string
	ApellidoPaterno string
	ApellidoMaterno *string
	FechaNacimiento *time.Time
	PasswordHash    string // bcrypt, nunca se serializa
	RolID           int64
	Rol             *Rol
	Activo          bool
	CreadoEn        time.Time
}
