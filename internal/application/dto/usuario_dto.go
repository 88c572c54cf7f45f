package dto

// RegisterRequest payload de registro (nombres de la tabla usuarios).
type RegisterRequest struct {
	Username        string  `json:"username" validate:"notblank,max=150,username"`
	Correo          string  `json:"correo" validate:"notblank,email,max=254"`
	Nombre          string  `json:"nombre" validate:"notblank,max=100"`
	ApellidoPaterno string  `json:"apellido_paterno" validate:"notblank,max=100"`
	ApellidoMaterno *string `json:"apellido_materno" validate:"omitempty,max=100"`
	FechaNacimiento *string `json:"fecha_nacimiento" validate:"omitempty,fecha"`
	Password        string  `json:"password" validate:"notblank,min=6"`
	Password2       *string `json:"password2" validate:"omitempty,min=6"`
	IDRol           *int64  `json:"id_rol" validate:"required"`
}

// RolResponse rol anidado en la representación de usuario.
type RolResponse struct {
	IDRol       int64  `json:"id_rol"`
	NombreRol   string `json:"nombre_rol"`
	Descripcion string `json:"descripcion"`
}

// UsuarioResponse representación pública (sin password).
type UsuarioResponse struct {
	IDUsuario       int64        `json:"id_usuario"`
	Correo          string       `json:"correo"`
	Username        string       `json:"username"`
	Nombre          string       `json:"nombre"`
	ApellidoPaterno string       `json:"apellido_paterno"`
	ApellidoMaterno *string      `json:"apellido_materno"`
	FechaNacimiento *string      `json:"fecha_nacimiento"`
	Rol             *RolResponse `json:"rol"`
	TenantID        string       `json:"tenant_id,omitempty"`
}

// LoginRequest credenciales del login.
type LoginRequest struct {
	Correo   string `json:"correo" validate:"notblank,email"`
	Password string `json:"password" validate:"notblank"`
}

// RefreshRequest cuerpo de POST /auth/refresh.
type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"notblank"`
}

// TokenPairResponse par de tokens emitido en login/refresh.
type TokenPairResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// InitRolesResult conteo del inicializador de roles.
type InitRolesResult struct {
	Creados      int `json:"creados"`
	Actualizados int `json:"actualizados"`
}
