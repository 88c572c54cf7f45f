package repository

import (
	"context"

	"github.com/jhoicas/acaclick-api/internal/domain/entity"
)

// UsuarioRepository define el puerto de persistencia para Usuario (DIP).
type UsuarioRepository interface {
	Create(ctx context.Context, usuario *entity.Usuario) error
	GetByID(ctx context.Context, id int64) (*entity.Usuario, error)
	GetByCorreo(ctx context.Context, correo string) (*entity.Usuario, error)
	ExistsByCorreo(ctx context.Context, correo string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	// UpdateCredentials reemplaza el hash de contraseña y el flag activo.
	UpdateCredentials(ctx context.Context, id int64, passwordHash string, activo bool) error
}

// RolRepository define el puerto de persistencia para Rol.
type RolRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Rol, error)
	// Upsert crea o actualiza el rol por id; created indica si la fila es nueva.
	Upsert(ctx context.Context, rol *entity.Rol) (created bool, err error)
}
