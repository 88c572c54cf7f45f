package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/acaclick-api/internal/domain/entity"
	"github.com/jhoicas/acaclick-api/internal/domain/repository"
)

// Asegura que UsuarioRepo implementa repository.UsuarioRepository.
var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)

const usuarioSelect = `
	SELECT u.id_usuario, u.tenant_id::text, u.username, u.correo, u.nombre, u.apellido_paterno,
		u.apellido_materno, u.fecha_nacimiento, u.password, u.id_rol, u.is_active, u.creado_en,
		r.nombre_rol, r.descripcion
	FROM usuarios u
	LEFT JOIN roles r ON r.id_rol = u.id_rol`

// UsuarioRepo implementación del puerto UsuarioRepository sobre PostgreSQL.
type UsuarioRepo struct {
	q Querier
}

// NewUsuarioRepository construye el adaptador. Acepta pool o tx (Querier).
func NewUsuarioRepository(q Querier) *UsuarioRepo {
	return &UsuarioRepo{q: q}
}

// Create persiste el usuario. Una violación de unicidad se devuelve como *domain.ConflictError.
func (r *UsuarioRepo) Create(ctx context.Context, u *entity.Usuario) error {
	query := `
		INSERT INTO usuarios (tenant_id, username, correo, nombre, apellido_paterno, apellido_materno,
			fecha_nacimiento, password, id_rol, is_active, creado_en)
		VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id_usuario`
	err := r.q.QueryRow(ctx, query,
		u.TenantID, u.Username, u.Correo, u.Nombre, u.ApellidoPaterno, u.ApellidoMaterno,
		u.FechaNacimiento, u.PasswordHash, u.RolID, u.Activo, u.CreadoEn,
	).Scan(&u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return usuarioConflict(err)
		}
		return fmt.Errorf("insert usuario: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario (con su rol) por id.
func (r *UsuarioRepo) GetByID(ctx context.Context, id int64) (*entity.Usuario, error) {
	return r.getOne(ctx, usuarioSelect+` WHERE u.id_usuario = $1`, id)
}

// GetByCorreo obtiene un usuario (con su rol) por correo.
func (r *UsuarioRepo) GetByCorreo(ctx context.Context, correo string) (*entity.Usuario, error) {
	return r.getOne(ctx, usuarioSelect+` WHERE u.correo = $1`, correo)
}

// ExistsByCorreo indica si el correo ya está registrado.
func (r *UsuarioRepo) ExistsByCorreo(ctx context.Context, correo string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM usuarios WHERE correo = $1)`, correo)
}

// ExistsByUsername indica si el username ya está registrado.
func (r *UsuarioRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM usuarios WHERE username = $1)`, username)
}

// UpdateCredentials reemplaza el hash de contraseña y el flag activo.
func (r *UsuarioRepo) UpdateCredentials(ctx context.Context, id int64, passwordHash string, activo bool) error {
	cmd, err := r.q.Exec(ctx, `UPDATE usuarios SET password = $2, is_active = $3 WHERE id_usuario = $1`, id, passwordHash, activo)
	if err != nil {
		return fmt.Errorf("update credenciales: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("update credenciales: usuario %d no encontrado", id)
	}
	return nil
}

func (r *UsuarioRepo) exists(ctx context.Context, query string, arg any) (bool, error) {
	var ok bool
	if err := r.q.QueryRow(ctx, query, arg).Scan(&ok); err != nil {
		return false, fmt.Errorf("exists usuario: %w", err)
	}
	return ok, nil
}

func (r *UsuarioRepo) getOne(ctx context.Context, query string, arg any) (*entity.Usuario, error) {
	u, err := scanUsuario(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario: %w", err)
	}
	return u, nil
}

func scanUsuario(row pgx.Row) (*entity.Usuario, error) {
	var (
		u           entity.Usuario
		nombreRol   *string
		descripcion *string
	)
	err := row.Scan(
		&u.ID, &u.TenantID, &u.Username, &u.Correo, &u.Nombre, &u.ApellidoPaterno,
		&u.ApellidoMaterno, &u.FechaNacimiento, &u.PasswordHash, &u.RolID, &u.Activo, &u.CreadoEn,
		&nombreRol, &descripcion,
	)
	if err != nil {
		return nil, err
	}
	if nombreRol != nil {
		u.Rol = &entity.Rol{ID: u.RolID, Nombre: *nombreRol}
		if descripcion != nil {
			u.Rol.Descripcion = *descripcion
		}
	}
	return &u, nil
}
