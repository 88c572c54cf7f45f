package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/acaclick-api/internal/domain"
	"github.com/jhoicas/acaclick-api/internal/domain/entity"
	"github.com/jhoicas/acaclick-api/internal/domain/repository"
)

// Asegura que NegocioRepo implementa repository.NegocioRepository.
var _ repository.NegocioRepository = (*NegocioRepo)(nil)

const negocioColumns = `
	id_negocio, nombre, tipo, descripcion, correo, telefono, direccion, latitud, longitud,
	to_char(horario_apertura, 'HH24:MI:SS'), to_char(horario_cierre, 'HH24:MI:SS'),
	sitio_web, facebook, instagram, twitter, logo_url, personalizacion,
	id_usuario, tenant_id::text, activo, creado_en, actualizado_en`

// NegocioRepo implementación del puerto NegocioRepository sobre PostgreSQL.
type NegocioRepo struct {
	q Querier
}

// NewNegocioRepository construye el adaptador. Acepta pool o tx (Querier).
func NewNegocioRepository(q Querier) *NegocioRepo {
	return &NegocioRepo{q: q}
}

// Create inserta el negocio y completa su id.
func (r *NegocioRepo) Create(ctx context.Context, n *entity.Negocio) error {
	query := `
		INSERT INTO negocios (nombre, tipo, descripcion, correo, telefono, direccion, latitud, longitud,
			horario_apertura, horario_cierre, sitio_web, facebook, instagram, twitter, logo_url,
			personalizacion, id_usuario, tenant_id, activo, creado_en, actualizado_en)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9::time, $10::time, $11, $12, $13, $14, $15,
			$16::jsonb, $17, $18::uuid, $19, $20, $21)
		RETURNING id_negocio`
	err := r.q.QueryRow(ctx, query,
		n.Nombre, n.Tipo, n.Descripcion, n.Correo, n.Telefono, n.Direccion, n.Latitud, n.Longitud,
		n.HorarioApertura, n.HorarioCierre, n.SitioWeb, n.Facebook, n.Instagram, n.Twitter, n.LogoURL,
		personalizacionParam(n.Personalizacion), n.IDUsuario, n.TenantID, n.Estado.Activo(),
		n.CreadoEn, n.ActualizadoEn,
	).Scan(&n.ID)
	if err != nil {
		return fmt.Errorf("insert negocio: %w", err)
	}
	return nil
}

// GetByID obtiene un negocio sin filtrar por estado.
func (r *NegocioRepo) GetByID(ctx context.Context, id int64) (*entity.Negocio, error) {
	return r.getOne(ctx, `SELECT `+negocioColumns+` FROM negocios WHERE id_negocio = $1`, id)
}

// GetActivoByID obtiene un negocio solo si está activo.
func (r *NegocioRepo) GetActivoByID(ctx context.Context, id int64) (*entity.Negocio, error) {
	return r.getOne(ctx, `SELECT `+negocioColumns+` FROM negocios WHERE id_negocio = $1 AND activo`, id)
}

// ListActivos lista los negocios activos, más recientes primero.
func (r *NegocioRepo) ListActivos(ctx context.Context) ([]*entity.Negocio, error) {
	return r.list(ctx, `SELECT `+negocioColumns+` FROM negocios WHERE activo ORDER BY creado_en DESC, id_negocio DESC`)
}

// ListActivosByUsuario lista los negocios activos de un propietario.
func (r *NegocioRepo) ListActivosByUsuario(ctx context.Context, idUsuario int64) ([]*entity.Negocio, error) {
	return r.list(ctx, `SELECT `+negocioColumns+` FROM negocios WHERE activo AND id_usuario = $1 ORDER BY creado_en DESC, id_negocio DESC`, idUsuario)
}

// Update guarda todos los campos mutables (tenant_id y creado_en no se tocan) y
// relee los horarios en forma canónica.
func (r *NegocioRepo) Update(ctx context.Context, n *entity.Negocio) error {
	query := `
		UPDATE negocios SET nombre = $2, tipo = $3, descripcion = $4, correo = $5, telefono = $6,
			direccion = $7, latitud = $8, longitud = $9, horario_apertura = $10::time,
			horario_cierre = $11::time, sitio_web = $12, facebook = $13, instagram = $14,
			twitter = $15, logo_url = $16, personalizacion = $17::jsonb, id_usuario = $18,
			activo = $19, actualizado_en = $20
		WHERE id_negocio = $1
		RETURNING to_char(horario_apertura, 'HH24:MI:SS'), to_char(horario_cierre, 'HH24:MI:SS')`
	err := r.q.QueryRow(ctx, query,
		n.ID, n.Nombre, n.Tipo, n.Descripcion, n.Correo, n.Telefono, n.Direccion, n.Latitud, n.Longitud,
		n.HorarioApertura, n.HorarioCierre, n.SitioWeb, n.Facebook, n.Instagram, n.Twitter, n.LogoURL,
		personalizacionParam(n.Personalizacion), n.IDUsuario, n.Estado.Activo(), n.ActualizadoEn,
	).Scan(&n.HorarioApertura, &n.HorarioCierre)
	if err != nil {
		if isNoRows(err) {
			return fmt.Errorf("update negocio %d: %w", n.ID, domain.ErrNotFound)
		}
		return fmt.Errorf("update negocio: %w", err)
	}
	return nil
}

func (r *NegocioRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Negocio, error) {
	n, err := scanNegocio(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get negocio: %w", err)
	}
	return n, nil
}

func (r *NegocioRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Negocio, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list negocios: %w", err)
	}
	defer rows.Close()
	var list []*entity.Negocio
	for rows.Next() {
		n, err := scanNegocio(rows)
		if err != nil {
			return nil, fmt.Errorf("scan negocio: %w", err)
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

func scanNegocio(row pgx.Row) (*entity.Negocio, error) {
	var (
		n      entity.Negocio
		pers   []byte
		activo bool
	)
	err := row.Scan(
		&n.ID, &n.Nombre, &n.Tipo, &n.Descripcion, &n.Correo, &n.Telefono, &n.Direccion,
		&n.Latitud, &n.Longitud, &n.HorarioApertura, &n.HorarioCierre,
		&n.SitioWeb, &n.Facebook, &n.Instagram, &n.Twitter, &n.LogoURL, &pers,
		&n.IDUsuario, &n.TenantID, &activo, &n.CreadoEn, &n.ActualizadoEn,
	)
	if err != nil {
		return nil, err
	}
	if pers != nil {
		n.Personalizacion = entity.Personalizacion(pers)
	}
	n.Estado = entity.EstadoDesdeActivo(activo)
	return &n, nil
}

func personalizacionParam(p entity.Personalizacion) any {
	if len(p) == 0 {
		return nil
	}
	return string(p)
}
