package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/acaclick-api/internal/domain/entity"
	"github.com/jhoicas/acaclick-api/internal/domain/repository"
)

// Asegura que RolRepo implementa repository.RolRepository.
var _ repository.RolRepository = (*RolRepo)(nil)

// RolRepo implementación del puerto RolRepository sobre PostgreSQL.
type RolRepo struct {
	q Querier
}

// NewRolRepository construye el adaptador. Acepta pool o tx (Querier).
func NewRolRepository(q Querier) *RolRepo {
	return &RolRepo{q: q}
}

// GetByID obtiene un rol por id; (nil, nil) si no existe.
func (r *RolRepo) GetByID(ctx context.Context, id int64) (*entity.Rol, error) {
	var rol entity.Rol
	err := r.q.QueryRow(ctx, `SELECT id_rol, nombre_rol, COALESCE(descripcion, '') FROM roles WHERE id_rol = $1`, id).
		Scan(&rol.ID, &rol.Nombre, &rol.Descripcion)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get rol: %w", err)
	}
	return &rol, nil
}

// Upsert crea o actualiza el rol por id. xmax = 0 solo en filas recién insertadas.
func (r *RolRepo) Upsert(ctx context.Context, rol *entity.Rol) (bool, error) {
	query := `
		INSERT INTO roles (id_rol, nombre_rol, descripcion)
		VALUES ($1, $2, $3)
		ON CONFLICT (id_rol) DO UPDATE SET nombre_rol = EXCLUDED.nombre_rol, descripcion = EXCLUDED.descripcion
		RETURNING (xmax = 0)`
	var created bool
	if err := r.q.QueryRow(ctx, query, rol.ID, rol.Nombre, rol.Descripcion).Scan(&created); err != nil {
		return false, fmt.Errorf("upsert rol: %w", err)
	}
	return created, nil
}
