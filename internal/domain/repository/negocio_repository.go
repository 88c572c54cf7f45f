package repository

import (
	"context"

	"github.com/jhoicas/acaclick-api/internal/domain/entity"
)

// NegocioRepository define el puerto de persistencia para Negocio (DIP).
// Los métodos Get* devuelven (nil, nil) cuando no hay fila.
type NegocioRepository interface {
	Create(ctx context.Context, negocio *entity.Negocio) error
	// GetByID busca sin importar el estado (activo o eliminado).
	GetByID(ctx context.Context, id int64) (*entity.Negocio, error)
	GetActivoByID(ctx context.Context, id int64) (*entity.Negocio, error)
	ListActivos(ctx context.Context) ([]*entity.Negocio, error)
	ListActivosByUsuario(ctx context.Context, idUsuario int64) ([]*entity.Negocio, error)
	Update(ctx context.Context, negocio *entity.Negocio) error
}
