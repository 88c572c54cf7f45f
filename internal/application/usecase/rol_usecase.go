package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/acaclick-api/internal/application/dto"
	"github.com/jhoicas/acaclick-api/internal/domain/entity"
	"github.com/jhoicas/acaclick-api/internal/domain/repository"
	"github.com/jhoicas/acaclick-api/pkg/logger"
)

// RolUseCase mantiene sincronizado el catálogo fijo de roles.
type RolUseCase struct {
	repo repository.RolRepository
	log  *logger.Logger
}

// NewRolUseCase construye el caso de uso.
func NewRolUseCase(repo repository.RolRepository, log *logger.Logger) *RolUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &RolUseCase{repo: repo, log: log}
}

// InitCatalog crea o actualiza los roles admin, propietario y cliente. Es idempotente:
// una segunda ejecución no crea filas y actualiza las tres.
func (uc *RolUseCase) InitCatalog(ctx context.Context) (*dto.InitRolesResult, error) {
	res := &dto.InitRolesResult{}
	for _, r := range entity.CatalogoRoles() {
		created, err := uc.repo.Upsert(ctx, &r)
		if err != nil {
			return nil, fmt.Errorf("upsert rol %s: %w", r.Nombre, err)
		}
		accion := "actualizado"
		if created {
			res.Creados++
			accion = "creado"
		} else {
			res.Actualizados++
		}
		uc.log.Info().Int64("id_rol", r.ID).Str("nombre_rol", r.Nombre).Msgf("Rol %s", accion)
	}
	return res, nil
}
