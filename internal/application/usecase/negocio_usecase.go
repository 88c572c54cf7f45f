package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/acaclick-api/internal/application/dto"
	"github.com/jhoicas/acaclick-api/internal/application/validation"
	"github.com/jhoicas/acaclick-api/internal/domain"
	"github.com/jhoicas/acaclick-api/internal/domain/entity"
	"github.com/jhoicas/acaclick-api/internal/domain/repository"
)

// Caller identidad de quien invoca una mutación. UserID 0 = anónimo.
type Caller struct {
	UserID int64
}

// Anonimo indica que la petición no trajo token.
func (c Caller) Anonimo() bool { return c.UserID == 0 }

// Campos obligatorios del negocio que no aceptan null en una actualización.
var negocioNoNulos = []string{"nombre", "tipo", "correo", "telefono", "direccion", "id_usuario", "activo"}

// NegocioUseCase aplica reglas de negocio para negocios (casos de uso).
type NegocioUseCase struct {
	repo            repository.NegocioRepository
	normalizer      *validation.NormalizingValidator
	updates         validation.AggregatingValidator
	ownerFallbackID int64
	now             func() time.Time
}

// NewNegocioUseCase construye el caso de uso. ownerFallbackID se usa cuando el alta
// no trae ownerId ni hay usuario autenticado.
func NewNegocioUseCase(repo repository.NegocioRepository, ownerFallbackID int64) *NegocioUseCase {
	return &NegocioUseCase{
		repo:            repo,
		normalizer:      validation.NewNormalizingValidator(),
		ownerFallbackID: ownerFallbackID,
		now:             time.Now,
	}
}

// List lista los negocios activos, más recientes primero.
func (uc *NegocioUseCase) List(ctx context.Context) ([]dto.NegocioResponse, error) {
	list, err := uc.repo.ListActivos(ctx)
	if err != nil {
		return nil, err
	}
	return toNegocioResponses(list), nil
}

// ListByOwner lista los negocios activos de un usuario.
func (uc *NegocioUseCase) ListByOwner(ctx context.Context, ownerID int64) ([]dto.NegocioResponse, error) {
	list, err := uc.repo.ListActivosByUsuario(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return toNegocioResponses(list), nil
}

// GetByID obtiene un negocio activo. Devuelve domain.ErrNotFound si no existe o fue eliminado.
func (uc *NegocioUseCase) GetByID(ctx context.Context, id int64) (*dto.NegocioResponse, error) {
	n, err := uc.repo.GetActivoByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, domain.ErrNotFound
	}
	return toNegocioResponse(n), nil
}

// Create valida (fail-fast), normaliza y persiste un negocio nuevo.
func (uc *NegocioUseCase) Create(ctx context.Context, caller Caller, in dto.CreateNegocioRequest) (*dto.NegocioResponse, error) {
	n, err := uc.normalizer.Prepare(&in)
	if err != nil {
		return nil, err
	}
	switch {
	case in.OwnerID != nil:
		n.IDUsuario = *in.OwnerID
	case !caller.Anonimo():
		n.IDUsuario = caller.UserID
	default:
		n.IDUsuario = uc.ownerFallbackID
	}
	now := uc.now()
	n.TenantID = uuid.New().String()
	n.CreadoEn = now
	n.ActualizadoEn = now
	if err := uc.repo.Create(ctx, n); err != nil {
		return nil, &domain.InternalError{Message: "Error al crear el negocio", Err: err}
	}
	return toNegocioResponse(n), nil
}

// Update aplica una actualización parcial sobre cualquier negocio (activo o no).
// Solo valida los campos presentes y guarda los valores tal cual llegan.
func (uc *NegocioUseCase) Update(ctx context.Context, caller Caller, id int64, in dto.UpdateNegocioRequest) (*dto.NegocioResponse, error) {
	n, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	verr := &domain.ValidationError{}
	for _, campo := range negocioNoNulos {
		if in.Nulls[campo] {
			verr.Add(campo, validation.MsgNotNull)
		}
	}
	for _, campo := range []string{"latitud", "longitud"} {
		if in.DecimalesInvalidos[campo] {
			verr.Add(campo, validation.MsgBadDecimal)
		}
	}
	if err := uc.updates.Collect(&in, verr); err != nil {
		return nil, err
	}
	if verr.HasErrors() {
		return nil, verr
	}

	applyNegocioUpdate(n, in)
	n.ActualizadoEn = uc.now()
	if err := uc.repo.Update(ctx, n); err != nil {
		return nil, err
	}
	return toNegocioResponse(n), nil
}

// Delete marca el negocio como eliminado; la fila se conserva.
func (uc *NegocioUseCase) Delete(ctx context.Context, caller Caller, id int64) error {
	n, err := uc.find(ctx, id)
	if err != nil {
		return err
	}
	n.Eliminar(uc.now())
	return uc.repo.Update(ctx, n)
}

// Customize reemplaza por completo el documento de personalización.
func (uc *NegocioUseCase) Customize(ctx context.Context, caller Caller, id int64, doc json.RawMessage) (*dto.NegocioResponse, error) {
	n, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(doc) == 0 || !json.Valid(doc) {
		return nil, domain.NewValidationError("personalizacion", "Valor JSON inválido.")
	}
	n.Personalizacion = append(entity.Personalizacion(nil), doc...)
	n.ActualizadoEn = uc.now()
	if err := uc.repo.Update(ctx, n); err != nil {
		return nil, err
	}
	return toNegocioResponse(n), nil
}

func (uc *NegocioUseCase) find(ctx context.Context, id int64) (*entity.Negocio, error) {
	n, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, domain.ErrNotFound
	}
	return n, nil
}

func applyNegocioUpdate(n *entity.Negocio, in dto.UpdateNegocioRequest) {
	if in.Nombre != nil {
		n.Nombre = *in.Nombre
	}
	if in.Tipo != nil {
		n.Tipo = *in.Tipo
	}
	if in.Correo != nil {
		n.Correo = *in.Correo
	}
	if in.Telefono != nil {
		n.Telefono = *in.Telefono
	}
	if in.Direccion != nil {
		n.Direccion = *in.Direccion
	}
	if in.IDUsuario != nil {
		n.IDUsuario = *in.IDUsuario
	}
	if in.Activo != nil {
		n.Estado = entity.EstadoDesdeActivo(*in.Activo)
	}

	setOrClear(&n.Descripcion, in.Descripcion, in.Nulls["descripcion"])
	setOrClear(&n.HorarioApertura, in.HorarioApertura, in.Nulls["horario_apertura"])
	setOrClear(&n.HorarioCierre, in.HorarioCierre, in.Nulls["horario_cierre"])
	setOrClear(&n.SitioWeb, in.SitioWeb, in.Nulls["sitio_web"])
	setOrClear(&n.Facebook, in.Facebook, in.Nulls["facebook"])
	setOrClear(&n.Instagram, in.Instagram, in.Nulls["instagram"])
	setOrClear(&n.Twitter, in.Twitter, in.Nulls["twitter"])
	setOrClear(&n.LogoURL, in.LogoURL, in.Nulls["logo_url"])
	setOrClear(&n.Latitud, in.Latitud, in.Nulls["latitud"])
	setOrClear(&n.Longitud, in.Longitud, in.Nulls["longitud"])

	switch {
	case in.Personalizacion != nil:
		n.Personalizacion = *in.Personalizacion
	case in.Nulls["personalizacion"]:
		n.Personalizacion = nil
	}
}

func setOrClear[T any](dst **T, v *T, null bool) {
	switch {
	case v != nil:
		*dst = v
	case null:
		*dst = nil
	}
}

func toNegocioResponses(list []*entity.Negocio) []dto.NegocioResponse {
	items := make([]dto.NegocioResponse, 0, len(list))
	for _, n := range list {
		items = append(items, *toNegocioResponse(n))
	}
	return items
}

func toNegocioResponse(n *entity.Negocio) *dto.NegocioResponse {
	if n == nil {
		return nil
	}
	r := &dto.NegocioResponse{
		IDNegocio:       n.ID,
		Nombre:          n.Nombre,
		Tipo:            n.Tipo,
		Descripcion:     n.Descripcion,
		Correo:          n.Correo,
		Telefono:        n.Telefono,
		Direccion:       n.Direccion,
		HorarioApertura: n.HorarioApertura,
		HorarioCierre:   n.HorarioCierre,
		SitioWeb:        n.SitioWeb,
		Facebook:        n.Facebook,
		Instagram:       n.Instagram,
		Twitter:         n.Twitter,
		LogoURL:         n.LogoURL,
		Personalizacion: n.Personalizacion,
		IDUsuario:       n.IDUsuario,
		TenantID:        n.TenantID,
		Activo:          n.Estado.Activo(),
		CreadoEn:        n.CreadoEn,
		ActualizadoEn:   n.ActualizadoEn,
	}
	if n.Latitud != nil {
		s := n.Latitud.StringFixed(8)
		r.Latitud = &s
	}
	if n.Longitud != nil {
		s := n.Longitud.StringFixed(8)
		r.Longitud = &s
	}
	return r
}
