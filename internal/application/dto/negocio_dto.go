package dto

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/acaclick-api/internal/domain/entity"
)

// CreateNegocioRequest payload del formulario "Nuevo negocio" (nombres camelCase del frontend).
// El orden de los campos define el orden del reporte fail-fast.
type CreateNegocioRequest struct {
	BusinessName string          `json:"businessName" validate:"notblank,max=200"`
	BusinessType string          `json:"businessType" validate:"notblank,tipo_negocio"`
	Email        string          `json:"email" validate:"notblank,email,max=254"`
	Phone        string          `json:"phone" validate:"notblank,max=20"`
	Address      string          `json:"address" validate:"notblank"`
	OpenTime     *string         `json:"openTime" validate:"omitempty,hora"`
	CloseTime    *string         `json:"closeTime" validate:"omitempty,hora"`
	Website      *string         `json:"website" validate:"omitempty,max=500"`
	Facebook     *string         `json:"facebook" validate:"omitempty,max=200"`
	Instagram    *string         `json:"instagram" validate:"omitempty,max=200"`
	Twitter      *string         `json:"twitter" validate:"omitempty,max=200"`
	Description  *string         `json:"description"`
	Location     json.RawMessage `json:"location"` // {lat, lng}; si no se puede leer queda ausente
	Logo         *string         `json:"logo"`     // URL o base64
	OwnerID      *int64          `json:"ownerId" validate:"omitempty,gt=0"`
}

// UpdateNegocioRequest actualización parcial con los nombres de la tabla.
// Solo se validan los campos presentes; Nulls lista los campos enviados explícitamente como null
// y DecimalesInvalidos las coordenadas que llegaron pero no son un número.
type UpdateNegocioRequest struct {
	Nombre          *string                 `json:"nombre" validate:"omitempty,notblank,max=200"`
	Tipo            *string                 `json:"tipo" validate:"omitempty,tipo_negocio"`
	Descripcion     *string                 `json:"descripcion"`
	Correo          *string                 `json:"correo" validate:"omitempty,email,max=254"`
	Telefono        *string                 `json:"telefono" validate:"omitempty,notblank,max=20"`
	Direccion       *string                 `json:"direccion" validate:"omitempty,notblank"`
	Latitud         *decimal.Decimal        `json:"latitud" validate:"omitempty,latitud"`
	Longitud        *decimal.Decimal        `json:"longitud" validate:"omitempty,longitud"`
	HorarioApertura *string                 `json:"horario_apertura" validate:"omitempty,hora"`
	HorarioCierre   *string                 `json:"horario_cierre" validate:"omitempty,hora"`
	SitioWeb        *string                 `json:"sitio_web" validate:"omitempty,max=500"`
	Facebook        *string                 `json:"facebook" validate:"omitempty,max=200"`
	Instagram       *string                 `json:"instagram" validate:"omitempty,max=200"`
	Twitter         *string                 `json:"twitter" validate:"omitempty,max=200"`
	LogoURL         *string                 `json:"logo_url"`
	Personalizacion *entity.Personalizacion `json:"personalizacion"`
	IDUsuario       *int64                  `json:"id_usuario" validate:"omitempty,gt=0"`
	Activo          *bool                   `json:"activo"`

	Nulls              map[string]bool `json:"-"`
	DecimalesInvalidos map[string]bool `json:"-"`
}

// UnmarshalJSON decodifica los campos y además registra las claves enviadas como null.
// Latitud y longitud se leen aparte para que un valor no numérico sea error de campo.
func (r *UpdateNegocioRequest) UnmarshalJSON(data []byte) error {
	type alias UpdateNegocioRequest
	aux := struct {
		*alias
		Latitud  json.RawMessage `json:"latitud"`
		Longitud json.RawMessage `json:"longitud"`
	}{alias: (*alias)(r)}
	*r = UpdateNegocioRequest{}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Latitud = r.leerDecimal("latitud", aux.Latitud)
	r.Longitud = r.leerDecimal("longitud", aux.Longitud)
	for k, v := range raw {
		if string(v) == "null" {
			if r.Nulls == nil {
				r.Nulls = make(map[string]bool)
			}
			r.Nulls[k] = true
		}
	}
	return nil
}

// leerDecimal acepta número JSON o string numérico; null o ausente devuelven nil sin error.
func (r *UpdateNegocioRequest) leerDecimal(campo string, v json.RawMessage) *decimal.Decimal {
	v = bytes.TrimSpace(v)
	if len(v) == 0 || string(v) == "null" {
		return nil
	}
	texto := string(v)
	if v[0] == '"' {
		if err := json.Unmarshal(v, &texto); err != nil {
			texto = ""
		}
	}
	d, err := decimal.NewFromString(strings.TrimSpace(texto))
	if err != nil {
		if r.DecimalesInvalidos == nil {
			r.DecimalesInvalidos = make(map[string]bool)
		}
		r.DecimalesInvalidos[campo] = true
		return nil
	}
	return &d
}

// NegocioResponse representación pública de un negocio.
// Latitud/longitud con 8 decimales fijos, horarios HH:MM:SS.
type NegocioResponse struct {
	IDNegocio       int64                  `json:"id_negocio"`
	Nombre          string                 `json:"nombre"`
	Tipo            string                 `json:"tipo"`
	Descripcion     *string                `json:"descripcion"`
	Correo          string                 `json:"correo"`
	Telefono        string                 `json:"telefono"`
	Direccion       string                 `json:"direccion"`
	Latitud         *string                `json:"latitud"`
	Longitud        *string                `json:"longitud"`
	HorarioApertura *string                `json:"horario_apertura"`
	HorarioCierre   *string                `json:"horario_cierre"`
	SitioWeb        *string                `json:"sitio_web"`
	Facebook        *string                `json:"facebook"`
	Instagram       *string                `json:"instagram"`
	Twitter         *string                `json:"twitter"`
	LogoURL         *string                `json:"logo_url"`
	Personalizacion entity.Personalizacion `json:"personalizacion"`
	IDUsuario       int64                  `json:"id_usuario"`
	TenantID        string                 `json:"tenant_id"`
	Activo          bool                   `json:"activo"`
	CreadoEn        time.Time              `json:"creado_en"`
	ActualizadoEn   time.Time              `json:"actualizado_en"`
}

// PersonalizacionResponse respuesta de POST /negocios/{id}/personalizar/.
type PersonalizacionResponse struct {
	Message string          `json:"message"`
	Negocio NegocioResponse `json:"negocio"`
}
