package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de negocio válidos (deben coincidir con el CHECK de la tabla negocios).
const (
	TipoRestaurante = "restaurante"
	TipoMinorista   = "minorista"
	TipoServicio    = "servicio"
	TipoHosteleria  = "hosteleria"
	TipoCreativo    = "creativo"
	TipoOtro        = "otro"
)

// TiposNegocio catálogo ordenado de tipos.
var TiposNegocio = []string{TipoRestaurante, TipoMinorista, TipoServicio, TipoHosteleria, TipoCreativo, TipoOtro}

// EsTipoValido indica si t pertenece al catálogo.
func EsTipoValido(t string) bool {
	for _, v := range TiposNegocio {
		if v == t {
			return true
		}
	}
	return false
}

// EstadoNegocio ciclo de vida de un negocio. Un negocio eliminado se conserva en
// la tabla pero queda fuera de List/GetByID.
type EstadoNegocio int

const (
	EstadoActivo EstadoNegocio = iota
	EstadoEliminado
)

// EstadoDesdeActivo traduce la columna activo al estado.
func EstadoDesdeActivo(activo bool) EstadoNegocio {
	if activo {
		return EstadoActivo
	}
	return EstadoEliminado
}

// Activo valor de la columna activo para el estado.
func (e EstadoNegocio) Activo() bool { return e == EstadoActivo }

func (e EstadoNegocio) String() string {
	if e == EstadoActivo {
		return "activo"
	}
	return "eliminado"
}

// Personalizacion documento libre de apariencia de la tienda (tema, colores, layout).
// Se guarda y devuelve tal cual; el servidor no valida su esquema.
type Personalizacion json.RawMessage

// PersonalizacionVacia documento por defecto ({}).
func PersonalizacionVacia() Personalizacion { return Personalizacion("{}") }

// MarshalJSON emite el documento verbatim (null si está vacío).
func (p Personalizacion) MarshalJSON() ([]byte, error) {
	if len(p) == 0 {
		return []byte("null"), nil
	}
	return []byte(p), nil
}

// UnmarshalJSON guarda una copia del documento recibido.
func (p *Personalizacion) UnmarshalJSON(data []byte) error {
	*p = append((*p)[0:0], data...)
	return nil
}

// Negocio representa un negocio registrado por un propietario (tabla negocios).
type Negocio struct {
	ID              int64
	Nombre          string
	Tipo            string
	Descripcion     *string
	Correo          string
	Telefono        string
	Direccion       string
	Latitud         *decimal.Decimal // NUMERIC(10,8)
	Longitud        *decimal.Decimal // NUMERIC(11,8)
	HorarioApertura *string          // HH:MM:SS
	HorarioCierre   *string
	SitioWeb        *string
	Facebook        *string
	Instagram       *string
	Twitter         *string
	LogoURL         *string // URL o imagen embebida (data URI / base64)
	Personalizacion Personalizacion
	IDUsuario       int64
	TenantID        string
	Estado          EstadoNegocio
	CreadoEn        time.Time
	ActualizadoEn   time.Time
}

// Eliminar marca el negocio como eliminado (soft delete).
func (n *Negocio) Eliminar(now time.Time) {
	n.Estado = EstadoEliminado
	n.ActualizadoEn = now
}

// EstaActivo indica si el negocio es visible en listados.
func (n *Negocio) EstaActivo() bool { return n.Estado == EstadoActivo }
