package validation

import (
	"bytes"
	"encoding/json"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/acaclick-api/internal/application/dto"
	"github.com/jhoicas/acaclick-api/internal/domain/entity"
)

const coordScale = 8

// NormalizingValidator valida el alta de negocio en modo fail-fast y normaliza los
// campos derivados (sitio web, coordenadas, logo, opcionales en blanco).
type NormalizingValidator struct {
	failFast FailFastValidator
}

// NewNormalizingValidator crea el validador de alta.
func NewNormalizingValidator() *NormalizingValidator {
	return &NormalizingValidator{}
}

// Prepare recorta y valida req, y devuelve el borrador del negocio listo para persistir
// (sin dueño ni tenant). El primer campo inválido se reporta como *domain.ValidationError.
func (v *NormalizingValidator) Prepare(req *dto.CreateNegocioRequest) (*entity.Negocio, error) {
	req.BusinessName = strings.TrimSpace(req.BusinessName)
	req.BusinessType = FoldTipo(req.BusinessType)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Address = strings.TrimSpace(req.Address)
	for _, p := range []**string{&req.OpenTime, &req.CloseTime, &req.Website, &req.Facebook,
		&req.Instagram, &req.Twitter, &req.Description, &req.Logo} {
		*p = trimOrNil(*p)
	}

	if err := v.failFast.Validate(req); err != nil {
		return nil, err
	}

	n := &entity.Negocio{
		Nombre:          req.BusinessName,
		Tipo:            req.BusinessType,
		Descripcion:     req.Description,
		Correo:          req.Email,
		Telefono:        req.Phone,
		Direccion:       req.Address,
		HorarioApertura: canonicalHora(req.OpenTime),
		HorarioCierre:   canonicalHora(req.CloseTime),
		SitioWeb:        NormalizeWebsite(req.Website),
		Facebook:        req.Facebook,
		Instagram:       req.Instagram,
		Twitter:         req.Twitter,
		LogoURL:         req.Logo,
		Personalizacion: entity.PersonalizacionVacia(),
		Estado:          entity.EstadoActivo,
	}
	n.Latitud, n.Longitud = ParseLocation(req.Location)
	return n, nil
}

// FoldTipo pasa a minúsculas y quita diacríticos ("Hostelería" -> "hosteleria").
func FoldTipo(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		out = strings.TrimSpace(s)
	}
	return strings.ToLower(out)
}

// NormalizeWebsite agrega https:// cuando falta el esquema; en blanco queda ausente.
func NormalizeWebsite(w *string) *string {
	if w == nil {
		return nil
	}
	s := strings.TrimSpace(*w)
	if s == "" {
		return nil
	}
	lower := strings.ToLower(s)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		s = "https://" + s
	}
	return &s
}

// ParseLocation interpreta {lat, lng} como decimales de 8 cifras. Cada coordenada se
// lee por separado: si falta, no es numérica o no cabe en su columna, solo esa queda ausente.
func ParseLocation(raw json.RawMessage) (lat, lng *decimal.Decimal) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var loc map[string]interface{}
	if err := dec.Decode(&loc); err != nil || loc == nil {
		return nil, nil
	}
	return coordenada(loc["lat"], 10), coordenada(loc["lng"], 11)
}

func coordenada(v interface{}, precision int32) *decimal.Decimal {
	d, ok := toDecimal(v)
	if !ok || !FitsNumeric(d, precision, coordScale) {
		return nil
	}
	return &d
}

func toDecimal(v interface{}) (decimal.Decimal, bool) {
	var s string
	switch x := v.(type) {
	case json.Number:
		s = x.String()
	case string:
		s = strings.TrimSpace(x)
	default:
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d.Round(coordScale), true
}

func canonicalHora(s *string) *string {
	if s == nil {
		return nil
	}
	h, ok := ParseHora(*s)
	if !ok {
		return nil
	}
	return &h
}

func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
