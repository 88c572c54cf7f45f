// Package validation contiene las estrategias de validación de payloads:
// FailFastValidator (reporta el primer campo inválido), AggregatingValidator
// (reporta todos) y NormalizingValidator (alta de negocio: fail-fast + normalización).
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/acaclick-api/internal/domain"
	"github.com/jhoicas/acaclick-api/internal/domain/entity"
)

// Mensajes comunes.
const (
	MsgRequired = "Este campo es requerido."
	MsgNotNull  = "Este campo no puede ser nulo."
	MsgBadType  = "Tipo de dato inválido."

	MsgBadDecimal = "Valor decimal inválido."
)

// Formatos aceptados para campos de hora y fecha.
var (
	horaLayouts = []string{"15:04", "15:04:05", "15:04:05.999999"}
	fechaLayout = "2006-01-02"
	usernameRe  = regexp.MustCompile(`^[\w.@+-]+$`)
)

// Mensajes específicos por campo.tag.
var fieldMessages = map[string]string{
	"id_rol.required": "El rol es obligatorio.",
}

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	must := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
	must("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	must("tipo_negocio", func(fl validator.FieldLevel) bool {
		return entity.EsTipoValido(fl.Field().String())
	})
	must("hora", func(fl validator.FieldLevel) bool {
		_, ok := ParseHora(fl.Field().String())
		return ok
	})
	must("fecha", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(fechaLayout, fl.Field().String())
		return err == nil
	})
	must("username", func(fl validator.FieldLevel) bool {
		return usernameRe.MatchString(fl.Field().String())
	})
	must("latitud", func(fl validator.FieldLevel) bool {
		d, ok := fl.Field().Interface().(decimal.Decimal)
		return ok && FitsNumeric(d, 10, 8)
	})
	must("longitud", func(fl validator.FieldLevel) bool {
		d, ok := fl.Field().Interface().(decimal.Decimal)
		return ok && FitsNumeric(d, 11, 8)
	})
	return v
}

// ParseHora acepta HH:MM[:ss[.uuuuuu]] y devuelve la forma canónica HH:MM:SS.
func ParseHora(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range horaLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("15:04:05"), true
		}
	}
	return "", false
}

// ParseFecha interpreta YYYY-MM-DD.
func ParseFecha(s string) (time.Time, error) {
	return time.Parse(fechaLayout, strings.TrimSpace(s))
}

// FitsNumeric indica si d cabe en NUMERIC(precision, scale) sin perder decimales.
func FitsNumeric(d decimal.Decimal, precision, scale int32) bool {
	if -d.Exponent() > scale {
		return false
	}
	intDigits := int32(len(d.Abs().Truncate(0).String()))
	if d.Abs().LessThan(decimal.NewFromInt(1)) {
		intDigits = 0
	}
	return intDigits <= precision-scale
}

func fieldErrors(s interface{}) (validator.ValidationErrors, error) {
	err := validate.Struct(s)
	if err == nil {
		return nil, nil
	}
	var ves validator.ValidationErrors
	if errors.As(err, &ves) {
		return ves, nil
	}
	return nil, err
}

func messageFor(fe validator.FieldError) string {
	if msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	switch fe.Tag() {
	case "required", "notblank":
		return MsgRequired
	case "email":
		return "Introduzca una dirección de correo electrónico válida."
	case "max":
		return fmt.Sprintf("Asegúrese de que este campo no tenga más de %s caracteres.", fe.Param())
	case "min":
		return fmt.Sprintf("Asegúrese de que este campo tenga al menos %s caracteres.", fe.Param())
	case "gt":
		return fmt.Sprintf("Asegúrese de que este valor sea mayor que %s.", fe.Param())
	case "tipo_negocio":
		return fmt.Sprintf("%q no es una elección válida.", fmt.Sprint(fe.Value()))
	case "hora":
		return "Formato de hora incorrecto. Use uno de los siguientes formatos: hh:mm[:ss[.uuuuuu]]."
	case "fecha":
		return "Formato de fecha incorrecto. Use uno de los siguientes formatos: YYYY-MM-DD."
	case "username":
		return "Introduzca un nombre de usuario válido (letras, números y @/./+/-/_)."
	case "latitud":
		return "Asegúrese de que no haya más de 2 dígitos enteros y 8 decimales."
	case "longitud":
		return "Asegúrese de que no haya más de 3 dígitos enteros y 8 decimales."
	default:
		return "Valor inválido."
	}
}

// FailFastValidator devuelve solo el primer campo inválido, en el orden del struct.
type FailFastValidator struct{}

// Validate retorna *domain.ValidationError con un único campo, o nil.
func (FailFastValidator) Validate(s interface{}) error {
	ves, err := fieldErrors(s)
	if err != nil {
		return err
	}
	if len(ves) == 0 {
		return nil
	}
	return domain.NewValidationError(ves[0].Field(), messageFor(ves[0]))
}

// AggregatingValidator acumula todos los campos inválidos.
type AggregatingValidator struct{}

// Collect agrega los errores de s a acc (que puede traer errores previos).
func (AggregatingValidator) Collect(s interface{}, acc *domain.ValidationError) error {
	ves, err := fieldErrors(s)
	if err != nil {
		return err
	}
	for _, fe := range ves {
		acc.Add(fe.Field(), messageFor(fe))
	}
	return nil
}

// Validate retorna *domain.ValidationError con todos los campos inválidos, o nil.
func (a AggregatingValidator) Validate(s interface{}) error {
	acc := &domain.ValidationError{}
	if err := a.Collect(s, acc); err != nil {
		return err
	}
	return acc.OrNil()
}
