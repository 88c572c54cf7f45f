package http

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/acaclick-api/internal/application/dto"
	"github.com/jhoicas/acaclick-api/internal/application/validation"
	"github.com/jhoicas/acaclick-api/internal/domain"
)

// Mensajes comunes de las respuestas de error.
const (
	MsgNegocioNoEncontrado   = "Negocio no encontrado"
	MsgCredencialesInvalidas = "Credenciales incorrectas"
	MsgRolNoNumerico         = "El rol debe ser un número válido."
	MsgJSONInvalido          = "JSON inválido"
)

// malformedBodyError el cuerpo no se pudo decodificar como JSON.
type malformedBodyError struct {
	err error
}

func (e *malformedBodyError) Error() string { return e.err.Error() }

// errorTexts textos por endpoint para 404 y 500.
type errorTexts struct {
	notFound   string
	internal   string
	hideDetail bool
}

// parseJSON decodifica el cuerpo con el decoder de la app. Un cuerpo vacío equivale a {}.
// Un tipo incorrecto en un campo se reporta como error de ese campo.
func parseJSON(c *fiber.Ctx, out interface{}) error {
	body := c.Body()
	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("{}")
	}
	if err := c.App().Config().JSONDecoder(body, out); err != nil {
		var ute *json.UnmarshalTypeError
		if errors.As(err, &ute) && ute.Field != "" {
			msg := validation.MsgBadType
			if ute.Field == "id_rol" {
				msg = MsgRolNoNumerico
			}
			return domain.NewValidationError(ute.Field, msg)
		}
		return &malformedBodyError{err: err}
	}
	return nil
}

// writeError traduce errores de dominio a la respuesta JSON correspondiente.
func writeError(c *fiber.Ctx, err error, t errorTexts) error {
	var (
		verr *domain.ValidationError
		cerr *domain.ConflictError
		ierr *domain.InternalError
		merr *malformedBodyError
	)
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(verr.Fields)
	case errors.As(err, &merr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: MsgJSONInvalido, Detail: merr.Error(), Code: "INVALID_BODY"})
	case errors.As(err, &cerr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: cerr.Message, Detail: cerr.Detail})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: t.notFound})
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrInactiveAccount):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: MsgCredencialesInvalidas})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: MsgTokenInvalido, Code: "INVALID_TOKEN"})
	case errors.As(err, &ierr):
		resp := dto.ErrorResponse{Error: ierr.Message}
		if ierr.Err != nil {
			resp.Detail = ierr.Err.Error()
		}
		return c.Status(fiber.StatusInternalServerError).JSON(resp)
	}
	resp := dto.ErrorResponse{Error: t.internal}
	if !t.hideDetail {
		resp.Detail = err.Error()
	}
	return c.Status(fiber.StatusInternalServerError).JSON(resp)
}
