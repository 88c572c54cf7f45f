package http

import (
	"bytes"
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/acaclick-api/internal/application/dto"
	"github.com/jhoicas/acaclick-api/internal/application/usecase"
	"github.com/jhoicas/acaclick-api/internal/domain"
)

var negocioErrors = errorTexts{notFound: MsgNegocioNoEncontrado, internal: "Error interno del servidor"}

// NegocioHandler maneja las peticiones HTTP de negocios.
type NegocioHandler struct {
	uc *usecase.NegocioUseCase
}

// NewNegocioHandler construye el handler de negocios.
func NewNegocioHandler(uc *usecase.NegocioUseCase) *NegocioHandler {
	return &NegocioHandler{uc: uc}
}

// List godoc
// @Summary      Listar negocios activos
// @Tags         negocios
// @Produce      json
// @Success      200  {array}  dto.NegocioResponse
// @Router       /negocios/ [get]
func (h *NegocioHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err, negocioErrors)
	}
	return c.JSON(list)
}

// ListByOwner godoc
// @Summary      Listar negocios activos de un usuario
// @Tags         negocios
// @Produce      json
// @Param        ownerId  path  int  true  "id_usuario"
// @Success      200  {array}  dto.NegocioResponse
// @Router       /negocios/usuario/{ownerId}/ [get]
func (h *NegocioHandler) ListByOwner(c *fiber.Ctx) error {
	ownerID, err := c.ParamsInt("ownerId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "id de usuario inválido"})
	}
	list, err := h.uc.ListByOwner(c.UserContext(), int64(ownerID))
	if err != nil {
		return writeError(c, err, negocioErrors)
	}
	return c.JSON(list)
}

// GetByID godoc
// @Summary      Obtener negocio activo
// @Tags         negocios
// @Produce      json
// @Param        id  path  int  true  "id_negocio"
// @Success      200  {object}  dto.NegocioResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /negocios/{id}/ [get]
func (h *NegocioHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return writeError(c, domain.ErrNotFound, negocioErrors)
	}
	out, err := h.uc.GetByID(c.UserContext(), int64(id))
	if err != nil {
		return writeError(c, err, negocioErrors)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear negocio
// @Description  Valida en modo fail-fast y normaliza sitio web, coordenadas y logo.
// @Tags         negocios
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateNegocioRequest  true  "formulario Nuevo negocio"
// @Success      201   {object}  dto.NegocioResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /negocios/crear/ [post]
func (h *NegocioHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateNegocioRequest
	if err := parseJSON(c, &in); err != nil {
		return writeError(c, err, negocioErrors)
	}
	out, err := h.uc.Create(c.UserContext(), CallerFrom(c), in)
	if err != nil {
		return writeError(c, err, errorTexts{internal: "Error al crear el negocio"})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar negocio (parcial)
// @Tags         negocios
// @Accept       json
// @Produce      json
// @Param        id    path  int                        true  "id_negocio"
// @Param        body  body  dto.UpdateNegocioRequest   true  "campos a cambiar"
// @Success      200   {object}  dto.NegocioResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /negocios/{id}/actualizar/ [put]
// @Router       /negocios/{id}/actualizar/ [patch]
func (h *NegocioHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return writeError(c, domain.ErrNotFound, negocioErrors)
	}
	var in dto.UpdateNegocioRequest
	if err := parseJSON(c, &in); err != nil {
		return writeError(c, err, negocioErrors)
	}
	out, err := h.uc.Update(c.UserContext(), CallerFrom(c), int64(id), in)
	if err != nil {
		return writeError(c, err, negocioErrors)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar (desactivar) negocio
// @Tags         negocios
// @Produce      json
// @Param        id  path  int  true  "id_negocio"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /negocios/{id}/eliminar/ [delete]
func (h *NegocioHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return writeError(c, domain.ErrNotFound, negocioErrors)
	}
	if err := h.uc.Delete(c.UserContext(), CallerFrom(c), int64(id)); err != nil {
		return writeError(c, err, negocioErrors)
	}
	return c.JSON(dto.MessageResponse{Message: "Negocio eliminado correctamente"})
}

// Customize godoc
// @Summary      Guardar personalización de la tienda
// @Description  El cuerpo completo reemplaza el documento de personalización.
// @Tags         negocios
// @Accept       json
// @Produce      json
// @Param        id    path  int     true  "id_negocio"
// @Param        body  body  object  true  "documento libre (tema, colores, layout)"
// @Success      200   {object}  dto.PersonalizacionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /negocios/{id}/personalizar/ [post]
func (h *NegocioHandler) Customize(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return writeError(c, domain.ErrNotFound, negocioErrors)
	}
	body := bytes.TrimSpace(c.Body())
	if len(body) == 0 {
		body = []byte("{}")
	}
	doc := append(json.RawMessage(nil), body...)
	out, err := h.uc.Customize(c.UserContext(), CallerFrom(c), int64(id), doc)
	if err != nil {
		return writeError(c, err, negocioErrors)
	}
	return c.JSON(dto.PersonalizacionResponse{Message: "Personalización guardada exitosamente", Negocio: *out})
}
