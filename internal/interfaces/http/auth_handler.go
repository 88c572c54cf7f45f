package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/acaclick-api/internal/application/auth"
	"github.com/jhoicas/acaclick-api/internal/application/dto"
	"github.com/jhoicas/acaclick-api/internal/application/usecase"
)

var (
	authErrors     = errorTexts{internal: "Error interno del servidor"}
	registerErrors = errorTexts{internal: "Error al registrar el usuario. Por favor, intente nuevamente.", hideDetail: true}
)

// AuthHandler maneja login, perfil, refresh y registro.
type AuthHandler struct {
	auth     *auth.AuthUseCase
	usuarios *usecase.UsuarioUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(authUC *auth.AuthUseCase, usuariosUC *usecase.UsuarioUseCase) *AuthHandler {
	return &AuthHandler{auth: authUC, usuarios: usuariosUC}
}

// Register godoc
// @Summary      Registrar usuario
// @Description  Acumula todos los errores de validación por campo.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "datos del usuario"
// @Success      201   {object}  dto.UsuarioResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := parseJSON(c, &in); err != nil {
		return writeError(c, err, registerErrors)
	}
	user, err := h.usuarios.Register(c.UserContext(), in)
	if err != nil {
		return writeError(c, err, registerErrors)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "correo, password"
// @Success      200   {object}  dto.TokenPairResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := parseJSON(c, &in); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: MsgCredencialesInvalidas})
	}
	out, err := h.auth.Login(c.UserContext(), in)
	if err != nil {
		return writeError(c, err, authErrors)
	}
	return c.JSON(out)
}

// Refresh godoc
// @Summary      Renovar el par de tokens
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RefreshRequest  true  "refresh token"
// @Success      200   {object}  dto.TokenPairResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var in dto.RefreshRequest
	if err := parseJSON(c, &in); err != nil {
		return writeError(c, err, authErrors)
	}
	out, err := h.auth.Refresh(c.UserContext(), in)
	if err != nil {
		return writeError(c, err, authErrors)
	}
	return c.JSON(out)
}

// Me godoc
// @Summary      Perfil del usuario autenticado
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.UsuarioResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	out, err := h.auth.Me(c.UserContext(), GetUserID(c))
	if err != nil {
		return writeError(c, err, authErrors)
	}
	return c.JSON(out)
}
