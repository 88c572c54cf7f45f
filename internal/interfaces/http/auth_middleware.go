package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/acaclick-api/internal/application/dto"
	"github.com/jhoicas/acaclick-api/internal/application/usecase"
	"github.com/jhoicas/acaclick-api/pkg/jwt"
)

// LocalUserID key de Fiber Locals con el id_usuario del token.
const LocalUserID = "user_id"

// Mensajes de autenticación.
const (
	MsgTokenFaltante = "Las credenciales de autenticación no se proveyeron."
	MsgTokenInvalido = "El token no es válido o ha expirado."
)

// TokenParser valida tokens de acceso.
type TokenParser interface {
	Parse(token, expectedType string) (*jwt.Claims, error)
}

// AuthMiddleware exige un Bearer access token válido y guarda el user_id en c.Locals.
func AuthMiddleware(tokens TokenParser) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Error: MsgTokenFaltante})
		}
		return authenticate(c, tokens, authHeader)
	}
}

// OptionalAuth deja pasar peticiones sin token (anónimas). Si el token viene, debe ser válido.
func OptionalAuth(tokens TokenParser) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Next()
		}
		return authenticate(c, tokens, authHeader)
	}
}

func authenticate(c *fiber.Ctx, tokens TokenParser, authHeader string) error {
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Error: "formato: Bearer <token>"})
	}
	tokenString := strings.TrimSpace(parts[1])
	if tokenString == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Error: MsgTokenFaltante})
	}
	claims, err := tokens.Parse(tokenString, jwt.TypeAccess)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Error: MsgTokenInvalido})
	}
	c.Locals(LocalUserID, claims.UserID)
	return c.Next()
}

// GetUserID devuelve el id_usuario del token, o 0 si la petición es anónima.
func GetUserID(c *fiber.Ctx) int64 {
	id, _ := c.Locals(LocalUserID).(int64)
	return id
}

// CallerFrom arma el Caller de los casos de uso a partir del contexto.
func CallerFrom(c *fiber.Ctx) usecase.Caller {
	return usecase.Caller{UserID: GetUserID(c)}
}
