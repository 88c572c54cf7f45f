package http_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/acaclick-api/internal/interfaces/http"
)

// buildTestApp monta una ruta con AuthMiddleware y otra con OptionalAuth que
// devuelven el user_id resuelto.
func buildTestApp(t *testing.T) (*fiber.App, func(int64) string) {
	t.Helper()
	tokens := newTestIssuer(t)
	app := fiber.New()
	echo := func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": apphttp.GetUserID(c)})
	}
	app.Get("/protected", apphttp.AuthMiddleware(tokens), echo)
	app.Get("/optional", apphttp.OptionalAuth(tokens), echo)

	access := func(userID int64) string {
		pair, err := tokens.GeneratePair(userID)
		require.NoError(t, err)
		return pair.Access
	}
	return app, access
}

func TestAuthMiddleware_SinToken(t *testing.T) {
	app, _ := buildTestApp(t)

	status, raw := do(t, app, http.MethodGet, "/protected", "", "")

	assert.Equal(t, fiber.StatusUnauthorized, status)
	body := decodeMap(t, raw)
	assert.Equal(t, "MISSING_TOKEN", body["code"])
	assert.Equal(t, apphttp.MsgTokenFaltante, body["error"])
}

func TestAuthMiddleware_TokenValido(t *testing.T) {
	app, access := buildTestApp(t)

	status, raw := do(t, app, http.MethodGet, "/protected", "", access(42))

	require.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 42, decodeMap(t, raw)["user_id"])
}

func TestAuthMiddleware_TokenInvalido(t *testing.T) {
	app, _ := buildTestApp(t)

	status, raw := do(t, app, http.MethodGet, "/protected", "", "no-es-un-jwt")

	assert.Equal(t, fiber.StatusUnauthorized, status)
	body := decodeMap(t, raw)
	assert.Equal(t, "INVALID_TOKEN", body["code"])
	assert.Equal(t, apphttp.MsgTokenInvalido, body["error"])
}

func TestAuthMiddleware_RefreshNoSirveComoAccess(t *testing.T) {
	app, _ := buildTestApp(t)
	pair, err := newTestIssuer(t).GeneratePair(42)
	require.NoError(t, err)

	status, _ := do(t, app, http.MethodGet, "/protected", "", pair.Refresh)

	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestAuthMiddleware_FormatoIncorrecto(t *testing.T) {
	app, access := buildTestApp(t)
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token "+access(1))

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestOptionalAuth(t *testing.T) {
	app, access := buildTestApp(t)

	t.Run("anónimo pasa con user_id 0", func(t *testing.T) {
		status, raw := do(t, app, http.MethodGet, "/optional", "", "")
		require.Equal(t, fiber.StatusOK, status)
		assert.EqualValues(t, 0, decodeMap(t, raw)["user_id"])
	})

	t.Run("token válido identifica al usuario", func(t *testing.T) {
		status, raw := do(t, app, http.MethodGet, "/optional", "", access(7))
		require.Equal(t, fiber.StatusOK, status)
		assert.EqualValues(t, 7, decodeMap(t, raw)["user_id"])
	})

	t.Run("token inválido se rechaza", func(t *testing.T) {
		status, _ := do(t, app, http.MethodGet, "/optional", "", "basura")
		assert.Equal(t, fiber.StatusUnauthorized, status)
	})
}
