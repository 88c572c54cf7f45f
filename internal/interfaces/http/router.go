package http

import (
	"errors"
	"os"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/acaclick-api/internal/application/auth"
	"github.com/jhoicas/acaclick-api/internal/application/dto"
	"github.com/jhoicas/acaclick-api/internal/application/usecase"
	"github.com/jhoicas/acaclick-api/pkg/logger"
)

// AppConfig opciones comunes de los servicios HTTP.
type AppConfig struct {
	Name        string
	Service     string
	Log         *logger.Logger
	SwaggerFile string // vacío o inexistente = sin /docs
}

// NewApp crea la app Fiber con recover, request id, métricas, log de peticiones,
// /health, /metrics y Swagger UI.
func NewApp(cfg AppConfig) *fiber.App {
	if cfg.Log == nil {
		cfg.Log = logger.Nop()
	}
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: errorHandler,
	})
	metrics := NewMetrics(cfg.Service)

	app.Use(recover.New())
	app.Use(RequestID())
	app.Use(metrics.Middleware())
	app.Use(RequestLogger(cfg.Log.Component("http")))

	if cfg.SwaggerFile != "" {
		if _, err := os.Stat(cfg.SwaggerFile); err == nil {
			// Swagger UI en local: http://localhost:<port>/docs
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: cfg.SwaggerFile,
				Path:     "docs",
				Title:    "AcaClick API - " + cfg.Service,
			}))
		}
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.Service})
	})
	app.Get("/metrics", metrics.Handler())
	return app
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(dto.ErrorResponse{Error: err.Error()})
}

// NegociosDeps dependencias del servicio de negocios.
type NegociosDeps struct {
	NegocioUC *usecase.NegocioUseCase
	Tokens    TokenParser
}

// NegociosRouter registra las rutas de negocios. Son públicas; un token válido,
// si viene, identifica al usuario que hace el cambio.
func NegociosRouter(app *fiber.App, deps NegociosDeps) {
	h := NewNegocioHandler(deps.NegocioUC)
	negocios := app.Group("/negocios", OptionalAuth(deps.Tokens))

	negocios.Get("/", h.List)
	negocios.Post("/crear", h.Create)
	negocios.Get("/usuario/:ownerId<int>", h.ListByOwner)
	negocios.Get("/:id<int>", h.GetByID)
	negocios.Put("/:id<int>/actualizar", h.Update)
	negocios.Patch("/:id<int>/actualizar", h.Update)
	negocios.Delete("/:id<int>/eliminar", h.Delete)
	negocios.Post("/:id<int>/personalizar", h.Customize)
}

// UsuariosDeps dependencias del servicio de usuarios.
type UsuariosDeps struct {
	AuthUC    *auth.AuthUseCase
	UsuarioUC *usecase.UsuarioUseCase
	Tokens    TokenParser
}

// UsuariosRouter registra las rutas de autenticación y registro.
func UsuariosRouter(app *fiber.App, deps UsuariosDeps) {
	h := NewAuthHandler(deps.AuthUC, deps.UsuarioUC)
	authGroup := app.Group("/auth")

	authGroup.Post("/login", h.Login)
	authGroup.Post("/register", h.Register)
	authGroup.Post("/refresh", h.Refresh)
	authGroup.Get("/me", AuthMiddleware(deps.Tokens), h.Me)
}
