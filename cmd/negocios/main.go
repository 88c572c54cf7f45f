package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/acaclick-api/internal/application/usecase"
	"github.com/jhoicas/acaclick-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/acaclick-api/internal/interfaces/http"
	"github.com/jhoicas/acaclick-api/pkg/config"
	"github.com/jhoicas/acaclick-api/pkg/jwt"
	"github.com/jhoicas/acaclick-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: "negocios",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando servicio de negocios")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	tokens, err := jwt.NewIssuer(cfg.JWT.Secret, cfg.JWT.Issuer,
		time.Duration(cfg.JWT.AccessMinutes)*time.Minute,
		time.Duration(cfg.JWT.RefreshMinutes)*time.Minute)
	if err != nil {
		log.Fatal().Err(err).Msg("configuración JWT")
	}

	negocioRepo := postgres.NewNegocioRepository(pool)
	negocioUC := usecase.NewNegocioUseCase(negocioRepo, cfg.Negocios.OwnerFallbackID)

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:        cfg.App.Name,
		Service:     "negocios",
		Log:         log,
		SwaggerFile: "./docs/swagger.json",
	})
	httpRouter.NegociosRouter(app, httpRouter.NegociosDeps{
		NegocioUC: negocioUC,
		Tokens:    tokens,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("servicio detenido")
}
