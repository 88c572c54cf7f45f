package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/acaclick-api/internal/application/auth"
	"github.com/jhoicas/acaclick-api/internal/application/events"
	"github.com/jhoicas/acaclick-api/internal/application/usecase"
	"github.com/jhoicas/acaclick-api/internal/infrastructure/postgres"
	"github.com/jhoicas/acaclick-api/internal/infrastructure/redisstream"
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
		Service: "usuarios",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("auth_mode", cfg.Auth.Mode).
		Msg("iniciando servicio de usuarios")

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

	// Sin REDIS_URL el registro funciona igual pero no se publican eventos.
	var publisher events.Publisher = events.NopPublisher{}
	if cfg.Redis.URL != "" {
		client, err := redisstream.NewClient(ctx, cfg.Redis.URL, cfg.Redis.Password)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer client.Close()
		publisher = redisstream.NewPublisher(client, cfg.Events.Stream)
	} else {
		log.Warn().Msg("REDIS_URL vacío: eventos usuario.creado deshabilitados")
	}

	var identity auth.IdentityProvider
	switch cfg.Auth.Mode {
	case config.AuthModeDev:
		identity = auth.NewDevIdentityProvider(auth.DevCredentials{
			Correo:   cfg.Auth.DevCorreo,
			Password: cfg.Auth.DevPassword,
			UserID:   cfg.Auth.DevUserID,
		})
	default:
		identity = auth.NewStoreIdentityProvider(postgres.NewUsuarioRepository(pool))
	}

	authUC := auth.NewAuthUseCase(identity, tokens)
	usuarioUC := usecase.NewUsuarioUseCase(postgres.NewTxRunner(pool), publisher, log.Component("registro"))

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:        cfg.App.Name,
		Service:     "usuarios",
		Log:         log,
		SwaggerFile: "./docs/swagger.json",
	})
	httpRouter.UsuariosRouter(app, httpRouter.UsuariosDeps{
		AuthUC:    authUC,
		UsuarioUC: usuarioUC,
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
