// notificaciones consume el stream de usuarios creados y registra una notificación
// por cada alta. Requiere REDIS_URL.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/acaclick-api/internal/application/notificacion"
	"github.com/jhoicas/acaclick-api/internal/infrastructure/redisstream"
	"github.com/jhoicas/acaclick-api/pkg/config"
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
		Service: "notificaciones",
	})
	if cfg.Redis.URL == "" {
		log.Fatal().Msg("REDIS_URL es obligatorio para el consumidor")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := redisstream.NewClient(ctx, cfg.Redis.URL, cfg.Redis.Password)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a Redis")
	}
	defer client.Close()

	notifier := notificacion.NewNotifier(log.Component("notifier"), os.Stdout)
	consumer := redisstream.NewConsumer(client, redisstream.ConsumerConfig{
		Stream:   cfg.Events.Stream,
		Group:    cfg.Events.Group,
		Consumer: cfg.Events.Consumer,
		Block:    5 * time.Second,
	}, notifier, log.Component("consumer"))

	if err := consumer.EnsureGroup(ctx); err != nil {
		log.Fatal().Err(err).Msg("grupo de consumidores")
	}

	log.Info().
		Str("stream", cfg.Events.Stream).
		Str("group", cfg.Events.Group).
		Msg("esperando eventos usuario.creado")

	if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("consumidor finalizado con error")
	}
	log.Info().Msg("consumidor detenido")
}
