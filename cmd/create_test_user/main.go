// create_test_user garantiza la cuenta de pruebas testuser / test@example.com con
// rol propietario. Si ya existe, restablece la contraseña y la reactiva.
package main

import (
	"context"
	"time"

	"github.com/jhoicas/acaclick-api/internal/application/events"
	"github.com/jhoicas/acaclick-api/internal/application/usecase"
	"github.com/jhoicas/acaclick-api/internal/infrastructure/postgres"
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
		Service: "create_test_user",
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	uc := usecase.NewUsuarioUseCase(postgres.NewTxRunner(pool), events.NopPublisher{}, log)
	created, err := uc.EnsureTestUser(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("usuario de prueba")
	}

	msg := "usuario de prueba actualizado"
	if created {
		msg = "usuario de prueba creado"
	}
	log.Info().
		Str("correo", usecase.TestCorreo).
		Str("password", usecase.TestPassword).
		Msg(msg)
}
