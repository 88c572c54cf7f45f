// init_roles sincroniza el catálogo fijo de roles (admin, propietario, cliente).
// Es idempotente: la segunda ejecución solo actualiza.
//
// Uso: go run ./cmd/init_roles
package main

import (
	"context"
	"time"

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
		Service: "init_roles",
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	res, err := usecase.NewRolUseCase(postgres.NewRolRepository(pool), log).InitCatalog(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar roles")
	}
	log.Info().
		Int("creados", res.Creados).
		Int("actualizados", res.Actualizados).
		Msg("catálogo de roles sincronizado")
}
