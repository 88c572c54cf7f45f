// migrate aplica el esquema SQL embebido de un servicio con goose.
//
// Uso: go run ./cmd/migrate -servicio negocios -comando up
//
//	go run ./cmd/migrate -servicio usuarios -comando status
package main

import (
	"context"
	"flag"
	"time"

	"github.com/jhoicas/acaclick-api/internal/infrastructure/postgres"
	"github.com/jhoicas/acaclick-api/pkg/config"
	"github.com/jhoicas/acaclick-api/pkg/logger"
)

func main() {
	servicio := flag.String("servicio", "negocios", "esquema a migrar: negocios | usuarios")
	comando := flag.String("comando", "up", "comando goose: up, down, status, version, reset...")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: "migrate",
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := postgres.Migrate(ctx, cfg.DB.ConnectionString(), *servicio, *comando, log, flag.Args()...); err != nil {
		log.Fatal().Err(err).Str("servicio", *servicio).Str("comando", *comando).Msg("migración")
	}
	log.Info().Str("servicio", *servicio).Str("comando", *comando).Msg("migración completada")
}
