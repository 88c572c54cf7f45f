package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // driver "pgx" para database/sql
	"github.com/pressly/goose/v3"

	"github.com/jhoicas/acaclick-api/pkg/logger"
)

//go:embed migrations/*/*.sql
var migrationsFS embed.FS

// Esquemas migrables: cada servicio tiene su directorio y su tabla de versiones.
var migrationSchemas = map[string]string{
	"negocios": "goose_negocios_version",
	"usuarios": "goose_usuarios_version",
}

// gooseLogger adapta el logger de la app a goose.Logger.
type gooseLogger struct {
	log *logger.Logger
}

func (g gooseLogger) Printf(format string, v ...interface{}) {
	g.log.Info().Msgf(format, v...)
}

func (g gooseLogger) Fatalf(format string, v ...interface{}) {
	g.log.Error().Msgf(format, v...)
}

// Migrate ejecuta el comando goose (up, down, status, version...) sobre el esquema
// del servicio indicado.
func Migrate(ctx context.Context, dsn, servicio, command string, log *logger.Logger, args ...string) error {
	table, ok := migrationSchemas[servicio]
	if !ok {
		return fmt.Errorf("servicio desconocido %q (use negocios o usuarios)", servicio)
	}
	if log == nil {
		log = logger.Nop()
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("abrir conexión para migraciones: %w", err)
	}
	defer func() { _ = db.Close() }()
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping DB: %w", err)
	}

	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(gooseLogger{log: log.Component("migrate")})
	goose.SetTableName(table)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	if err := goose.RunContext(ctx, command, db, "migrations/"+servicio, args...); err != nil {
		return fmt.Errorf("goose %s %s: %w", command, servicio, err)
	}
	return nil
}
