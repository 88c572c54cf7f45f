package postgres

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/acaclick-api/internal/domain"
)

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("timeout")))
}

func TestUsuarioConflict_NombraElCampo(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{&pgconn.PgError{Code: "23505", ConstraintName: "usuarios_correo_key", Detail: "Key (correo)=(a@b.com) already exists."}, msgCorreoDuplicado},
		{&pgconn.PgError{Code: "23505", ConstraintName: "usuarios_username_key", Detail: "Key (username)=(ana) already exists."}, msgUsernameDuplicado},
		{&pgconn.PgError{Code: "23505", ConstraintName: "usuarios_pkey"}, msgDuplicado},
	}
	for _, c := range cases {
		ce := usuarioConflict(c.err)
		assert.Equal(t, c.want, ce.Message)
		assert.ErrorIs(t, ce, domain.ErrDuplicate)
	}

	ce := usuarioConflict(cases[0].err)
	assert.Equal(t, "Key (correo)=(a@b.com) already exists.", ce.Detail)
}

func TestMigrationsEmbebidas(t *testing.T) {
	for servicio := range migrationSchemas {
		entries, err := fs.ReadDir(migrationsFS, "migrations/"+servicio)
		require.NoError(t, err, servicio)
		require.NotEmpty(t, entries, servicio)
		for _, e := range entries {
			b, err := fs.ReadFile(migrationsFS, "migrations/"+servicio+"/"+e.Name())
			require.NoError(t, err)
			assert.True(t, strings.Contains(string(b), "-- +goose Up"), e.Name())
			assert.True(t, strings.Contains(string(b), "-- +goose Down"), e.Name())
		}
	}
}

func TestMigrate_ServicioDesconocido(t *testing.T) {
	err := Migrate(context.Background(), "postgres://x", "facturas", "up", nil)
	assert.ErrorContains(t, err, "servicio desconocido")
}

func TestPersonalizacionParam(t *testing.T) {
	assert.Nil(t, personalizacionParam(nil))
	assert.Equal(t, `{"a":1}`, personalizacionParam([]byte(`{"a":1}`)))
}
