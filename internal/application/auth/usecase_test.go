package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/acaclick-api/internal/application/auth"
	"github.com/jhoicas/acaclick-api/internal/application/dto"
	"github.com/jhoicas/acaclick-api/internal/domain"
	"github.com/jhoicas/acaclick-api/internal/domain/entity"
	"github.com/jhoicas/acaclick-api/pkg/crypto"
	"github.com/jhoicas/acaclick-api/pkg/jwt"
)

// usuariosFake repositorio en memoria indexado por correo.
type usuariosFake struct {
	byCorreo map[string]*entity.Usuario
}

func (f *usuariosFake) Create(context.Context, *entity.Usuario) error { return nil }
func (f *usuariosFake) GetByID(_ context.Context, id int64) (*entity.Usuario, error) {
	for _, u := range f.byCorreo {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}
func (f *usuariosFake) GetByCorreo(_ context.Context, correo string) (*entity.Usuario, error) {
	return f.byCorreo[correo], nil
}
func (f *usuariosFake) ExistsByCorreo(context.Context, string) (bool, error)   { return false, nil }
func (f *usuariosFake) ExistsByUsername(context.Context, string) (bool, error) { return false, nil }
func (f *usuariosFake) UpdateCredentials(context.Context, int64, string, bool) error {
	return nil
}

func newIssuer(t *testing.T) *jwt.Issuer {
	t.Helper()
	iss, err := jwt.NewIssuer("secreto-de-prueba", "acaclick", time.Hour, 24*time.Hour)
	require.NoError(t, err)
	return iss
}

func storeUseCase(t *testing.T) (*auth.AuthUseCase, *jwt.Issuer) {
	t.Helper()
	hash, err := crypto.HashPassword("secreto1")
	require.NoError(t, err)
	repo := &usuariosFake{byCorreo: map[string]*entity.Usuario{
		"ana@x.com":  {ID: 5, Correo: "ana@x.com", Username: "ana", PasswordHash: hash, Activo: true, Rol: entity.RolPorID(2)},
		"baja@x.com": {ID: 6, Correo: "baja@x.com", Username: "baja", PasswordHash: hash, Activo: false},
	}}
	iss := newIssuer(t)
	return auth.NewAuthUseCase(auth.NewStoreIdentityProvider(repo), iss), iss
}

func TestLogin_Store_EmiteParConUserID(t *testing.T) {
	uc, iss := storeUseCase(t)

	pair, err := uc.Login(context.Background(), dto.LoginRequest{Correo: " ana@x.com ", Password: "secreto1"})
	require.NoError(t, err)

	access, err := iss.Parse(pair.Access, jwt.TypeAccess)
	require.NoError(t, err)
	assert.Equal(t, int64(5), access.UserID)
	refresh, err := iss.Parse(pair.Refresh, jwt.TypeRefresh)
	require.NoError(t, err)
	assert.Equal(t, int64(5), refresh.UserID)
}

func TestLogin_Store_FallosGenericos(t *testing.T) {
	uc, _ := storeUseCase(t)
	cases := []struct {
		in   dto.LoginRequest
		want error
	}{
		{dto.LoginRequest{Correo: "ana@x.com", Password: "mala"}, domain.ErrInvalidCredentials},
		{dto.LoginRequest{Correo: "nadie@x.com", Password: "secreto1"}, domain.ErrInvalidCredentials},
		{dto.LoginRequest{Correo: "", Password: ""}, domain.ErrInvalidCredentials},
		{dto.LoginRequest{Correo: "baja@x.com", Password: "secreto1"}, domain.ErrInactiveAccount},
	}
	for _, c := range cases {
		_, err := uc.Login(context.Background(), c.in)
		assert.ErrorIs(t, err, c.want, c.in.Correo)
	}
}

func TestMe_Store(t *testing.T) {
	uc, _ := storeUseCase(t)

	me, err := uc.Me(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "ana", me.Username)
	assert.Equal(t, "propietario", me.Rol.NombreRol)

	_, err = uc.Me(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestDev_LoginYMe(t *testing.T) {
	iss := newIssuer(t)
	uc := auth.NewAuthUseCase(auth.NewDevIdentityProvider(auth.DevCredentials{
		Correo: "admin@acaclick.com", Password: "admin123", UserID: 1,
	}), iss)

	pair, err := uc.Login(context.Background(), dto.LoginRequest{Correo: "admin@acaclick.com", Password: "admin123"})
	require.NoError(t, err)
	claims, err := iss.Parse(pair.Access, jwt.TypeAccess)
	require.NoError(t, err)

	me, err := uc.Me(context.Background(), claims.UserID)
	require.NoError(t, err)
	assert.Equal(t, "admin", me.Username)
	assert.Equal(t, "Administrador", me.Nombre)
	assert.Equal(t, "admin", me.Rol.NombreRol)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Correo: "admin@acaclick.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = uc.Me(context.Background(), 2)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRefresh(t *testing.T) {
	uc, _ := storeUseCase(t)
	pair, err := uc.Login(context.Background(), dto.LoginRequest{Correo: "ana@x.com", Password: "secreto1"})
	require.NoError(t, err)

	nuevo, err := uc.Refresh(context.Background(), dto.RefreshRequest{Refresh: pair.Refresh})
	require.NoError(t, err)
	assert.NotEmpty(t, nuevo.Access)

	_, err = uc.Refresh(context.Background(), dto.RefreshRequest{Refresh: pair.Access})
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "un access token no sirve como refresh")

	_, err = uc.Refresh(context.Background(), dto.RefreshRequest{Refresh: "basura"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
