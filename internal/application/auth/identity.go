package auth

import (
	"context"

	"github.com/jhoicas/acaclick-api/internal/domain"
	"github.com/jhoicas/acaclick-api/internal/domain/entity"
	"github.com/jhoicas/acaclick-api/internal/domain/repository"
	"github.com/jhoicas/acaclick-api/pkg/crypto"
)

// IdentityProvider resuelve credenciales y perfiles. Hay dos implementaciones:
// contra la tabla usuarios (store) y un único usuario fijo de desarrollo (dev).
type IdentityProvider interface {
	// Authenticate devuelve el usuario o domain.ErrInvalidCredentials / domain.ErrInactiveAccount.
	Authenticate(ctx context.Context, correo, password string) (*entity.Usuario, error)
	// Profile devuelve (nil, nil) si el principal no existe.
	Profile(ctx context.Context, userID int64) (*entity.Usuario, error)
}

// StoreIdentityProvider valida contra los usuarios persistidos (bcrypt).
type StoreIdentityProvider struct {
	repo repository.UsuarioRepository
}

// NewStoreIdentityProvider construye el proveedor con el repositorio de usuarios.
func NewStoreIdentityProvider(repo repository.UsuarioRepository) *StoreIdentityProvider {
	return &StoreIdentityProvider{repo: repo}
}

func (p *StoreIdentityProvider) Authenticate(ctx context.Context, correo, password string) (*entity.Usuario, error) {
	u, err := p.repo.GetByCorreo(ctx, correo)
	if err != nil {
		return nil, err
	}
	if u == nil || !crypto.CheckPassword(password, u.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	if !u.Activo {
		return nil, domain.ErrInactiveAccount
	}
	return u, nil
}

func (p *StoreIdentityProvider) Profile(ctx context.Context, userID int64) (*entity.Usuario, error) {
	return p.repo.GetByID(ctx, userID)
}

// DevCredentials par de credenciales fijo del modo dev.
type DevCredentials struct {
	Correo   string
	Password string
	UserID   int64
}

// DevIdentityProvider acepta solo el par configurado y expone un perfil estático.
type DevIdentityProvider struct {
	password string
	usuario  entity.Usuario
}

// NewDevIdentityProvider construye el proveedor de desarrollo.
func NewDevIdentityProvider(c DevCredentials) *DevIdentityProvider {
	vacio := ""
	return &DevIdentityProvider{
		password: c.Password,
		usuario: entity.Usuario{
			ID:              c.UserID,
			Username:        "admin",
			Correo:          c.Correo,
			Nombre:          "Administrador",
			ApellidoPaterno: "AcaClick",
			ApellidoMaterno: &vacio,
			RolID:           entity.RolAdminID,
			Rol:             entity.RolPorID(entity.RolAdminID),
			Activo:          true,
		},
	}
}

func (p *DevIdentityProvider) Authenticate(_ context.Context, correo, password string) (*entity.Usuario, error) {
	if correo != p.usuario.Correo || password != p.password {
		return nil, domain.ErrInvalidCredentials
	}
	u := p.usuario
	return &u, nil
}

func (p *DevIdentityProvider) Profile(_ context.Context, userID int64) (*entity.Usuario, error) {
	if userID != p.usuario.ID {
		return nil, nil
	}
	u := p.usuario
	return &u, nil
}
