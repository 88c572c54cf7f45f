package usecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/acaclick-api/internal/application/events"
	"github.com/jhoicas/acaclick-api/internal/domain/entity"
	"github.com/jhoicas/acaclick-api/internal/domain/repository"
)

// Mock NegocioRepository
type MockNegocioRepository struct {
	mock.Mock
}

func (m *MockNegocioRepository) Create(ctx context.Context, n *entity.Negocio) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNegocioRepository) GetByID(ctx context.Context, id int64) (*entity.Negocio, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Negocio), args.Error(1)
}

func (m *MockNegocioRepository) GetActivoByID(ctx context.Context, id int64) (*entity.Negocio, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Negocio), args.Error(1)
}

func (m *MockNegocioRepository) ListActivos(ctx context.Context) ([]*entity.Negocio, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*entity.Negocio), args.Error(1)
}

func (m *MockNegocioRepository) ListActivosByUsuario(ctx context.Context, idUsuario int64) ([]*entity.Negocio, error) {
	args := m.Called(ctx, idUsuario)
	return args.Get(0).([]*entity.Negocio), args.Error(1)
}

func (m *MockNegocioRepository) Update(ctx context.Context, n *entity.Negocio) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

// Mock UsuarioRepository
type MockUsuarioRepository struct {
	mock.Mock
}

func (m *MockUsuarioRepository) Create(ctx context.Context, u *entity.Usuario) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUsuarioRepository) GetByID(ctx context.Context, id int64) (*entity.Usuario, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Usuario), args.Error(1)
}

func (m *MockUsuarioRepository) GetByCorreo(ctx context.Context, correo string) (*entity.Usuario, error) {
	args := m.Called(ctx, correo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Usuario), args.Error(1)
}

func (m *MockUsuarioRepository) ExistsByCorreo(ctx context.Context, correo string) (bool, error) {
	args := m.Called(ctx, correo)
	return args.Bool(0), args.Error(1)
}

func (m *MockUsuarioRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUsuarioRepository) UpdateCredentials(ctx context.Context, id int64, hash string, activo bool) error {
	args := m.Called(ctx, id, hash, activo)
	return args.Error(0)
}

// Mock RolRepository
type MockRolRepository struct {
	mock.Mock
}

func (m *MockRolRepository) GetByID(ctx context.Context, id int64) (*entity.Rol, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Rol), args.Error(1)
}

func (m *MockRolRepository) Upsert(ctx context.Context, r *entity.Rol) (bool, error) {
	args := m.Called(ctx, r)
	return args.Bool(0), args.Error(1)
}

// Mock UsuariosTxRunner: ejecuta fn con los mocks de repositorio.
type MockTxRunner struct {
	mock.Mock
	Usuarios *MockUsuarioRepository
	Roles    *MockRolRepository
}

func (m *MockTxRunner) RunUsuarios(ctx context.Context, fn func(repository.UsuarioRepository, repository.RolRepository) error) error {
	m.Called(ctx)
	return fn(m.Usuarios, m.Roles)
}

// Mock Publisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishUsuarioCreado(ctx context.Context, ev events.UsuarioCreado) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}
