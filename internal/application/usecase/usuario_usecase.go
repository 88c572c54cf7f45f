package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/acaclick-api/internal/application/dto"
	"github.com/jhoicas/acaclick-api/internal/application/events"
	"github.com/jhoicas/acaclick-api/internal/application/validation"
	"github.com/jhoicas/acaclick-api/internal/domain"
	"github.com/jhoicas/acaclick-api/internal/domain/entity"
	"github.com/jhoicas/acaclick-api/internal/domain/repository"
	"github.com/jhoicas/acaclick-api/pkg/crypto"
	"github.com/jhoicas/acaclick-api/pkg/logger"
)

// Mensajes de registro.
const (
	MsgRolInexistente     = "El rol especificado no existe."
	MsgCorreoDuplicado    = "Ya existe un usuario con este correo electrónico."
	MsgUsernameDuplicado  = "Ya existe un usuario con este nombre de usuario."
	MsgPasswordsDistintas = "Las contraseñas no coinciden."
	MsgDuplicadoGenerico  = "Ya existe un usuario con este correo o username."
)

// Cuenta de pruebas que mantiene create_test_user.
const (
	TestUsername = "testuser"
	TestCorreo   = "test@example.com"
	TestPassword = "test123456"
)

// UsuariosTxRunner ejecuta fn dentro de una transacción con repos atados a ella.
type UsuariosTxRunner interface {
	RunUsuarios(ctx context.Context, fn func(usuarios repository.UsuarioRepository, roles repository.RolRepository) error) error
}

// UsuarioUseCase registro de usuarios y mantenimiento de la cuenta de pruebas.
type UsuarioUseCase struct {
	tx        UsuariosTxRunner
	publisher events.Publisher
	validator validation.AggregatingValidator
	log       *logger.Logger
	now       func() time.Time
}

// NewUsuarioUseCase construye el caso de uso. publisher puede ser events.NopPublisher.
func NewUsuarioUseCase(tx UsuariosTxRunner, publisher events.Publisher, log *logger.Logger) *UsuarioUseCase {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &UsuarioUseCase{tx: tx, publisher: publisher, log: log, now: time.Now}
}

// Register valida el payload acumulando todos los errores, crea el usuario en una
// transacción y publica usuario.creado tras el commit.
func (uc *UsuarioUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UsuarioResponse, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Correo = strings.TrimSpace(in.Correo)
	in.Nombre = strings.TrimSpace(in.Nombre)
	in.ApellidoPaterno = strings.TrimSpace(in.ApellidoPaterno)
	in.ApellidoMaterno = trimOptional(in.ApellidoMaterno)
	in.FechaNacimiento = trimOptional(in.FechaNacimiento)

	verr := &domain.ValidationError{}
	if err := uc.validator.Collect(&in, verr); err != nil {
		return nil, err
	}
	if in.Password2 != nil && *in.Password2 != in.Password {
		verr.Add("password", MsgPasswordsDistintas)
		verr.Add("password2", MsgPasswordsDistintas)
	}

	var fecha *time.Time
	if in.FechaNacimiento != nil {
		if f, err := validation.ParseFecha(*in.FechaNacimiento); err == nil {
			fecha = &f
		}
	}

	var creado *entity.Usuario
	err := uc.tx.RunUsuarios(ctx, func(usuarios repository.UsuarioRepository, roles repository.RolRepository) error {
		var rol *entity.Rol
		if in.IDRol != nil {
			r, err := roles.GetByID(ctx, *in.IDRol)
			if err != nil {
				return err
			}
			if r == nil {
				verr.Add("id_rol", MsgRolInexistente)
			}
			rol = r
		}
		if _, bad := verr.Fields["correo"]; !bad && in.Correo != "" {
			exists, err := usuarios.ExistsByCorreo(ctx, in.Correo)
			if err != nil {
				return err
			}
			if exists {
				verr.Add("correo", MsgCorreoDuplicado)
			}
		}
		if _, bad := verr.Fields["username"]; !bad && in.Username != "" {
			exists, err := usuarios.ExistsByUsername(ctx, in.Username)
			if err != nil {
				return err
			}
			if exists {
				verr.Add("username", MsgUsernameDuplicado)
			}
		}
		if verr.HasErrors() {
			return verr
		}

		hash, err := crypto.HashPassword(in.Password)
		if err != nil {
			return err
		}
		u := &entity.Usuario{
			TenantID:        uuid.New().String(),
			Username:        in.Username,
			Correo:          in.Correo,
			Nombre:          in.Nombre,
			ApellidoPaterno: in.ApellidoPaterno,
			ApellidoMaterno: in.ApellidoMaterno,
			FechaNacimiento: fecha,
			PasswordHash:    hash,
			RolID:           rol.ID,
			Rol:             rol,
			Activo:          true,
			CreadoEn:        uc.now(),
		}
		if err := usuarios.Create(ctx, u); err != nil {
			return err
		}
		creado = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	ev := events.UsuarioCreado{
		Evento:    events.TipoUsuarioCreado,
		IDUsuario: creado.ID,
		Username:  creado.Username,
		Correo:    creado.Correo,
		Nombre:    creado.Nombre,
		IDRol:     creado.RolID,
		TenantID:  creado.TenantID,
		CreadoEn:  creado.CreadoEn,
	}
	if err := uc.publisher.PublishUsuarioCreado(ctx, ev); err != nil {
		uc.log.Warn().Err(err).Int64("id_usuario", creado.ID).Msg("no se pudo publicar usuario.creado")
	}
	return ToUsuarioResponse(creado), nil
}

// EnsureTestUser garantiza que exista la cuenta de pruebas (rol propietario) con la
// contraseña conocida y activa. Devuelve true si la creó.
func (uc *UsuarioUseCase) EnsureTestUser(ctx context.Context) (created bool, err error) {
	err = uc.tx.RunUsuarios(ctx, func(usuarios repository.UsuarioRepository, roles repository.RolRepository) error {
		rol := entity.RolPorID(entity.RolPropietarioID)
		if _, err := roles.Upsert(ctx, rol); err != nil {
			return err
		}
		hash, err := crypto.HashPassword(TestPassword)
		if err != nil {
			return err
		}
		existing, err := usuarios.GetByCorreo(ctx, TestCorreo)
		if err != nil {
			return err
		}
		if existing != nil {
			return usuarios.UpdateCredentials(ctx, existing.ID, hash, true)
		}
		created = true
		return usuarios.Create(ctx, &entity.Usuario{
			TenantID:        uuid.New().String(),
			Username:        TestUsername,
			Correo:          TestCorreo,
			Nombre:          "Usuario",
			ApellidoPaterno: "Prueba",
			PasswordHash:    hash,
			RolID:           rol.ID,
			Rol:             rol,
			Activo:          true,
			CreadoEn:        uc.now(),
		})
	})
	if err != nil {
		return false, err
	}
	return created, nil
}

// ToUsuarioResponse representación pública del usuario (sin contraseña).
func ToUsuarioResponse(u *entity.Usuario) *dto.UsuarioResponse {
	if u == nil {
		return nil
	}
	r := &dto.UsuarioResponse{
		IDUsuario:       u.ID,
		Correo:          u.Correo,
		Username:        u.Username,
		Nombre:          u.Nombre,
		ApellidoPaterno: u.ApellidoPaterno,
		ApellidoMaterno: u.ApellidoMaterno,
		TenantID:        u.TenantID,
	}
	if u.FechaNacimiento != nil {
		s := u.FechaNacimiento.Format("2006-01-02")
		r.FechaNacimiento = &s
	}
	if u.Rol != nil {
		r.Rol = &dto.RolResponse{IDRol: u.Rol.ID, NombreRol: u.Rol.Nombre, Descripcion: u.Rol.Descripcion}
	}
	return r
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
