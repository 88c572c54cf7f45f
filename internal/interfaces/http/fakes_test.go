package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/acaclick-api/internal/application/auth"
	"github.com/jhoicas/acaclick-api/internal/application/usecase"
	"github.com/jhoicas/acaclick-api/internal/domain"
	"github.com/jhoicas/acaclick-api/internal/domain/entity"
	"github.com/jhoicas/acaclick-api/internal/domain/repository"
	apphttp "github.com/jhoicas/acaclick-api/internal/interfaces/http"
	"github.com/jhoicas/acaclick-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Almacenes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memNegocios struct {
	mu   sync.Mutex
	seq  int64
	rows map[int64]entity.Negocio
}

func newMemNegocios() *memNegocios {
	return &memNegocios{rows: make(map[int64]entity.Negocio)}
}

func (m *memNegocios) Create(_ context.Context, n *entity.Negocio) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	n.ID = m.seq
	m.rows[n.ID] = *n
	return nil
}

func (m *memNegocios) GetByID(_ context.Context, id int64) (*entity.Negocio, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	return &n, nil
}

func (m *memNegocios) GetActivoByID(ctx context.Context, id int64) (*entity.Negocio, error) {
	n, err := m.GetByID(ctx, id)
	if err != nil || n == nil || !n.EstaActivo() {
		return nil, err
	}
	return n, nil
}

func (m *memNegocios) ListActivos(context.Context) ([]*entity.Negocio, error) {
	return m.filter(func(*entity.Negocio) bool { return true }), nil
}

func (m *memNegocios) ListActivosByUsuario(_ context.Context, idUsuario int64) ([]*entity.Negocio, error) {
	return m.filter(func(n *entity.Negocio) bool { return n.IDUsuario == idUsuario }), nil
}

func (m *memNegocios) Update(_ context.Context, n *entity.Negocio) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[n.ID]; !ok {
		return domain.ErrNotFound
	}
	m.rows[n.ID] = *n
	return nil
}

func (m *memNegocios) filter(keep func(*entity.Negocio) bool) []*entity.Negocio {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.Negocio, 0, len(m.rows))
	for _, row := range m.rows {
		n := row
		if n.EstaActivo() && keep(&n) {
			out = append(out, &n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (m *memNegocios) row(id int64) (entity.Negocio, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.rows[id]
	return n, ok
}

var _ repository.NegocioRepository = (*memNegocios)(nil)

type memUsuarios struct {
	mu   sync.Mutex
	seq  int64
	rows map[int64]entity.Usuario
}

func newMemUsuarios() *memUsuarios {
	return &memUsuarios{rows: make(map[int64]entity.Usuario)}
}

func (m *memUsuarios) Create(_ context.Context, u *entity.Usuario) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.Correo == u.Correo || row.Username == u.Username {
			return &domain.ConflictError{Message: usecase.MsgDuplicadoGenerico, Detail: "duplicate key"}
		}
	}
	m.seq++
	u.ID = m.seq
	m.rows[u.ID] = *u
	return nil
}

func (m *memUsuarios) GetByID(_ context.Context, id int64) (*entity.Usuario, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (m *memUsuarios) GetByCorreo(_ context.Context, correo string) (*entity.Usuario, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.rows {
		if u.Correo == correo {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (m *memUsuarios) ExistsByCorreo(ctx context.Context, correo string) (bool, error) {
	u, err := m.GetByCorreo(ctx, correo)
	return u != nil, err
}

func (m *memUsuarios) ExistsByUsername(_ context.Context, username string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.rows {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (m *memUsuarios) UpdateCredentials(_ context.Context, id int64, passwordHash string, activo bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.rows[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.PasswordHash = passwordHash
	u.Activo = activo
	m.rows[id] = u
	return nil
}

func (m *memUsuarios) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

type memRoles struct {
	rows map[int64]entity.Rol
}

func newMemRoles() *memRoles {
	r := &memRoles{rows: make(map[int64]entity.Rol)}
	for _, rol := range entity.CatalogoRoles() {
		r.rows[rol.ID] = rol
	}
	return r
}

func (m *memRoles) GetByID(_ context.Context, id int64) (*entity.Rol, error) {
	rol, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	return &rol, nil
}

func (m *memRoles) Upsert(_ context.Context, rol *entity.Rol) (bool, error) {
	_, existed := m.rows[rol.ID]
	m.rows[rol.ID] = *rol
	return !existed, nil
}

type memTx struct {
	usuarios *memUsuarios
	roles    *memRoles
}

func (t *memTx) RunUsuarios(_ context.Context, fn func(repository.UsuarioRepository, repository.RolRepository) error) error {
	return fn(t.usuarios, t.roles)
}

// ──────────────────────────────────────────────────────────────────────────────
// Apps de prueba
// ──────────────────────────────────────────────────────────────────────────────

const (
	testSecret          = "test-secret-key-for-unit-tests"
	testOwnerFallbackID = int64(1)
)

func newTestIssuer(t *testing.T) *jwt.Issuer {
	t.Helper()
	iss, err := jwt.NewIssuer(testSecret, "acaclick-test", time.Minute, time.Hour)
	require.NoError(t, err)
	return iss
}

type negociosApp struct {
	app    *fiber.App
	store  *memNegocios
	tokens *jwt.Issuer
}

func newNegociosApp(t *testing.T) *negociosApp {
	t.Helper()
	store := newMemNegocios()
	tokens := newTestIssuer(t)
	app := apphttp.NewApp(apphttp.AppConfig{Name: "test", Service: "negocios"})
	apphttp.NegociosRouter(app, apphttp.NegociosDeps{
		NegocioUC: usecase.NewNegocioUseCase(store, testOwnerFallbackID),
		Tokens:    tokens,
	})
	return &negociosApp{app: app, store: store, tokens: tokens}
}

type usuariosApp struct {
	app      *fiber.App
	usuarios *memUsuarios
	tokens   *jwt.Issuer
}

func newUsuariosApp(t *testing.T) *usuariosApp {
	t.Helper()
	usuarios := newMemUsuarios()
	tokens := newTestIssuer(t)
	app := apphttp.NewApp(apphttp.AppConfig{Name: "test", Service: "usuarios"})
	apphttp.UsuariosRouter(app, apphttp.UsuariosDeps{
		AuthUC:    auth.NewAuthUseCase(auth.NewStoreIdentityProvider(usuarios), tokens),
		UsuarioUC: usecase.NewUsuarioUseCase(&memTx{usuarios: usuarios, roles: newMemRoles()}, nil, nil),
		Tokens:    tokens,
	})
	return &usuariosApp{app: app, usuarios: usuarios, tokens: tokens}
}

// do ejecuta la petición contra la app y devuelve estado y cuerpo crudo.
func do(t *testing.T, app *fiber.App, method, path, body, token string) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func decodeMap(t *testing.T, raw []byte) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out
}

func decodeList(t *testing.T, raw []byte) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out
}

