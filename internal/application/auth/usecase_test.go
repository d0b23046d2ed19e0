package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-core/internal/application/auth"
	"github.com/jhoicas/inventario-core/internal/application/dto"
	"github.com/jhoicas/inventario-core/internal/domain"
	"github.com/jhoicas/inventario-core/internal/domain/entity"
	"github.com/jhoicas/inventario-core/pkg/token"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos
// ──────────────────────────────────────────────────────────────────────────────

type userRepoMem struct {
	users map[string]*entity.User
}

func newUserRepoMem() *userRepoMem {
	return &userRepoMem{users: make(map[string]*entity.User)}
}

func (r *userRepoMem) Create(user *entity.User) error {
	if _, ok := r.users[user.Username]; ok {
		return domain.ErrDuplicateUsername
	}
	copied := *user
	r.users[user.Username] = &copied
	return nil
}

func (r *userRepoMem) FindByUsername(username string) (*entity.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (r *userRepoMem) List(limit, offset int) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		copied := *u
		out = append(out, &copied)
	}
	return out, nil
}

type tokenSlotMem struct {
	token string
}

func (s *tokenSlotMem) Get() (string, error) { return s.token, nil }

func (s *tokenSlotMem) Put(token string) error { s.token = token; return nil }

func (s *tokenSlotMem) Clear() error { s.token = ""; return nil }

// fakeClock reloj controlable para probar la expiración sin dormir.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

const (
	testIssuer   = "inventario-test"
	testPassword = "secreto123"
)

func newTestAuthority(t *testing.T) (*auth.Authority, *userRepoMem, *tokenSlotMem, *fakeClock) {
	t.Helper()
	users := newUserRepoMem()
	slot := &tokenSlotMem{}
	clock := &fakeClock{t: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)}
	authority := auth.NewAuthority(users, slot, auth.Config{
		TTL:    time.Hour,
		Issuer: testIssuer,
		Now:    clock.Now,
	}, nil)
	return authority, users, slot, clock
}

func registerTestUser(t *testing.T, authority *auth.Authority, username, role string) {
	t.Helper()
	_, err := authority.Register(dto.RegisterRequest{
		Username: username,
		Password: testPassword,
		Email:    username + "@inventario.test",
		Role:     role,
	})
	require.NoError(t, err, "el registro de %s debe ser exitoso", username)
}

// ──────────────────────────────────────────────────────────────────────────────
// Register
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_CreaUsuarioConHash(t *testing.T) {
	authority, users, _, _ := newTestAuthority(t)

	resp, err := authority.Register(dto.RegisterRequest{
		Username: "ana",
		Password: testPassword,
		Email:    "ana@inventario.test",
		Name:     "Ana Gómez",
		Role:     "manager",
	})
	require.NoError(t, err)
	assert.Equal(t, "ana", resp.Username)
	assert.Equal(t, "manager", resp.Role)

	stored := users.users["ana"]
	require.NotNil(t, stored, "el usuario debe quedar persistido")
	assert.NotEqual(t, testPassword, stored.PasswordHash,
		"el password nunca se guarda en texto plano")
	assert.NotEmpty(t, stored.PasswordHash)
}

func TestRegister_NoIniciaSesion(t *testing.T) {
	authority, _, slot, _ := newTestAuthority(t)

	registerTestUser(t, authority, "bruno", "salesperson")

	assert.Empty(t, slot.token, "registrar no debe emitir ni persistir token")
	s, err := authority.CurrentSession()
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestRegister_UsernameDuplicado(t *testing.T) {
	authority, users, _, _ := newTestAuthority(t)

	registerTestUser(t, authority, "carla", "warehouse")
	hashOriginal := users.users["carla"].PasswordHash

	_, err := authority.Register(dto.RegisterRequest{
		Username: "carla",
		Password: "otro-password",
		Email:    "carla2@inventario.test",
		Role:     "admin",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateUsername)
	assert.Equal(t, hashOriginal, users.users["carla"].PasswordHash,
		"un registro duplicado no debe tocar el usuario existente")
	assert.Equal(t, entity.RoleWarehouse, users.users["carla"].Role)
}

func TestRegister_EntradaInvalida(t *testing.T) {
	authority, _, _, _ := newTestAuthority(t)

	cases := []struct {
		name string
		in   dto.RegisterRequest
	}{
		{"username corto", dto.RegisterRequest{Username: "ab", Password: testPassword, Role: "admin"}},
		{"password corto", dto.RegisterRequest{Username: "diego", Password: "12345", Role: "admin"}},
		{"rol desconocido", dto.RegisterRequest{Username: "diego", Password: testPassword, Role: "superuser"}},
		{"rol vacío", dto.RegisterRequest{Username: "diego", Password: testPassword}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := authority.Register(tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Login / CurrentSession
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_EmiteYPersisteToken(t *testing.T) {
	authority, _, slot, clock := newTestAuthority(t)
	registerTestUser(t, authority, "elena", "purchaser")

	resp, err := authority.Login(dto.LoginRequest{Username: "elena", Password: testPassword})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, resp.Token, slot.token, "el token emitido debe quedar en el slot")

	s, err := authority.CurrentSession()
	require.NoError(t, err)
	require.NotNil(t, s, "después del login debe haber sesión vigente")
	assert.Equal(t, "elena", s.Username)
	assert.Equal(t, entity.RolePurchaser, s.Role)
	assert.Equal(t, clock.t.Add(time.Hour), s.ExpiresAt.UTC(),
		"la expiración es absoluta: emisión + TTL")
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	authority, _, slot, _ := newTestAuthority(t)
	registerTestUser(t, authority, "felipe", "salesperson")

	_, err := authority.Login(dto.LoginRequest{Username: "felipe", Password: "equivocado"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	// Usuario inexistente: mismo error, sin filtrar cuál de los dos falló.
	_, err = authority.Login(dto.LoginRequest{Username: "nadie", Password: testPassword})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	assert.Empty(t, slot.token, "un login fallido no debe dejar token en el slot")
}

func TestLogin_ReemplazaLaSesionAnterior(t *testing.T) {
	authority, _, slot, _ := newTestAuthority(t)
	registerTestUser(t, authority, "gabriela", "manager")
	registerTestUser(t, authority, "hector", "warehouse")

	_, err := authority.Login(dto.LoginRequest{Username: "gabriela", Password: testPassword})
	require.NoError(t, err)
	primero := slot.token

	_, err = authority.Login(dto.LoginRequest{Username: "hector", Password: testPassword})
	require.NoError(t, err)
	assert.NotEqual(t, primero, slot.token, "el slot es único: el segundo login reemplaza al primero")

	s, err := authority.CurrentSession()
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "hector", s.Username)
}

func TestCurrentSession_SinToken(t *testing.T) {
	authority, _, _, _ := newTestAuthority(t)

	s, err := authority.CurrentSession()
	require.NoError(t, err, "sin sesión no es un error")
	assert.Nil(t, s)
}

func TestCurrentSession_TokenExpirado(t *testing.T) {
	authority, _, slot, clock := newTestAuthority(t)
	registerTestUser(t, authority, "irene", "manager")
	_, err := authority.Login(dto.LoginRequest{Username: "irene", Password: testPassword})
	require.NoError(t, err)

	// Un instante antes de expirar la sesión sigue vigente.
	clock.Advance(time.Hour - time.Second)
	s, err := authority.CurrentSession()
	require.NoError(t, err)
	require.NotNil(t, s, "antes de la expiración la sesión sigue vigente")

	// En el instante exacto de la expiración ya no hay sesión.
	clock.Advance(time.Second)
	s, err = authority.CurrentSession()
	require.NoError(t, err, "la expiración no es un error")
	assert.Nil(t, s)
	assert.Empty(t, slot.token, "el token expirado se limpia del slot de forma anticipada")
}

func TestCurrentSession_TokenIlegible(t *testing.T) {
	authority, _, slot, _ := newTestAuthority(t)
	slot.token = "esto-no-es-un-token"

	s, err := authority.CurrentSession()
	require.NoError(t, err, "un token ilegible no es un error, es 'sin sesión'")
	assert.Nil(t, s)
	assert.Empty(t, slot.token, "el token ilegible se limpia del slot")
}

func TestCurrentSession_RolDesconocidoEnElToken(t *testing.T) {
	authority, _, slot, clock := newTestAuthority(t)

	// Token bien formado pero con un rol fuera del conjunto cerrado.
	raw, err := token.Generate(&entity.User{Username: "judith", Role: entity.Role("fantasma")},
		testIssuer, clock.t, time.Hour)
	require.NoError(t, err)
	slot.token = raw

	s, err := authority.CurrentSession()
	require.NoError(t, err)
	assert.Nil(t, s, "un rol desconocido invalida la sesión")
	assert.Empty(t, slot.token)
}

func TestIssueToken_NoPersiste(t *testing.T) {
	authority, _, slot, clock := newTestAuthority(t)

	user := &entity.User{Username: "karen", Role: entity.RoleAdmin}
	encoded, session, err := authority.IssueToken(user)
	require.NoError(t, err)
	assert.NotEmpty(t, encoded)
	assert.Equal(t, "karen", session.Username)
	assert.Equal(t, clock.t, session.IssuedAt)
	assert.Equal(t, clock.t.Add(time.Hour), session.ExpiresAt)
	assert.Empty(t, slot.token, "emitir un token no decide dónde guardarlo")
}

// ──────────────────────────────────────────────────────────────────────────────
// HasPermission / Logout
// ──────────────────────────────────────────────────────────────────────────────

func TestHasPermission_SegunRol(t *testing.T) {
	authority, _, _, _ := newTestAuthority(t)
	registerTestUser(t, authority, "lorena", "salesperson")
	_, err := authority.Login(dto.LoginRequest{Username: "lorena", Password: testPassword})
	require.NoError(t, err)

	ok, err := authority.HasPermission(auth.FeatureRecordSale)
	require.NoError(t, err)
	assert.True(t, ok, "salesperson puede registrar ventas")

	ok, err = authority.HasPermission(auth.FeatureManagePO)
	require.NoError(t, err)
	assert.False(t, ok, "salesperson no gestiona órdenes de compra")
}

func TestHasPermission_SinSesion(t *testing.T) {
	authority, _, _, _ := newTestAuthority(t)

	ok, err := authority.HasPermission(auth.FeatureViewInventory)
	require.NoError(t, err, "sin sesión la respuesta es false, nunca error")
	assert.False(t, ok)
}

func TestHasPermission_SesionExpirada(t *testing.T) {
	authority, _, _, clock := newTestAuthority(t)
	registerTestUser(t, authority, "marcos", "admin")
	_, err := authority.Login(dto.LoginRequest{Username: "marcos", Password: testPassword})
	require.NoError(t, err)

	clock.Advance(2 * time.Hour)

	ok, err := authority.HasPermission(auth.FeatureViewReports)
	require.NoError(t, err)
	assert.False(t, ok, "ni siquiera admin tiene permisos con la sesión expirada")
}

func TestLogout_LimpiaElSlot(t *testing.T) {
	authority, _, slot, _ := newTestAuthority(t)
	registerTestUser(t, authority, "nora", "manager")
	_, err := authority.Login(dto.LoginRequest{Username: "nora", Password: testPassword})
	require.NoError(t, err)

	require.NoError(t, authority.Logout())
	assert.Empty(t, slot.token)

	s, err := authority.CurrentSession()
	require.NoError(t, err)
	assert.Nil(t, s)

	// Logout sin sesión también es válido (idempotente).
	assert.NoError(t, authority.Logout())
}
