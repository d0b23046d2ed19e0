// Package auth implementa la autoridad de sesión: registro, login, emisión y
// verificación de tokens, y consulta de permisos por feature.
package auth

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventario-core/internal/application/dto"
	"github.com/jhoicas/inventario-core/internal/domain"
	"github.com/jhoicas/inventario-core/internal/domain/entity"
	"github.com/jhoicas/inventario-core/internal/domain/repository"
	"github.com/jhoicas/inventario-core/pkg/logger"
	"github.com/jhoicas/inventario-core/pkg/token"
)

// DefaultTTL vigencia por defecto de un token de sesión.
const DefaultTTL = time.Hour

// Config configuración de la autoridad de sesión.
// Now permite inyectar el reloj (tests); nil usa time.Now.
type Config struct {
	TTL    time.Duration
	Issuer string
	Now    func() time.Time
}

// Session es la sesión decodificada y vigente de un token.
type Session struct {
	Username  string
	Role      entity.Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Authority casos de uso de autenticación y autorización.
//
// El token activo vive en un slot único externo (TokenStore); la autoridad
// lo relee en cada chequeo — nunca cachea la sesión, porque "now" avanza.
type Authority struct {
	users  repository.UserRepository
	tokens repository.TokenStore
	cfg    Config
	log    *logger.Logger
	now    func() time.Time
}

// NewAuthority construye la autoridad de sesión.
func NewAuthority(users repository.UserRepository, tokens repository.TokenStore, cfg Config, log *logger.Logger) *Authority {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Authority{users: users, tokens: tokens, cfg: cfg, log: log, now: now}
}

// Register crea un usuario: hashea el password con bcrypt y persiste.
// Devuelve ErrDuplicateUsername si el username ya existe (el store queda
// intacto). No inicia sesión.
func (a *Authority) Register(in dto.RegisterRequest) (*dto.UserResponse, error) {
	username := strings.TrimSpace(in.Username)
	if len(username) < 3 || len(in.Password) < 6 {
		return nil, domain.ErrInvalidInput
	}
	role := entity.Role(in.Role)
	if !role.IsValid() {
		return nil, domain.ErrInvalidInput
	}
	existing, err := a.users.FindByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("buscar usuario: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrDuplicateUsername
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := a.now()
	name := in.Name
	if name == "" {
		name = username
	}
	user := &entity.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		Email:        in.Email,
		Name:         name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := a.users.Create(user); err != nil {
		return nil, err
	}
	a.log.Info().Str("username", username).Str("role", in.Role).Msg("usuario registrado")
	return toUserResponse(user), nil
}

// Login verifica username/password, emite un token y lo persiste como sesión
// activa en el slot. Usuario inexistente y password incorrecto devuelven el
// mismo ErrInvalidCredentials.
func (a *Authority) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := a.users.FindByUsername(strings.TrimSpace(in.Username))
	if err != nil {
		return nil, fmt.Errorf("buscar usuario: %w", err)
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	encoded, _, err := a.IssueToken(user)
	if err != nil {
		return nil, err
	}
	if err := a.tokens.Put(encoded); err != nil {
		return nil, fmt.Errorf("persistir token: %w", err)
	}
	a.log.Info().Str("username", user.Username).Msg("sesión iniciada")
	return &dto.LoginResponse{Token: encoded, User: *toUserResponse(user)}, nil
}

// IssueToken emite un token para un usuario válido: embebe rol y expiración
// absoluta (emisión + TTL). Puro: no persiste nada; el llamador decide dónde
// guardarlo.
func (a *Authority) IssueToken(user *entity.User) (string, *Session, error) {
	now := a.now()
	encoded, err := token.Generate(user, a.cfg.Issuer, now, a.cfg.TTL)
	if err != nil {
		return "", nil, err
	}
	return encoded, &Session{
		Username:  user.Username,
		Role:      user.Role,
		IssuedAt:  now,
		ExpiresAt: now.Add(a.cfg.TTL),
	}, nil
}

// CurrentSession lee el token persistido y devuelve la sesión vigente, o nil
// si no hay sesión. Token ausente, ilegible o expirado NO son errores: son el
// resultado normal "sin sesión", y los dos últimos limpian el slot de forma
// anticipada. La expiración se compara contra el reloj en cada llamada.
func (a *Authority) CurrentSession() (*Session, error) {
	raw, err := a.tokens.Get()
	if err != nil {
		return nil, fmt.Errorf("leer token: %w", err)
	}
	if raw == "" {
		return nil, nil
	}
	claims, err := token.Parse(raw)
	if err != nil {
		a.invalidate("token ilegible")
		return nil, nil
	}
	role := entity.Role(claims.Role)
	if !role.IsValid() {
		a.invalidate("rol desconocido en el token")
		return nil, nil
	}
	if !a.now().Before(claims.ExpiresAt.Time) {
		a.invalidate("token expirado")
		return nil, nil
	}
	s := &Session{
		Username:  claims.Subject,
		Role:      role,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		s.IssuedAt = claims.IssuedAt.Time
	}
	return s, nil
}

// HasPermission responde si la sesión vigente puede usar la feature.
// Sin sesión (ausente o expirada) siempre es false, nunca error.
func (a *Authority) HasPermission(f Feature) (bool, error) {
	s, err := a.CurrentSession()
	if err != nil {
		return false, err
	}
	if s == nil {
		return false, nil
	}
	return RoleAllows(s.Role, f), nil
}

// Logout limpia el slot de sesión.
func (a *Authority) Logout() error {
	return a.tokens.Clear()
}

// invalidate limpia el slot; un fallo al limpiar solo se registra, porque el
// resultado para el llamador ya es "sin sesión".
func (a *Authority) invalidate(reason string) {
	if err := a.tokens.Clear(); err != nil {
		a.log.Warn().Err(err).Str("motivo", reason).Msg("no se pudo limpiar el token")
		return
	}
	a.log.Debug().Str("motivo", reason).Msg("token invalidado")
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		Username:  u.Username,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role.String(),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
