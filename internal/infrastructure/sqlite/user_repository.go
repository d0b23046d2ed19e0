package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jhoicas/inventario-core/internal/domain"
	"github.com/jhoicas/inventario-core/internal/domain/entity"
	"github.com/jhoicas/inventario-core/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre SQLite.
type UserRepo struct {
	store *Store
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(store *Store) *UserRepo {
	return &UserRepo{store: store}
}

// Create persiste un nuevo usuario. Username duplicado → ErrDuplicateUsername.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (username, password_hash, role, email, name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.store.db.Exec(query,
		user.Username, user.PasswordHash, user.Role.String(), user.Email, user.Name,
		formatTime(user.CreatedAt), formatTime(user.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateUsername
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// FindByUsername obtiene un usuario por username; (nil, nil) si no existe.
func (r *UserRepo) FindByUsername(username string) (*entity.User, error) {
	query := `
		SELECT username, password_hash, role, email, name, created_at, updated_at
		FROM users WHERE username = ?`
	var u entity.User
	var role, createdAt, updatedAt string
	err := r.store.db.QueryRow(query, username).Scan(
		&u.Username, &u.PasswordHash, &role, &u.Email, &u.Name, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	u.Role = entity.Role(role)
	u.CreatedAt = parseTime(createdAt)
	u.UpdatedAt = parseTime(updatedAt)
	return &u, nil
}

// List lista usuarios con paginación (limit <= 0 devuelve todos).
func (r *UserRepo) List(limit, offset int) ([]*entity.User, error) {
	query := `
		SELECT username, password_hash, role, email, name, created_at, updated_at
		FROM users ORDER BY username LIMIT ? OFFSET ?`
	rows, err := r.store.db.Query(query, listLimit(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		var u entity.User
		var role, createdAt, updatedAt string
		if err := rows.Scan(&u.Username, &u.PasswordHash, &role, &u.Email, &u.Name, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		u.Role = entity.Role(role)
		u.CreatedAt = parseTime(createdAt)
		u.UpdatedAt = parseTime(updatedAt)
		list = append(list, &u)
	}
	return list, rows.Err()
}
