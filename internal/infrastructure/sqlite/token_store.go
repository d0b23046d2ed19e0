package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/inventario-core/internal/domain/repository"
)

var _ repository.TokenStore = (*TokenStore)(nil)

// TokenStore implementación del slot único de sesión sobre SQLite.
// La fila id=1 es el único token activo; Put la reemplaza, Clear la borra.
type TokenStore struct {
	store *Store
}

// NewTokenStore construye el adaptador del slot de sesión.
func NewTokenStore(store *Store) *TokenStore {
	return &TokenStore{store: store}
}

// Get devuelve el token persistido, o "" si no hay sesión activa.
func (t *TokenStore) Get() (string, error) {
	var token string
	err := t.store.db.QueryRow(`SELECT token FROM session_token WHERE id = 1`).Scan(&token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("get session token: %w", err)
	}
	return token, nil
}

// Put reemplaza el token activo.
func (t *TokenStore) Put(token string) error {
	query := `
		INSERT INTO session_token (id, token, updated_at) VALUES (1, ?, ?)
		ON CONFLICT (id) DO UPDATE SET token = excluded.token, updated_at = excluded.updated_at`
	if _, err := t.store.db.Exec(query, token, formatTime(time.Now())); err != nil {
		return fmt.Errorf("put session token: %w", err)
	}
	return nil
}

// Clear elimina el token activo; sin token no es error.
func (t *TokenStore) Clear() error {
	if _, err := t.store.db.Exec(`DELETE FROM session_token WHERE id = 1`); err != nil {
		return fmt.Errorf("clear session token: %w", err)
	}
	return nil
}
