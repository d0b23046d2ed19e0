// Package sqlite implementa los puertos de persistencia sobre un almacén
// SQLite local embebido (driver puro Go, sin cgo). Es el sustituto local de
// una base de datos de backend: un solo actor lógico, sin red.
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jhoicas/inventario-core/pkg/logger"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	username      TEXT PRIMARY KEY,
	password_hash TEXT NOT NULL,
	role          TEXT NOT NULL,
	email         TEXT NOT NULL DEFAULT '',
	name          TEXT NOT NULL DEFAULT '',
	created_at    TEXT NOT NULL,
	updated_at    TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS products (
	id         TEXT PRIMARY KEY,
	sku        TEXT NOT NULL UNIQUE,
	name       TEXT NOT NULL,
	stock      INTEGER NOT NULL DEFAULT 0,
	min_stock  INTEGER NOT NULL DEFAULT 0,
	price      TEXT NOT NULL DEFAULT '0',
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS sales (
	id          TEXT PRIMARY KEY,
	product_id  TEXT NOT NULL REFERENCES products(id),
	quantity    INTEGER NOT NULL,
	occurred_at TEXT NOT NULL,
	recorded_by TEXT NOT NULL DEFAULT '',
	created_at  TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS purchase_orders (
	id         TEXT PRIMARY KEY,
	product_id TEXT NOT NULL REFERENCES products(id),
	supplier   TEXT NOT NULL,
	quantity   INTEGER NOT NULL,
	unit_cost  TEXT NOT NULL DEFAULT '0',
	total      TEXT NOT NULL DEFAULT '0',
	status     TEXT NOT NULL,
	created_by TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS stock_movements (
	id         TEXT PRIMARY KEY,
	product_id TEXT NOT NULL REFERENCES products(id),
	type       TEXT NOT NULL,
	quantity   INTEGER NOT NULL,
	notes      TEXT NOT NULL DEFAULT '',
	created_by TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS feedback (
	id         TEXT PRIMARY KEY,
	username   TEXT NOT NULL,
	message    TEXT NOT NULL,
	created_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS session_token (
	id         INTEGER PRIMARY KEY CHECK (id = 1),
	token      TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
`

// Store abre la base SQLite y construye los repositorios sobre ella.
type Store struct {
	db  *sql.DB
	log *logger.Logger
}

// NewStore abre (o crea) el archivo en path y aplica el esquema.
// path puede ser ":memory:" para un store efímero.
func NewStore(path string, log *logger.Logger) (*Store, error) {
	if log == nil {
		log = logger.Nop()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite: %w", err)
	}

	// Un solo actor lógico: sin pool de conexiones ni escritores concurrentes.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("habilitar foreign keys: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("aplicar esquema: %w", err)
	}

	log.Info().Str("path", path).Msg("almacén local abierto")
	return &Store{db: db, log: log}, nil
}

// Close cierra la base.
func (s *Store) Close() error { return s.db.Close() }

// isUniqueViolation detecta la violación de una restricción UNIQUE/PRIMARY KEY.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// formatTime / parseTime: las fechas se guardan como texto RFC3339 para que
// el orden lexicográfico coincida con el cronológico.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// listLimit traduce "limit <= 0" al LIMIT -1 de SQLite (sin límite).
func listLimit(limit int) int {
	if limit <= 0 {
		return -1
	}
	return limit
}
