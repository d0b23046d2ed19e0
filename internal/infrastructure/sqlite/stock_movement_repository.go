package sqlite

import (
	"fmt"

	"github.com/jhoicas/inventario-core/internal/domain/entity"
	"github.com/jhoicas/inventario-core/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del puerto StockMovementRepository sobre SQLite.
type StockMovementRepo struct {
	store *Store
}

// NewStockMovementRepository construye el adaptador de persistencia para movimientos.
func NewStockMovementRepository(store *Store) *StockMovementRepo {
	return &StockMovementRepo{store: store}
}

// Create persiste un movimiento de stock.
func (r *StockMovementRepo) Create(m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, product_id, type, quantity, notes, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.store.db.Exec(query,
		m.ID, m.ProductID, m.Type, m.Quantity, m.Notes, m.CreatedBy, formatTime(m.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// ListByProduct lista los movimientos de un producto, del más reciente al más antiguo.
func (r *StockMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, product_id, type, quantity, notes, created_by, created_at
		FROM stock_movements WHERE product_id = ? ORDER BY created_at DESC LIMIT ? OFFSET ?`
	rows, err := r.store.db.Query(query, productID, listLimit(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		var createdAt string
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Type, &m.Quantity, &m.Notes, &m.CreatedBy, &createdAt); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		m.CreatedAt = parseTime(createdAt)
		list = append(list, &m)
	}
	return list, rows.Err()
}

var _ repository.FeedbackRepository = (*FeedbackRepo)(nil)

// FeedbackRepo implementación del puerto FeedbackRepository sobre SQLite.
type FeedbackRepo struct {
	store *Store
}

// NewFeedbackRepository construye el adaptador de persistencia para feedback.
func NewFeedbackRepository(store *Store) *FeedbackRepo {
	return &FeedbackRepo{store: store}
}

// Create persiste una nota de feedback.
func (r *FeedbackRepo) Create(f *entity.Feedback) error {
	query := `INSERT INTO feedback (id, username, message, created_at) VALUES (?, ?, ?, ?)`
	_, err := r.store.db.Exec(query, f.ID, f.Username, f.Message, formatTime(f.CreatedAt))
	if err != nil {
		return fmt.Errorf("insert feedback: %w", err)
	}
	return nil
}

// List lista las notas de la más reciente a la más antigua (limit <= 0 devuelve todas).
func (r *FeedbackRepo) List(limit, offset int) ([]*entity.Feedback, error) {
	query := `
		SELECT id, username, message, created_at
		FROM feedback ORDER BY created_at DESC LIMIT ? OFFSET ?`
	rows, err := r.store.db.Query(query, listLimit(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	defer rows.Close()
	var list []*entity.Feedback
	for rows.Next() {
		var f entity.Feedback
		var createdAt string
		if err := rows.Scan(&f.ID, &f.Username, &f.Message, &createdAt); err != nil {
			return nil, fmt.Errorf("scan feedback: %w", err)
		}
		f.CreatedAt = parseTime(createdAt)
		list = append(list, &f)
	}
	return list, rows.Err()
}
