package sqlite

import (
	"fmt"

	"github.com/jhoicas/inventario-core/internal/domain/entity"
	"github.com/jhoicas/inventario-core/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del puerto SaleRepository sobre SQLite.
// Las ventas son append-only: solo INSERT y lectura del histórico completo.
type SaleRepo struct {
	store *Store
}

// NewSaleRepository construye el adaptador de persistencia para ventas.
func NewSaleRepository(store *Store) *SaleRepo {
	return &SaleRepo{store: store}
}

// Create agrega una venta al histórico.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, product_id, quantity, occurred_at, recorded_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.store.db.Exec(query,
		sale.ID, sale.ProductID, sale.Quantity,
		formatTime(sale.OccurredAt), sale.RecordedBy, formatTime(sale.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// ListAll devuelve el histórico completo ordenado por fecha de venta.
func (r *SaleRepo) ListAll() ([]*entity.Sale, error) {
	query := `
		SELECT id, product_id, quantity, occurred_at, recorded_by, created_at
		FROM sales ORDER BY occurred_at`
	rows, err := r.store.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		var occurredAt, createdAt string
		if err := rows.Scan(&s.ID, &s.ProductID, &s.Quantity, &occurredAt, &s.RecordedBy, &createdAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		s.OccurredAt = parseTime(occurredAt)
		s.CreatedAt = parseTime(createdAt)
		list = append(list, &s)
	}
	return list, rows.Err()
}
