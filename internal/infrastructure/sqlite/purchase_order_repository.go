package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-core/internal/domain"
	"github.com/jhoicas/inventario-core/internal/domain/entity"
	"github.com/jhoicas/inventario-core/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementación del puerto PurchaseOrderRepository sobre SQLite.
type PurchaseOrderRepo struct {
	store *Store
}

// NewPurchaseOrderRepository construye el adaptador de persistencia para órdenes de compra.
func NewPurchaseOrderRepository(store *Store) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{store: store}
}

// Create persiste una nueva orden de compra.
func (r *PurchaseOrderRepo) Create(po *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (id, product_id, supplier, quantity, unit_cost, total, status, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.store.db.Exec(query,
		po.ID, po.ProductID, po.Supplier, po.Quantity,
		po.UnitCost.String(), po.Total.String(), string(po.Status), po.CreatedBy,
		formatTime(po.CreatedAt), formatTime(po.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert purchase order: %w", err)
	}
	return nil
}

// GetByID obtiene una orden por ID; (nil, nil) si no existe.
func (r *PurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	query := `
		SELECT id, product_id, supplier, quantity, unit_cost, total, status, created_by, created_at, updated_at
		FROM purchase_orders WHERE id = ?`
	po, err := scanPurchaseOrder(r.store.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order by id: %w", err)
	}
	return po, nil
}

// UpdateStatus cambia el estado de la orden.
func (r *PurchaseOrderRepo) UpdateStatus(id string, status entity.POStatus) error {
	query := `UPDATE purchase_orders SET status = ?, updated_at = ? WHERE id = ?`
	res, err := r.store.db.Exec(query, string(status), formatTime(time.Now()), id)
	if err != nil {
		return fmt.Errorf("update purchase order status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista órdenes de la más reciente a la más antigua (limit <= 0 devuelve todas).
func (r *PurchaseOrderRepo) List(limit, offset int) ([]*entity.PurchaseOrder, error) {
	query := `
		SELECT id, product_id, supplier, quantity, unit_cost, total, status, created_by, created_at, updated_at
		FROM purchase_orders ORDER BY created_at DESC LIMIT ? OFFSET ?`
	rows, err := r.store.db.Query(query, listLimit(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrder
	for rows.Next() {
		po, err := scanPurchaseOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		list = append(list, po)
	}
	return list, rows.Err()
}

// CountByStatus cuenta las órdenes en un estado dado.
func (r *PurchaseOrderRepo) CountByStatus(status entity.POStatus) (int, error) {
	var count int
	err := r.store.db.QueryRow(`SELECT COUNT(*) FROM purchase_orders WHERE status = ?`, string(status)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count purchase orders: %w", err)
	}
	return count, nil
}

func scanPurchaseOrder(row rowScanner) (*entity.PurchaseOrder, error) {
	var po entity.PurchaseOrder
	var unitCost, total, status, createdAt, updatedAt string
	if err := row.Scan(&po.ID, &po.ProductID, &po.Supplier, &po.Quantity,
		&unitCost, &total, &status, &po.CreatedBy, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	uc, err := decimal.NewFromString(unitCost)
	if err != nil {
		return nil, fmt.Errorf("costo unitario ilegible %q: %w", unitCost, err)
	}
	tt, err := decimal.NewFromString(total)
	if err != nil {
		return nil, fmt.Errorf("total ilegible %q: %w", total, err)
	}
	po.UnitCost = uc
	po.Total = tt
	po.Status = entity.POStatus(status)
	po.CreatedAt = parseTime(createdAt)
	po.UpdatedAt = parseTime(updatedAt)
	return &po, nil
}
