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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre SQLite.
type ProductRepo struct {
	store *Store
}

// NewProductRepository construye el adaptador de persistencia para productos.
func NewProductRepository(store *Store) *ProductRepo {
	return &ProductRepo{store: store}
}

// Create persiste un nuevo producto. SKU duplicado → ErrConflict.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, sku, name, stock, min_stock, price, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.store.db.Exec(query,
		product.ID, product.SKU, product.Name, product.Stock, product.MinStock,
		product.Price.String(), formatTime(product.CreatedAt), formatTime(product.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID; (nil, nil) si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `
		SELECT id, sku, name, stock, min_stock, price, created_at, updated_at
		FROM products WHERE id = ?`
	p, err := scanProduct(r.store.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by id: %w", err)
	}
	return p, nil
}

// UpdateStock fija el stock actual del producto.
func (r *ProductRepo) UpdateStock(id string, stock int64) error {
	query := `UPDATE products SET stock = ?, updated_at = ? WHERE id = ?`
	res, err := r.store.db.Exec(query, stock, formatTime(time.Now()), id)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista productos ordenados por SKU (limit <= 0 devuelve todos).
func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT id, sku, name, stock, min_stock, price, created_at, updated_at
		FROM products ORDER BY sku LIMIT ? OFFSET ?`
	rows, err := r.store.db.Query(query, listLimit(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// rowScanner abstrae *sql.Row y *sql.Rows para compartir el mapeo.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*entity.Product, error) {
	var p entity.Product
	var price, createdAt, updatedAt string
	if err := row.Scan(&p.ID, &p.SKU, &p.Name, &p.Stock, &p.MinStock, &price, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	d, err := decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("precio ilegible %q: %w", price, err)
	}
	p.Price = d
	p.CreatedAt = parseTime(createdAt)
	p.UpdatedAt = parseTime(updatedAt)
	return &p, nil
}
