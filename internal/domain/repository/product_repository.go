package repository

import "github.com/jhoicas/inventario-core/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID devuelve (nil, nil) cuando el producto no existe.
// List con limit <= 0 devuelve el inventario completo.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	UpdateStock(id string, stock int64) error
	List(limit, offset int) ([]*entity.Product, error)
}
