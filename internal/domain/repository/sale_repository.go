package repository

import "github.com/jhoicas/inventario-core/internal/domain/entity"

// SaleRepository define el puerto de persistencia para Sale (DIP).
// Las ventas son append-only: no hay Update ni Delete.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	// ListAll devuelve el histórico completo; el forecast se recalcula
	// siempre sobre el conjunto entero (no hay interfaz incremental).
	ListAll() ([]*entity.Sale, error)
}
