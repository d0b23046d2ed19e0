package repository

import "github.com/jhoicas/inventario-core/internal/domain/entity"

// StockMovementRepository define el puerto de persistencia para StockMovement (DIP).
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error)
}

// FeedbackRepository define el puerto de persistencia para Feedback (DIP).
type FeedbackRepository interface {
	Create(feedback *entity.Feedback) error
	List(limit, offset int) ([]*entity.Feedback, error)
}
