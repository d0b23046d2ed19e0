package repository

import "github.com/jhoicas/inventario-core/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
// FindByUsername devuelve (nil, nil) cuando el usuario no existe.
type UserRepository interface {
	Create(user *entity.User) error
	FindByUsername(username string) (*entity.User, error)
	List(limit, offset int) ([]*entity.User, error)
}
