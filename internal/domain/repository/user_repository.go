package repository

import "github.com/jhoicas/Tienda-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
// El núcleo de auth solo ejercita FindByEmail y Create; no existe operación
// de actualización de rol desde el core.
type UserRepository interface {
	FindByEmail(email string) (*entity.User, error)
	FindByID(id int64) (*entity.User, error)
	Create(user *entity.User) error
}
