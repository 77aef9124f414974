package repository

import "github.com/jhoicas/Tienda-api/internal/domain/entity"

// OrderRepository puerto de persistencia para pedidos.
type OrderRepository interface {
	Create(order *entity.Order) error
	ListRecent(limit int) ([]*entity.Order, error)
}
