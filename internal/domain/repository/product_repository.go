package repository

import "github.com/jhoicas/Tienda-api/internal/domain/entity"

// ProductRepository puerto de persistencia para el catálogo de productos.
type ProductRepository interface {
	List(limit, offset int) ([]*entity.Product, error)
	ListDiscounted(limit int) ([]*entity.Product, error)
	GetByID(id int64) (*entity.Product, error)
}
