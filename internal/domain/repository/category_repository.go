package repository

import "github.com/jhoicas/Tienda-api/internal/domain/entity"

// CategoryRepository puerto de persistencia para categorías.
type CategoryRepository interface {
	List() ([]*entity.Category, error)
}
