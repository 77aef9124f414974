package usecase

import (
	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// CatalogUseCase lecturas del catálogo público: productos, categorías y ofertas.
type CatalogUseCase struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
}

// NewCatalogUseCase construye el caso de uso de catálogo.
func NewCatalogUseCase(products repository.ProductRepository, categories repository.CategoryRepository) *CatalogUseCase {
	return &CatalogUseCase{products: products, categories: categories}
}

// ListProducts lista productos activos paginados.
func (uc *CatalogUseCase) ListProducts(page dto.PageRequest) ([]dto.ProductResponse, error) {
	page.DefaultPage()
	products, err := uc.products.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toProductResponses(products), nil
}

// ListDiscounted lista los productos en oferta (franja de descuentos del home).
func (uc *CatalogUseCase) ListDiscounted(limit int) ([]dto.ProductResponse, error) {
	if limit <= 0 {
		limit = 12
	}
	products, err := uc.products.ListDiscounted(limit)
	if err != nil {
		return nil, err
	}
	return toProductResponses(products), nil
}

// GetProduct obtiene un producto por ID. (nil, nil) si no existe.
func (uc *CatalogUseCase) GetProduct(id int64) (*dto.ProductResponse, error) {
	p, err := uc.products.GetByID(id)
	if err != nil || p == nil {
		return nil, err
	}
	out := toProductResponse(p)
	return &out, nil
}

// ListCategories lista las categorías activas.
func (uc *CatalogUseCase) ListCategories() ([]dto.CategoryResponse, error) {
	categories, err := uc.categories.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, dto.CategoryResponse{ID: c.ID, Name: c.Name, Slug: c.Slug})
	}
	return out, nil
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ID,
		CategoryID:  p.CategoryID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.StringFixed(2),
		DiscountPct: p.DiscountPct.StringFixed(2),
		FinalPrice:  p.FinalPrice().StringFixed(2),
		ImageURL:    p.ImageURL,
	}
}

func toProductResponses(products []*entity.Product) []dto.ProductResponse {
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out
}
