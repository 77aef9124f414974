package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// OrderUseCase creación y consulta de pedidos.
type OrderUseCase struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
}

// NewOrderUseCase construye el caso de uso de pedidos.
func NewOrderUseCase(orders repository.OrderRepository, products repository.ProductRepository) *OrderUseCase {
	return &OrderUseCase{orders: orders, products: products}
}

// Place crea un pedido para el usuario autenticado. El precio unitario se
// congela al precio final vigente del producto (con descuento aplicado).
func (uc *OrderUseCase) Place(userID int64, in dto.PlaceOrderRequest) (*dto.OrderResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	total := decimal.Zero
	items := make([]entity.OrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		if it.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		p, err := uc.products.GetByID(it.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.ErrNotFound
		}
		unit := p.FinalPrice()
		total = total.Add(unit.Mul(decimal.NewFromInt(int64(it.Quantity))))
		items = append(items, entity.OrderItem{ProductID: p.ID, Quantity: it.Quantity, UnitPrice: unit})
	}

	order := &entity.Order{
		Reference: uuid.New().String(),
		UserID:    userID,
		Total:     total,
		Status:    "pending",
		Items:     items,
		CreatedAt: time.Now(),
	}
	if err := uc.orders.Create(order); err != nil {
		return nil, err
	}
	out := toOrderResponse(order)
	return &out, nil
}

// ListRecent lista los pedidos más recientes para el panel.
func (uc *OrderUseCase) ListRecent(limit int) ([]dto.OrderResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	orders, err := uc.orders.ListRecent(limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return out, nil
}

func toOrderResponse(o *entity.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:        o.ID,
		Reference: o.Reference,
		Total:     o.Total.StringFixed(2),
		Status:    o.Status,
		CreatedAt: o.CreatedAt,
	}
}
