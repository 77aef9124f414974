package dto

import "time"

// ProductResponse salida de un producto del catálogo.
// Precios como string decimal para no perder precisión en JSON.
type ProductResponse struct {
	ID          int64  `json:"id"`
	CategoryID  int64  `json:"category_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       string `json:"price"`
	DiscountPct string `json:"discount_pct"`
	FinalPrice  string `json:"final_price"`
	ImageURL    string `json:"image_url,omitempty"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// OrderItemRequest línea de pedido en la entrada.
type OrderItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required"`
	Quantity  int   `json:"quantity" validate:"required,min=1"`
}

// PlaceOrderRequest entrada para crear un pedido.
type PlaceOrderRequest struct {
	Items []OrderItemRequest `json:"items" validate:"required,min=1"`
}

// OrderResponse salida de un pedido.
type OrderResponse struct {
	ID        int64     `json:"id"`
	Reference string    `json:"reference"`
	Total     string    `json:"total"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
