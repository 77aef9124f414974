package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order representa un pedido de la tienda.
// Reference es el identificador público (UUID) que se muestra al cliente.
type Order struct {
	ID        int64
	Reference string
	UserID    int64
	Total     decimal.Decimal
	Status    string // pending, paid, shipped, cancelled
	Items     []OrderItem
	CreatedAt time.Time
}

// OrderItem línea de un pedido. UnitPrice se congela al momento de la compra.
type OrderItem struct {
	ProductID int64
	Quantity  int
	UnitPrice decimal.Decimal
}
