package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo de la tienda.
// DiscountPct es porcentaje (0–100); 0 significa sin descuento.
type Product struct {
	ID          int64
	CategoryID  int64
	Name        string
	Description string
	Price       decimal.Decimal
	DiscountPct decimal.Decimal
	ImageURL    string
	Status      string // active, inactive
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// FinalPrice devuelve el precio con el descuento aplicado.
func (p *Product) FinalPrice() decimal.Decimal {
	if p.DiscountPct.IsZero() {
		return p.Price
	}
	factor := decimal.NewFromInt(100).Sub(p.DiscountPct).Div(decimal.NewFromInt(100))
	return p.Price.Mul(factor).Round(2)
}
