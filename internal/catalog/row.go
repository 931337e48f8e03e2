package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/talkincode/flowershop/internal/domain"
)

// LargeDiscountThreshold discounts above this many percent are highlighted
const LargeDiscountThreshold = 15

var hundred = decimal.NewFromInt(100)

// Row a product as the catalog shows it
type Row struct {
	domain.Product
	FinalPrice    decimal.Decimal
	OutOfStock    bool
	LargeDiscount bool
}

func NewRow(p domain.Product) Row {
	return Row{
		Product:       p,
		FinalPrice:    FinalPrice(p.Cost, p.Discount),
		OutOfStock:    p.Quantity == 0,
		LargeDiscount: p.Discount > LargeDiscountThreshold,
	}
}

// FinalPrice cost less the discount percentage, rounded to kopecks with halves
// away from zero. Without a discount the cost is returned unchanged.
func FinalPrice(cost float64, discount int) decimal.Decimal {
	price := decimal.NewFromFloat(cost)
	if discount <= 0 {
		return price
	}
	factor := hundred.Sub(decimal.NewFromInt(int64(discount))).Div(hundred)
	return price.Mul(factor).Round(2)
}
