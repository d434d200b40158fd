package pricing

import (
	"github.com/shopspring/decimal"
	"github.com/techieonvacation/ex-earning/internal/domain"
)

// DefaultTaxRate is the sales tax applied to a cart subtotal (8%).
var DefaultTaxRate = decimal.RequireFromString("0.08")

type Totals struct {
	TotalItems int
	Subtotal   decimal.Decimal
	Tax        decimal.Decimal
	Total      decimal.Decimal
}

// Calculator derives cart totals. It never rounds; formatting is left to callers.
type Calculator struct {
	TaxRate decimal.Decimal
}

func NewCalculator(taxRate decimal.Decimal) Calculator {
	return Calculator{TaxRate: taxRate}
}

func Default() Calculator {
	return NewCalculator(DefaultTaxRate)
}

func (c Calculator) Compute(items []domain.CartLine, couponDiscount decimal.Decimal) Totals {
	var totalItems int
	subtotal := decimal.Zero
	for _, item := range items {
		totalItems += item.Quantity
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	tax := c.Tax(subtotal)
	return Totals{
		TotalItems: totalItems,
		Subtotal:   subtotal,
		Tax:        tax,
		Total:      Total(subtotal, tax, couponDiscount),
	}
}

func (c Calculator) Tax(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(c.TaxRate)
}

// Total is subtotal plus tax minus the discount, clamped at zero.
func Total(subtotal, tax, discount decimal.Decimal) decimal.Decimal {
	return decimal.Max(decimal.Zero, subtotal.Add(tax).Sub(discount))
}

// ComputeTotals uses the default tax rate.
func ComputeTotals(items []domain.CartLine, couponDiscount decimal.Decimal) Totals {
	return Default().Compute(items, couponDiscount)
}
