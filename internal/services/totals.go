package services

import (
	"github.com/shopspring/decimal"

	"shinyshoes/internal/domain"
)

var taxRate = decimal.RequireFromString("0.08")

type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

func subtotal(lines []domain.CartLine) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(decimal.NewFromFloat(l.Price).Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return sum
}

// ComputeTotals prices a cart at the fixed 8% tax rate, each figure rounded to cents.
func ComputeTotals(lines []domain.CartLine) Totals {
	sub := subtotal(lines)
	tax := sub.Mul(taxRate)
	total := sub.Add(tax)
	return Totals{
		Subtotal: sub.Round(2).InexactFloat64(),
		Tax:      tax.Round(2).InexactFloat64(),
		Total:    total.Round(2).InexactFloat64(),
	}
}
