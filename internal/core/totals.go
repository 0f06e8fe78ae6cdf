package core

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Totals is the derived bill summary of a composition.
// Discount is the effective percentage after clamping; Balance is never
// clamped (negative means overpaid).
type Totals struct {
	SubTotal       decimal.Decimal `json:"subTotal"`
	Discount       int             `json:"discount"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	GrandTotal     decimal.Decimal `json:"grandTotal"`
	Payment        decimal.Decimal `json:"payment"`
	Balance        decimal.Decimal `json:"balance"`
}

// ClampDiscount bounds a raw discount percentage to [0, 100].
func ClampDiscount(d int) int {
	if d < 0 {
		return 0
	}
	if d > 100 {
		return 100
	}
	return d
}

// ComputeTotals derives the bill summary from line items, a raw discount
// percentage and the tendered payment. Lines without an item are skipped.
func ComputeTotals(lines []LineItem, discount int, payment decimal.Decimal) Totals {
	sub := decimal.Zero
	for _, l := range lines {
		if l.Empty() {
			continue
		}
		sub = sub.Add(l.LineTotal())
	}

	d := ClampDiscount(discount)
	discountAmount := sub.Mul(decimal.NewFromInt(int64(d))).Div(hundred)
	grand := sub.Sub(discountAmount)

	return Totals{
		SubTotal:       sub,
		Discount:       d,
		DiscountAmount: discountAmount,
		GrandTotal:     grand,
		Payment:        payment,
		Balance:        grand.Sub(payment),
	}
}
