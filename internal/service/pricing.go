package service

import (
	"github.com/shopspring/decimal"

	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/models"
)

var oneHundred = decimal.NewFromInt(100)

// OrderTotals represents the pricing breakdown for an order.
type OrderTotals struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	TaxAmount  decimal.Decimal `json:"tax_amount"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// CalculateLineTotal computes quantity times unit price. Negative inputs are
// clamped to zero before multiplying, so a line total is never negative.
func CalculateLineTotal(quantity int64, unitPrice decimal.Decimal) decimal.Decimal {
	if quantity < 0 {
		quantity = 0
	}
	if unitPrice.IsNegative() {
		unitPrice = decimal.Zero
	}
	return unitPrice.Mul(decimal.NewFromInt(quantity))
}

// CalculateTax computes tax on a subtotal at the given percentage, rounded to
// cents. A negative percentage is treated as zero.
func CalculateTax(subtotal, taxPercent decimal.Decimal) decimal.Decimal {
	if taxPercent.IsNegative() {
		taxPercent = decimal.Zero
	}
	return subtotal.Mul(taxPercent).Div(oneHundred).Round(2)
}

// CalculateOrderTotals computes the full pricing breakdown for a set of line
// items: subtotal, tax and grand total. Line totals are recomputed from
// quantity and unit price, so results stay consistent no matter what the
// stored line totals say.
func CalculateOrderTotals(items []models.LineItem, taxPercent decimal.Decimal) OrderTotals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(CalculateLineTotal(item.Quantity, item.UnitPrice))
	}
	tax := CalculateTax(subtotal, taxPercent)
	return OrderTotals{
		Subtotal:   subtotal,
		TaxAmount:  tax,
		GrandTotal: subtotal.Add(tax),
	}
}
