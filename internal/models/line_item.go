package models

import "github.com/shopspring/decimal"

// LineItem is one product row within a purchase or sales order. LineTotal is
// always quantity times unit price, recomputed whenever the order's items
// change.
type LineItem struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// LineItemInput is a line row as submitted by a client. A nil UnitPrice means
// the product's current unit price is used.
type LineItemInput struct {
	ProductID string           `json:"product_id"`
	Quantity  int64            `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}
