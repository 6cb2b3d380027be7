package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type SalesOrderStatus string

const (
	SalesOrderStatusPending   SalesOrderStatus = "pending"
	SalesOrderStatusShipped   SalesOrderStatus = "shipped"
	SalesOrderStatusDelivered SalesOrderStatus = "delivered"
	SalesOrderStatusCancelled SalesOrderStatus = "cancelled"
)

// SalesOrder is an outbound customer order. Shipping it subtracts the ordered
// quantities from product stock, clamped at zero.
type SalesOrder struct {
	ID           string           `json:"id"`
	CustomerName string           `json:"customer_name"`
	Status       SalesOrderStatus `json:"status"`
	Items        []LineItem       `json:"items"`
	TaxPercent   decimal.Decimal  `json:"tax_percent"`
	Subtotal     decimal.Decimal  `json:"subtotal"`
	TaxAmount    decimal.Decimal  `json:"tax_amount"`
	GrandTotal   decimal.Decimal  `json:"grand_total"`
	Currency     string           `json:"currency"`
	Notes        string           `json:"notes,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	ShippedAt    *time.Time       `json:"shipped_at,omitempty"`
	DeliveredAt  *time.Time       `json:"delivered_at,omitempty"`
}

// IsOpen reports whether the order has not reached a terminal status.
func (o *SalesOrder) IsOpen() bool {
	return o.Status == SalesOrderStatusPending || o.Status == SalesOrderStatusShipped
}

// CanEdit reports whether line items, tax and notes may still change. Once an
// order ships its contents are fixed.
func (o *SalesOrder) CanEdit() bool {
	return o.Status == SalesOrderStatusPending
}

// CanCancel reports whether the order may still transition to cancelled.
func (o *SalesOrder) CanCancel() bool {
	return o.Status == SalesOrderStatusPending
}

type CreateSalesOrderRequest struct {
	CustomerName string           `json:"customer_name"`
	Items        []LineItemInput  `json:"items"`
	TaxPercent   *decimal.Decimal `json:"tax_percent"`
	Currency     string           `json:"currency"`
	Notes        string           `json:"notes"`
}

// UpdateSalesOrderRequest updates a pending sales order. Nil Items leaves the
// line items untouched; an empty slice removes them all. Totals are recomputed
// on every update.
type UpdateSalesOrderRequest struct {
	Items      []LineItemInput  `json:"items"`
	TaxPercent *decimal.Decimal `json:"tax_percent"`
	Notes      *string          `json:"notes"`
}

type UpdateSalesOrderStatusRequest struct {
	Status SalesOrderStatus `json:"status"`
	Notes  string           `json:"notes"`
}

// SalesOrderListFilter narrows and paginates sales order listings.
type SalesOrderListFilter struct {
	Status   *SalesOrderStatus
	Customer string
	Limit    int
	Offset   int
}
