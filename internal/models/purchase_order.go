package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PurchaseOrderStatus string

const (
	PurchaseOrderStatusPending   PurchaseOrderStatus = "pending"
	PurchaseOrderStatusOrdered   PurchaseOrderStatus = "ordered"
	PurchaseOrderStatusReceived  PurchaseOrderStatus = "received"
	PurchaseOrderStatusCancelled PurchaseOrderStatus = "cancelled"
)

// PurchaseOrder is an inbound order placed with a supplier. Receiving it adds
// the ordered quantities to product stock.
type PurchaseOrder struct {
	ID         string              `json:"id"`
	SupplierID string              `json:"supplier_id"`
	Status     PurchaseOrderStatus `json:"status"`
	Items      []LineItem          `json:"items"`
	TaxPercent decimal.Decimal     `json:"tax_percent"`
	Subtotal   decimal.Decimal     `json:"subtotal"`
	TaxAmount  decimal.Decimal     `json:"tax_amount"`
	GrandTotal decimal.Decimal     `json:"grand_total"`
	Currency   string              `json:"currency"`
	Notes      string              `json:"notes,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
	ReceivedAt *time.Time          `json:"received_at,omitempty"`
}

// IsOpen reports whether the order has not reached a terminal status.
func (o *PurchaseOrder) IsOpen() bool {
	return o.Status == PurchaseOrderStatusPending || o.Status == PurchaseOrderStatusOrdered
}

// CanEdit reports whether line items, tax and notes may still change.
func (o *PurchaseOrder) CanEdit() bool {
	return o.IsOpen()
}

// CanCancel reports whether the order may still transition to cancelled.
func (o *PurchaseOrder) CanCancel() bool {
	return o.IsOpen()
}

type CreatePurchaseOrderRequest struct {
	SupplierID string           `json:"supplier_id"`
	Items      []LineItemInput  `json:"items"`
	TaxPercent *decimal.Decimal `json:"tax_percent"`
	Currency   string           `json:"currency"`
	Notes      string           `json:"notes"`
}

// UpdatePurchaseOrderRequest updates an open purchase order. Nil Items leaves
// the line items untouched; an empty slice removes them all. Totals are
// recomputed on every update.
type UpdatePurchaseOrderRequest struct {
	Items      []LineItemInput  `json:"items"`
	TaxPercent *decimal.Decimal `json:"tax_percent"`
	Notes      *string          `json:"notes"`
}

type UpdatePurchaseOrderStatusRequest struct {
	Status PurchaseOrderStatus `json:"status"`
	Notes  string              `json:"notes"`
}

// PurchaseOrderListFilter narrows and paginates purchase order listings.
type PurchaseOrderListFilter struct {
	Status     *PurchaseOrderStatus
	SupplierID string
	Limit      int
	Offset     int
}
