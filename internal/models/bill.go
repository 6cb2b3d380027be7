package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillStatus is the payment state of a bill. It is kept consistent with the
// amounts: payment reconciliation either accepts a declared status or rejects
// the whole operation.
type BillStatus string

const (
	BillStatusUnpaid        BillStatus = "unpaid"
	BillStatusPartiallyPaid BillStatus = "partially_paid"
	BillStatusPaid          BillStatus = "paid"
)

// ValidBillStatus reports whether s is one of the known bill statuses.
func ValidBillStatus(s BillStatus) bool {
	switch s {
	case BillStatusUnpaid, BillStatusPartiallyPaid, BillStatusPaid:
		return true
	}
	return false
}

// Bill is a payable owed to a supplier, optionally linked to a purchase order.
type Bill struct {
	ID              string          `json:"id"`
	SupplierID      string          `json:"supplier_id,omitempty"`
	PurchaseOrderID string          `json:"purchase_order_id,omitempty"`
	Reference       string          `json:"reference,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	AmountPaid      decimal.Decimal `json:"amount_paid"`
	Currency        string          `json:"currency"`
	Status          BillStatus      `json:"status"`
	DueDate         *time.Time      `json:"due_date,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	PaidAt          *time.Time      `json:"paid_at,omitempty"`
}

// Outstanding returns the unpaid remainder, never negative.
func (b *Bill) Outstanding() decimal.Decimal {
	remaining := b.Amount.Sub(b.AmountPaid)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// DeriveStatus recomputes Status purely from the amounts. Used when the bill
// amount itself changes; payment recording goes through reconciliation
// instead.
func (b *Bill) DeriveStatus() {
	switch {
	case b.AmountPaid.GreaterThanOrEqual(b.Amount):
		b.Status = BillStatusPaid
	case b.AmountPaid.GreaterThan(decimal.Zero):
		b.Status = BillStatusPartiallyPaid
	default:
		b.Status = BillStatusUnpaid
	}
}

type CreateBillRequest struct {
	SupplierID      string          `json:"supplier_id"`
	PurchaseOrderID string          `json:"purchase_order_id"`
	Reference       string          `json:"reference"`
	Amount          decimal.Decimal `json:"amount"`
	AmountPaid      decimal.Decimal `json:"amount_paid"`
	Status          BillStatus      `json:"status"`
	Currency        string          `json:"currency"`
	DueDate         *time.Time      `json:"due_date"`
	Notes           string          `json:"notes"`
}

// UpdateBillRequest updates a bill's descriptive fields and owed amount. Nil
// fields are left unchanged. Paid amounts change only through payments.
type UpdateBillRequest struct {
	SupplierID      *string          `json:"supplier_id"`
	PurchaseOrderID *string          `json:"purchase_order_id"`
	Reference       *string          `json:"reference"`
	Amount          *decimal.Decimal `json:"amount"`
	DueDate         *time.Time       `json:"due_date"`
	Notes           *string          `json:"notes"`
}

// RecordPaymentRequest applies a payment together with the client's declared
// resulting status, which reconciliation validates.
type RecordPaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Status BillStatus      `json:"status"`
}

// BillListFilter narrows and paginates bill listings.
type BillListFilter struct {
	Status     *BillStatus
	SupplierID string
	Limit      int
	Offset     int
}
