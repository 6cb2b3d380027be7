package service

import (
	"github.com/shopspring/decimal"

	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/errors"
	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/models"
)

// PaymentResolution is the accepted outcome of reconciling a payment against
// a bill.
type PaymentResolution struct {
	AmountPaid decimal.Decimal
	Status     models.BillStatus
}

// ReconcilePayment applies a payment on top of the amount already paid and
// validates the status the client declared for the result. The total paid is
// capped at the bill amount.
//
// A declared partially_paid that reaches the full amount is promoted to paid.
// A declared paid that falls short is rejected rather than corrected, as is a
// declared unpaid when anything has been paid. Rejection leaves the bill
// untouched: callers must not apply any part of a failed reconciliation.
func ReconcilePayment(billAmount, alreadyPaid, payment decimal.Decimal, declared models.BillStatus) (*PaymentResolution, error) {
	if payment.IsNegative() {
		return nil, errors.NewValidationError("amount", "payment amount cannot be negative")
	}

	totalPaid := alreadyPaid.Add(payment)
	if totalPaid.GreaterThan(billAmount) {
		totalPaid = billAmount
	}

	status := declared
	switch declared {
	case models.BillStatusPaid:
		if totalPaid.LessThan(billAmount) {
			return nil, errors.NewValidationError("status", "declared paid but total paid is less than the bill amount")
		}
	case models.BillStatusPartiallyPaid:
		if !totalPaid.GreaterThan(decimal.Zero) {
			return nil, errors.NewValidationError("status", "declared partially_paid requires a positive paid amount")
		}
		// Reaching the full amount promotes the declared status.
		if totalPaid.GreaterThanOrEqual(billAmount) {
			status = models.BillStatusPaid
		}
	case models.BillStatusUnpaid:
		if totalPaid.GreaterThan(decimal.Zero) {
			return nil, errors.NewValidationError("status", "declared unpaid but a paid amount is recorded")
		}
	default:
		return nil, errors.NewValidationError("status", "invalid bill status")
	}

	return &PaymentResolution{AmountPaid: totalPaid, Status: status}, nil
}
