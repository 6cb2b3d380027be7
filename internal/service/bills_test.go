package service

import (
	"context"
	"testing"

	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/errors"
	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/events"
	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/models"
)

func TestBillService_Create(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	supplier := env.createSupplier(t, "Acme Industrial Supply")

	bill, err := env.bills.Create(ctx, &models.CreateBillRequest{
		SupplierID: supplier.ID,
		Reference:  "INV-2024-118",
		Amount:     dec("500.00"),
		Status:     models.BillStatusUnpaid,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if bill.Status != models.BillStatusUnpaid {
		t.Errorf("Expected status unpaid, got %s", bill.Status)
	}
	if !bill.AmountPaid.IsZero() {
		t.Errorf("Expected zero paid, got %s", bill.AmountPaid)
	}
	if !bill.Outstanding().Equal(dec("500.00")) {
		t.Errorf("Expected outstanding 500.00, got %s", bill.Outstanding())
	}
	if bill.PaidAt != nil {
		t.Error("Expected PaidAt to be nil for unpaid bill")
	}
}

func TestBillService_Create_WithInitialPayment(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	supplier := env.createSupplier(t, "Acme Industrial Supply")

	bill, err := env.bills.Create(ctx, &models.CreateBillRequest{
		SupplierID: supplier.ID,
		Amount:     dec("150.00"),
		AmountPaid: dec("150.00"),
		Status:     models.BillStatusPaid,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if bill.Status != models.BillStatusPaid {
		t.Errorf("Expected status paid, got %s", bill.Status)
	}
	if bill.PaidAt == nil {
		t.Error("Expected PaidAt to be set for paid bill")
	}
}

func TestBillService_Create_InconsistentStatusRejected(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	supplier := env.createSupplier(t, "Acme Industrial Supply")

	_, err := env.bills.Create(ctx, &models.CreateBillRequest{
		SupplierID: supplier.ID,
		Amount:     dec("500.00"),
		AmountPaid: dec("100.00"),
		Status:     models.BillStatusPaid,
	})
	if !errors.IsValidation(err) {
		t.Errorf("Expected validation error for paid-but-short bill, got %v", err)
	}
}

func TestBillService_Create_UnknownReferences(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.bills.Create(ctx, &models.CreateBillRequest{
		SupplierID: "sup_missing",
		Amount:     dec("100.00"),
		Status:     models.BillStatusUnpaid,
	})
	if !errors.IsValidation(err) {
		t.Errorf("Expected validation error for unknown supplier, got %v", err)
	}

	supplier := env.createSupplier(t, "Acme Industrial Supply")
	_, err = env.bills.Create(ctx, &models.CreateBillRequest{
		SupplierID:      supplier.ID,
		PurchaseOrderID: "po_missing",
		Amount:          dec("100.00"),
		Status:          models.BillStatusUnpaid,
	})
	if !errors.IsValidation(err) {
		t.Errorf("Expected validation error for unknown purchase order, got %v", err)
	}
}

func TestBillService_RecordPayment(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	supplier := env.createSupplier(t, "Acme Industrial Supply")
	bill, err := env.bills.Create(ctx, &models.CreateBillRequest{
		SupplierID: supplier.ID,
		Amount:     dec("500.00"),
		Status:     models.BillStatusUnpaid,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	partial, err := env.bills.RecordPayment(ctx, bill.ID, &models.RecordPaymentRequest{
		Amount: dec("200.00"),
		Status: models.BillStatusPartiallyPaid,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if partial.Status != models.BillStatusPartiallyPaid {
		t.Errorf("Expected status partially_paid, got %s", partial.Status)
	}
	if !partial.AmountPaid.Equal(dec("200.00")) {
		t.Errorf("Expected amount paid 200.00, got %s", partial.AmountPaid)
	}
	if !partial.Outstanding().Equal(dec("300.00")) {
		t.Errorf("Expected outstanding 300.00, got %s", partial.Outstanding())
	}

	paid, err := env.bills.RecordPayment(ctx, bill.ID, &models.RecordPaymentRequest{
		Amount: dec("300.00"),
		Status: models.BillStatusPartiallyPaid,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if paid.Status != models.BillStatusPaid {
		t.Errorf("Expected promotion to paid, got %s", paid.Status)
	}
	if paid.PaidAt == nil {
		t.Error("Expected PaidAt to be set")
	}

	if !env.hasEvent(events.EventTypeBillPaymentRecorded) {
		t.Errorf("Expected payment recorded event, got %v", env.eventTypes())
	}
}

func TestBillService_RecordPayment_RejectionLeavesBillUntouched(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	supplier := env.createSupplier(t, "Acme Industrial Supply")
	bill, err := env.bills.Create(ctx, &models.CreateBillRequest{
		SupplierID: supplier.ID,
		Amount:     dec("500.00"),
		AmountPaid: dec("100.00"),
		Status:     models.BillStatusPartiallyPaid,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	_, err = env.bills.RecordPayment(ctx, bill.ID, &models.RecordPaymentRequest{
		Amount: dec("100.00"),
		Status: models.BillStatusPaid,
	})
	if !errors.IsValidation(err) {
		t.Fatalf("Expected validation error for paid-but-short, got %v", err)
	}

	reloaded, err := env.bills.Get(ctx, bill.ID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !reloaded.AmountPaid.Equal(dec("100.00")) {
		t.Errorf("Expected amount paid unchanged at 100.00, got %s", reloaded.AmountPaid)
	}
	if reloaded.Status != models.BillStatusPartiallyPaid {
		t.Errorf("Expected status unchanged, got %s", reloaded.Status)
	}
}

func TestBillService_RecordPayment_OverpaymentCapped(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	supplier := env.createSupplier(t, "Acme Industrial Supply")
	bill, err := env.bills.Create(ctx, &models.CreateBillRequest{
		SupplierID: supplier.ID,
		Amount:     dec("500.00"),
		AmountPaid: dec("400.00"),
		Status:     models.BillStatusPartiallyPaid,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	paid, err := env.bills.RecordPayment(ctx, bill.ID, &models.RecordPaymentRequest{
		Amount: dec("250.00"),
		Status: models.BillStatusPaid,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !paid.AmountPaid.Equal(dec("500.00")) {
		t.Errorf("Expected amount paid capped at 500.00, got %s", paid.AmountPaid)
	}
	if !paid.Outstanding().IsZero() {
		t.Errorf("Expected zero outstanding, got %s", paid.Outstanding())
	}
}

func TestBillService_Update_AmountChangeRederivesStatus(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	supplier := env.createSupplier(t, "Acme Industrial Supply")
	bill, err := env.bills.Create(ctx, &models.CreateBillRequest{
		SupplierID: supplier.ID,
		Amount:     dec("150.00"),
		AmountPaid: dec("150.00"),
		Status:     models.BillStatusPaid,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	raised := dec("300.00")
	updated, err := env.bills.Update(ctx, bill.ID, &models.UpdateBillRequest{
		Amount: &raised,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if updated.Status != models.BillStatusPartiallyPaid {
		t.Errorf("Expected status partially_paid after raising amount, got %s", updated.Status)
	}
	if updated.PaidAt != nil {
		t.Error("Expected PaidAt cleared when bill is no longer paid")
	}
	if !updated.Outstanding().Equal(dec("150.00")) {
		t.Errorf("Expected outstanding 150.00, got %s", updated.Outstanding())
	}
}

func TestBillService_Delete(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	supplier := env.createSupplier(t, "Acme Industrial Supply")
	bill, err := env.bills.Create(ctx, &models.CreateBillRequest{
		SupplierID: supplier.ID,
		Amount:     dec("100.00"),
		Status:     models.BillStatusUnpaid,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if err := env.bills.Delete(ctx, bill.ID); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if _, err := env.bills.Get(ctx, bill.ID); !errors.IsNotFound(err) {
		t.Errorf("Expected not found after delete, got %v", err)
	}
}
