package service

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/errors"
	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/models"
)

// ValidateCreateProductRequest validates a product creation request.
func ValidateCreateProductRequest(req *models.CreateProductRequest) error {
	if strings.TrimSpace(req.SKU) == "" {
		return errors.NewValidationError("sku", "sku is required")
	}

	if strings.TrimSpace(req.Name) == "" {
		return errors.NewValidationError("name", "name is required")
	}

	if req.UnitPrice.IsNegative() {
		return errors.NewValidationError("unit_price", "unit price cannot be negative")
	}

	if req.Stock < 0 {
		return errors.NewValidationError("stock", "stock cannot be negative")
	}

	if req.ReorderLevel != nil && *req.ReorderLevel < 0 {
		return errors.NewValidationError("reorder_level", "reorder level cannot be negative")
	}

	if err := validateCurrency(req.Currency); err != nil {
		return err
	}

	return nil
}

// ValidateUpdateProductRequest validates a product update request. Only set
// fields are checked.
func ValidateUpdateProductRequest(req *models.UpdateProductRequest) error {
	if req.SKU != nil && strings.TrimSpace(*req.SKU) == "" {
		return errors.NewValidationError("sku", "sku cannot be empty")
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return errors.NewValidationError("name", "name cannot be empty")
	}

	if req.UnitPrice != nil && req.UnitPrice.IsNegative() {
		return errors.NewValidationError("unit_price", "unit price cannot be negative")
	}

	if req.Stock != nil && *req.Stock < 0 {
		return errors.NewValidationError("stock", "stock cannot be negative")
	}

	if req.ReorderLevel != nil && *req.ReorderLevel < 0 {
		return errors.NewValidationError("reorder_level", "reorder level cannot be negative")
	}

	if req.Currency != nil {
		if err := validateCurrency(*req.Currency); err != nil {
			return err
		}
	}

	return nil
}

// ValidateCreateSupplierRequest validates a supplier creation request.
func ValidateCreateSupplierRequest(req *models.CreateSupplierRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return errors.NewValidationError("name", "name is required")
	}

	if req.Email != "" && !strings.Contains(req.Email, "@") {
		return errors.NewValidationError("email", "email must be a valid address")
	}

	return nil
}

// ValidateUpdateSupplierRequest validates a supplier update request.
func ValidateUpdateSupplierRequest(req *models.UpdateSupplierRequest) error {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return errors.NewValidationError("name", "name cannot be empty")
	}

	if req.Email != nil && *req.Email != "" && !strings.Contains(*req.Email, "@") {
		return errors.NewValidationError("email", "email must be a valid address")
	}

	return nil
}

// ValidateCreatePurchaseOrderRequest validates a purchase order creation
// request. Quantities and prices are not rejected here: negative values are
// clamped during pricing.
func ValidateCreatePurchaseOrderRequest(req *models.CreatePurchaseOrderRequest) error {
	if req.SupplierID == "" {
		return errors.NewValidationError("supplier_id", "supplier ID is required")
	}

	if len(req.Items) == 0 {
		return errors.NewValidationError("items", "at least one item is required")
	}

	if err := validateLineItemInputs(req.Items); err != nil {
		return err
	}

	if err := validateCurrency(req.Currency); err != nil {
		return err
	}

	return nil
}

// ValidateCreateSalesOrderRequest validates a sales order creation request.
func ValidateCreateSalesOrderRequest(req *models.CreateSalesOrderRequest) error {
	if strings.TrimSpace(req.CustomerName) == "" {
		return errors.NewValidationError("customer_name", "customer name is required")
	}

	if len(req.Items) == 0 {
		return errors.NewValidationError("items", "at least one item is required")
	}

	if err := validateLineItemInputs(req.Items); err != nil {
		return err
	}

	if err := validateCurrency(req.Currency); err != nil {
		return err
	}

	return nil
}

func validateLineItemInputs(items []models.LineItemInput) error {
	for _, item := range items {
		if item.ProductID == "" {
			return errors.NewValidationError("items", "product ID is required for item")
		}
	}
	return nil
}

// ValidateUpdatePurchaseOrderStatusRequest validates a purchase order status
// update request.
func ValidateUpdatePurchaseOrderStatusRequest(req *models.UpdatePurchaseOrderStatusRequest) error {
	if req.Status == "" {
		return errors.NewValidationError("status", "status is required")
	}

	// Validate status value
	switch req.Status {
	case models.PurchaseOrderStatusPending,
		models.PurchaseOrderStatusOrdered,
		models.PurchaseOrderStatusReceived,
		models.PurchaseOrderStatusCancelled:
		// Valid status
	default:
		return errors.NewValidationError("status", "invalid purchase order status")
	}

	return nil
}

// ValidateUpdateSalesOrderStatusRequest validates a sales order status update
// request.
func ValidateUpdateSalesOrderStatusRequest(req *models.UpdateSalesOrderStatusRequest) error {
	if req.Status == "" {
		return errors.NewValidationError("status", "status is required")
	}

	// Validate status value
	switch req.Status {
	case models.SalesOrderStatusPending,
		models.SalesOrderStatusShipped,
		models.SalesOrderStatusDelivered,
		models.SalesOrderStatusCancelled:
		// Valid status
	default:
		return errors.NewValidationError("status", "invalid sales order status")
	}

	return nil
}

// ValidateCreateBillRequest validates a bill creation request.
func ValidateCreateBillRequest(req *models.CreateBillRequest) error {
	if !req.Amount.GreaterThan(decimal.Zero) {
		return errors.NewValidationError("amount", "amount must be positive")
	}

	if req.AmountPaid.IsNegative() {
		return errors.NewValidationError("amount_paid", "amount paid cannot be negative")
	}

	if req.Status == "" {
		return errors.NewValidationError("status", "status is required")
	}

	if !models.ValidBillStatus(req.Status) {
		return errors.NewValidationError("status", "invalid bill status")
	}

	if err := validateCurrency(req.Currency); err != nil {
		return err
	}

	return nil
}

// ValidateUpdateBillRequest validates a bill update request.
func ValidateUpdateBillRequest(req *models.UpdateBillRequest) error {
	if req.Amount != nil && !req.Amount.GreaterThan(decimal.Zero) {
		return errors.NewValidationError("amount", "amount must be positive")
	}

	return nil
}

// ValidateRecordPaymentRequest validates a payment request against a bill.
func ValidateRecordPaymentRequest(req *models.RecordPaymentRequest) error {
	if req.Amount.IsNegative() {
		return errors.NewValidationError("amount", "payment amount cannot be negative")
	}

	if req.Status == "" {
		return errors.NewValidationError("status", "status is required")
	}

	if !models.ValidBillStatus(req.Status) {
		return errors.NewValidationError("status", "invalid bill status")
	}

	return nil
}

// ValidateListWindow validates pagination parameters and caps the page size.
func ValidateListWindow(limit, offset *int) error {
	if *limit < 0 {
		return errors.NewValidationError("limit", "limit cannot be negative")
	}

	if *offset < 0 {
		return errors.NewValidationError("offset", "offset cannot be negative")
	}

	if *limit == 0 {
		*limit = 20
	}
	if *limit > 100 {
		*limit = 100
	}

	return nil
}

func validateCurrency(currency string) error {
	if currency == "" {
		return nil
	}
	if len(currency) != 3 {
		return errors.NewValidationError("currency", "currency must be a 3-letter ISO code")
	}
	return nil
}

// SanitizeNotes sanitizes free-text notes before storage.
func SanitizeNotes(notes string) string {
	notes = strings.ReplaceAll(notes, "<", "&lt;")
	notes = strings.ReplaceAll(notes, ">", "&gt;")
	notes = strings.ReplaceAll(notes, "\"", "&quot;")
	notes = strings.TrimSpace(notes)

	// Limit length
	if len(notes) > 1000 {
		notes = notes[:1000]
	}

	return notes
}
