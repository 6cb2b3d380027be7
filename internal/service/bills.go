package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/config"
	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/errors"
	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/events"
	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/logging"
	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/metrics"
	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/models"
	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/repository"
)

// BillService handles bill business logic. All paid-amount changes go through
// payment reconciliation so amounts and statuses can never drift apart.
type BillService struct {
	bills          repository.BillRepository
	suppliers      repository.SupplierRepository
	purchaseOrders repository.PurchaseOrderRepository
	eventPublisher events.Publisher
	config         *config.Config
	logger         *logging.Logger
}

// NewBillService creates a new bill service.
func NewBillService(
	bills repository.BillRepository,
	suppliers repository.SupplierRepository,
	purchaseOrders repository.PurchaseOrderRepository,
	eventPublisher events.Publisher,
	cfg *config.Config,
) *BillService {
	return &BillService{
		bills:          bills,
		suppliers:      suppliers,
		purchaseOrders: purchaseOrders,
		eventPublisher: eventPublisher,
		config:         cfg,
		logger:         logging.New("bill-service"),
	}
}

// Create creates a new bill. An initial paid amount goes through the same
// reconciliation as later payments, with nothing paid before it.
func (s *BillService) Create(ctx context.Context, req *models.CreateBillRequest) (*models.Bill, error) {
	s.logger.Info("Creating bill", logging.Fields{
		"supplier_id": req.SupplierID,
		"amount":      req.Amount,
	})

	if err := ValidateCreateBillRequest(req); err != nil {
		return nil, err
	}

	// Validate references when provided
	if req.SupplierID != "" {
		if _, err := s.suppliers.GetByID(ctx, req.SupplierID); err != nil {
			if err == errors.ErrNotFound {
				return nil, errors.NewValidationError("supplier_id", "supplier not found")
			}
			return nil, err
		}
	}
	if req.PurchaseOrderID != "" {
		if _, err := s.purchaseOrders.GetByID(ctx, req.PurchaseOrderID); err != nil {
			if err == errors.ErrNotFound {
				return nil, errors.NewValidationError("purchase_order_id", "purchase order not found")
			}
			return nil, err
		}
	}

	resolution, err := ReconcilePayment(req.Amount, decimal.Zero, req.AmountPaid, req.Status)
	if err != nil {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = s.config.Inventory.DefaultCurrency
	}

	now := time.Now()
	bill := &models.Bill{
		ID:              repository.NewID("bill"),
		SupplierID:      req.SupplierID,
		PurchaseOrderID: req.PurchaseOrderID,
		Reference:       req.Reference,
		Amount:          req.Amount,
		AmountPaid:      resolution.AmountPaid,
		Currency:        currency,
		Status:          resolution.Status,
		DueDate:         req.DueDate,
		Notes:           SanitizeNotes(req.Notes),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if bill.Status == models.BillStatusPaid {
		bill.PaidAt = &now
	}

	if err := s.bills.Create(ctx, bill); err != nil {
		s.logger.Error("Failed to create bill", logging.Fields{
			"supplier_id": req.SupplierID,
			"error":       err.Error(),
		})
		return nil, err
	}

	s.logger.Info("Bill created successfully", logging.Fields{
		"bill_id": bill.ID,
		"status":  bill.Status,
	})

	return bill, nil
}

// Get retrieves a bill by ID.
func (s *BillService) Get(ctx context.Context, id string) (*models.Bill, error) {
	s.logger.Debug("Getting bill", logging.Fields{"bill_id": id})
	return s.bills.GetByID(ctx, id)
}

// Update applies the set fields of the request. Changing the owed amount
// re-derives the status from the amounts.
func (s *BillService) Update(ctx context.Context, id string, req *models.UpdateBillRequest) (*models.Bill, error) {
	s.logger.Info("Updating bill", logging.Fields{"bill_id": id})

	if err := ValidateUpdateBillRequest(req); err != nil {
		return nil, err
	}

	bill, err := s.bills.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.SupplierID != nil {
		bill.SupplierID = *req.SupplierID
	}
	if req.PurchaseOrderID != nil {
		bill.PurchaseOrderID = *req.PurchaseOrderID
	}
	if req.Reference != nil {
		bill.Reference = *req.Reference
	}
	if req.Amount != nil {
		bill.Amount = *req.Amount
	}
	if req.DueDate != nil {
		bill.DueDate = req.DueDate
	}
	if req.Notes != nil {
		bill.Notes = SanitizeNotes(*req.Notes)
	}

	now := time.Now()
	bill.UpdatedAt = now
	bill.DeriveStatus()
	if bill.Status == models.BillStatusPaid {
		if bill.PaidAt == nil {
			bill.PaidAt = &now
		}
	} else {
		bill.PaidAt = nil
	}

	if err := s.bills.Update(ctx, bill); err != nil {
		return nil, err
	}

	return bill, nil
}

// RecordPayment reconciles a payment against the bill. A rejected payment
// leaves the bill completely untouched.
func (s *BillService) RecordPayment(ctx context.Context, id string, req *models.RecordPaymentRequest) (*models.Bill, error) {
	s.logger.Info("Recording bill payment", logging.Fields{
		"bill_id": id,
		"amount":  req.Amount,
	})

	if err := ValidateRecordPaymentRequest(req); err != nil {
		return nil, err
	}

	bill, err := s.bills.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resolution, err := ReconcilePayment(bill.Amount, bill.AmountPaid, req.Amount, req.Status)
	if err != nil {
		return nil, err
	}

	previousStatus := bill.Status
	now := time.Now()
	bill.AmountPaid = resolution.AmountPaid
	bill.Status = resolution.Status
	bill.UpdatedAt = now
	if bill.Status == models.BillStatusPaid && previousStatus != models.BillStatusPaid {
		bill.PaidAt = &now
	}

	if err := s.bills.Update(ctx, bill); err != nil {
		return nil, err
	}

	metrics.PaymentsRecorded.Inc()

	// Publish event
	if s.config.Features.EnableEvents {
		if err := s.eventPublisher.PublishBillPaymentRecorded(ctx, bill, req.Amount); err != nil {
			// Log but don't fail
			s.logger.Error("Failed to publish bill payment event", logging.Fields{
				"bill_id": bill.ID,
				"error":   err.Error(),
			})
		}
	}

	s.logger.Info("Payment recorded successfully", logging.Fields{
		"bill_id":     bill.ID,
		"amount_paid": bill.AmountPaid,
		"status":      bill.Status,
	})

	return bill, nil
}

// Delete removes a bill.
func (s *BillService) Delete(ctx context.Context, id string) error {
	s.logger.Info("Deleting bill", logging.Fields{"bill_id": id})
	return s.bills.Delete(ctx, id)
}

// List retrieves bills matching the filter.
func (s *BillService) List(ctx context.Context, filter *models.BillListFilter) ([]*models.Bill, int, error) {
	s.logger.Debug("Listing bills", logging.Fields{
		"supplier_id": filter.SupplierID,
		"status":      filter.Status,
	})

	if err := ValidateListWindow(&filter.Limit, &filter.Offset); err != nil {
		return nil, 0, err
	}

	return s.bills.List(ctx, filter)
}
