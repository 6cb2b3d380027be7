package service

import (
	"context"
	"fmt"
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

// PurchaseOrderService handles purchase order business logic, including the
// stock additions that happen when an order is received.
type PurchaseOrderService struct {
	orders         repository.PurchaseOrderRepository
	products       repository.ProductRepository
	suppliers      repository.SupplierRepository
	eventPublisher events.Publisher
	config         *config.Config
	logger         *logging.Logger
}

// NewPurchaseOrderService creates a new purchase order service.
func NewPurchaseOrderService(
	orders repository.PurchaseOrderRepository,
	products repository.ProductRepository,
	suppliers repository.SupplierRepository,
	eventPublisher events.Publisher,
	cfg *config.Config,
) *PurchaseOrderService {
	return &PurchaseOrderService{
		orders:         orders,
		products:       products,
		suppliers:      suppliers,
		eventPublisher: eventPublisher,
		config:         cfg,
		logger:         logging.New("purchase-order-service"),
	}
}

// Create creates a new purchase order in pending status. Line items are
// resolved against the product catalog and totals computed from them.
func (s *PurchaseOrderService) Create(ctx context.Context, req *models.CreatePurchaseOrderRequest) (*models.PurchaseOrder, error) {
	s.logger.Info("Creating purchase order", logging.Fields{
		"supplier_id": req.SupplierID,
		"item_count":  len(req.Items),
	})

	if err := ValidateCreatePurchaseOrderRequest(req); err != nil {
		return nil, err
	}

	// Validate supplier exists
	if _, err := s.suppliers.GetByID(ctx, req.SupplierID); err != nil {
		if err == errors.ErrNotFound {
			return nil, errors.NewValidationError("supplier_id", "supplier not found")
		}
		return nil, err
	}

	items, err := s.resolveLineItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	taxPercent := s.config.Inventory.DefaultTaxPercent
	if req.TaxPercent != nil {
		taxPercent = *req.TaxPercent
	}
	if taxPercent.IsNegative() {
		taxPercent = decimal.Zero
	}
	currency := req.Currency
	if currency == "" {
		currency = s.config.Inventory.DefaultCurrency
	}

	totals := CalculateOrderTotals(items, taxPercent)

	now := time.Now()
	order := &models.PurchaseOrder{
		ID:         repository.NewID("po"),
		SupplierID: req.SupplierID,
		Status:     models.PurchaseOrderStatusPending,
		Items:      items,
		TaxPercent: taxPercent,
		Subtotal:   totals.Subtotal,
		TaxAmount:  totals.TaxAmount,
		GrandTotal: totals.GrandTotal,
		Currency:   currency,
		Notes:      SanitizeNotes(req.Notes),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		s.logger.Error("Failed to create purchase order", logging.Fields{
			"supplier_id": req.SupplierID,
			"error":       err.Error(),
		})
		return nil, err
	}

	// Publish event
	if s.config.Features.EnableEvents {
		if err := s.eventPublisher.PublishPurchaseOrderCreated(ctx, order); err != nil {
			// Log but don't fail
			s.logger.Error("Failed to publish purchase order created event", logging.Fields{
				"purchase_order_id": order.ID,
				"error":             err.Error(),
			})
		}
	}

	s.logger.Info("Purchase order created successfully", logging.Fields{
		"purchase_order_id": order.ID,
		"grand_total":       order.GrandTotal,
	})

	return order, nil
}

// Get retrieves a purchase order by ID.
func (s *PurchaseOrderService) Get(ctx context.Context, id string) (*models.PurchaseOrder, error) {
	s.logger.Debug("Getting purchase order", logging.Fields{"purchase_order_id": id})
	return s.orders.GetByID(ctx, id)
}

// Update replaces line items, tax or notes on an order that has not reached a
// terminal status. Totals are recomputed on every update.
func (s *PurchaseOrderService) Update(ctx context.Context, id string, req *models.UpdatePurchaseOrderRequest) (*models.PurchaseOrder, error) {
	s.logger.Info("Updating purchase order", logging.Fields{"purchase_order_id": id})

	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !order.CanEdit() {
		return nil, errors.NewValidationError("status", fmt.Sprintf(
			"purchase order in status %s can no longer be edited", order.Status))
	}

	if req.Items != nil {
		items, err := s.resolveLineItems(ctx, req.Items)
		if err != nil {
			return nil, err
		}
		order.Items = items
	}
	if req.TaxPercent != nil {
		taxPercent := *req.TaxPercent
		if taxPercent.IsNegative() {
			taxPercent = decimal.Zero
		}
		order.TaxPercent = taxPercent
	}
	if req.Notes != nil {
		order.Notes = SanitizeNotes(*req.Notes)
	}

	totals := CalculateOrderTotals(order.Items, order.TaxPercent)
	order.Subtotal = totals.Subtotal
	order.TaxAmount = totals.TaxAmount
	order.GrandTotal = totals.GrandTotal
	order.UpdatedAt = time.Now()

	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}

	return order, nil
}

// UpdateStatus transitions a purchase order. Receiving the order adds each
// line quantity to the product's stock.
func (s *PurchaseOrderService) UpdateStatus(ctx context.Context, id string, req *models.UpdatePurchaseOrderStatusRequest) (*models.PurchaseOrder, error) {
	s.logger.Info("Updating purchase order status", logging.Fields{
		"purchase_order_id": id,
		"new_status":        req.Status,
	})

	if err := ValidateUpdatePurchaseOrderStatusRequest(req); err != nil {
		return nil, err
	}

	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Validate status transition
	if !isValidPurchaseOrderTransition(order.Status, req.Status) {
		return nil, errors.NewValidationError("status", fmt.Sprintf(
			"invalid status transition from %s to %s",
			order.Status,
			req.Status,
		))
	}

	previousStatus := order.Status
	order.Status = req.Status
	if req.Notes != "" {
		order.Notes = SanitizeNotes(req.Notes)
	}
	now := time.Now()
	order.UpdatedAt = now

	if req.Status == models.PurchaseOrderStatusReceived {
		order.ReceivedAt = &now
		s.applyReceivedStock(ctx, order)
	}

	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}

	// Publish event
	if s.config.Features.EnableEvents {
		if err := s.eventPublisher.PublishPurchaseOrderStatusChanged(ctx, order, previousStatus); err != nil {
			// Log but don't fail
			s.logger.Error("Failed to publish status change event", logging.Fields{
				"purchase_order_id": order.ID,
				"error":             err.Error(),
			})
		}
	}

	return order, nil
}

// Delete removes a purchase order. Stock received from it is deliberately not
// reverted: the goods are already on the shelf, deleting the record does not
// un-receive them.
func (s *PurchaseOrderService) Delete(ctx context.Context, id string) error {
	s.logger.Info("Deleting purchase order", logging.Fields{"purchase_order_id": id})

	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.orders.Delete(ctx, id); err != nil {
		return err
	}

	// Publish event
	if s.config.Features.EnableEvents {
		if err := s.eventPublisher.PublishPurchaseOrderDeleted(ctx, order); err != nil {
			// Log but don't fail
			s.logger.Error("Failed to publish purchase order deleted event", logging.Fields{
				"purchase_order_id": order.ID,
				"error":             err.Error(),
			})
		}
	}

	return nil
}

// List retrieves purchase orders matching the filter.
func (s *PurchaseOrderService) List(ctx context.Context, filter *models.PurchaseOrderListFilter) ([]*models.PurchaseOrder, int, error) {
	s.logger.Debug("Listing purchase orders", logging.Fields{
		"supplier_id": filter.SupplierID,
		"status":      filter.Status,
	})

	if err := ValidateListWindow(&filter.Limit, &filter.Offset); err != nil {
		return nil, 0, err
	}

	return s.orders.List(ctx, filter)
}

// resolveLineItems turns submitted lines into stored line items: the product
// must exist, its name is snapshotted, and a missing unit price falls back to
// the product's current price. Negative quantities and prices are clamped to
// zero before the line total is computed.
func (s *PurchaseOrderService) resolveLineItems(ctx context.Context, inputs []models.LineItemInput) ([]models.LineItem, error) {
	items := make([]models.LineItem, 0, len(inputs))
	for _, input := range inputs {
		product, err := s.products.GetByID(ctx, input.ProductID)
		if err != nil {
			if err == errors.ErrNotFound {
				return nil, errors.NewValidationError("items", fmt.Sprintf("product not found: %s", input.ProductID))
			}
			return nil, err
		}

		quantity := input.Quantity
		if quantity < 0 {
			quantity = 0
		}
		unitPrice := product.UnitPrice
		if input.UnitPrice != nil {
			unitPrice = *input.UnitPrice
		}
		if unitPrice.IsNegative() {
			unitPrice = decimal.Zero
		}

		items = append(items, models.LineItem{
			ID:          repository.NewID("item"),
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    quantity,
			UnitPrice:   unitPrice,
			LineTotal:   CalculateLineTotal(quantity, unitPrice),
		})
	}
	return items, nil
}

// applyReceivedStock adds each line quantity to its product's stock. Products
// deleted since the order was placed are skipped.
func (s *PurchaseOrderService) applyReceivedStock(ctx context.Context, order *models.PurchaseOrder) {
	for _, item := range order.Items {
		product, err := s.products.GetByID(ctx, item.ProductID)
		if err != nil {
			s.logger.Info("Skipping stock update for missing product", logging.Fields{
				"purchase_order_id": order.ID,
				"product_id":        item.ProductID,
			})
			continue
		}

		product.Stock += item.Quantity
		product.UpdatedAt = time.Now()
		product.DeriveStatus()

		if err := s.products.Update(ctx, product); err != nil {
			s.logger.Error("Failed to update stock for received item", logging.Fields{
				"purchase_order_id": order.ID,
				"product_id":        item.ProductID,
				"error":             err.Error(),
			})
			continue
		}

		metrics.StockAdjustments.Inc()

		if s.config.Features.EnableEvents {
			reason := fmt.Sprintf("purchase order received: %s", order.ID)
			if err := s.eventPublisher.PublishStockAdjusted(ctx, product, item.Quantity, reason); err != nil {
				// Log but don't fail
				s.logger.Error("Failed to publish stock adjusted event", logging.Fields{
					"product_id": product.ID,
					"error":      err.Error(),
				})
			}
		}
	}
}

func isValidPurchaseOrderTransition(from, to models.PurchaseOrderStatus) bool {
	validTransitions := map[models.PurchaseOrderStatus][]models.PurchaseOrderStatus{
		models.PurchaseOrderStatusPending:   {models.PurchaseOrderStatusOrdered, models.PurchaseOrderStatusReceived, models.PurchaseOrderStatusCancelled},
		models.PurchaseOrderStatusOrdered:   {models.PurchaseOrderStatusReceived, models.PurchaseOrderStatusCancelled},
		models.PurchaseOrderStatusReceived:  {},
		models.PurchaseOrderStatusCancelled: {},
	}

	allowed, ok := validTransitions[from]
	if !ok {
		return false
	}

	for _, status := range allowed {
		if status == to {
			return true
		}
	}
	return false
}
