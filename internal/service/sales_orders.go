package service

import (
	"context"
	"fmt"
	"strings"
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

// SalesOrderService handles sales order business logic, including the stock
// subtractions that happen when an order ships.
type SalesOrderService struct {
	orders         repository.SalesOrderRepository
	products       repository.ProductRepository
	eventPublisher events.Publisher
	config         *config.Config
	logger         *logging.Logger
}

// NewSalesOrderService creates a new sales order service.
func NewSalesOrderService(
	orders repository.SalesOrderRepository,
	products repository.ProductRepository,
	eventPublisher events.Publisher,
	cfg *config.Config,
) *SalesOrderService {
	return &SalesOrderService{
		orders:         orders,
		products:       products,
		eventPublisher: eventPublisher,
		config:         cfg,
		logger:         logging.New("sales-order-service"),
	}
}

// Create creates a new sales order in pending status. Stock is not touched
// until the order ships.
func (s *SalesOrderService) Create(ctx context.Context, req *models.CreateSalesOrderRequest) (*models.SalesOrder, error) {
	s.logger.Info("Creating sales order", logging.Fields{
		"customer":   req.CustomerName,
		"item_count": len(req.Items),
	})

	if err := ValidateCreateSalesOrderRequest(req); err != nil {
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
	order := &models.SalesOrder{
		ID:           repository.NewID("so"),
		CustomerName: strings.TrimSpace(req.CustomerName),
		Status:       models.SalesOrderStatusPending,
		Items:        items,
		TaxPercent:   taxPercent,
		Subtotal:     totals.Subtotal,
		TaxAmount:    totals.TaxAmount,
		GrandTotal:   totals.GrandTotal,
		Currency:     currency,
		Notes:        SanitizeNotes(req.Notes),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		s.logger.Error("Failed to create sales order", logging.Fields{
			"customer": req.CustomerName,
			"error":    err.Error(),
		})
		return nil, err
	}

	// Publish event
	if s.config.Features.EnableEvents {
		if err := s.eventPublisher.PublishSalesOrderCreated(ctx, order); err != nil {
			// Log but don't fail
			s.logger.Error("Failed to publish sales order created event", logging.Fields{
				"sales_order_id": order.ID,
				"error":          err.Error(),
			})
		}
	}

	s.logger.Info("Sales order created successfully", logging.Fields{
		"sales_order_id": order.ID,
		"grand_total":    order.GrandTotal,
	})

	return order, nil
}

// Get retrieves a sales order by ID.
func (s *SalesOrderService) Get(ctx context.Context, id string) (*models.SalesOrder, error) {
	s.logger.Debug("Getting sales order", logging.Fields{"sales_order_id": id})
	return s.orders.GetByID(ctx, id)
}

// Update replaces line items, tax or notes on a pending order. Totals are
// recomputed on every update.
func (s *SalesOrderService) Update(ctx context.Context, id string, req *models.UpdateSalesOrderRequest) (*models.SalesOrder, error) {
	s.logger.Info("Updating sales order", logging.Fields{"sales_order_id": id})

	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !order.CanEdit() {
		return nil, errors.NewValidationError("status", fmt.Sprintf(
			"sales order in status %s can no longer be edited", order.Status))
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

// UpdateStatus transitions a sales order. Shipping subtracts each line
// quantity from the product's stock, clamped at zero.
func (s *SalesOrderService) UpdateStatus(ctx context.Context, id string, req *models.UpdateSalesOrderStatusRequest) (*models.SalesOrder, error) {
	s.logger.Info("Updating sales order status", logging.Fields{
		"sales_order_id": id,
		"new_status":     req.Status,
	})

	if err := ValidateUpdateSalesOrderStatusRequest(req); err != nil {
		return nil, err
	}

	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Validate status transition
	if !isValidSalesOrderTransition(order.Status, req.Status) {
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

	switch req.Status {
	case models.SalesOrderStatusShipped:
		order.ShippedAt = &now
		s.applyShippedStock(ctx, order)
	case models.SalesOrderStatusDelivered:
		order.DeliveredAt = &now
	}

	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}

	// Publish event
	if s.config.Features.EnableEvents {
		if err := s.eventPublisher.PublishSalesOrderStatusChanged(ctx, order, previousStatus); err != nil {
			// Log but don't fail
			s.logger.Error("Failed to publish status change event", logging.Fields{
				"sales_order_id": order.ID,
				"error":          err.Error(),
			})
		}
	}

	return order, nil
}

// Delete removes a sales order. Stock consumed by shipping is deliberately
// not restored: the goods left the warehouse, deleting the record does not
// bring them back.
func (s *SalesOrderService) Delete(ctx context.Context, id string) error {
	s.logger.Info("Deleting sales order", logging.Fields{"sales_order_id": id})

	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.orders.Delete(ctx, id); err != nil {
		return err
	}

	// Publish event
	if s.config.Features.EnableEvents {
		if err := s.eventPublisher.PublishSalesOrderDeleted(ctx, order); err != nil {
			// Log but don't fail
			s.logger.Error("Failed to publish sales order deleted event", logging.Fields{
				"sales_order_id": order.ID,
				"error":          err.Error(),
			})
		}
	}

	return nil
}

// List retrieves sales orders matching the filter.
func (s *SalesOrderService) List(ctx context.Context, filter *models.SalesOrderListFilter) ([]*models.SalesOrder, int, error) {
	s.logger.Debug("Listing sales orders", logging.Fields{
		"customer": filter.Customer,
		"status":   filter.Status,
	})

	if err := ValidateListWindow(&filter.Limit, &filter.Offset); err != nil {
		return nil, 0, err
	}

	return s.orders.List(ctx, filter)
}

// resolveLineItems mirrors purchase order line resolution: product must
// exist, name snapshotted, missing price falls back to the product's current
// price, negatives clamped.
func (s *SalesOrderService) resolveLineItems(ctx context.Context, inputs []models.LineItemInput) ([]models.LineItem, error) {
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

// applyShippedStock subtracts each line quantity from its product's stock.
// Stock never goes below zero; shortfalls are logged, not failed. Products
// deleted since the order was placed are skipped.
func (s *SalesOrderService) applyShippedStock(ctx context.Context, order *models.SalesOrder) {
	for _, item := range order.Items {
		product, err := s.products.GetByID(ctx, item.ProductID)
		if err != nil {
			s.logger.Info("Skipping stock update for missing product", logging.Fields{
				"sales_order_id": order.ID,
				"product_id":     item.ProductID,
			})
			continue
		}

		product.Stock -= item.Quantity
		if product.Stock < 0 {
			s.logger.Info("Stock clamped at zero while shipping", logging.Fields{
				"sales_order_id": order.ID,
				"product_id":     product.ID,
				"shortfall":      -product.Stock,
			})
			product.Stock = 0
		}
		product.UpdatedAt = time.Now()
		product.DeriveStatus()

		if err := s.products.Update(ctx, product); err != nil {
			s.logger.Error("Failed to update stock for shipped item", logging.Fields{
				"sales_order_id": order.ID,
				"product_id":     item.ProductID,
				"error":          err.Error(),
			})
			continue
		}

		metrics.StockAdjustments.Inc()

		if s.config.Features.EnableEvents {
			reason := fmt.Sprintf("sales order shipped: %s", order.ID)
			if err := s.eventPublisher.PublishStockAdjusted(ctx, product, -item.Quantity, reason); err != nil {
				// Log but don't fail
				s.logger.Error("Failed to publish stock adjusted event", logging.Fields{
					"product_id": product.ID,
					"error":      err.Error(),
				})
			}
		}
	}
}

func isValidSalesOrderTransition(from, to models.SalesOrderStatus) bool {
	validTransitions := map[models.SalesOrderStatus][]models.SalesOrderStatus{
		models.SalesOrderStatusPending:   {models.SalesOrderStatusShipped, models.SalesOrderStatusCancelled},
		models.SalesOrderStatusShipped:   {models.SalesOrderStatusDelivered},
		models.SalesOrderStatusDelivered: {},
		models.SalesOrderStatusCancelled: {},
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
