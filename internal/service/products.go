package service

import (
	"context"
	"strings"
	"time"

	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/config"
	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/errors"
	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/events"
	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/logging"
	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/metrics"
	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/models"
	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/repository"
)

// ProductService handles product business logic.
type ProductService struct {
	products       repository.ProductRepository
	eventPublisher events.Publisher
	config         *config.Config
	logger         *logging.Logger
}

// NewProductService creates a new product service.
func NewProductService(
	products repository.ProductRepository,
	eventPublisher events.Publisher,
	cfg *config.Config,
) *ProductService {
	return &ProductService{
		products:       products,
		eventPublisher: eventPublisher,
		config:         cfg,
		logger:         logging.New("product-service"),
	}
}

// Create creates a new product. Status is derived from the active flag and
// stock level, never taken from the request.
func (s *ProductService) Create(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	s.logger.Info("Creating product", logging.Fields{
		"sku": req.SKU,
	})

	if err := ValidateCreateProductRequest(req); err != nil {
		return nil, err
	}

	// Enforce SKU uniqueness
	existing, err := s.products.GetBySKU(ctx, req.SKU)
	if err != nil && err != errors.ErrNotFound {
		return nil, err
	}
	if existing != nil {
		return nil, errors.NewValidationError("sku", "a product with this SKU already exists")
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	reorderLevel := s.config.Inventory.DefaultReorderLevel
	if req.ReorderLevel != nil {
		reorderLevel = *req.ReorderLevel
	}
	currency := req.Currency
	if currency == "" {
		currency = s.config.Inventory.DefaultCurrency
	}

	now := time.Now()
	product := &models.Product{
		ID:           repository.NewID("prod"),
		SKU:          strings.TrimSpace(req.SKU),
		Name:         strings.TrimSpace(req.Name),
		Description:  req.Description,
		Category:     req.Category,
		SupplierID:   req.SupplierID,
		UnitPrice:    req.UnitPrice,
		Currency:     currency,
		Stock:        req.Stock,
		ReorderLevel: reorderLevel,
		Active:       active,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	product.DeriveStatus()

	if err := s.products.Create(ctx, product); err != nil {
		s.logger.Error("Failed to create product", logging.Fields{
			"sku":   req.SKU,
			"error": err.Error(),
		})
		return nil, err
	}

	s.logger.Info("Product created successfully", logging.Fields{
		"product_id": product.ID,
		"sku":        product.SKU,
		"status":     product.Status,
	})

	return product, nil
}

// Get retrieves a product by ID.
func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	s.logger.Debug("Getting product", logging.Fields{"product_id": id})
	return s.products.GetByID(ctx, id)
}

// Update applies the set fields of the request and re-derives the product
// status.
func (s *ProductService) Update(ctx context.Context, id string, req *models.UpdateProductRequest) (*models.Product, error) {
	s.logger.Info("Updating product", logging.Fields{"product_id": id})

	if err := ValidateUpdateProductRequest(req); err != nil {
		return nil, err
	}

	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.SKU != nil && !strings.EqualFold(*req.SKU, product.SKU) {
		existing, err := s.products.GetBySKU(ctx, *req.SKU)
		if err != nil && err != errors.ErrNotFound {
			return nil, err
		}
		if existing != nil {
			return nil, errors.NewValidationError("sku", "a product with this SKU already exists")
		}
		product.SKU = strings.TrimSpace(*req.SKU)
	}
	if req.Name != nil {
		product.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.SupplierID != nil {
		product.SupplierID = *req.SupplierID
	}
	if req.UnitPrice != nil {
		product.UnitPrice = *req.UnitPrice
	}
	if req.Currency != nil {
		product.Currency = *req.Currency
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.ReorderLevel != nil {
		product.ReorderLevel = *req.ReorderLevel
	}
	if req.Active != nil {
		product.Active = *req.Active
	}

	product.UpdatedAt = time.Now()
	product.DeriveStatus()

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// AdjustStock applies a signed delta to the product's stock level. The result
// is clamped at zero and the status re-derived.
func (s *ProductService) AdjustStock(ctx context.Context, id string, req *models.AdjustStockRequest) (*models.Product, error) {
	s.logger.Info("Adjusting stock", logging.Fields{
		"product_id": id,
		"delta":      req.Delta,
		"reason":     req.Reason,
	})

	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Stock += req.Delta
	if product.Stock < 0 {
		s.logger.Info("Stock clamped at zero", logging.Fields{
			"product_id": id,
			"delta":      req.Delta,
		})
		product.Stock = 0
	}
	product.UpdatedAt = time.Now()
	product.DeriveStatus()

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}

	metrics.StockAdjustments.Inc()

	// Publish event
	if s.config.Features.EnableEvents {
		if err := s.eventPublisher.PublishStockAdjusted(ctx, product, req.Delta, req.Reason); err != nil {
			// Log but don't fail
			s.logger.Error("Failed to publish stock adjusted event", logging.Fields{
				"product_id": id,
				"error":      err.Error(),
			})
		}
	}

	return product, nil
}

// Delete removes a product. Orders that reference it keep their line items.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	s.logger.Info("Deleting product", logging.Fields{"product_id": id})
	return s.products.Delete(ctx, id)
}

// List retrieves products matching the filter.
func (s *ProductService) List(ctx context.Context, filter *models.ProductListFilter) ([]*models.Product, int, error) {
	s.logger.Debug("Listing products", logging.Fields{
		"status": filter.Status,
		"search": filter.Search,
	})

	if err := ValidateListWindow(&filter.Limit, &filter.Offset); err != nil {
		return nil, 0, err
	}

	return s.products.List(ctx, filter)
}
