package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/config"
	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/logging"
	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/models"
	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/repository"
)

// ReportService aggregates store-wide figures for the dashboard.
type ReportService struct {
	products       repository.ProductRepository
	suppliers      repository.SupplierRepository
	purchaseOrders repository.PurchaseOrderRepository
	salesOrders    repository.SalesOrderRepository
	bills          repository.BillRepository
	config         *config.Config
	logger         *logging.Logger
}

// NewReportService creates a new report service.
func NewReportService(
	products repository.ProductRepository,
	suppliers repository.SupplierRepository,
	purchaseOrders repository.PurchaseOrderRepository,
	salesOrders repository.SalesOrderRepository,
	bills repository.BillRepository,
	cfg *config.Config,
) *ReportService {
	return &ReportService{
		products:       products,
		suppliers:      suppliers,
		purchaseOrders: purchaseOrders,
		salesOrders:    salesOrders,
		bills:          bills,
		config:         cfg,
		logger:         logging.New("report-service"),
	}
}

// Summary computes the dashboard aggregate: entity counts, stock alert
// counts, open order counts and the total outstanding payable. Figures are
// derived on demand, not cached.
func (s *ReportService) Summary(ctx context.Context) (*models.InventorySummary, error) {
	s.logger.Debug("Computing inventory summary", nil)

	summary := &models.InventorySummary{
		OutstandingPayable: decimal.Zero,
		Currency:           s.config.Inventory.DefaultCurrency,
	}

	products, _, err := s.products.List(ctx, &models.ProductListFilter{})
	if err != nil {
		return nil, err
	}
	summary.Products = len(products)
	for _, product := range products {
		switch product.Status {
		case models.ProductStatusLowStock:
			summary.LowStockProducts++
		case models.ProductStatusOutOfStock:
			summary.OutOfStockProducts++
		}
	}

	_, supplierTotal, err := s.suppliers.List(ctx, &models.SupplierListFilter{})
	if err != nil {
		return nil, err
	}
	summary.Suppliers = supplierTotal

	purchaseOrders, _, err := s.purchaseOrders.List(ctx, &models.PurchaseOrderListFilter{})
	if err != nil {
		return nil, err
	}
	for _, order := range purchaseOrders {
		if order.IsOpen() {
			summary.OpenPurchaseOrders++
		}
	}

	salesOrders, _, err := s.salesOrders.List(ctx, &models.SalesOrderListFilter{})
	if err != nil {
		return nil, err
	}
	for _, order := range salesOrders {
		if order.IsOpen() {
			summary.OpenSalesOrders++
		}
	}

	bills, _, err := s.bills.List(ctx, &models.BillListFilter{})
	if err != nil {
		return nil, err
	}
	summary.Bills = len(bills)
	for _, bill := range bills {
		summary.OutstandingPayable = summary.OutstandingPayable.Add(bill.Outstanding())
	}

	return summary, nil
}
