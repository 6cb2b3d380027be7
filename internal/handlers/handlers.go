package handlers

import (
	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/config"
	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/logging"
	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/service"
)

// Handlers holds all HTTP handlers for the inventory service.
type Handlers struct {
	productService       *service.ProductService
	supplierService      *service.SupplierService
	purchaseOrderService *service.PurchaseOrderService
	salesOrderService    *service.SalesOrderService
	billService          *service.BillService
	reportService        *service.ReportService
	config               *config.Config
	logger               *logging.Logger
}

// NewHandlers creates a new handlers instance.
func NewHandlers(
	productService *service.ProductService,
	supplierService *service.SupplierService,
	purchaseOrderService *service.PurchaseOrderService,
	salesOrderService *service.SalesOrderService,
	billService *service.BillService,
	reportService *service.ReportService,
	cfg *config.Config,
) *Handlers {
	return &Handlers{
		productService:       productService,
		supplierService:      supplierService,
		purchaseOrderService: purchaseOrderService,
		salesOrderService:    salesOrderService,
		billService:          billService,
		reportService:        reportService,
		config:               cfg,
		logger:               logging.New("handlers"),
	}
}
