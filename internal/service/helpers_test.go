package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/config"
	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/events"
	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/models"
	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/repository"
)

// testEnv wires the full service layer over in-memory stores with a mock
// publisher and events enabled, so tests can assert on published events.
type testEnv struct {
	products       *ProductService
	suppliers      *SupplierService
	purchaseOrders *PurchaseOrderService
	salesOrders    *SalesOrderService
	bills          *BillService
	reports        *ReportService
	publisher      *events.MockPublisher
}

func newTestConfig() *config.Config {
	return &config.Config{
		Inventory: config.InventoryConfig{
			DefaultCurrency:     "USD",
			DefaultTaxPercent:   decimal.Zero,
			DefaultReorderLevel: 5,
		},
		Features: config.FeatureFlags{
			EnableEvents: true,
		},
	}
}

func newTestEnv() *testEnv {
	cfg := newTestConfig()
	publisher := events.NewMockPublisher()

	productStore := repository.NewMemoryProductStore()
	supplierStore := repository.NewMemorySupplierStore()
	purchaseOrderStore := repository.NewMemoryPurchaseOrderStore()
	salesOrderStore := repository.NewMemorySalesOrderStore()
	billStore := repository.NewMemoryBillStore()

	return &testEnv{
		products:       NewProductService(productStore, publisher, cfg),
		suppliers:      NewSupplierService(supplierStore, cfg),
		purchaseOrders: NewPurchaseOrderService(purchaseOrderStore, productStore, supplierStore, publisher, cfg),
		salesOrders:    NewSalesOrderService(salesOrderStore, productStore, publisher, cfg),
		bills:          NewBillService(billStore, supplierStore, purchaseOrderStore, publisher, cfg),
		reports:        NewReportService(productStore, supplierStore, purchaseOrderStore, salesOrderStore, billStore, cfg),
		publisher:      publisher,
	}
}

func (e *testEnv) createSupplier(t *testing.T, name string) *models.Supplier {
	t.Helper()
	supplier, err := e.suppliers.Create(context.Background(), &models.CreateSupplierRequest{
		Name:  name,
		Email: "orders@example.com",
	})
	if err != nil {
		t.Fatalf("Failed to create supplier: %v", err)
	}
	return supplier
}

func (e *testEnv) createProduct(t *testing.T, sku string, stock int64, price string) *models.Product {
	t.Helper()
	product, err := e.products.Create(context.Background(), &models.CreateProductRequest{
		SKU:       sku,
		Name:      "Product " + sku,
		UnitPrice: dec(price),
		Stock:     stock,
	})
	if err != nil {
		t.Fatalf("Failed to create product: %v", err)
	}
	return product
}

func (e *testEnv) eventTypes() []events.EventType {
	types := make([]events.EventType, 0, len(e.publisher.Events))
	for _, evt := range e.publisher.Events {
		types = append(types, evt.Type)
	}
	return types
}

func (e *testEnv) hasEvent(eventType events.EventType) bool {
	for _, evt := range e.publisher.Events {
		if evt.Type == eventType {
			return true
		}
	}
	return false
}
