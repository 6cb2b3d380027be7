package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/config"
	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/errors"
	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/events"
	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/models"
	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/repository"
	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/service"
)

func newTestHandlers() *Handlers {
	cfg := &config.Config{
		Inventory: config.InventoryConfig{
			DefaultCurrency:     "USD",
			DefaultTaxPercent:   decimal.Zero,
			DefaultReorderLevel: 5,
		},
	}
	publisher := events.NewMockPublisher()

	productStore := repository.NewMemoryProductStore()
	supplierStore := repository.NewMemorySupplierStore()
	purchaseOrderStore := repository.NewMemoryPurchaseOrderStore()
	salesOrderStore := repository.NewMemorySalesOrderStore()
	billStore := repository.NewMemoryBillStore()

	productService := service.NewProductService(productStore, publisher, cfg)
	supplierService := service.NewSupplierService(supplierStore, cfg)
	purchaseOrderService := service.NewPurchaseOrderService(purchaseOrderStore, productStore, supplierStore, publisher, cfg)
	salesOrderService := service.NewSalesOrderService(salesOrderStore, productStore, publisher, cfg)
	billService := service.NewBillService(billStore, supplierStore, purchaseOrderStore, publisher, cfg)
	reportService := service.NewReportService(productStore, supplierStore, purchaseOrderStore, salesOrderStore, billStore, cfg)

	return NewHandlers(productService, supplierService, purchaseOrderService, salesOrderService, billService, reportService, cfg)
}

func newTestContext(t *testing.T, method, target string, body any) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	c.Request = httptest.NewRequest(method, target, reader)
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	return resp
}

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := &Handlers{}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	h.Health(c)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	resp := decodeBody(t, w)
	if resp["status"] != "healthy" {
		t.Errorf("Expected status 'healthy', got %v", resp["status"])
	}
	if resp["service"] != "inventory-service" {
		t.Errorf("Expected service 'inventory-service', got %v", resp["service"])
	}
}

func TestReady(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := &Handlers{}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	h.Ready(c)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
}

func TestLive(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := &Handlers{}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	h.Live(c)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
}

func TestVersion(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := &Handlers{}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	h.Version(c)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	resp := decodeBody(t, w)
	if resp["service"] != "inventory-service" {
		t.Errorf("Expected service 'inventory-service', got %v", resp["service"])
	}
}

func TestHandleError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name         string
		err          error
		expectedCode int
	}{
		{"not found", errors.ErrNotFound, http.StatusNotFound},
		{"validation error", errors.NewValidationError("sku", "sku is required"), http.StatusBadRequest},
		{"unexpected error", fmt.Errorf("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			handleError(c, tt.err)

			if w.Code != tt.expectedCode {
				t.Errorf("Expected status %d, got %d", tt.expectedCode, w.Code)
			}
		})
	}
}

func TestHandleError_ValidationIncludesField(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	handleError(c, errors.NewValidationError("amount", "amount must be positive"))

	resp := decodeBody(t, w)
	if resp["error"] != "amount must be positive" {
		t.Errorf("Expected error message, got %v", resp["error"])
	}
	if resp["field"] != "amount" {
		t.Errorf("Expected field 'amount', got %v", resp["field"])
	}
}

func TestCreateProduct(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := newTestHandlers()

	c, w := newTestContext(t, http.MethodPost, "/api/v1/products", models.CreateProductRequest{
		SKU:       "WID-001",
		Name:      "Steel Widget",
		UnitPrice: decimal.RequireFromString("4.50"),
		Stock:     100,
	})

	h.CreateProduct(c)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	resp := decodeBody(t, w)
	if resp["id"] == "" || resp["id"] == nil {
		t.Error("Expected product ID in response")
	}
	if resp["status"] != "active" {
		t.Errorf("Expected derived status 'active', got %v", resp["status"])
	}
}

func TestCreateProduct_InvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := newTestHandlers()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewReader([]byte("{not json")))
	c.Request.Header.Set("Content-Type", "application/json")

	h.CreateProduct(c)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestCreateProduct_ValidationError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := newTestHandlers()

	c, w := newTestContext(t, http.MethodPost, "/api/v1/products", models.CreateProductRequest{
		Name:      "No SKU",
		UnitPrice: decimal.RequireFromString("4.50"),
	})

	h.CreateProduct(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}

	resp := decodeBody(t, w)
	if resp["field"] != "sku" {
		t.Errorf("Expected field 'sku', got %v", resp["field"])
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := newTestHandlers()

	c, w := newTestContext(t, http.MethodGet, "/api/v1/products/prod_missing", nil)
	c.Params = gin.Params{{Key: "id", Value: "prod_missing"}}

	h.GetProduct(c)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestAdjustProductStock(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := newTestHandlers()

	c, w := newTestContext(t, http.MethodPost, "/api/v1/products", models.CreateProductRequest{
		SKU:       "WID-001",
		Name:      "Steel Widget",
		UnitPrice: decimal.RequireFromString("4.50"),
		Stock:     10,
	})
	h.CreateProduct(c)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", w.Code)
	}
	productID := decodeBody(t, w)["id"].(string)

	c, w = newTestContext(t, http.MethodPost, "/api/v1/products/"+productID+"/stock", models.AdjustStockRequest{
		Delta:  -25,
		Reason: "damaged in transit",
	})
	c.Params = gin.Params{{Key: "id", Value: productID}}

	h.AdjustProductStock(c)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := decodeBody(t, w)
	if resp["stock"] != float64(0) {
		t.Errorf("Expected stock clamped at 0, got %v", resp["stock"])
	}
	if resp["status"] != "out_of_stock" {
		t.Errorf("Expected status 'out_of_stock', got %v", resp["status"])
	}
}

func TestListProducts_QueryParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := newTestHandlers()

	for i := 1; i <= 3; i++ {
		c, w := newTestContext(t, http.MethodPost, "/api/v1/products", models.CreateProductRequest{
			SKU:       fmt.Sprintf("WID-%03d", i),
			Name:      fmt.Sprintf("Widget %d", i),
			UnitPrice: decimal.RequireFromString("4.50"),
			Stock:     100,
		})
		h.CreateProduct(c)
		if w.Code != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d", w.Code)
		}
	}

	c, w := newTestContext(t, http.MethodGet, "/api/v1/products?limit=2&offset=0", nil)
	h.ListProducts(c)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	resp := decodeBody(t, w)
	if resp["total"] != float64(3) {
		t.Errorf("Expected total 3, got %v", resp["total"])
	}
	products := resp["products"].([]interface{})
	if len(products) != 2 {
		t.Errorf("Expected 2 products in page, got %d", len(products))
	}
	if resp["limit"] != float64(2) {
		t.Errorf("Expected limit 2, got %v", resp["limit"])
	}
}

func TestListProducts_NegativeLimitRejected(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := newTestHandlers()

	c, w := newTestContext(t, http.MethodGet, "/api/v1/products?limit=-1", nil)
	h.ListProducts(c)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestDeleteSupplier(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := newTestHandlers()

	c, w := newTestContext(t, http.MethodPost, "/api/v1/suppliers", models.CreateSupplierRequest{
		Name: "Acme Industrial Supply",
	})
	h.CreateSupplier(c)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", w.Code)
	}
	supplierID := decodeBody(t, w)["id"].(string)

	c, w = newTestContext(t, http.MethodDelete, "/api/v1/suppliers/"+supplierID, nil)
	c.Params = gin.Params{{Key: "id", Value: supplierID}}

	h.DeleteSupplier(c)
	// c.Status only buffers the code inside gin's writer; the engine normally
	// flushes it after the handler chain, so a direct handler call must flush
	// explicitly for the recorder to observe the 204.
	c.Writer.WriteHeaderNow()

	if w.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", w.Code)
	}

	c, w = newTestContext(t, http.MethodGet, "/api/v1/suppliers/"+supplierID, nil)
	c.Params = gin.Params{{Key: "id", Value: supplierID}}

	h.GetSupplier(c)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 after delete, got %d", w.Code)
	}
}

func TestPurchaseOrderLifecycle(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := newTestHandlers()

	c, w := newTestContext(t, http.MethodPost, "/api/v1/suppliers", models.CreateSupplierRequest{
		Name: "Acme Industrial Supply",
	})
	h.CreateSupplier(c)
	supplierID := decodeBody(t, w)["id"].(string)

	c, w = newTestContext(t, http.MethodPost, "/api/v1/products", models.CreateProductRequest{
		SKU:       "WID-001",
		Name:      "Steel Widget",
		UnitPrice: decimal.RequireFromString("4.50"),
		Stock:     10,
	})
	h.CreateProduct(c)
	productID := decodeBody(t, w)["id"].(string)

	c, w = newTestContext(t, http.MethodPost, "/api/v1/purchase-orders", models.CreatePurchaseOrderRequest{
		SupplierID: supplierID,
		Items:      []models.LineItemInput{{ProductID: productID, Quantity: 40}},
	})
	h.CreatePurchaseOrder(c)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	orderID := decodeBody(t, w)["id"].(string)

	c, w = newTestContext(t, http.MethodPatch, "/api/v1/purchase-orders/"+orderID+"/status", models.UpdatePurchaseOrderStatusRequest{
		Status: models.PurchaseOrderStatusReceived,
	})
	c.Params = gin.Params{{Key: "id", Value: orderID}}
	h.UpdatePurchaseOrderStatus(c)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if decodeBody(t, w)["status"] != "received" {
		t.Errorf("Expected status 'received', got %v", decodeBody(t, w)["status"])
	}

	c, w = newTestContext(t, http.MethodGet, "/api/v1/products/"+productID, nil)
	c.Params = gin.Params{{Key: "id", Value: productID}}
	h.GetProduct(c)
	if decodeBody(t, w)["stock"] != float64(50) {
		t.Errorf("Expected stock 50 after receiving, got %v", decodeBody(t, w)["stock"])
	}

	// Received orders reject further transitions.
	c, w = newTestContext(t, http.MethodPatch, "/api/v1/purchase-orders/"+orderID+"/status", models.UpdatePurchaseOrderStatusRequest{
		Status: models.PurchaseOrderStatusCancelled,
	})
	c.Params = gin.Params{{Key: "id", Value: orderID}}
	h.UpdatePurchaseOrderStatus(c)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for invalid transition, got %d", w.Code)
	}
}

func TestRecordBillPayment_RejectedLeavesStatusCode400(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := newTestHandlers()

	c, w := newTestContext(t, http.MethodPost, "/api/v1/suppliers", models.CreateSupplierRequest{
		Name: "Acme Industrial Supply",
	})
	h.CreateSupplier(c)
	supplierID := decodeBody(t, w)["id"].(string)

	c, w = newTestContext(t, http.MethodPost, "/api/v1/bills", models.CreateBillRequest{
		SupplierID: supplierID,
		Amount:     decimal.RequireFromString("500.00"),
		Status:     models.BillStatusUnpaid,
	})
	h.CreateBill(c)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	billID := decodeBody(t, w)["id"].(string)

	c, w = newTestContext(t, http.MethodPost, "/api/v1/bills/"+billID+"/payments", models.RecordPaymentRequest{
		Amount: decimal.RequireFromString("100.00"),
		Status: models.BillStatusPaid,
	})
	c.Params = gin.Params{{Key: "id", Value: billID}}
	h.RecordBillPayment(c)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for paid-but-short, got %d", w.Code)
	}

	// The bill is untouched.
	c, w = newTestContext(t, http.MethodGet, "/api/v1/bills/"+billID, nil)
	c.Params = gin.Params{{Key: "id", Value: billID}}
	h.GetBill(c)

	resp := decodeBody(t, w)
	if resp["status"] != "unpaid" {
		t.Errorf("Expected status 'unpaid', got %v", resp["status"])
	}
}

func TestGetSummary(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := newTestHandlers()

	c, w := newTestContext(t, http.MethodPost, "/api/v1/products", models.CreateProductRequest{
		SKU:       "WID-001",
		Name:      "Steel Widget",
		UnitPrice: decimal.RequireFromString("4.50"),
		Stock:     100,
	})
	h.CreateProduct(c)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", w.Code)
	}

	c, w = newTestContext(t, http.MethodGet, "/api/v1/summary", nil)
	h.GetSummary(c)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	resp := decodeBody(t, w)
	if resp["products"] != float64(1) {
		t.Errorf("Expected 1 product, got %v", resp["products"])
	}
	if resp["currency"] != "USD" {
		t.Errorf("Expected currency USD, got %v", resp["currency"])
	}
}
