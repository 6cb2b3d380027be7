package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/config"
	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/events"
	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/handlers"
	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/middleware"
	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/repository"
	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/service"
)

func newTestServer() *Server {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Server: config.ServerConfig{Port: 0},
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

	h := handlers.NewHandlers(
		service.NewProductService(productStore, publisher, cfg),
		service.NewSupplierService(supplierStore, cfg),
		service.NewPurchaseOrderService(purchaseOrderStore, productStore, supplierStore, publisher, cfg),
		service.NewSalesOrderService(salesOrderStore, productStore, publisher, cfg),
		service.NewBillService(billStore, supplierStore, purchaseOrderStore, publisher, cfg),
		service.NewReportService(productStore, supplierStore, purchaseOrderStore, salesOrderStore, billStore, cfg),
		cfg,
	)

	return New(h, cfg)
}

func TestRoutes(t *testing.T) {
	srv := newTestServer()

	tests := []struct {
		name         string
		method       string
		path         string
		expectedCode int
	}{
		{"health", http.MethodGet, "/health", http.StatusOK},
		{"ready", http.MethodGet, "/ready", http.StatusOK},
		{"live", http.MethodGet, "/live", http.StatusOK},
		{"version", http.MethodGet, "/version", http.StatusOK},
		{"metrics", http.MethodGet, "/metrics", http.StatusOK},
		{"list products", http.MethodGet, "/api/v1/products", http.StatusOK},
		{"list suppliers", http.MethodGet, "/api/v1/suppliers", http.StatusOK},
		{"list purchase orders", http.MethodGet, "/api/v1/purchase-orders", http.StatusOK},
		{"list sales orders", http.MethodGet, "/api/v1/sales-orders", http.StatusOK},
		{"list bills", http.MethodGet, "/api/v1/bills", http.StatusOK},
		{"summary", http.MethodGet, "/api/v1/summary", http.StatusOK},
		{"missing product", http.MethodGet, "/api/v1/products/prod_missing", http.StatusNotFound},
		{"unknown route", http.MethodGet, "/api/v1/warehouses", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, tt.path, nil)

			srv.Router().ServeHTTP(w, req)

			if w.Code != tt.expectedCode {
				t.Errorf("Expected status %d, got %d", tt.expectedCode, w.Code)
			}
		})
	}
}

func TestRequestIDHeader(t *testing.T) {
	srv := newTestServer()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)

	srv.Router().ServeHTTP(w, req)

	if w.Header().Get(middleware.RequestIDHeader) == "" {
		t.Error("Expected request ID header on response")
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(middleware.RequestIDHeader, "req_test_123")

	srv.Router().ServeHTTP(w, req)

	if got := w.Header().Get(middleware.RequestIDHeader); got != "req_test_123" {
		t.Errorf("Expected request ID to be echoed, got %q", got)
	}
}

func TestCreateProductRoute(t *testing.T) {
	srv := newTestServer()

	body, _ := json.Marshal(map[string]interface{}{
		"sku":        "WID-001",
		"name":       "Steel Widget",
		"unit_price": "4.50",
		"stock":      25,
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if !strings.HasPrefix(resp["id"].(string), "prod_") {
		t.Errorf("Expected prod_ ID prefix, got %v", resp["id"])
	}
}

func TestMetricsEndpointExposesCounters(t *testing.T) {
	srv := newTestServer()

	// Drive one request through the middleware, then scrape.
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	w = httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "inventory_http_requests_total") {
		t.Error("Expected request counter in metrics output")
	}
}
