package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/config"
	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/handlers"
	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/metrics"
	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/middleware"
)

// Server wraps the HTTP server and route table for the inventory service.
type Server struct {
	config     *config.Config
	router     *gin.Engine
	httpServer *http.Server
	handlers   *handlers.Handlers
}

// New creates a server with all routes registered.
func New(h *handlers.Handlers, cfg *config.Config) *Server {
	router := gin.Default()
	router.Use(middleware.RequestID())
	router.Use(metrics.Middleware())

	s := &Server{
		config:   cfg,
		router:   router,
		handlers: h,
	}

	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handlers.Health)
	s.router.GET("/ready", s.handlers.Ready)
	s.router.GET("/live", s.handlers.Live)
	s.router.GET("/version", s.handlers.Version)
	s.router.GET("/metrics", gin.WrapH(metrics.Handler()))

	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/products", s.handlers.CreateProduct)
		v1.GET("/products", s.handlers.ListProducts)
		v1.GET("/products/:id", s.handlers.GetProduct)
		v1.PUT("/products/:id", s.handlers.UpdateProduct)
		v1.DELETE("/products/:id", s.handlers.DeleteProduct)
		v1.POST("/products/:id/stock", s.handlers.AdjustProductStock)

		v1.POST("/suppliers", s.handlers.CreateSupplier)
		v1.GET("/suppliers", s.handlers.ListSuppliers)
		v1.GET("/suppliers/:id", s.handlers.GetSupplier)
		v1.PUT("/suppliers/:id", s.handlers.UpdateSupplier)
		v1.DELETE("/suppliers/:id", s.handlers.DeleteSupplier)

		v1.POST("/purchase-orders", s.handlers.CreatePurchaseOrder)
		v1.GET("/purchase-orders", s.handlers.ListPurchaseOrders)
		v1.GET("/purchase-orders/:id", s.handlers.GetPurchaseOrder)
		v1.PUT("/purchase-orders/:id", s.handlers.UpdatePurchaseOrder)
		v1.PATCH("/purchase-orders/:id/status", s.handlers.UpdatePurchaseOrderStatus)
		v1.DELETE("/purchase-orders/:id", s.handlers.DeletePurchaseOrder)

		v1.POST("/sales-orders", s.handlers.CreateSalesOrder)
		v1.GET("/sales-orders", s.handlers.ListSalesOrders)
		v1.GET("/sales-orders/:id", s.handlers.GetSalesOrder)
		v1.PUT("/sales-orders/:id", s.handlers.UpdateSalesOrder)
		v1.PATCH("/sales-orders/:id/status", s.handlers.UpdateSalesOrderStatus)
		v1.DELETE("/sales-orders/:id", s.handlers.DeleteSalesOrder)

		v1.POST("/bills", s.handlers.CreateBill)
		v1.GET("/bills", s.handlers.ListBills)
		v1.GET("/bills/:id", s.handlers.GetBill)
		v1.PUT("/bills/:id", s.handlers.UpdateBill)
		v1.POST("/bills/:id/payments", s.handlers.RecordBillPayment)
		v1.DELETE("/bills/:id", s.handlers.DeleteBill)

		v1.GET("/summary", s.handlers.GetSummary)
	}
}

// Router exposes the gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start begins serving. Blocks until the server stops.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
