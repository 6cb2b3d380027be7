package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/config"
	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/events"
	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/handlers"
	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/logging"
	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/repository"
	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/server"
	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/service"
)

func main() {
	// Local development convenience; real deployments set env directly.
	_ = godotenv.Load()

	cfg := config.Load()

	logger := logging.New("inventory-service")

	logging.Infof("Starting inventory-service on port %d", cfg.Server.Port)

	productStore := repository.NewMemoryProductStore()
	supplierStore := repository.NewMemorySupplierStore()
	purchaseOrderStore := repository.NewMemoryPurchaseOrderStore()
	salesOrderStore := repository.NewMemorySalesOrderStore()
	billStore := repository.NewMemoryBillStore()

	// The writer connects lazily, so this is safe even when event publishing
	// is disabled by the feature flag.
	eventPublisher := events.NewKafkaPublisher(cfg.Kafka, logger)
	defer eventPublisher.Close()

	productService := service.NewProductService(productStore, eventPublisher, cfg)
	supplierService := service.NewSupplierService(supplierStore, cfg)
	purchaseOrderService := service.NewPurchaseOrderService(
		purchaseOrderStore,
		productStore,
		supplierStore,
		eventPublisher,
		cfg,
	)
	salesOrderService := service.NewSalesOrderService(
		salesOrderStore,
		productStore,
		eventPublisher,
		cfg,
	)
	billService := service.NewBillService(
		billStore,
		supplierStore,
		purchaseOrderStore,
		eventPublisher,
		cfg,
	)
	reportService := service.NewReportService(
		productStore,
		supplierStore,
		purchaseOrderStore,
		salesOrderStore,
		billStore,
		cfg,
	)

	if cfg.Features.SeedDemoData {
		if err := service.SeedDemoData(
			context.Background(),
			productService,
			supplierService,
			purchaseOrderService,
			salesOrderService,
			billService,
		); err != nil {
			logger.Fatal("Failed to seed demo data", logging.Fields{"error": err.Error()})
		}
	}

	h := handlers.NewHandlers(
		productService,
		supplierService,
		purchaseOrderService,
		salesOrderService,
		billService,
		reportService,
		cfg,
	)

	srv := server.New(h, cfg)

	go func() {
		logger.Info("Server starting", logging.Fields{
			"port":           cfg.Server.Port,
			"enable_events":  cfg.Features.EnableEvents,
			"seed_demo_data": cfg.Features.SeedDemoData,
		})
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", logging.Fields{"error": err.Error()})
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", logging.Fields{"error": err.Error()})
	}

	logger.Info("Server exited", nil)
}
