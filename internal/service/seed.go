package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/logging"
	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/models"
)

// SeedDemoData populates the store with a small demo data set through the
// regular service operations, so totals, statuses and stock levels come out
// of the same code paths as real traffic. Runs only behind the seed feature
// flag.
func SeedDemoData(
	ctx context.Context,
	products *ProductService,
	suppliers *SupplierService,
	purchaseOrders *PurchaseOrderService,
	salesOrders *SalesOrderService,
	bills *BillService,
) error {
	logger := logging.New("seed")
	logger.Info("Seeding demo data", nil)

	acme, err := suppliers.Create(ctx, &models.CreateSupplierRequest{
		Name:        "Acme Industrial Supply",
		ContactName: "Dana Whitfield",
		Email:       "dana@acme-industrial.example",
		Phone:       "+1-555-0142",
		Address:     "400 Foundry Road, Springfield",
	})
	if err != nil {
		return fmt.Errorf("seed supplier: %w", err)
	}

	nordic, err := suppliers.Create(ctx, &models.CreateSupplierRequest{
		Name:        "Nordic Components",
		ContactName: "Mikkel Sorensen",
		Email:       "mikkel@nordic-components.example",
		Phone:       "+45-5550-0110",
		Address:     "Havnegade 12, Copenhagen",
	})
	if err != nil {
		return fmt.Errorf("seed supplier: %w", err)
	}

	reorderTen := int64(10)
	widget, err := products.Create(ctx, &models.CreateProductRequest{
		SKU:          "WID-001",
		Name:         "Steel Widget",
		Description:  "Cold-rolled steel widget, 40mm",
		Category:     "hardware",
		SupplierID:   acme.ID,
		UnitPrice:    decimal.RequireFromString("4.50"),
		Stock:        120,
		ReorderLevel: &reorderTen,
	})
	if err != nil {
		return fmt.Errorf("seed product: %w", err)
	}

	reorderFive := int64(5)
	bracket, err := products.Create(ctx, &models.CreateProductRequest{
		SKU:          "BRK-014",
		Name:         "Mounting Bracket",
		Description:  "Galvanized mounting bracket",
		Category:     "hardware",
		SupplierID:   acme.ID,
		UnitPrice:    decimal.RequireFromString("2.25"),
		Stock:        4,
		ReorderLevel: &reorderFive,
	})
	if err != nil {
		return fmt.Errorf("seed product: %w", err)
	}

	gasket, err := products.Create(ctx, &models.CreateProductRequest{
		SKU:          "GSK-201",
		Name:         "Rubber Gasket",
		Description:  "Nitrile gasket, 80mm",
		Category:     "seals",
		SupplierID:   nordic.ID,
		UnitPrice:    decimal.RequireFromString("0.80"),
		Stock:        0,
		ReorderLevel: &reorderTen,
	})
	if err != nil {
		return fmt.Errorf("seed product: %w", err)
	}

	// An open purchase order and a received one, so the demo store shows a
	// stock movement that already happened.
	taxPercent := decimal.RequireFromString("8.25")
	if _, err := purchaseOrders.Create(ctx, &models.CreatePurchaseOrderRequest{
		SupplierID: nordic.ID,
		Items: []models.LineItemInput{
			{ProductID: gasket.ID, Quantity: 500},
		},
		TaxPercent: &taxPercent,
		Notes:      "Restock gaskets",
	}); err != nil {
		return fmt.Errorf("seed purchase order: %w", err)
	}

	received, err := purchaseOrders.Create(ctx, &models.CreatePurchaseOrderRequest{
		SupplierID: acme.ID,
		Items: []models.LineItemInput{
			{ProductID: widget.ID, Quantity: 80},
			{ProductID: bracket.ID, Quantity: 40},
		},
		TaxPercent: &taxPercent,
	})
	if err != nil {
		return fmt.Errorf("seed purchase order: %w", err)
	}
	if _, err := purchaseOrders.UpdateStatus(ctx, received.ID, &models.UpdatePurchaseOrderStatusRequest{
		Status: models.PurchaseOrderStatusOrdered,
	}); err != nil {
		return fmt.Errorf("seed purchase order status: %w", err)
	}
	if _, err := purchaseOrders.UpdateStatus(ctx, received.ID, &models.UpdatePurchaseOrderStatusRequest{
		Status: models.PurchaseOrderStatusReceived,
	}); err != nil {
		return fmt.Errorf("seed purchase order status: %w", err)
	}

	shipped, err := salesOrders.Create(ctx, &models.CreateSalesOrderRequest{
		CustomerName: "Northwind Traders",
		Items: []models.LineItemInput{
			{ProductID: widget.ID, Quantity: 25},
		},
		TaxPercent: &taxPercent,
	})
	if err != nil {
		return fmt.Errorf("seed sales order: %w", err)
	}
	if _, err := salesOrders.UpdateStatus(ctx, shipped.ID, &models.UpdateSalesOrderStatusRequest{
		Status: models.SalesOrderStatusShipped,
	}); err != nil {
		return fmt.Errorf("seed sales order status: %w", err)
	}

	if _, err := salesOrders.Create(ctx, &models.CreateSalesOrderRequest{
		CustomerName: "Harbor Hardware",
		Items: []models.LineItemInput{
			{ProductID: bracket.ID, Quantity: 12},
			{ProductID: widget.ID, Quantity: 10},
		},
	}); err != nil {
		return fmt.Errorf("seed sales order: %w", err)
	}

	// One bill in each payment state.
	dueDate := time.Now().AddDate(0, 0, 30)
	if _, err := bills.Create(ctx, &models.CreateBillRequest{
		SupplierID:      acme.ID,
		PurchaseOrderID: received.ID,
		Reference:       "INV-2024-118",
		Amount:          received.GrandTotal,
		Status:          models.BillStatusUnpaid,
		DueDate:         &dueDate,
	}); err != nil {
		return fmt.Errorf("seed bill: %w", err)
	}

	if _, err := bills.Create(ctx, &models.CreateBillRequest{
		SupplierID: nordic.ID,
		Reference:  "INV-2024-097",
		Amount:     decimal.RequireFromString("500.00"),
		AmountPaid: decimal.RequireFromString("200.00"),
		Status:     models.BillStatusPartiallyPaid,
	}); err != nil {
		return fmt.Errorf("seed bill: %w", err)
	}

	if _, err := bills.Create(ctx, &models.CreateBillRequest{
		SupplierID: acme.ID,
		Reference:  "INV-2024-041",
		Amount:     decimal.RequireFromString("150.00"),
		AmountPaid: decimal.RequireFromString("150.00"),
		Status:     models.BillStatusPaid,
	}); err != nil {
		return fmt.Errorf("seed bill: %w", err)
	}

	logger.Info("Demo data seeded", nil)
	return nil
}
