package models

import "github.com/shopspring/decimal"

// InventorySummary is the dashboard aggregate across the whole store.
type InventorySummary struct {
	Products           int             `json:"products"`
	LowStockProducts   int             `json:"low_stock_products"`
	OutOfStockProducts int             `json:"out_of_stock_products"`
	Suppliers          int             `json:"suppliers"`
	OpenPurchaseOrders int             `json:"open_purchase_orders"`
	OpenSalesOrders    int             `json:"open_sales_orders"`
	Bills              int             `json:"bills"`
	OutstandingPayable decimal.Decimal `json:"outstanding_payable"`
	Currency           string          `json:"currency"`
}
