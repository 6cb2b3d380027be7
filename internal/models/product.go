package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductStatus is the stock-derived state of a product. It is recomputed on
// every mutation and never set directly by clients.
type ProductStatus string

const (
	ProductStatusActive     ProductStatus = "active"
	ProductStatusLowStock   ProductStatus = "low_stock"
	ProductStatusOutOfStock ProductStatus = "out_of_stock"
	ProductStatusInactive   ProductStatus = "inactive"
)

// Product is a catalog item tracked by the inventory service.
type Product struct {
	ID           string          `json:"id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Category     string          `json:"category,omitempty"`
	SupplierID   string          `json:"supplier_id,omitempty"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Currency     string          `json:"currency"`
	Stock        int64           `json:"stock"`
	ReorderLevel int64           `json:"reorder_level"`
	Active       bool            `json:"active"`
	Status       ProductStatus   `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// DeriveStatus recomputes Status from the active flag and stock level.
// Stock-based states apply only to active products: an inactive product is
// always inactive regardless of stock.
func (p *Product) DeriveStatus() {
	if !p.Active {
		p.Status = ProductStatusInactive
		return
	}
	switch {
	case p.Stock <= 0:
		p.Status = ProductStatusOutOfStock
	case p.Stock <= p.ReorderLevel:
		p.Status = ProductStatusLowStock
	default:
		p.Status = ProductStatusActive
	}
}

// CreateProductRequest is the payload for creating a product. Active defaults
// to true and ReorderLevel to the configured default when omitted.
type CreateProductRequest struct {
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	SupplierID   string          `json:"supplier_id"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Currency     string          `json:"currency"`
	Stock        int64           `json:"stock"`
	ReorderLevel *int64          `json:"reorder_level"`
	Active       *bool           `json:"active"`
}

// UpdateProductRequest is the payload for updating a product. Nil fields are
// left unchanged.
type UpdateProductRequest struct {
	SKU          *string          `json:"sku"`
	Name         *string          `json:"name"`
	Description  *string          `json:"description"`
	Category     *string          `json:"category"`
	SupplierID   *string          `json:"supplier_id"`
	UnitPrice    *decimal.Decimal `json:"unit_price"`
	Currency     *string          `json:"currency"`
	Stock        *int64           `json:"stock"`
	ReorderLevel *int64           `json:"reorder_level"`
	Active       *bool            `json:"active"`
}

// AdjustStockRequest applies a signed delta to a product's stock level.
type AdjustStockRequest struct {
	Delta  int64  `json:"delta"`
	Reason string `json:"reason"`
}

// ProductListFilter narrows and paginates product listings.
type ProductListFilter struct {
	Status     *ProductStatus
	SupplierID string
	Search     string
	Limit      int
	Offset     int
}
