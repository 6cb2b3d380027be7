// Package repository defines the storage interfaces for the inventory service
// and the in-memory stores backing them. Stores hand out copies, never
// internal references, so callers can mutate results freely.
package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/models"
)

// ProductRepository stores products.
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id string) (*models.Product, error)
	GetBySKU(ctx context.Context, sku string) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter *models.ProductListFilter) ([]*models.Product, int, error)
}

// SupplierRepository stores suppliers.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *models.Supplier) error
	GetByID(ctx context.Context, id string) (*models.Supplier, error)
	Update(ctx context.Context, supplier *models.Supplier) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter *models.SupplierListFilter) ([]*models.Supplier, int, error)
}

// PurchaseOrderRepository stores purchase orders.
type PurchaseOrderRepository interface {
	Create(ctx context.Context, order *models.PurchaseOrder) error
	GetByID(ctx context.Context, id string) (*models.PurchaseOrder, error)
	Update(ctx context.Context, order *models.PurchaseOrder) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter *models.PurchaseOrderListFilter) ([]*models.PurchaseOrder, int, error)
}

// SalesOrderRepository stores sales orders.
type SalesOrderRepository interface {
	Create(ctx context.Context, order *models.SalesOrder) error
	GetByID(ctx context.Context, id string) (*models.SalesOrder, error)
	Update(ctx context.Context, order *models.SalesOrder) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter *models.SalesOrderListFilter) ([]*models.SalesOrder, int, error)
}

// BillRepository stores bills.
type BillRepository interface {
	Create(ctx context.Context, bill *models.Bill) error
	GetByID(ctx context.Context, id string) (*models.Bill, error)
	Update(ctx context.Context, bill *models.Bill) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter *models.BillListFilter) ([]*models.Bill, int, error)
}

// NewID returns a prefixed unique identifier, e.g. "prod_5e8a...".
func NewID(prefix string) string {
	return prefix + "_" + uuid.NewString()
}

// paginate returns the [start, end) window for a list of n items. A limit of
// zero or less means no limit.
func paginate(n, limit, offset int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if offset > n {
		return n, n
	}
	end := n
	if limit > 0 && offset+limit < n {
		end = offset + limit
	}
	return offset, end
}
