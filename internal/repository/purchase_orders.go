package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/errors"
	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/models"
)

// Ensure MemoryPurchaseOrderStore implements PurchaseOrderRepository
var _ PurchaseOrderRepository = (*MemoryPurchaseOrderStore)(nil)

// MemoryPurchaseOrderStore is a mutex-guarded in-memory purchase order store.
type MemoryPurchaseOrderStore struct {
	mu     sync.RWMutex
	orders map[string]models.PurchaseOrder
}

func NewMemoryPurchaseOrderStore() *MemoryPurchaseOrderStore {
	return &MemoryPurchaseOrderStore{
		orders: make(map[string]models.PurchaseOrder),
	}
}

// clonePurchaseOrder deep-copies the order so the store never shares its line
// item slice or time pointers with callers.
func clonePurchaseOrder(order models.PurchaseOrder) models.PurchaseOrder {
	out := order
	if order.Items != nil {
		out.Items = append([]models.LineItem(nil), order.Items...)
	}
	if order.ReceivedAt != nil {
		t := *order.ReceivedAt
		out.ReceivedAt = &t
	}
	return out
}

func (s *MemoryPurchaseOrderStore) Create(ctx context.Context, order *models.PurchaseOrder) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[order.ID] = clonePurchaseOrder(*order)
	return nil
}

func (s *MemoryPurchaseOrderStore) GetByID(ctx context.Context, id string) (*models.PurchaseOrder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	order, ok := s.orders[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	out := clonePurchaseOrder(order)
	return &out, nil
}

func (s *MemoryPurchaseOrderStore) Update(ctx context.Context, order *models.PurchaseOrder) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[order.ID]; !ok {
		return errors.ErrNotFound
	}
	s.orders[order.ID] = clonePurchaseOrder(*order)
	return nil
}

func (s *MemoryPurchaseOrderStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[id]; !ok {
		return errors.ErrNotFound
	}
	delete(s.orders, id)
	return nil
}

func (s *MemoryPurchaseOrderStore) List(ctx context.Context, filter *models.PurchaseOrderListFilter) ([]*models.PurchaseOrder, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]models.PurchaseOrder, 0, len(s.orders))
	for _, order := range s.orders {
		if filter.Status != nil && order.Status != *filter.Status {
			continue
		}
		if filter.SupplierID != "" && order.SupplierID != filter.SupplierID {
			continue
		}
		matches = append(matches, order)
	}
	sort.Slice(matches, func(i, j int) bool {
		if !matches[i].CreatedAt.Equal(matches[j].CreatedAt) {
			return matches[i].CreatedAt.After(matches[j].CreatedAt)
		}
		return matches[i].ID < matches[j].ID
	})

	total := len(matches)
	start, end := paginate(total, filter.Limit, filter.Offset)
	page := make([]*models.PurchaseOrder, 0, end-start)
	for i := start; i < end; i++ {
		order := clonePurchaseOrder(matches[i])
		page = append(page, &order)
	}
	return page, total, nil
}
