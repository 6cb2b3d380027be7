package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/errors"
	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/models"
)

// Ensure MemorySalesOrderStore implements SalesOrderRepository
var _ SalesOrderRepository = (*MemorySalesOrderStore)(nil)

// MemorySalesOrderStore is a mutex-guarded in-memory sales order store.
type MemorySalesOrderStore struct {
	mu     sync.RWMutex
	orders map[string]models.SalesOrder
}

func NewMemorySalesOrderStore() *MemorySalesOrderStore {
	return &MemorySalesOrderStore{
		orders: make(map[string]models.SalesOrder),
	}
}

func cloneSalesOrder(order models.SalesOrder) models.SalesOrder {
	out := order
	if order.Items != nil {
		out.Items = append([]models.LineItem(nil), order.Items...)
	}
	if order.ShippedAt != nil {
		t := *order.ShippedAt
		out.ShippedAt = &t
	}
	if order.DeliveredAt != nil {
		t := *order.DeliveredAt
		out.DeliveredAt = &t
	}
	return out
}

func (s *MemorySalesOrderStore) Create(ctx context.Context, order *models.SalesOrder) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[order.ID] = cloneSalesOrder(*order)
	return nil
}

func (s *MemorySalesOrderStore) GetByID(ctx context.Context, id string) (*models.SalesOrder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	order, ok := s.orders[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	out := cloneSalesOrder(order)
	return &out, nil
}

func (s *MemorySalesOrderStore) Update(ctx context.Context, order *models.SalesOrder) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[order.ID]; !ok {
		return errors.ErrNotFound
	}
	s.orders[order.ID] = cloneSalesOrder(*order)
	return nil
}

func (s *MemorySalesOrderStore) Delete(ctx context.Context, id string) error {
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

func (s *MemorySalesOrderStore) List(ctx context.Context, filter *models.SalesOrderListFilter) ([]*models.SalesOrder, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]models.SalesOrder, 0, len(s.orders))
	for _, order := range s.orders {
		if filter.Status != nil && order.Status != *filter.Status {
			continue
		}
		if filter.Customer != "" &&
			!strings.Contains(strings.ToLower(order.CustomerName), strings.ToLower(filter.Customer)) {
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
	page := make([]*models.SalesOrder, 0, end-start)
	for i := start; i < end; i++ {
		order := cloneSalesOrder(matches[i])
		page = append(page, &order)
	}
	return page, total, nil
}
