package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/errors"
	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/models"
)

// Ensure MemorySupplierStore implements SupplierRepository
var _ SupplierRepository = (*MemorySupplierStore)(nil)

// MemorySupplierStore is a mutex-guarded in-memory supplier store.
type MemorySupplierStore struct {
	mu        sync.RWMutex
	suppliers map[string]models.Supplier
}

func NewMemorySupplierStore() *MemorySupplierStore {
	return &MemorySupplierStore{
		suppliers: make(map[string]models.Supplier),
	}
}

func (s *MemorySupplierStore) Create(ctx context.Context, supplier *models.Supplier) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suppliers[supplier.ID] = *supplier
	return nil
}

func (s *MemorySupplierStore) GetByID(ctx context.Context, id string) (*models.Supplier, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	supplier, ok := s.suppliers[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	return &supplier, nil
}

func (s *MemorySupplierStore) Update(ctx context.Context, supplier *models.Supplier) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.suppliers[supplier.ID]; !ok {
		return errors.ErrNotFound
	}
	s.suppliers[supplier.ID] = *supplier
	return nil
}

func (s *MemorySupplierStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.suppliers[id]; !ok {
		return errors.ErrNotFound
	}
	delete(s.suppliers, id)
	return nil
}

func (s *MemorySupplierStore) List(ctx context.Context, filter *models.SupplierListFilter) ([]*models.Supplier, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]models.Supplier, 0, len(s.suppliers))
	for _, supplier := range s.suppliers {
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(supplier.Name), needle) &&
				!strings.Contains(strings.ToLower(supplier.ContactName), needle) {
				continue
			}
		}
		matches = append(matches, supplier)
	}
	sort.Slice(matches, func(i, j int) bool {
		if !matches[i].CreatedAt.Equal(matches[j].CreatedAt) {
			return matches[i].CreatedAt.After(matches[j].CreatedAt)
		}
		return matches[i].ID < matches[j].ID
	})

	total := len(matches)
	start, end := paginate(total, filter.Limit, filter.Offset)
	page := make([]*models.Supplier, 0, end-start)
	for i := start; i < end; i++ {
		sup := matches[i]
		page = append(page, &sup)
	}
	return page, total, nil
}
