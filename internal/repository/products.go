package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/errors"
	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/models"
)

// Ensure MemoryProductStore implements ProductRepository
var _ ProductRepository = (*MemoryProductStore)(nil)

// MemoryProductStore is a mutex-guarded in-memory product store.
type MemoryProductStore struct {
	mu       sync.RWMutex
	products map[string]models.Product
}

func NewMemoryProductStore() *MemoryProductStore {
	return &MemoryProductStore{
		products: make(map[string]models.Product),
	}
}

func (s *MemoryProductStore) Create(ctx context.Context, product *models.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[product.ID] = *product
	return nil
}

func (s *MemoryProductStore) GetByID(ctx context.Context, id string) (*models.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	product, ok := s.products[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	return &product, nil
}

func (s *MemoryProductStore) GetBySKU(ctx context.Context, sku string) (*models.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, product := range s.products {
		if strings.EqualFold(product.SKU, sku) {
			p := product
			return &p, nil
		}
	}
	return nil, errors.ErrNotFound
}

func (s *MemoryProductStore) Update(ctx context.Context, product *models.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[product.ID]; !ok {
		return errors.ErrNotFound
	}
	s.products[product.ID] = *product
	return nil
}

func (s *MemoryProductStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return errors.ErrNotFound
	}
	delete(s.products, id)
	return nil
}

func (s *MemoryProductStore) List(ctx context.Context, filter *models.ProductListFilter) ([]*models.Product, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]models.Product, 0, len(s.products))
	for _, product := range s.products {
		if !matchProduct(product, filter) {
			continue
		}
		matches = append(matches, product)
	}
	sort.Slice(matches, func(i, j int) bool {
		if !matches[i].CreatedAt.Equal(matches[j].CreatedAt) {
			return matches[i].CreatedAt.After(matches[j].CreatedAt)
		}
		return matches[i].ID < matches[j].ID
	})

	total := len(matches)
	start, end := paginate(total, filter.Limit, filter.Offset)
	page := make([]*models.Product, 0, end-start)
	for i := start; i < end; i++ {
		p := matches[i]
		page = append(page, &p)
	}
	return page, total, nil
}

func matchProduct(product models.Product, filter *models.ProductListFilter) bool {
	if filter.Status != nil && product.Status != *filter.Status {
		return false
	}
	if filter.SupplierID != "" && product.SupplierID != filter.SupplierID {
		return false
	}
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(product.Name), needle) &&
			!strings.Contains(strings.ToLower(product.SKU), needle) {
			return false
		}
	}
	return true
}
