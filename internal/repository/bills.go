package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/errors"
	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/models"
)

// Ensure MemoryBillStore implements BillRepository
var _ BillRepository = (*MemoryBillStore)(nil)

// MemoryBillStore is a mutex-guarded in-memory bill store.
type MemoryBillStore struct {
	mu    sync.RWMutex
	bills map[string]models.Bill
}

func NewMemoryBillStore() *MemoryBillStore {
	return &MemoryBillStore{
		bills: make(map[string]models.Bill),
	}
}

func cloneBill(bill models.Bill) models.Bill {
	out := bill
	if bill.DueDate != nil {
		t := *bill.DueDate
		out.DueDate = &t
	}
	if bill.PaidAt != nil {
		t := *bill.PaidAt
		out.PaidAt = &t
	}
	return out
}

func (s *MemoryBillStore) Create(ctx context.Context, bill *models.Bill) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bills[bill.ID] = cloneBill(*bill)
	return nil
}

func (s *MemoryBillStore) GetByID(ctx context.Context, id string) (*models.Bill, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	bill, ok := s.bills[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	out := cloneBill(bill)
	return &out, nil
}

func (s *MemoryBillStore) Update(ctx context.Context, bill *models.Bill) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bills[bill.ID]; !ok {
		return errors.ErrNotFound
	}
	s.bills[bill.ID] = cloneBill(*bill)
	return nil
}

func (s *MemoryBillStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bills[id]; !ok {
		return errors.ErrNotFound
	}
	delete(s.bills, id)
	return nil
}

func (s *MemoryBillStore) List(ctx context.Context, filter *models.BillListFilter) ([]*models.Bill, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]models.Bill, 0, len(s.bills))
	for _, bill := range s.bills {
		if filter.Status != nil && bill.Status != *filter.Status {
			continue
		}
		if filter.SupplierID != "" && bill.SupplierID != filter.SupplierID {
			continue
		}
		matches = append(matches, bill)
	}
	sort.Slice(matches, func(i, j int) bool {
		if !matches[i].CreatedAt.Equal(matches[j].CreatedAt) {
			return matches[i].CreatedAt.After(matches[j].CreatedAt)
		}
		return matches[i].ID < matches[j].ID
	})

	total := len(matches)
	start, end := paginate(total, filter.Limit, filter.Offset)
	page := make([]*models.Bill, 0, end-start)
	for i := start; i < end; i++ {
		bill := cloneBill(matches[i])
		page = append(page, &bill)
	}
	return page, total, nil
}
