package service

import (
	"context"
	"strings"
	"time"

	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/config"
	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/logging"
	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/models"
	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/repository"
)

// SupplierService handles supplier business logic.
type SupplierService struct {
	suppliers repository.SupplierRepository
	config    *config.Config
	logger    *logging.Logger
}

// NewSupplierService creates a new supplier service.
func NewSupplierService(suppliers repository.SupplierRepository, cfg *config.Config) *SupplierService {
	return &SupplierService{
		suppliers: suppliers,
		config:    cfg,
		logger:    logging.New("supplier-service"),
	}
}

// Create creates a new supplier.
func (s *SupplierService) Create(ctx context.Context, req *models.CreateSupplierRequest) (*models.Supplier, error) {
	s.logger.Info("Creating supplier", logging.Fields{
		"name": req.Name,
	})

	if err := ValidateCreateSupplierRequest(req); err != nil {
		return nil, err
	}

	now := time.Now()
	supplier := &models.Supplier{
		ID:          repository.NewID("sup"),
		Name:        strings.TrimSpace(req.Name),
		ContactName: req.ContactName,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		Notes:       SanitizeNotes(req.Notes),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.suppliers.Create(ctx, supplier); err != nil {
		s.logger.Error("Failed to create supplier", logging.Fields{
			"name":  req.Name,
			"error": err.Error(),
		})
		return nil, err
	}

	s.logger.Info("Supplier created successfully", logging.Fields{
		"supplier_id": supplier.ID,
	})

	return supplier, nil
}

// Get retrieves a supplier by ID.
func (s *SupplierService) Get(ctx context.Context, id string) (*models.Supplier, error) {
	s.logger.Debug("Getting supplier", logging.Fields{"supplier_id": id})
	return s.suppliers.GetByID(ctx, id)
}

// Update applies the set fields of the request.
func (s *SupplierService) Update(ctx context.Context, id string, req *models.UpdateSupplierRequest) (*models.Supplier, error) {
	s.logger.Info("Updating supplier", logging.Fields{"supplier_id": id})

	if err := ValidateUpdateSupplierRequest(req); err != nil {
		return nil, err
	}

	supplier, err := s.suppliers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		supplier.Name = strings.TrimSpace(*req.Name)
	}
	if req.ContactName != nil {
		supplier.ContactName = *req.ContactName
	}
	if req.Email != nil {
		supplier.Email = *req.Email
	}
	if req.Phone != nil {
		supplier.Phone = *req.Phone
	}
	if req.Address != nil {
		supplier.Address = *req.Address
	}
	if req.Notes != nil {
		supplier.Notes = SanitizeNotes(*req.Notes)
	}

	supplier.UpdatedAt = time.Now()

	if err := s.suppliers.Update(ctx, supplier); err != nil {
		return nil, err
	}

	return supplier, nil
}

// Delete removes a supplier. Products and orders that reference it keep the
// dangling ID; lookups resolve to not found.
func (s *SupplierService) Delete(ctx context.Context, id string) error {
	s.logger.Info("Deleting supplier", logging.Fields{"supplier_id": id})
	return s.suppliers.Delete(ctx, id)
}

// List retrieves suppliers matching the filter.
func (s *SupplierService) List(ctx context.Context, filter *models.SupplierListFilter) ([]*models.Supplier, int, error) {
	s.logger.Debug("Listing suppliers", logging.Fields{
		"search": filter.Search,
	})

	if err := ValidateListWindow(&filter.Limit, &filter.Offset); err != nil {
		return nil, 0, err
	}

	return s.suppliers.List(ctx, filter)
}
