package models

import "time"

// Supplier is a vendor that products and purchase orders reference.
type Supplier struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ContactName string    `json:"contact_name,omitempty"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Address     string    `json:"address,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateSupplierRequest struct {
	Name        string `json:"name"`
	ContactName string `json:"contact_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Notes       string `json:"notes"`
}

// UpdateSupplierRequest updates a supplier. Nil fields are left unchanged.
type UpdateSupplierRequest struct {
	Name        *string `json:"name"`
	ContactName *string `json:"contact_name"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	Notes       *string `json:"notes"`
}

// SupplierListFilter narrows and paginates supplier listings.
type SupplierListFilter struct {
	Search string
	Limit  int
	Offset int
}
