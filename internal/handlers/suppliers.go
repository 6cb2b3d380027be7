package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/models"
)

// CreateSupplier handles POST /api/v1/suppliers
func (h *Handlers) CreateSupplier(c *gin.Context) {
	var req models.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	supplier, err := h.supplierService.Create(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, supplier)
}

// GetSupplier handles GET /api/v1/suppliers/:id
func (h *Handlers) GetSupplier(c *gin.Context) {
	supplierID := c.Param("id")

	supplier, err := h.supplierService.Get(c.Request.Context(), supplierID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, supplier)
}

// UpdateSupplier handles PUT /api/v1/suppliers/:id
func (h *Handlers) UpdateSupplier(c *gin.Context) {
	supplierID := c.Param("id")

	var req models.UpdateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	supplier, err := h.supplierService.Update(c.Request.Context(), supplierID, &req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, supplier)
}

// DeleteSupplier handles DELETE /api/v1/suppliers/:id
func (h *Handlers) DeleteSupplier(c *gin.Context) {
	supplierID := c.Param("id")

	if err := h.supplierService.Delete(c.Request.Context(), supplierID); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListSuppliers handles GET /api/v1/suppliers
func (h *Handlers) ListSuppliers(c *gin.Context) {
	filter := &models.SupplierListFilter{}

	if search := c.Query("search"); search != "" {
		filter.Search = search
	}

	if limitStr := c.Query("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			filter.Limit = limit
		}
	}

	if offsetStr := c.Query("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil {
			filter.Offset = offset
		}
	}

	suppliers, total, err := h.supplierService.List(c.Request.Context(), filter)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"suppliers": suppliers,
		"total":     total,
		"limit":     filter.Limit,
		"offset":    filter.Offset,
	})
}
