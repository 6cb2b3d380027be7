package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/errors"
	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/logging"
	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/models"
)

// CreateProduct handles POST /api/v1/products
func (h *Handlers) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed to bind request", logging.Fields{"error": err.Error()})
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	product, err := h.productService.Create(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, product)
}

// GetProduct handles GET /api/v1/products/:id
func (h *Handlers) GetProduct(c *gin.Context) {
	productID := c.Param("id")

	product, err := h.productService.Get(c.Request.Context(), productID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// UpdateProduct handles PUT /api/v1/products/:id
func (h *Handlers) UpdateProduct(c *gin.Context) {
	productID := c.Param("id")

	var req models.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	product, err := h.productService.Update(c.Request.Context(), productID, &req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// AdjustProductStock handles POST /api/v1/products/:id/stock
func (h *Handlers) AdjustProductStock(c *gin.Context) {
	productID := c.Param("id")

	var req models.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	product, err := h.productService.AdjustStock(c.Request.Context(), productID, &req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// DeleteProduct handles DELETE /api/v1/products/:id
func (h *Handlers) DeleteProduct(c *gin.Context) {
	productID := c.Param("id")

	if err := h.productService.Delete(c.Request.Context(), productID); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListProducts handles GET /api/v1/products
func (h *Handlers) ListProducts(c *gin.Context) {
	filter := &models.ProductListFilter{}

	// Parse query parameters
	if status := c.Query("status"); status != "" {
		s := models.ProductStatus(status)
		filter.Status = &s
	}

	if supplierID := c.Query("supplier_id"); supplierID != "" {
		filter.SupplierID = supplierID
	}

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

	products, total, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"total":    total,
		"limit":    filter.Limit,
		"offset":   filter.Offset,
	})
}

func handleError(c *gin.Context, err error) {
	if err == errors.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	var validationErr *errors.ValidationError
	if errors.AsValidation(err, &validationErr) {
		resp := gin.H{"error": validationErr.Message}
		if validationErr.Field != "" {
			resp["field"] = validationErr.Field
		}
		if validationErr.Details != nil {
			resp["details"] = validationErr.Details
		}
		c.JSON(http.StatusBadRequest, resp)
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
