package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/logging"
	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/models"
)

// CreatePurchaseOrder handles POST /api/v1/purchase-orders
func (h *Handlers) CreatePurchaseOrder(c *gin.Context) {
	var req models.CreatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed to bind request", logging.Fields{"error": err.Error()})
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	order, err := h.purchaseOrderService.Create(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

// GetPurchaseOrder handles GET /api/v1/purchase-orders/:id
func (h *Handlers) GetPurchaseOrder(c *gin.Context) {
	orderID := c.Param("id")

	order, err := h.purchaseOrderService.Get(c.Request.Context(), orderID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// UpdatePurchaseOrder handles PUT /api/v1/purchase-orders/:id
func (h *Handlers) UpdatePurchaseOrder(c *gin.Context) {
	orderID := c.Param("id")

	var req models.UpdatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	order, err := h.purchaseOrderService.Update(c.Request.Context(), orderID, &req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// UpdatePurchaseOrderStatus handles PATCH /api/v1/purchase-orders/:id/status
func (h *Handlers) UpdatePurchaseOrderStatus(c *gin.Context) {
	orderID := c.Param("id")

	var req models.UpdatePurchaseOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	order, err := h.purchaseOrderService.UpdateStatus(c.Request.Context(), orderID, &req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// DeletePurchaseOrder handles DELETE /api/v1/purchase-orders/:id
func (h *Handlers) DeletePurchaseOrder(c *gin.Context) {
	orderID := c.Param("id")

	if err := h.purchaseOrderService.Delete(c.Request.Context(), orderID); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListPurchaseOrders handles GET /api/v1/purchase-orders
func (h *Handlers) ListPurchaseOrders(c *gin.Context) {
	filter := &models.PurchaseOrderListFilter{}

	if status := c.Query("status"); status != "" {
		s := models.PurchaseOrderStatus(status)
		filter.Status = &s
	}

	if supplierID := c.Query("supplier_id"); supplierID != "" {
		filter.SupplierID = supplierID
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

	orders, total, err := h.purchaseOrderService.List(c.Request.Context(), filter)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"purchase_orders": orders,
		"total":           total,
		"limit":           filter.Limit,
		"offset":          filter.Offset,
	})
}
