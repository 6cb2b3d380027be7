package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/logging"
	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/models"
)

// CreateSalesOrder handles POST /api/v1/sales-orders
func (h *Handlers) CreateSalesOrder(c *gin.Context) {
	var req models.CreateSalesOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed to bind request", logging.Fields{"error": err.Error()})
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	order, err := h.salesOrderService.Create(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

// GetSalesOrder handles GET /api/v1/sales-orders/:id
func (h *Handlers) GetSalesOrder(c *gin.Context) {
	orderID := c.Param("id")

	order, err := h.salesOrderService.Get(c.Request.Context(), orderID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// UpdateSalesOrder handles PUT /api/v1/sales-orders/:id
func (h *Handlers) UpdateSalesOrder(c *gin.Context) {
	orderID := c.Param("id")

	var req models.UpdateSalesOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	order, err := h.salesOrderService.Update(c.Request.Context(), orderID, &req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// UpdateSalesOrderStatus handles PATCH /api/v1/sales-orders/:id/status
func (h *Handlers) UpdateSalesOrderStatus(c *gin.Context) {
	orderID := c.Param("id")

	var req models.UpdateSalesOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	order, err := h.salesOrderService.UpdateStatus(c.Request.Context(), orderID, &req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// DeleteSalesOrder handles DELETE /api/v1/sales-orders/:id
func (h *Handlers) DeleteSalesOrder(c *gin.Context) {
	orderID := c.Param("id")

	if err := h.salesOrderService.Delete(c.Request.Context(), orderID); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListSalesOrders handles GET /api/v1/sales-orders
func (h *Handlers) ListSalesOrders(c *gin.Context) {
	filter := &models.SalesOrderListFilter{}

	if status := c.Query("status"); status != "" {
		s := models.SalesOrderStatus(status)
		filter.Status = &s
	}

	if customer := c.Query("customer"); customer != "" {
		filter.Customer = customer
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

	orders, total, err := h.salesOrderService.List(c.Request.Context(), filter)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sales_orders": orders,
		"total":        total,
		"limit":        filter.Limit,
		"offset":       filter.Offset,
	})
}
