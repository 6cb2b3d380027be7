package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/logging"
	"github.com/tm-acme-shop/acme-shop-inventory-service/internal/models"
)

// CreateBill handles POST /api/v1/bills
func (h *Handlers) CreateBill(c *gin.Context) {
	var req models.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed to bind request", logging.Fields{"error": err.Error()})
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	bill, err := h.billService.Create(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, bill)
}

// GetBill handles GET /api/v1/bills/:id
func (h *Handlers) GetBill(c *gin.Context) {
	billID := c.Param("id")

	bill, err := h.billService.Get(c.Request.Context(), billID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, bill)
}

// UpdateBill handles PUT /api/v1/bills/:id
func (h *Handlers) UpdateBill(c *gin.Context) {
	billID := c.Param("id")

	var req models.UpdateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	bill, err := h.billService.Update(c.Request.Context(), billID, &req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, bill)
}

// RecordBillPayment handles POST /api/v1/bills/:id/payments
func (h *Handlers) RecordBillPayment(c *gin.Context) {
	billID := c.Param("id")

	var req models.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	bill, err := h.billService.RecordPayment(c.Request.Context(), billID, &req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, bill)
}

// DeleteBill handles DELETE /api/v1/bills/:id
func (h *Handlers) DeleteBill(c *gin.Context) {
	billID := c.Param("id")

	if err := h.billService.Delete(c.Request.Context(), billID); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListBills handles GET /api/v1/bills
func (h *Handlers) ListBills(c *gin.Context) {
	filter := &models.BillListFilter{}

	if status := c.Query("status"); status != "" {
		s := models.BillStatus(status)
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

	bills, total, err := h.billService.List(c.Request.Context(), filter)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bills":  bills,
		"total":  total,
		"limit":  filter.Limit,
		"offset": filter.Offset,
	})
}
