package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetSummary handles GET /api/v1/summary
func (h *Handlers) GetSummary(c *gin.Context) {
	summary, err := h.reportService.Summary(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
