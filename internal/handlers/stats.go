package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetStatistics(c *gin.Context) {
	includeDetails := false
	if detailsParam := c.Query("details"); detailsParam != "" {
		if parsed, err := strconv.ParseBool(detailsParam); err == nil {
			includeDetails = parsed
		}
	}

	stats, err := h.services.StatsService.GetStats(c.Request.Context(), includeDetails)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.successResponse(c, http.StatusOK, gin.H{"stats": stats})
}

func (h *Handler) Health(c *gin.Context) {
	h.successResponse(c, http.StatusOK, gin.H{"status": "ok"})
}
