package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/ayamprima/flockcore/internal/service"
	"github.com/gin-gonic/gin"
)

type ExecutiveHandler struct {
	service *service.ExecutiveService
}

func NewExecutiveHandler(service *service.ExecutiveService) *ExecutiveHandler {
	return &ExecutiveHandler{service: service}
}

// GetDashboard serves the cross-flock ISO aggregation, optionally filtered
// to one calendar year.
func (h *ExecutiveHandler) GetDashboard(c *gin.Context) {
	var yearFilter *int
	if raw := strings.TrimSpace(c.Query("year")); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
			return
		}
		yearFilter = &year
	}

	report, err := h.service.GetDashboard(c.Request.Context(), yearFilter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build dashboard", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetHatchery serves the cross-flock hatchery aggregation for a
// setting-date range.
func (h *ExecutiveHandler) GetHatchery(c *gin.Context) {
	from, ok := parseDateParam(c, "from")
	if !ok {
		return
	}
	to, ok := parseDateParam(c, "to")
	if !ok {
		return
	}
	if from == nil || to == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and to dates are required"})
		return
	}

	summary, err := h.service.GetHatcherySummary(c.Request.Context(), *from, *to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to summarize hatchery", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}
