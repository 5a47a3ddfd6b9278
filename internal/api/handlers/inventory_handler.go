package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ayamprima/flockcore/internal/domain"
	"github.com/ayamprima/flockcore/internal/service"
	"github.com/gin-gonic/gin"
)

type InventoryHandler struct {
	service *service.InventoryService
}

func NewInventoryHandler(service *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: service}
}

func (h *InventoryHandler) ListVaccines(c *gin.Context) {
	vaccines, err := h.service.ListVaccines(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list vaccines", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"vaccines": vaccines})
}

// AdministerVaccine marks one scheduled vaccine as given. The dose is sized
// from the flock's stock on the administration date.
func (h *InventoryHandler) AdministerVaccine(c *gin.Context) {
	vaccineID, err := strconv.ParseInt(c.Param("vid"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vaccine id"})
		return
	}

	var req struct {
		Date string `json:"date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "details": err.Error()})
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date is required, want YYYY-MM-DD"})
		return
	}

	result, err := h.service.AdministerVaccine(c.Request.Context(), c.Param("id"), vaccineID, date)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "failed to administer vaccine", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// RecordMedication stores an ad-hoc treatment with its inventory usage.
func (h *InventoryHandler) RecordMedication(c *gin.Context) {
	var m domain.Medication
	if err := c.ShouldBindJSON(&m); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "details": err.Error()})
		return
	}
	m.FlockID = c.Param("id")

	if err := h.service.RecordMedication(c.Request.Context(), &m); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record medication", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": m.ID})
}
