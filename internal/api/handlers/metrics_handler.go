package handlers

import (
	"net/http"

	"github.com/ayamprima/flockcore/internal/engine"
	"github.com/gin-gonic/gin"
)

type MetricsHandler struct{}

func NewMetricsHandler() *MetricsHandler {
	return &MetricsHandler{}
}

// GetRegistry serves the metric catalogue as {key: {label, unit, type}}.
// The shape is wire-stable; chart frontends render directly from it.
func (h *MetricsHandler) GetRegistry(c *gin.Context) {
	c.JSON(http.StatusOK, engine.Registry)
}
