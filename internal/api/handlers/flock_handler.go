package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/ayamprima/flockcore/internal/domain"
	"github.com/ayamprima/flockcore/internal/service"
	"github.com/gin-gonic/gin"
)

type FlockHandler struct {
	service *service.FlockService
}

func NewFlockHandler(service *service.FlockService) *FlockHandler {
	return &FlockHandler{service: service}
}

func parseDateParam(c *gin.Context, name string) (*time.Time, bool) {
	value := strings.TrimSpace(c.Query(name))
	if value == "" {
		return nil, true
	}
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name + " date, want YYYY-MM-DD"})
		return nil, false
	}
	return &d, true
}

// GetChart serves the full chart-data payload for one flock. The payload is
// pre-serialized (and cached) JSON.
func (h *FlockHandler) GetChart(c *gin.Context) {
	payload, err := h.service.GetChart(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build chart", "details": err.Error()})
		return
	}
	c.Data(http.StatusOK, "application/json", payload)
}

// GetProjection serves a custom projection. Keys come comma-separated or
// repeated; unknown keys are ignored.
func (h *FlockHandler) GetProjection(c *gin.Context) {
	var keys []string
	for _, raw := range c.QueryArray("keys") {
		for _, k := range strings.Split(raw, ",") {
			if k = strings.TrimSpace(k); k != "" {
				keys = append(keys, k)
			}
		}
	}

	from, ok := parseDateParam(c, "from")
	if !ok {
		return
	}
	to, ok := parseDateParam(c, "to")
	if !ok {
		return
	}

	p, err := h.service.GetProjection(c.Request.Context(), c.Param("id"), keys, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build projection", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *FlockHandler) GetWeekly(c *gin.Context) {
	weekly, err := h.service.GetWeekly(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to aggregate weekly", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"weeks": weekly})
}

func (h *FlockHandler) GetMonthly(c *gin.Context) {
	monthly, err := h.service.GetMonthly(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to aggregate monthly", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"months": monthly})
}

func (h *FlockHandler) GetHatchability(c *gin.Context) {
	settings, err := h.service.GetHatchability(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch hatchability", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// GetStandards serves the shared breed-standard table and global defaults.
func (h *FlockHandler) GetStandards(c *gin.Context) {
	standards, err := h.service.GetStandards(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch standards", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, standards)
}

// StartProduction flips one flock into the production phase. The baselines
// are captured exactly once; a second call fails.
func (h *FlockHandler) StartProduction(c *gin.Context) {
	var req struct {
		ProductionStart    string `json:"production_start"`
		BaselineMaleProd   int    `json:"baseline_male_prod"`
		BaselineFemaleProd int    `json:"baseline_female_prod"`
		BaselineMaleHosp   int    `json:"baseline_male_hosp"`
		BaselineFemaleHosp int    `json:"baseline_female_hosp"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "details": err.Error()})
		return
	}

	start, err := time.Parse("2006-01-02", req.ProductionStart)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "production_start is required, want YYYY-MM-DD"})
		return
	}

	baseline := [4]int{
		req.BaselineMaleProd, req.BaselineFemaleProd,
		req.BaselineMaleHosp, req.BaselineFemaleHosp,
	}
	if err := h.service.StartProduction(c.Request.Context(), c.Param("id"), start, baseline); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "failed to start production", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"production_start": start.Format("2006-01-02")})
}

// GetMaleRatio computes the collection-window male ratio for a setting date.
func (h *FlockHandler) GetMaleRatio(c *gin.Context) {
	settingDate, err := time.Parse("2006-01-02", strings.TrimSpace(c.Query("setting_date")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "setting_date is required, want YYYY-MM-DD"})
		return
	}

	ratio, large, err := h.service.GetMaleRatio(c.Request.Context(), c.Param("id"), settingDate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute male ratio", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"setting_date":   settingDate.Format("2006-01-02"),
		"male_ratio_pct": ratio,
		"large_window":   large,
	})
}

// UpsertLog stores one daily observation. Light times arrive as "HH:MM" and
// are stored as minute-of-day.
func (h *FlockHandler) UpsertLog(c *gin.Context) {
	var req struct {
		domain.DailyLog
		LightOn  string `json:"light_on"`
		LightOff string `json:"light_off"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid log payload", "details": err.Error()})
		return
	}

	l := req.DailyLog
	l.FlockID = c.Param("id")
	if l.Date.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date is required"})
		return
	}

	if req.LightOn != "" {
		minute, err := domain.ParseClock(req.LightOn)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		l.LightOnMinute = minute
	}
	if req.LightOff != "" {
		minute, err := domain.ParseClock(req.LightOff)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		l.LightOffMinute = minute
	}

	for _, p := range l.Partitions {
		if !domain.ValidPartitionName(p.Name) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid partition name " + p.Name})
			return
		}
	}

	if err := h.service.UpsertLog(c.Request.Context(), &l); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save log", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": l.ID})
}
