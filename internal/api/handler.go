package api

import (
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/coastalwatch/hazard-engine/internal/alerting"
	"github.com/coastalwatch/hazard-engine/internal/feed"
	"github.com/coastalwatch/hazard-engine/internal/generator"
	"github.com/coastalwatch/hazard-engine/internal/models"
	"github.com/coastalwatch/hazard-engine/internal/predcache"
	"github.com/coastalwatch/hazard-engine/internal/repository"
)

type Handler struct {
	repo    repository.AlertRepository
	monitor *alerting.Monitor
	cache   *predcache.Cache
	feeds   *feed.Manager

	// History requests each get their own generator; a Generator's random
	// source is not safe for concurrent use.
	histSeed int64
	histReq  atomic.Int64
}

func NewHandler(repo repository.AlertRepository, monitor *alerting.Monitor, cache *predcache.Cache, feeds *feed.Manager, histSeed int64) *Handler {
	return &Handler{
		repo:     repo,
		monitor:  monitor,
		cache:    cache,
		feeds:    feeds,
		histSeed: histSeed,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.health)

	r.GET("/api/alerts", h.listAlerts)
	r.GET("/api/alerts/stats", h.alertStats)
	r.GET("/api/alerts/:id", h.getAlert)
	r.PATCH("/api/alerts/:id/status", h.reviewAlert)

	r.GET("/api/predictions", h.listPredictions)
	r.GET("/api/regions", h.listRegions)
	r.GET("/api/readings/:hazard/history", h.readingHistory)
	r.GET("/api/stream/:hazard", h.streamFeed)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) listAlerts(c *gin.Context) {
	filter := repository.Filter{
		Limit: 20, // default page size when limit param not supplied
	}

	if t := c.Query("type"); t != "" {
		ht, ok := models.ParseHazardType(t)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown hazard type"})
			return
		}
		filter.Type = &ht
	}
	if s := c.Query("severity"); s != "" {
		sev := models.AlertSeverity(s)
		if sev.Rank() == 0 && sev != models.SeverityLow {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown severity"})
			return
		}
		filter.Severity = &sev
	}
	if ms := c.Query("min_severity"); ms != "" {
		sev := models.AlertSeverity(ms)
		if sev.Rank() == 0 && sev != models.SeverityLow {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown severity"})
			return
		}
		filter.MinSeverity = &sev
	}
	if st := c.Query("status"); st != "" {
		status, ok := models.ParseAlertStatus(st)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
			return
		}
		filter.Status = &status
	}
	if r := c.Query("region"); r != "" {
		filter.Region = &r
	}
	if s := c.Query("since"); s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			filter.Since = &t
		}
	}
	if l := c.Query("limit"); l != "" {
		if lim, err := strconv.Atoi(l); err == nil && lim > 0 && lim <= 500 {
			filter.Limit = lim
		}
	}

	alerts, err := h.repo.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch alerts"})
		return
	}
	if alerts == nil {
		alerts = []models.Alert{}
	}

	c.JSON(http.StatusOK, gin.H{"alerts": alerts, "count": len(alerts)})
}

func (h *Handler) getAlert(c *gin.Context) {
	alert, err := h.repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch alert"})
		return
	}
	if alert == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "alert not found"})
		return
	}
	c.JSON(http.StatusOK, alert)
}

type reviewRequest struct {
	Status      string  `json:"status" binding:"required"`
	ReviewedBy  *string `json:"reviewedBy"`
	ReviewNotes *string `json:"reviewNotes"`
}

func (h *Handler) reviewAlert(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	status, ok := models.ParseAlertStatus(req.Status)
	if !ok || status == models.StatusGenerated {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status transition"})
		return
	}

	alert, err := h.repo.UpdateReview(c.Request.Context(), c.Param("id"), repository.ReviewUpdate{
		Status:      status,
		ReviewedBy:  req.ReviewedBy,
		ReviewNotes: req.ReviewNotes,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update alert"})
		return
	}
	if alert == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "alert not found"})
		return
	}
	c.JSON(http.StatusOK, alert)
}

func (h *Handler) alertStats(c *gin.Context) {
	stats, err := h.monitor.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handler) listPredictions(c *gin.Context) {
	var hazard models.HazardType
	if t := c.Query("threatType"); t != "" {
		ht, ok := models.ParseHazardType(t)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown hazard type"})
			return
		}
		hazard = ht
	}
	region := c.Query("region")

	entries := h.cache.List(hazard, region)
	if hazard != "" && region != "" && len(entries) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no predictions found for the specified threat type and region"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"predictions": entries, "count": len(entries)})
}

func (h *Handler) listRegions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"regions": models.Regions, "count": len(models.Regions)})
}

// historyStep reflects how fast each hazard evolves: cyclone conditions turn
// over in minutes, shoreline change in half-day steps.
func historyStep(h models.HazardType) time.Duration {
	switch h {
	case models.HazardStormSurge:
		return time.Hour
	case models.HazardCoastalErosion:
		return 12 * time.Hour
	case models.HazardWaterPollution:
		return 6 * time.Hour
	default:
		return 30 * time.Minute
	}
}

func (h *Handler) readingHistory(c *gin.Context) {
	hazard, ok := models.ParseHazardType(c.Param("hazard"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown hazard type"})
		return
	}

	points := 48
	if p := c.Query("points"); p != "" {
		if n, err := strconv.Atoi(p); err == nil && n > 0 && n <= 1000 {
			points = n
		}
	}

	region := models.Regions[0]
	if name := c.Query("region"); name != "" {
		found := false
		for _, r := range models.Regions {
			if r.Region == name {
				region = r
				found = true
				break
			}
		}
		if !found {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown region"})
			return
		}
	}

	gen := generator.NewSeeded(h.histSeed + h.histReq.Add(1))
	readings := gen.History(hazard, region, points, historyStep(hazard))
	c.JSON(http.StatusOK, gin.H{
		"hazard":   hazard,
		"region":   region.Region,
		"count":    len(readings),
		"readings": readings,
	})
}
