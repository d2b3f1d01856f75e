package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/railpick/railpick/backend/dashboard-service/internal/analytics"
	"github.com/railpick/railpick/backend/dashboard-service/internal/config"
	"github.com/railpick/railpick/backend/dashboard-service/pkg/logger"
	"github.com/railpick/railpick/backend/dashboard-service/pkg/metrics"
)

// DashboardHandler serves the aggregate bundle as JSON and as the
// server-rendered operator page. All reads go through the single-slot
// bundle cache; a manual refresh invalidates it.
type DashboardHandler struct {
	svc   *analytics.Service
	cache *analytics.Cache
	cfg   config.DashboardConfig
}

func NewDashboardHandler(svc *analytics.Service, cache *analytics.Cache, cfg config.DashboardConfig) *DashboardHandler {
	return &DashboardHandler{svc: svc, cache: cache, cfg: cfg}
}

// Register wires the dashboard routes onto the engine.
func (h *DashboardHandler) Register(r *gin.Engine) {
	r.GET("/admin", h.AdminPage)
	r.GET("/api/v1/dashboard", h.GetBundle)
	r.POST("/api/v1/dashboard/refresh", h.Refresh)
}

// GetBundle returns the aggregate bundle, served from cache when valid.
func (h *DashboardHandler) GetBundle(c *gin.Context) {
	b, err := h.bundle(c, false)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, b)
}

// Refresh invalidates the cache and returns a freshly computed bundle.
func (h *DashboardHandler) Refresh(c *gin.Context) {
	h.cache.Invalidate()
	metrics.CacheInvalidations.Inc()
	b, err := h.bundle(c, true)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, b)
}

// AdminPage renders the operator dashboard with the bundle embedded for the
// in-browser charts. The displayed "last refreshed" stamp is wall-clock at
// render time, not the bundle computation time.
func (h *DashboardHandler) AdminPage(c *gin.Context) {
	b, err := h.bundle(c, false)
	if err != nil {
		c.String(http.StatusServiceUnavailable, "store unavailable: %v", err)
		return
	}
	payload, err := json.Marshal(b)
	if err != nil {
		c.String(http.StatusInternalServerError, "encode bundle: %v", err)
		return
	}
	html := fmt.Sprintf(adminHTMLTemplate,
		time.Now().Format("2006-01-02 15:04:05"),
		int(h.cfg.CacheTTL.Seconds()),
		h.cfg.ChartWindowDays,
		string(payload),
		h.cfg.ChartWindowDays,
	)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// bundle serves from the cache unless force is set or the slot is stale.
func (h *DashboardHandler) bundle(c *gin.Context, force bool) (*analytics.Bundle, error) {
	now := time.Now().UTC()
	if !force {
		if b, ok := h.cache.Get(now); ok {
			metrics.CacheHits.Inc()
			return b, nil
		}
		// Only a read that found the slot stale or empty is a miss; a
		// forced refresh bypasses the cache on purpose.
		metrics.CacheMisses.Inc()
	}

	start := time.Now()
	b, err := h.svc.ComputeAggregates(c.Request.Context(), now)
	metrics.AggregateDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.AggregateComputations.WithLabelValues("error").Inc()
		logger.Errorf("aggregate computation failed: %v", err)
		return nil, err
	}
	metrics.AggregateComputations.WithLabelValues("ok").Inc()
	h.cache.Put(b, now)
	return b, nil
}
