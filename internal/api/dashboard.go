package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fanpulse/backend/internal/middleware"
	"github.com/fanpulse/backend/internal/service"
	"github.com/fanpulse/backend/internal/types"
)

// DashboardHandler handles the aggregate analytics endpoints.
type DashboardHandler struct {
	analytics service.IAnalyticsService
	feedback  service.IFeedbackService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(analytics service.IAnalyticsService, feedback service.IFeedbackService) *DashboardHandler {
	return &DashboardHandler{analytics: analytics, feedback: feedback}
}

// RegisterRoutes registers the dashboard routes
func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/dashboard", h.GetDashboard)
	router.GET("/dashboard/summary", h.GetSummary)
	router.GET("/categories", h.GetCategories)
}

// GetDashboard returns the filtered dashboard metrics.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	identity := middleware.IdentityFromContext(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var query types.DashboardQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.analytics.Dashboard(c.Request.Context(), identity, &query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute dashboard metrics"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetSummary returns the compact summary metrics.
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	identity := middleware.IdentityFromContext(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	resp, err := h.analytics.Summary(c.Request.Context(), identity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute summary"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetCategories returns the caller's visible categories in first-seen
// order.
func (h *DashboardHandler) GetCategories(c *gin.Context) {
	identity := middleware.IdentityFromContext(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	categories, err := h.feedback.Categories(c.Request.Context(), identity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list categories"})
		return
	}
	c.JSON(http.StatusOK, categories)
}
