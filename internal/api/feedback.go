package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fanpulse/backend/internal/middleware"
	"github.com/fanpulse/backend/internal/service"
	"github.com/fanpulse/backend/internal/types"
)

// FeedbackHandler handles record listing, lookup and editing.
type FeedbackHandler struct {
	feedbackService service.IFeedbackService
}

// NewFeedbackHandler creates a new FeedbackHandler
func NewFeedbackHandler(feedbackService service.IFeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

// RegisterRoutes registers the feedback routes
func (h *FeedbackHandler) RegisterRoutes(router *gin.RouterGroup) {
	feedback := router.Group("/feedback")
	{
		feedback.GET("/recent", h.ListRecent)
		feedback.GET("/:id", h.GetRecord)
		feedback.POST("/update", h.UpdateRecord)
		feedback.POST("/email-tracking", h.RecordEmailTracking)
	}
}

// ListRecent returns one page of recent feedback.
func (h *FeedbackHandler) ListRecent(c *gin.Context) {
	identity := middleware.IdentityFromContext(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	page := queryInt(c, "page", 1)
	pageSize := queryInt(c, "page_size", service.DefaultPageSize)
	category := c.Query("category")

	resp, err := h.feedbackService.ListRecent(c.Request.Context(), identity, page, pageSize, category)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list feedback"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetRecord returns one record by id.
func (h *FeedbackHandler) GetRecord(c *gin.Context) {
	identity := middleware.IdentityFromContext(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid feedback id"})
		return
	}

	record, err := h.feedbackService.GetRecord(c.Request.Context(), identity, id)
	if err != nil {
		h.writeError(c, err, "failed to get feedback")
		return
	}
	c.JSON(http.StatusOK, record)
}

// UpdateRecord edits one record.
func (h *FeedbackHandler) UpdateRecord(c *gin.Context) {
	identity := middleware.IdentityFromContext(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req types.UpdateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.UpdateFeedbackResponse{Success: false, Message: "no data provided"})
		return
	}

	resp, err := h.feedbackService.UpdateRecord(c.Request.Context(), identity, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			c.JSON(http.StatusBadRequest, types.UpdateFeedbackResponse{Success: false, Message: err.Error()})
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, types.UpdateFeedbackResponse{Success: false, Message: "feedback not found"})
		case errors.Is(err, service.ErrAccessDenied):
			c.JSON(http.StatusForbidden, types.UpdateFeedbackResponse{Success: false, Message: "access denied"})
		default:
			c.JSON(http.StatusInternalServerError, types.UpdateFeedbackResponse{Success: false, Message: "failed to update feedback"})
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RecordEmailTracking records email-tracking metadata for one record.
func (h *FeedbackHandler) RecordEmailTracking(c *gin.Context) {
	identity := middleware.IdentityFromContext(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req types.EmailTrackingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no data provided"})
		return
	}

	resp, err := h.feedbackService.RecordEmailTracking(c.Request.Context(), identity, &req)
	if err != nil {
		h.writeError(c, err, "failed to record email tracking")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Health reports liveness plus the current snapshot's origin and degraded
// state.
func (h *FeedbackHandler) Health(c *gin.Context) {
	status := gin.H{"status": "ok"}
	if snap, ok := h.feedbackService.SnapshotInfo(); ok {
		status["snapshot_origin"] = snap.Origin
		status["degraded"] = snap.Degraded
		status["fetched_at"] = snap.FetchedAt
	}
	c.JSON(http.StatusOK, status)
}

func (h *FeedbackHandler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "feedback not found"})
	case errors.Is(err, service.ErrAccessDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

func queryInt(c *gin.Context, key string, fallback int) int {
	v := c.Query(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
