package handler

import (
	"errors"
	"net/http"
	"time"

	"campus-gate/internal/service"

	"github.com/gin-gonic/gin"
)

type identifyRequest struct {
	Frame string `json:"frame" binding:"required"`
}

type verifyRequest struct {
	EmployeeID string   `json:"employee_id" binding:"required"`
	Frames     []string `json:"frames" binding:"required"`
}

// GateStatus tells the kiosk whether scanning is possible right now.
func (h *Handler) GateStatus(c *gin.Context) {
	now := time.Now()
	c.JSON(http.StatusOK, gin.H{
		"recognition_enabled": h.gateService.Enabled(),
		"cooldown_active":     service.CooldownActive(h.gateService.LastSuccess(), now),
	})
}

// Identify runs a single frame against the roster.
func (h *Handler) Identify(c *gin.Context) {
	var req identifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "frame is required"})
		return
	}

	result, err := h.gateService.Identify(c.Request.Context(), req.Frame, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecognitionDisabled):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "recognition service unavailable"})
		case errors.Is(err, service.ErrCooldownActive):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "cooldown active, try again shortly"})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": "identification failed"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// VerifyAndRecord runs the liveness burst and applies the attendance toggle.
func (h *Handler) VerifyAndRecord(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "employee_id and frames are required"})
		return
	}
	if len(req.Frames) != service.LivenessFrameCount {
		c.JSON(http.StatusBadRequest, gin.H{"error": "liveness burst must contain exactly 5 frames"})
		return
	}

	result, err := h.gateService.VerifyAndRecord(c.Request.Context(), req.EmployeeID, req.Frames, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecognitionDisabled):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "recognition service unavailable"})
		case errors.Is(err, service.ErrLivenessRejected):
			c.JSON(http.StatusForbidden, gin.H{"error": "liveness check failed"})
		case errors.Is(err, service.ErrUnknownEmployee), errors.Is(err, service.ErrInactiveEmployee):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": "verification failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"kind":   result.Kind,
		"record": result.Record,
	})
}
