package handler

import (
	"errors"
	"net/http"
	"time"

	"campus-gate/internal/service"

	"github.com/gin-gonic/gin"
)

type breakRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
}

// ToggleBreak starts or ends a break for the employee's open day.
func (h *Handler) ToggleBreak(c *gin.Context) {
	var req breakRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "employee_id is required"})
		return
	}

	record, err := h.attendanceService.ToggleBreak(req.EmployeeID, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoActiveSession):
			c.JSON(http.StatusConflict, gin.H{"error": "no active session for today"})
		case errors.Is(err, service.ErrSessionAlreadyClosed):
			c.JSON(http.StatusConflict, gin.H{"error": "day already checked out"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to toggle break"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"record": record,
		"state":  record.State(),
	})
}

// TodayRecord returns today's record plus live duration counters.
func (h *Handler) TodayRecord(c *gin.Context) {
	employeeID := c.Param("employeeId")
	now := time.Now()

	record, err := h.attendanceService.TodayRecord(employeeID, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load record"})
		return
	}
	if record == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no attendance record for today"})
		return
	}

	work, brk := h.attendanceService.ComputeDurations(record, now)
	c.JSON(http.StatusOK, gin.H{
		"record":        record,
		"state":         record.State(),
		"work_seconds":  int(work.Seconds()),
		"break_seconds": int(brk.Seconds()),
	})
}
