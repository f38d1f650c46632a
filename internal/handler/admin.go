package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"campus-gate/internal/models"
	"campus-gate/internal/service"

	"github.com/gin-gonic/gin"
)

// Dashboard returns today's headline counters for the admin console.
func (h *Handler) Dashboard(c *gin.Context) {
	today := models.DateKey(time.Now())

	summary, err := h.attendanceService.SummarizeDay(today)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to summarize day"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":    today,
		"summary": summary,
	})
}

// ListEmployees returns the whole roster.
func (h *Handler) ListEmployees(c *gin.Context) {
	employees, err := h.employeeService.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list employees"})
		return
	}
	c.JSON(http.StatusOK, employees)
}

// EnrollEmployee registers a new employee from capture photos.
func (h *Handler) EnrollEmployee(c *gin.Context) {
	var input service.EnrollmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid enrollment payload"})
		return
	}

	employee, err := h.employeeService.Enroll(c.Request.Context(), &input)
	if err != nil {
		if errors.Is(err, service.ErrRecognitionDisabled) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "recognition service unavailable"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, employee)
}

// UpdateEmployee applies admin edits to a roster entry.
func (h *Handler) UpdateEmployee(c *gin.Context) {
	var employee models.Employee
	if err := c.ShouldBindJSON(&employee); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid employee payload"})
		return
	}
	employee.ID = c.Param("id")

	updated, err := h.employeeService.Update(&employee)
	if err != nil {
		if errors.Is(err, service.ErrUnknownEmployee) {
			c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeactivateEmployee retires an employee; history stays intact.
func (h *Handler) DeactivateEmployee(c *gin.Context) {
	if err := h.employeeService.Deactivate(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deactivated"})
}

// ListAttendance lists records, optionally filtered to one date.
func (h *Handler) ListAttendance(c *gin.Context) {
	date := c.Query("date")

	records, err := h.attendanceService.ListRecords(date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list attendance"})
		return
	}
	c.JSON(http.StatusOK, records)
}

// ListEmployeeAttendance lists one employee's history, most recent first.
func (h *Handler) ListEmployeeAttendance(c *gin.Context) {
	records, err := h.attendanceService.History(c.Param("employeeId"), 31)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list attendance"})
		return
	}
	c.JSON(http.StatusOK, records)
}

// ListShifts returns all shift definitions.
func (h *Handler) ListShifts(c *gin.Context) {
	shifts, err := h.policyService.GetShifts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list shifts"})
		return
	}
	c.JSON(http.StatusOK, shifts)
}

// CreateShift registers a shift definition.
func (h *Handler) CreateShift(c *gin.Context) {
	var shift models.Shift
	if err := c.ShouldBindJSON(&shift); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid shift payload"})
		return
	}

	created, err := h.policyService.CreateShift(&shift)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListHolidays returns the holiday calendar.
func (h *Handler) ListHolidays(c *gin.Context) {
	holidays, err := h.policyService.GetHolidays()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list holidays"})
		return
	}
	c.JSON(http.StatusOK, holidays)
}

// AddHoliday appends one holiday.
func (h *Handler) AddHoliday(c *gin.Context) {
	var holiday models.Holiday
	if err := c.ShouldBindJSON(&holiday); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid holiday payload"})
		return
	}

	created, err := h.policyService.AddHoliday(&holiday)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ImportHolidays bulk-loads a holiday calendar JSON document.
func (h *Handler) ImportHolidays(c *gin.Context) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read body"})
		return
	}

	created, err := h.policyService.ImportHolidays(data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": created})
}

// ListLeaves returns all leave requests.
func (h *Handler) ListLeaves(c *gin.Context) {
	leaves, err := h.policyService.GetLeaves()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list leave requests"})
		return
	}
	c.JSON(http.StatusOK, leaves)
}

// SubmitLeave files a leave request on behalf of an employee.
func (h *Handler) SubmitLeave(c *gin.Context) {
	var request models.LeaveRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid leave payload"})
		return
	}

	created, err := h.policyService.SubmitLeave(&request)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

type leaveStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ResolveLeave approves or rejects a pending leave request.
func (h *Handler) ResolveLeave(c *gin.Context) {
	var req leaveStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	if err := h.policyService.ResolveLeave(c.Param("id"), req.Status); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": req.Status})
}

// Payroll returns the per-employee pay view for a month (defaults to the
// current one).
func (h *Handler) Payroll(c *gin.Context) {
	now := time.Now()
	year, month := now.Year(), int(now.Month())

	if y, err := strconv.Atoi(c.Query("year")); err == nil {
		year = y
	}
	if m, err := strconv.Atoi(c.Query("month")); err == nil && m >= 1 && m <= 12 {
		month = m
	}

	entries, err := h.payrollService.ComputeMonth(year, month, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute payroll"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":    year,
		"month":   month,
		"entries": entries,
	})
}
