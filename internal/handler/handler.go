package handler

import (
	"net/http"

	"campus-gate/internal/config"
	"campus-gate/internal/middleware"
	"campus-gate/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	gateService       *service.GateService
	attendanceService *service.AttendanceService
	payrollService    *service.PayrollService
	employeeService   *service.EmployeeService
	policyService     *service.PolicyService
	authService       *service.AuthService
	config            *config.ServerConfig
}

func NewHandler(
	gateService *service.GateService,
	attendanceService *service.AttendanceService,
	payrollService *service.PayrollService,
	employeeService *service.EmployeeService,
	policyService *service.PolicyService,
	authService *service.AuthService,
	cfg *config.ServerConfig,
) *Handler {
	return &Handler{
		gateService:       gateService,
		attendanceService: attendanceService,
		payrollService:    payrollService,
		employeeService:   employeeService,
		policyService:     policyService,
		authService:       authService,
		config:            cfg,
	}
}

// Router builds the full HTTP surface for the kiosk front end.
func (h *Handler) Router() *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	router.GET("/api/health", h.Health)
	router.POST("/api/auth/login", h.Login)

	gate := router.Group("/api/gate")
	{
		gate.GET("/status", h.GateStatus)
		gate.POST("/identify", h.Identify)
		gate.POST("/verify", h.VerifyAndRecord)
	}

	attendance := router.Group("/api/attendance")
	{
		attendance.POST("/break", h.ToggleBreak)
		attendance.GET("/today/:employeeId", h.TodayRecord)
	}

	admin := router.Group("/api/admin")
	admin.Use(middleware.AdminAuth(h.authService.Secret()))
	{
		admin.GET("/dashboard", h.Dashboard)

		admin.GET("/employees", h.ListEmployees)
		admin.POST("/employees", h.EnrollEmployee)
		admin.PUT("/employees/:id", h.UpdateEmployee)
		admin.DELETE("/employees/:id", h.DeactivateEmployee)

		admin.GET("/attendance", h.ListAttendance)
		admin.GET("/attendance/:employeeId", h.ListEmployeeAttendance)

		admin.GET("/shifts", h.ListShifts)
		admin.POST("/shifts", h.CreateShift)

		admin.GET("/holidays", h.ListHolidays)
		admin.POST("/holidays", h.AddHoliday)
		admin.POST("/holidays/import", h.ImportHolidays)

		admin.GET("/leaves", h.ListLeaves)
		admin.POST("/leaves", h.SubmitLeave)
		admin.PUT("/leaves/:id/status", h.ResolveLeave)

		admin.GET("/payroll", h.Payroll)
	}

	return router
}

// Health is the liveness probe.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"recognition": h.gateService.Enabled(),
		"admin":       h.authService.Enabled(),
	})
}
