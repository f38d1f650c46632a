package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campus-gate/internal/config"
	"campus-gate/internal/handler"
	"campus-gate/internal/repository"
	"campus-gate/internal/service"
	"campus-gate/pkg/gemini"
	"campus-gate/pkg/notify"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	logrus.Info("Initializing config...")
	cfg := config.GetServerConfig()
	logrus.Info("Config initialized...")

	db, err := gorm.Open(sqlite.Open(cfg.DatabaseURL), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true, // SQLite limitation
	})
	if err != nil {
		logrus.Fatal("Failed to connect to database:", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logrus.Fatal("Failed to get database instance:", err)
	}

	// Foreign key enforcement is off by default in SQLite
	if _, err = sqlDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		logrus.Infof("Warning: Failed to enable foreign keys: %v", err)
	}

	employeeRepo, err := repository.NewGormEmployeeRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create employee repository")
	}

	attendanceRepo, err := repository.NewGormAttendanceRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create attendance repository")
	}

	shiftRepo, err := repository.NewGormShiftRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create shift repository")
	}

	holidayRepo, err := repository.NewGormHolidayRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create holiday repository")
	}

	leaveRepo, err := repository.NewGormLeaveRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create leave repository")
	}

	if err := shiftRepo.SeedDefault(); err != nil {
		logrus.Infof("Warning: Failed to seed default shift: %v", err)
	}

	// Missing credential disables recognition but keeps the server up
	var recognizer service.Recognizer
	if cfg.GeminiAPIKey != "" {
		client, err := gemini.NewClient(cfg.GeminiAPIKey)
		if err != nil {
			logrus.WithError(err).Warn("Failed to create recognition client, gate runs offline")
		} else {
			recognizer = client
		}
	}

	notifier, err := notify.NewTelegramNotifier(cfg.TelegramToken, cfg.AdminChatID)
	if err != nil {
		logrus.WithError(err).Warn("Failed to create Telegram notifier, alerts disabled")
		notifier = nil
	}

	attendanceService := service.NewAttendanceService(attendanceRepo, employeeRepo, cfg.GateDeviceID)
	payrollService := service.NewPayrollService(attendanceRepo, employeeRepo)
	employeeService := service.NewEmployeeService(employeeRepo, shiftRepo, recognizer)
	policyService := service.NewPolicyService(shiftRepo, holidayRepo, leaveRepo)
	gateService := service.NewGateService(recognizer, employeeRepo, attendanceService, notifier)
	authService := service.NewAuthService(cfg.AdminPasswordHash, cfg.JWTSecret)

	apiHandler := handler.NewHandler(
		gateService,
		attendanceService,
		payrollService,
		employeeService,
		policyService,
		authService,
		cfg,
	)

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: apiHandler.Router(),
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logrus.Infof("Server listening on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatal("Server failed:", err)
		}
	}()

	logrus.Info("Server started. Press Ctrl+C to stop.")
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.Infof("Error shutting down server: %v", err)
	}

	if err := sqlDB.Close(); err != nil {
		logrus.Infof("Error closing database: %v", err)
	}

	logrus.Info("Server stopped gracefully")
}
