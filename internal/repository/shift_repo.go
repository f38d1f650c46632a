package repository

import (
	"errors"

	"campus-gate/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// DefaultShiftID is the seed shift created on first run.
const DefaultShiftID = "SCHED-DEFAULT"

type ShiftRepository interface {
	Create(shift *models.Shift) error
	GetByID(id string) (*models.Shift, error)
	GetAll() ([]*models.Shift, error)
	SeedDefault() error
}

type GormShiftRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormShiftRepository(db *gorm.DB) (*GormShiftRepository, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if err := db.AutoMigrate(&models.Shift{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate shifts table")
		return nil, err
	}

	logger.Info("Shift repository initialized")

	return &GormShiftRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *GormShiftRepository) Create(shift *models.Shift) error {
	r.logger.WithFields(logrus.Fields{
		"id":   shift.ID,
		"name": shift.Name,
	}).Info("Creating shift")

	if !shift.IsValid() {
		r.logger.WithField("id", shift.ID).Warn("Invalid shift data")
		return errors.New("invalid shift data")
	}

	result := r.db.Create(shift)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to create shift")
		return result.Error
	}

	return nil
}

func (r *GormShiftRepository) GetByID(id string) (*models.Shift, error) {
	var shift models.Shift
	result := r.db.First(&shift, "id = ?", id)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		r.logger.WithField("id", id).Debug("Shift not found")
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get shift by ID")
		return nil, result.Error
	}

	return &shift, nil
}

func (r *GormShiftRepository) GetAll() ([]*models.Shift, error) {
	var shifts []*models.Shift
	result := r.db.Order("name").Find(&shifts)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get shifts")
		return nil, result.Error
	}
	return shifts, nil
}

// SeedDefault creates the standard shift when no shifts exist yet.
func (r *GormShiftRepository) SeedDefault() error {
	existing, err := r.GetByID(DefaultShiftID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	shift := &models.Shift{
		ID:                 DefaultShiftID,
		Name:               "Standard Academic Day",
		Type:               models.ShiftFixed,
		StartTime:          "08:30",
		EndTime:            "16:30",
		GracePeriodMinutes: 10,
		BreakMinutes:       45,
		MinOvertimeHours:   1,
	}

	r.logger.WithField("id", shift.ID).Info("Seeding default shift")
	return r.Create(shift)
}
