package repository

import (
	"errors"

	"campus-gate/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type HolidayRepository interface {
	Create(holiday *models.Holiday) error
	CreateBatch(holidays []*models.Holiday) (int, error)
	GetByDate(date string) (*models.Holiday, error)
	GetAll() ([]*models.Holiday, error)
}

type GormHolidayRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormHolidayRepository(db *gorm.DB) (*GormHolidayRepository, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if err := db.AutoMigrate(&models.Holiday{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate holidays table")
		return nil, err
	}

	logger.Info("Holiday repository initialized")

	return &GormHolidayRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *GormHolidayRepository) Create(holiday *models.Holiday) error {
	r.logger.WithFields(logrus.Fields{
		"date": holiday.Date,
		"name": holiday.Name,
	}).Info("Creating holiday")

	if !holiday.IsValid() {
		r.logger.WithField("date", holiday.Date).Warn("Invalid holiday data")
		return errors.New("invalid holiday data")
	}

	result := r.db.Create(holiday)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to create holiday")
		return result.Error
	}

	return nil
}

// CreateBatch inserts holidays, skipping dates already present.
// Returns the number actually inserted.
func (r *GormHolidayRepository) CreateBatch(holidays []*models.Holiday) (int, error) {
	created := 0
	for _, h := range holidays {
		existing, err := r.GetByDate(h.Date)
		if err != nil {
			return created, err
		}
		if existing != nil {
			continue
		}
		if err := r.Create(h); err != nil {
			return created, err
		}
		created++
	}

	r.logger.WithFields(logrus.Fields{
		"given":   len(holidays),
		"created": created,
	}).Info("Holiday batch imported")

	return created, nil
}

func (r *GormHolidayRepository) GetByDate(date string) (*models.Holiday, error) {
	var holiday models.Holiday
	result := r.db.First(&holiday, "date = ?", date)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get holiday by date")
		return nil, result.Error
	}

	return &holiday, nil
}

func (r *GormHolidayRepository) GetAll() ([]*models.Holiday, error) {
	var holidays []*models.Holiday
	result := r.db.Order("date").Find(&holidays)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get holidays")
		return nil, result.Error
	}
	return holidays, nil
}
