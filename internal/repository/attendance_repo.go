package repository

import (
	"errors"
	"time"

	"campus-gate/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AttendanceRepository interface {
	Save(record *models.AttendanceRecord) error
	GetByEmployeeAndDate(employeeID, date string) (*models.AttendanceRecord, error)
	GetByEmployee(employeeID string, limit int) ([]*models.AttendanceRecord, error)
	GetByDate(date string) ([]*models.AttendanceRecord, error)
	GetByEmployeeAndMonth(employeeID string, year, month int) ([]*models.AttendanceRecord, error)
	GetAll() ([]*models.AttendanceRecord, error)
	CountPresentByEmployeeAndMonth(employeeID string, year, month int) (int, error)
}

type GormAttendanceRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormAttendanceRepository(db *gorm.DB) (*GormAttendanceRepository, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if err := db.AutoMigrate(&models.AttendanceRecord{}, &models.BreakInterval{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate attendance tables")
		return nil, err
	}

	logger.Info("Attendance repository initialized")

	return &GormAttendanceRepository{
		db:     db,
		logger: logger,
	}, nil
}

// Save upserts the record keyed by (employee_id, date). The break intervals
// are replaced wholesale so the stored row always mirrors the given record.
func (r *GormAttendanceRepository) Save(record *models.AttendanceRecord) error {
	r.logger.WithFields(logrus.Fields{
		"id":          record.ID,
		"employee_id": record.EmployeeID,
		"date":        record.Date,
	}).Info("Saving attendance record")

	if !record.IsValid() {
		r.logger.WithFields(logrus.Fields{
			"employee_id": record.EmployeeID,
			"date":        record.Date,
		}).Warn("Invalid attendance record data")
		return errors.New("invalid attendance record data")
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Breaks").Save(record).Error; err != nil {
			r.logger.WithError(err).Error("Failed to save attendance record")
			return err
		}
		if err := tx.Where("record_id = ?", record.ID).
			Delete(&models.BreakInterval{}).Error; err != nil {
			r.logger.WithError(err).Error("Failed to clear break intervals")
			return err
		}
		for i := range record.Breaks {
			record.Breaks[i].ID = 0
			record.Breaks[i].RecordID = record.ID
		}
		if len(record.Breaks) > 0 {
			if err := tx.Create(&record.Breaks).Error; err != nil {
				r.logger.WithError(err).Error("Failed to save break intervals")
				return err
			}
		}
		return nil
	})
}

func (r *GormAttendanceRepository) GetByEmployeeAndDate(employeeID, date string) (*models.AttendanceRecord, error) {
	var record models.AttendanceRecord
	result := r.db.Preload("Breaks", func(db *gorm.DB) *gorm.DB {
		return db.Order("start")
	}).Where("employee_id = ? AND date = ?", employeeID, date).First(&record)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		r.logger.WithFields(logrus.Fields{
			"employee_id": employeeID,
			"date":        date,
		}).Debug("Attendance record not found")
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get attendance record")
		return nil, result.Error
	}

	return &record, nil
}

func (r *GormAttendanceRepository) GetByEmployee(employeeID string, limit int) ([]*models.AttendanceRecord, error) {
	var records []*models.AttendanceRecord

	query := r.db.Preload("Breaks", func(db *gorm.DB) *gorm.DB {
		return db.Order("start")
	}).Where("employee_id = ?", employeeID).Order("date DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	result := query.Find(&records)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get attendance records by employee")
		return nil, result.Error
	}

	return records, nil
}

func (r *GormAttendanceRepository) GetByDate(date string) ([]*models.AttendanceRecord, error) {
	var records []*models.AttendanceRecord
	result := r.db.Preload("Breaks", func(db *gorm.DB) *gorm.DB {
		return db.Order("start")
	}).Where("date = ?", date).Find(&records)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get attendance records by date")
		return nil, result.Error
	}
	return records, nil
}

func (r *GormAttendanceRepository) GetByEmployeeAndMonth(employeeID string, year, month int) ([]*models.AttendanceRecord, error) {
	var records []*models.AttendanceRecord

	startDate := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	endDate := startDate.AddDate(0, 1, -1)

	result := r.db.Preload("Breaks", func(db *gorm.DB) *gorm.DB {
		return db.Order("start")
	}).Where("employee_id = ? AND date BETWEEN ? AND ?",
		employeeID,
		startDate.Format("2006-01-02"),
		endDate.Format("2006-01-02")).
		Order("date DESC").
		Find(&records)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get attendance records by month")
		return nil, result.Error
	}

	return records, nil
}

func (r *GormAttendanceRepository) GetAll() ([]*models.AttendanceRecord, error) {
	var records []*models.AttendanceRecord
	result := r.db.Preload("Breaks", func(db *gorm.DB) *gorm.DB {
		return db.Order("start")
	}).Order("date DESC").Find(&records)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get attendance records")
		return nil, result.Error
	}
	return records, nil
}

// CountPresentByEmployeeAndMonth counts days in the month with a check-in.
func (r *GormAttendanceRepository) CountPresentByEmployeeAndMonth(employeeID string, year, month int) (int, error) {
	var count int64

	startDate := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	endDate := startDate.AddDate(0, 1, -1)

	result := r.db.Model(&models.AttendanceRecord{}).
		Where("employee_id = ? AND date BETWEEN ? AND ? AND check_in IS NOT NULL",
			employeeID,
			startDate.Format("2006-01-02"),
			endDate.Format("2006-01-02")).
		Count(&count)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to count present days")
		return 0, result.Error
	}

	return int(count), nil
}
