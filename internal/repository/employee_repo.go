package repository

import (
	"errors"

	"campus-gate/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type EmployeeRepository interface {
	Create(employee *models.Employee) error
	Update(employee *models.Employee) error
	GetByID(id string) (*models.Employee, error)
	GetAll() ([]*models.Employee, error)
	GetActive() ([]*models.Employee, error)
	Deactivate(id string) error
}

type GormEmployeeRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormEmployeeRepository(db *gorm.DB) (*GormEmployeeRepository, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if err := db.AutoMigrate(&models.Employee{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate employees table")
		return nil, err
	}

	logger.Info("Employee repository initialized")

	return &GormEmployeeRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *GormEmployeeRepository) Create(employee *models.Employee) error {
	r.logger.WithFields(logrus.Fields{
		"id":   employee.ID,
		"name": employee.Name,
	}).Info("Creating employee")

	if !employee.IsValid() {
		r.logger.WithField("id", employee.ID).Warn("Invalid employee data")
		return errors.New("invalid employee data")
	}

	result := r.db.Create(employee)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to create employee")
		return result.Error
	}

	return nil
}

func (r *GormEmployeeRepository) Update(employee *models.Employee) error {
	r.logger.WithField("id", employee.ID).Info("Updating employee")

	if !employee.IsValid() {
		r.logger.WithField("id", employee.ID).Warn("Invalid employee data for update")
		return errors.New("invalid employee data")
	}

	existing, err := r.GetByID(employee.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		r.logger.WithField("id", employee.ID).Warn("Employee not found for update")
		return errors.New("employee not found")
	}

	result := r.db.Save(employee)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to update employee")
		return result.Error
	}

	return nil
}

func (r *GormEmployeeRepository) GetByID(id string) (*models.Employee, error) {
	var employee models.Employee
	result := r.db.First(&employee, "id = ?", id)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		r.logger.WithField("id", id).Debug("Employee not found")
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get employee by ID")
		return nil, result.Error
	}

	return &employee, nil
}

func (r *GormEmployeeRepository) GetAll() ([]*models.Employee, error) {
	var employees []*models.Employee
	result := r.db.Order("name").Find(&employees)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get employees")
		return nil, result.Error
	}
	return employees, nil
}

func (r *GormEmployeeRepository) GetActive() ([]*models.Employee, error) {
	var employees []*models.Employee
	result := r.db.Where("status = ?", models.EmployeeActive).Order("name").Find(&employees)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get active employees")
		return nil, result.Error
	}
	return employees, nil
}

// Deactivate marks the employee inactive. Employees are never hard-deleted
// so historical attendance keeps a valid reference.
func (r *GormEmployeeRepository) Deactivate(id string) error {
	r.logger.WithField("id", id).Info("Deactivating employee")

	result := r.db.Model(&models.Employee{}).Where("id = ?", id).
		Update("status", models.EmployeeInactive)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to deactivate employee")
		return result.Error
	}
	if result.RowsAffected == 0 {
		r.logger.WithField("id", id).Warn("Employee not found for deactivation")
		return errors.New("employee not found")
	}

	return nil
}
