package repository

import (
	"errors"

	"campus-gate/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type LeaveRepository interface {
	Create(request *models.LeaveRequest) error
	GetByID(id string) (*models.LeaveRequest, error)
	GetByEmployee(employeeID string) ([]*models.LeaveRequest, error)
	GetAll() ([]*models.LeaveRequest, error)
	UpdateStatus(id, status string) error
}

type GormLeaveRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormLeaveRepository(db *gorm.DB) (*GormLeaveRepository, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if err := db.AutoMigrate(&models.LeaveRequest{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate leave_requests table")
		return nil, err
	}

	logger.Info("Leave repository initialized")

	return &GormLeaveRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *GormLeaveRepository) Create(request *models.LeaveRequest) error {
	r.logger.WithFields(logrus.Fields{
		"id":          request.ID,
		"employee_id": request.EmployeeID,
		"type":        request.Type,
	}).Info("Creating leave request")

	if !request.IsValid() {
		r.logger.WithField("id", request.ID).Warn("Invalid leave request data")
		return errors.New("invalid leave request data")
	}

	result := r.db.Create(request)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to create leave request")
		return result.Error
	}

	return nil
}

func (r *GormLeaveRepository) GetByID(id string) (*models.LeaveRequest, error) {
	var request models.LeaveRequest
	result := r.db.First(&request, "id = ?", id)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		r.logger.WithField("id", id).Debug("Leave request not found")
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get leave request by ID")
		return nil, result.Error
	}

	return &request, nil
}

func (r *GormLeaveRepository) GetByEmployee(employeeID string) ([]*models.LeaveRequest, error) {
	var requests []*models.LeaveRequest
	result := r.db.Where("employee_id = ?", employeeID).Order("start_date DESC").Find(&requests)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get leave requests by employee")
		return nil, result.Error
	}
	return requests, nil
}

func (r *GormLeaveRepository) GetAll() ([]*models.LeaveRequest, error) {
	var requests []*models.LeaveRequest
	result := r.db.Order("start_date DESC").Find(&requests)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get leave requests")
		return nil, result.Error
	}
	return requests, nil
}

func (r *GormLeaveRepository) UpdateStatus(id, status string) error {
	r.logger.WithFields(logrus.Fields{
		"id":     id,
		"status": status,
	}).Info("Updating leave request status")

	if status != models.LeavePending && status != models.LeaveApproved && status != models.LeaveRejected {
		return errors.New("invalid leave status")
	}

	result := r.db.Model(&models.LeaveRequest{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to update leave request status")
		return result.Error
	}
	if result.RowsAffected == 0 {
		r.logger.WithField("id", id).Warn("Leave request not found for status update")
		return errors.New("leave request not found")
	}

	return nil
}
