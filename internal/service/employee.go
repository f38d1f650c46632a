package service

import (
	"context"
	"errors"
	"strings"

	"campus-gate/internal/models"
	"campus-gate/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// EmployeeService manages the roster. Enrollment asks the recognition
// gateway for a visual signature; the signature, not the photos, is what
// the gate matches against later.
type EmployeeService struct {
	employeeRepo repository.EmployeeRepository
	shiftRepo    repository.ShiftRepository
	recognizer   Recognizer
	logger       *logrus.Logger
}

func NewEmployeeService(
	employeeRepo repository.EmployeeRepository,
	shiftRepo repository.ShiftRepository,
	recognizer Recognizer,
) *EmployeeService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &EmployeeService{
		employeeRepo: employeeRepo,
		shiftRepo:    shiftRepo,
		recognizer:   recognizer,
		logger:       logger,
	}
}

// EnrollmentInput is the admin enrollment form plus capture photos.
type EnrollmentInput struct {
	Name        string             `json:"name"`
	Department  string             `json:"department"`
	Role        string             `json:"role"`
	JoiningDate string             `json:"joining_date"`
	ShiftID     string             `json:"shift_id"`
	Salary      models.SalaryConfig `json:"salary_config"`
	DOB         string             `json:"dob"`
	Phone       string             `json:"phone"`
	Email       string             `json:"email"`
	Address     string             `json:"address"`
	Bank        models.BankDetails `json:"bank_details"`
	Photos      []string           `json:"photos"`
	Thumbnail   string             `json:"thumbnail"`
}

// Enroll registers a new employee, generating the visual signature from the
// provided photos.
func (s *EmployeeService) Enroll(ctx context.Context, input *EnrollmentInput) (*models.Employee, error) {
	if s.recognizer == nil {
		return nil, ErrRecognitionDisabled
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, errors.New("employee name is required")
	}
	if len(input.Photos) == 0 {
		return nil, errors.New("at least one enrollment photo is required")
	}

	if input.ShiftID != "" {
		shift, err := s.shiftRepo.GetByID(input.ShiftID)
		if err != nil {
			return nil, err
		}
		if shift == nil {
			return nil, errors.New("unknown shift")
		}
	}

	signature, err := s.recognizer.GenerateVisualSignature(ctx, input.Photos)
	if err != nil {
		s.logger.WithError(err).Error("Signature generation failed")
		return nil, err
	}

	salary := input.Salary
	if salary.Type == "" {
		salary.Type = models.SalaryMonthly
	}
	if salary.Currency == "" {
		salary.Currency = "INR"
	}
	if salary.OvertimeRate == 0 {
		salary.OvertimeRate = 1.5
	}

	employee := &models.Employee{
		ID:              "EMP-" + uuid.NewString(),
		Name:            strings.TrimSpace(input.Name),
		Department:      input.Department,
		Role:            input.Role,
		Status:          models.EmployeeActive,
		VisualSignature: signature,
		Thumbnail:       input.Thumbnail,
		JoiningDate:     input.JoiningDate,
		ShiftID:         input.ShiftID,
		SalaryConfig:    salary,
		DOB:             input.DOB,
		Phone:           input.Phone,
		Email:           input.Email,
		Address:         input.Address,
		BankDetails:     input.Bank,
	}

	if err := s.employeeRepo.Create(employee); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"id":   employee.ID,
		"name": employee.Name,
	}).Info("Employee enrolled")

	return employee, nil
}

// Update applies admin edits to an existing employee. The visual signature
// and ID are not editable through this path.
func (s *EmployeeService) Update(employee *models.Employee) (*models.Employee, error) {
	existing, err := s.employeeRepo.GetByID(employee.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrUnknownEmployee
	}

	employee.VisualSignature = existing.VisualSignature
	employee.CreatedAt = existing.CreatedAt

	if err := s.employeeRepo.Update(employee); err != nil {
		return nil, err
	}

	return employee, nil
}

// Deactivate retires an employee from the gate without touching history.
func (s *EmployeeService) Deactivate(id string) error {
	return s.employeeRepo.Deactivate(id)
}

func (s *EmployeeService) GetByID(id string) (*models.Employee, error) {
	return s.employeeRepo.GetByID(id)
}

func (s *EmployeeService) GetAll() ([]*models.Employee, error) {
	return s.employeeRepo.GetAll()
}
