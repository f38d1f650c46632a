package service

import (
	"errors"
	"time"

	"campus-gate/internal/models"
	"campus-gate/internal/repository"
	"campus-gate/pkg/holidaycal"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// PolicyService covers the institutional policy surface: shifts, the holiday
// calendar, and leave requests.
type PolicyService struct {
	shiftRepo   repository.ShiftRepository
	holidayRepo repository.HolidayRepository
	leaveRepo   repository.LeaveRepository
	logger      *logrus.Logger
}

func NewPolicyService(
	shiftRepo repository.ShiftRepository,
	holidayRepo repository.HolidayRepository,
	leaveRepo repository.LeaveRepository,
) *PolicyService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &PolicyService{
		shiftRepo:   shiftRepo,
		holidayRepo: holidayRepo,
		leaveRepo:   leaveRepo,
		logger:      logger,
	}
}

// CreateShift registers a new shift definition.
func (s *PolicyService) CreateShift(shift *models.Shift) (*models.Shift, error) {
	if shift.ID == "" {
		shift.ID = "SCHED-" + uuid.NewString()
	}
	if shift.Type == "" {
		shift.Type = models.ShiftFixed
	}
	if err := s.shiftRepo.Create(shift); err != nil {
		return nil, err
	}
	return shift, nil
}

func (s *PolicyService) GetShifts() ([]*models.Shift, error) {
	return s.shiftRepo.GetAll()
}

// AddHoliday appends one holiday to the calendar.
func (s *PolicyService) AddHoliday(holiday *models.Holiday) (*models.Holiday, error) {
	if holiday.ID == "" {
		holiday.ID = uuid.NewString()
	}
	if holiday.Type == "" {
		holiday.Type = models.HolidayPublic
	}

	existing, err := s.holidayRepo.GetByDate(holiday.Date)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New("holiday already exists for this date")
	}

	if err := s.holidayRepo.Create(holiday); err != nil {
		return nil, err
	}
	return holiday, nil
}

func (s *PolicyService) GetHolidays() ([]*models.Holiday, error) {
	return s.holidayRepo.GetAll()
}

// ImportHolidays loads a holiday calendar JSON document and stores every
// date not already present. Returns the number imported.
func (s *PolicyService) ImportHolidays(data []byte) (int, error) {
	entries, err := holidaycal.ParseBytes(data)
	if err != nil {
		return 0, err
	}

	holidays := make([]*models.Holiday, 0, len(entries))
	for _, e := range entries {
		holidays = append(holidays, &models.Holiday{
			ID:   uuid.NewString(),
			Date: e.Date,
			Name: e.Name,
			Type: e.Type,
		})
	}

	created, err := s.holidayRepo.CreateBatch(holidays)
	if err != nil {
		return created, err
	}

	s.logger.WithField("created", created).Info("Holiday calendar imported")
	return created, nil
}

// IsHoliday reports whether the date is on the calendar.
func (s *PolicyService) IsHoliday(date time.Time) (bool, error) {
	holiday, err := s.holidayRepo.GetByDate(date.Format("2006-01-02"))
	if err != nil {
		return false, err
	}
	return holiday != nil, nil
}

// SubmitLeave files a new leave request in pending state.
func (s *PolicyService) SubmitLeave(request *models.LeaveRequest) (*models.LeaveRequest, error) {
	if request.ID == "" {
		request.ID = uuid.NewString()
	}
	request.Status = models.LeavePending

	if err := s.leaveRepo.Create(request); err != nil {
		return nil, err
	}
	return request, nil
}

// ResolveLeave approves or rejects a pending request.
func (s *PolicyService) ResolveLeave(id, status string) error {
	if status != models.LeaveApproved && status != models.LeaveRejected {
		return errors.New("leave can only be approved or rejected")
	}

	request, err := s.leaveRepo.GetByID(id)
	if err != nil {
		return err
	}
	if request == nil {
		return errors.New("leave request not found")
	}

	return s.leaveRepo.UpdateStatus(id, status)
}

func (s *PolicyService) GetLeaves() ([]*models.LeaveRequest, error) {
	return s.leaveRepo.GetAll()
}

func (s *PolicyService) GetLeavesByEmployee(employeeID string) ([]*models.LeaveRequest, error) {
	return s.leaveRepo.GetByEmployee(employeeID)
}
