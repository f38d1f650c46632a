package service

import (
	"sync"
	"time"

	"campus-gate/internal/models"
	"campus-gate/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ArrivalKind describes what a gate scan did to today's record.
type ArrivalKind string

const (
	KindArrived       ArrivalKind = "arrived"
	KindDeparted      ArrivalKind = "departed"
	KindAlreadyClosed ArrivalKind = "already_closed"
)

// ArrivalResult is the outcome of ResolveArrival.
type ArrivalResult struct {
	Kind   ArrivalKind
	Record *models.AttendanceRecord
}

// AttendanceService owns the per-employee, per-day attendance lifecycle.
// It is the only writer of attendance records.
type AttendanceService struct {
	attendanceRepo repository.AttendanceRepository
	employeeRepo   repository.EmployeeRepository
	deviceID       string
	logger         *logrus.Logger

	// Serializes read-modify-write per (employee, date) so concurrent
	// requests cannot lose updates on the same record.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewAttendanceService(
	attendanceRepo repository.AttendanceRepository,
	employeeRepo repository.EmployeeRepository,
	deviceID string,
) *AttendanceService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		deviceID:       deviceID,
		logger:         logger,
		locks:          make(map[string]*sync.Mutex),
	}
}

func (s *AttendanceService) lockFor(employeeID, date string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := employeeID + "|" + date
	lock, ok := s.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[key] = lock
	}
	return lock
}

// ResolveArrival applies the daily toggle for an identified employee:
// no record yet -> check-in, open record -> check-out, closed record -> no-op.
// Note the toggle is deliberately not idempotent; the gate's cooldown window
// keeps rapid repeated frames from flipping a visit into a departure.
func (s *AttendanceService) ResolveArrival(employeeID string, now time.Time) (*ArrivalResult, error) {
	employee, err := s.employeeRepo.GetByID(employeeID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to look up employee for arrival")
		return nil, err
	}
	if employee == nil {
		s.logger.WithField("employee_id", employeeID).Warn("Arrival for unknown employee")
		return nil, ErrUnknownEmployee
	}
	if !employee.IsActive() {
		s.logger.WithField("employee_id", employeeID).Warn("Arrival for inactive employee")
		return nil, ErrInactiveEmployee
	}

	date := models.DateKey(now)
	lock := s.lockFor(employeeID, date)
	lock.Lock()
	defer lock.Unlock()

	record, err := s.attendanceRepo.GetByEmployeeAndDate(employeeID, date)
	if err != nil {
		return nil, err
	}

	if record == nil {
		checkIn := now
		record = &models.AttendanceRecord{
			ID:           uuid.NewString(),
			EmployeeID:   employee.ID,
			EmployeeName: employee.Name,
			Date:         date,
			CheckIn:      &checkIn,
			CheckOut:     nil,
			Status:       models.ClassifyArrival(now),
			DeviceID:     s.deviceID,
			IsSynced:     false,
			Breaks:       []models.BreakInterval{},
		}

		if err := s.attendanceRepo.Save(record); err != nil {
			return nil, err
		}

		s.logger.WithFields(logrus.Fields{
			"employee_id": employeeID,
			"date":        date,
			"status":      record.Status,
		}).Info("Employee checked in")

		return &ArrivalResult{Kind: KindArrived, Record: record}, nil
	}

	if !record.IsClosed() {
		checkOut := now
		record.CheckOut = &checkOut

		if err := s.attendanceRepo.Save(record); err != nil {
			return nil, err
		}

		s.logger.WithFields(logrus.Fields{
			"employee_id": employeeID,
			"date":        date,
		}).Info("Employee checked out")

		return &ArrivalResult{Kind: KindDeparted, Record: record}, nil
	}

	s.logger.WithFields(logrus.Fields{
		"employee_id": employeeID,
		"date":        date,
	}).Debug("Day already closed, no mutation")

	return &ArrivalResult{Kind: KindAlreadyClosed, Record: record}, nil
}

// ToggleBreak opens a break, or closes the currently open one. The day must
// have a check-in and no check-out yet.
func (s *AttendanceService) ToggleBreak(employeeID string, now time.Time) (*models.AttendanceRecord, error) {
	date := models.DateKey(now)
	lock := s.lockFor(employeeID, date)
	lock.Lock()
	defer lock.Unlock()

	record, err := s.attendanceRepo.GetByEmployeeAndDate(employeeID, date)
	if err != nil {
		return nil, err
	}
	if record == nil || record.CheckIn == nil {
		s.logger.WithFields(logrus.Fields{
			"employee_id": employeeID,
			"date":        date,
		}).Warn("Break toggle with no active session")
		return nil, ErrNoActiveSession
	}
	if record.IsClosed() {
		s.logger.WithFields(logrus.Fields{
			"employee_id": employeeID,
			"date":        date,
		}).Warn("Break toggle after check-out")
		return nil, ErrSessionAlreadyClosed
	}

	if open := record.OpenBreak(); open != nil {
		end := now
		open.End = &end
	} else {
		record.Breaks = append(record.Breaks, models.BreakInterval{
			RecordID: record.ID,
			Start:    now,
		})
	}

	if err := s.attendanceRepo.Save(record); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"employee_id": employeeID,
		"date":        date,
		"state":       record.State(),
		"breaks":      len(record.Breaks),
	}).Info("Break toggled")

	return record, nil
}

// TodayRecord returns today's record for the employee, nil when absent so far.
func (s *AttendanceService) TodayRecord(employeeID string, now time.Time) (*models.AttendanceRecord, error) {
	return s.attendanceRepo.GetByEmployeeAndDate(employeeID, models.DateKey(now))
}

// ComputeDurations re-exposes the record's duration math with an explicit
// reference instant, so callers can tick it while the day is open.
func (s *AttendanceService) ComputeDurations(record *models.AttendanceRecord, referenceNow time.Time) (work, brk time.Duration) {
	if record == nil {
		return 0, 0
	}
	return record.Durations(referenceNow)
}

// ListRecords returns records for a date, or the full history when the date
// is empty.
func (s *AttendanceService) ListRecords(date string) ([]*models.AttendanceRecord, error) {
	if date == "" {
		return s.attendanceRepo.GetAll()
	}
	return s.attendanceRepo.GetByDate(date)
}

// History returns the employee's most recent records.
func (s *AttendanceService) History(employeeID string, limit int) ([]*models.AttendanceRecord, error) {
	return s.attendanceRepo.GetByEmployee(employeeID, limit)
}

// DaySummary aggregates one date for the admin dashboard.
type DaySummary struct {
	Total   int `json:"total"`
	Present int `json:"present"`
	Late    int `json:"late"`
	OnBreak int `json:"on_break"`
	Closed  int `json:"closed"`
}

// SummarizeDay builds the dashboard counters for a date.
func (s *AttendanceService) SummarizeDay(date string) (*DaySummary, error) {
	records, err := s.attendanceRepo.GetByDate(date)
	if err != nil {
		return nil, err
	}

	summary := &DaySummary{Total: len(records)}
	for _, r := range records {
		if r.CheckIn != nil {
			summary.Present++
		}
		if r.Status == models.StatusLate {
			summary.Late++
		}
		switch r.State() {
		case models.StateOnBreak:
			summary.OnBreak++
		case models.StateDeparted:
			summary.Closed++
		}
	}

	return summary, nil
}
