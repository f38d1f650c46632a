package service

import (
	"time"

	"campus-gate/internal/models"
	"campus-gate/internal/repository"

	"github.com/sirupsen/logrus"
)

// PayrollService derives payable amounts from salary config and attendance.
type PayrollService struct {
	attendanceRepo repository.AttendanceRepository
	employeeRepo   repository.EmployeeRepository
	logger         *logrus.Logger
}

func NewPayrollService(
	attendanceRepo repository.AttendanceRepository,
	employeeRepo repository.EmployeeRepository,
) *PayrollService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &PayrollService{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		logger:         logger,
	}
}

// ComputePay converts the employee's salary config plus a set of attendance
// records into a payable amount. Records belonging to other employees are
// ignored. The configured overtime rate is not applied anywhere yet; overtime
// pay has no defined rule.
//
// Bases:
//   - monthly: flat base amount, attendance-independent
//   - daily:   base x days with a check-in
//   - hourly:  base x worked hours (breaks excluded, open days measured
//     against referenceNow)
//   - weekly:  base x distinct ISO weeks containing a present day
func ComputePay(employee *models.Employee, records []*models.AttendanceRecord, referenceNow time.Time) float64 {
	cfg := employee.SalaryConfig
	if cfg.BaseAmount < 0 {
		return 0
	}

	if cfg.Type == models.SalaryMonthly {
		return cfg.BaseAmount
	}

	var own []*models.AttendanceRecord
	for _, r := range records {
		if r.EmployeeID == employee.ID {
			own = append(own, r)
		}
	}

	switch cfg.Type {
	case models.SalaryDaily:
		days := 0
		for _, r := range own {
			if r.CheckIn != nil {
				days++
			}
		}
		return cfg.BaseAmount * float64(days)

	case models.SalaryHourly:
		var worked time.Duration
		for _, r := range own {
			w, _ := r.Durations(referenceNow)
			worked += w
		}
		return cfg.BaseAmount * worked.Hours()

	case models.SalaryWeekly:
		weeks := make(map[[2]int]bool)
		for _, r := range own {
			if r.CheckIn == nil {
				continue
			}
			day, err := time.Parse("2006-01-02", r.Date)
			if err != nil {
				continue
			}
			year, week := day.ISOWeek()
			weeks[[2]int{year, week}] = true
		}
		return cfg.BaseAmount * float64(len(weeks))
	}

	return 0
}

// PayrollEntry is one row of the admin payroll view.
type PayrollEntry struct {
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	SalaryType   string  `json:"salary_type"`
	BaseAmount   float64 `json:"base_amount"`
	Currency     string  `json:"currency"`
	PresentDays  int     `json:"present_days"`
	Amount       float64 `json:"amount"`
}

// ComputeMonth builds the payroll view for every employee for one month.
func (s *PayrollService) ComputeMonth(year, month int, now time.Time) ([]*PayrollEntry, error) {
	employees, err := s.employeeRepo.GetAll()
	if err != nil {
		return nil, err
	}

	entries := make([]*PayrollEntry, 0, len(employees))
	for _, employee := range employees {
		records, err := s.attendanceRepo.GetByEmployeeAndMonth(employee.ID, year, month)
		if err != nil {
			return nil, err
		}

		present, err := s.attendanceRepo.CountPresentByEmployeeAndMonth(employee.ID, year, month)
		if err != nil {
			return nil, err
		}

		entries = append(entries, &PayrollEntry{
			EmployeeID:   employee.ID,
			EmployeeName: employee.Name,
			SalaryType:   employee.SalaryConfig.Type,
			BaseAmount:   employee.SalaryConfig.BaseAmount,
			Currency:     employee.SalaryConfig.Currency,
			PresentDays:  present,
			Amount:       ComputePay(employee, records, now),
		})
	}

	s.logger.WithFields(logrus.Fields{
		"year":      year,
		"month":     month,
		"employees": len(entries),
	}).Info("Payroll computed")

	return entries, nil
}
