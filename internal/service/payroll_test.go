package service

import (
	"testing"
	"time"

	"campus-gate/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func salaried(id, salaryType string, base float64) *models.Employee {
	return &models.Employee{
		ID:     id,
		Name:   "Test Subject",
		Status: models.EmployeeActive,
		SalaryConfig: models.SalaryConfig{
			Type:       salaryType,
			BaseAmount: base,
			Currency:   "INR",
		},
	}
}

func presentRecord(employeeID, date string, checkIn, checkOut time.Time) *models.AttendanceRecord {
	in, out := checkIn, checkOut
	return &models.AttendanceRecord{
		ID:         employeeID + "-" + date,
		EmployeeID: employeeID,
		Date:       date,
		CheckIn:    &in,
		CheckOut:   &out,
		Status:     models.StatusOnTime,
	}
}

func absentRecord(employeeID, date string) *models.AttendanceRecord {
	return &models.AttendanceRecord{
		ID:         employeeID + "-" + date,
		EmployeeID: employeeID,
		Date:       date,
		Status:     models.StatusAbsent,
	}
}

func TestComputePayMonthlyIsFlat(t *testing.T) {
	employee := salaried("EMP-1", models.SalaryMonthly, 50000)
	now := time.Now()

	assert.Equal(t, 50000.0, ComputePay(employee, nil, now))

	day := time.Date(2026, 3, 2, 9, 0, 0, 0, time.Local)
	records := []*models.AttendanceRecord{
		presentRecord("EMP-1", "2026-03-02", day, day.Add(8*time.Hour)),
	}
	assert.Equal(t, 50000.0, ComputePay(employee, records, now))
}

func TestComputePayDailyCountsPresentDays(t *testing.T) {
	employee := salaried("EMP-1", models.SalaryDaily, 500)
	now := time.Now()

	var records []*models.AttendanceRecord
	for day := 1; day <= 18; day++ {
		in := time.Date(2026, 3, day, 9, 0, 0, 0, time.Local)
		records = append(records, presentRecord("EMP-1", models.DateKey(in), in, in.Add(8*time.Hour)))
	}
	for day := 19; day <= 22; day++ {
		records = append(records, absentRecord("EMP-1", time.Date(2026, 3, day, 0, 0, 0, 0, time.Local).Format("2006-01-02")))
	}

	assert.Equal(t, 9000.0, ComputePay(employee, records, now))
}

func TestComputePayIgnoresOtherEmployees(t *testing.T) {
	employee := salaried("EMP-1", models.SalaryDaily, 500)
	in := time.Date(2026, 3, 2, 9, 0, 0, 0, time.Local)
	records := []*models.AttendanceRecord{
		presentRecord("EMP-1", "2026-03-02", in, in.Add(8*time.Hour)),
		presentRecord("EMP-2", "2026-03-02", in, in.Add(8*time.Hour)),
	}

	assert.Equal(t, 500.0, ComputePay(employee, records, time.Now()))
}

func TestComputePayHourlySumsWorkedHours(t *testing.T) {
	employee := salaried("EMP-1", models.SalaryHourly, 200)
	now := time.Now()

	in1 := time.Date(2026, 3, 2, 9, 0, 0, 0, time.Local)
	in2 := time.Date(2026, 3, 3, 9, 0, 0, 0, time.Local)
	r1 := presentRecord("EMP-1", "2026-03-02", in1, in1.Add(8*time.Hour))
	r2 := presentRecord("EMP-1", "2026-03-03", in2, in2.Add(6*time.Hour))

	// An hour of break must not be paid
	breakEnd := in1.Add(2 * time.Hour)
	r1.Breaks = []models.BreakInterval{{Start: in1.Add(time.Hour), End: &breakEnd}}

	// 7h + 6h = 13h
	assert.InDelta(t, 2600.0, ComputePay(employee, []*models.AttendanceRecord{r1, r2}, now), 0.001)
}

func TestComputePayWeeklyCountsDistinctISOWeeks(t *testing.T) {
	employee := salaried("EMP-1", models.SalaryWeekly, 3000)
	now := time.Now()

	// Two days in ISO week 10, one in week 11, one absent day in week 12
	days := []string{"2026-03-02", "2026-03-04", "2026-03-09"}
	var records []*models.AttendanceRecord
	for _, d := range days {
		in, err := time.ParseInLocation("2006-01-02", d, time.Local)
		require.NoError(t, err)
		in = in.Add(9 * time.Hour)
		records = append(records, presentRecord("EMP-1", d, in, in.Add(8*time.Hour)))
	}
	records = append(records, absentRecord("EMP-1", "2026-03-16"))

	assert.Equal(t, 6000.0, ComputePay(employee, records, now))
}

func TestComputePayMalformedInput(t *testing.T) {
	now := time.Now()

	negative := salaried("EMP-1", models.SalaryMonthly, -100)
	assert.Equal(t, 0.0, ComputePay(negative, nil, now))

	daily := salaried("EMP-1", models.SalaryDaily, 500)
	assert.Equal(t, 0.0, ComputePay(daily, nil, now))

	hourly := salaried("EMP-1", models.SalaryHourly, 200)
	assert.Equal(t, 0.0, ComputePay(hourly, nil, now))
}

func TestComputeMonthBuildsEntries(t *testing.T) {
	employees := newFakeEmployeeRepo(
		salaried("EMP-1", models.SalaryMonthly, 50000),
		salaried("EMP-2", models.SalaryDaily, 500),
	)
	attendance := newFakeAttendanceRepo()

	in := time.Date(2026, 3, 2, 9, 0, 0, 0, time.Local)
	require.NoError(t, attendance.Save(presentRecord("EMP-2", "2026-03-02", in, in.Add(8*time.Hour))))

	payroll := NewPayrollService(attendance, employees)
	entries, err := payroll.ComputeMonth(2026, 3, time.Now())
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, 50000.0, entries[0].Amount)
	assert.Equal(t, 0, entries[0].PresentDays)
	assert.Equal(t, 500.0, entries[1].Amount)
	assert.Equal(t, 1, entries[1].PresentDays)
}
