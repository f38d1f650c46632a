package service

import (
	"testing"
	"time"

	"campus-gate/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 16, hour, min, 0, 0, time.Local)
}

func newEngine() (*AttendanceService, *fakeAttendanceRepo, *fakeEmployeeRepo) {
	employees := newFakeEmployeeRepo(activeEmployee("EMP-1", "Asha Verma"))
	attendance := newFakeAttendanceRepo()
	return NewAttendanceService(attendance, employees, "CAMPUS_GATE_01"), attendance, employees
}

func TestResolveArrivalCreatesRecord(t *testing.T) {
	engine, repo, _ := newEngine()

	result, err := engine.ResolveArrival("EMP-1", at(8, 30))
	require.NoError(t, err)

	assert.Equal(t, KindArrived, result.Kind)
	require.NotNil(t, result.Record.CheckIn)
	assert.Nil(t, result.Record.CheckOut)
	assert.Equal(t, models.StatusOnTime, result.Record.Status)
	assert.Equal(t, "Asha Verma", result.Record.EmployeeName)
	assert.Equal(t, "CAMPUS_GATE_01", result.Record.DeviceID)
	assert.Empty(t, result.Record.Breaks)
	assert.Equal(t, 1, repo.saves)
}

func TestResolveArrivalTogglesToDeparture(t *testing.T) {
	engine, _, _ := newEngine()

	first, err := engine.ResolveArrival("EMP-1", at(9, 0))
	require.NoError(t, err)
	require.Equal(t, KindArrived, first.Kind)

	second, err := engine.ResolveArrival("EMP-1", at(17, 0))
	require.NoError(t, err)
	assert.Equal(t, KindDeparted, second.Kind)
	require.NotNil(t, second.Record.CheckOut)
	assert.Equal(t, at(17, 0), *second.Record.CheckOut)
}

func TestResolveArrivalClosedDayIsNoOp(t *testing.T) {
	engine, repo, _ := newEngine()

	_, err := engine.ResolveArrival("EMP-1", at(9, 0))
	require.NoError(t, err)
	_, err = engine.ResolveArrival("EMP-1", at(17, 0))
	require.NoError(t, err)
	savesBefore := repo.saves

	third, err := engine.ResolveArrival("EMP-1", at(17, 5))
	require.NoError(t, err)
	assert.Equal(t, KindAlreadyClosed, third.Kind)
	assert.Equal(t, savesBefore, repo.saves, "closed day must not be rewritten")
	assert.Equal(t, at(17, 0), *third.Record.CheckOut)
}

func TestResolveArrivalLateBoundary(t *testing.T) {
	engine, _, _ := newEngine()

	early, err := engine.ResolveArrival("EMP-1", at(8, 59))
	require.NoError(t, err)
	assert.Equal(t, models.StatusOnTime, early.Record.Status)

	engine2, _, _ := newEngine()
	late, err := engine2.ResolveArrival("EMP-1", at(9, 15))
	require.NoError(t, err)
	assert.Equal(t, models.StatusLate, late.Record.Status)
}

func TestResolveArrivalRejectsUnknownAndInactive(t *testing.T) {
	engine, _, employees := newEngine()

	_, err := engine.ResolveArrival("EMP-404", at(9, 0))
	assert.ErrorIs(t, err, ErrUnknownEmployee)

	require.NoError(t, employees.Deactivate("EMP-1"))
	_, err = engine.ResolveArrival("EMP-1", at(9, 0))
	assert.ErrorIs(t, err, ErrInactiveEmployee)
}

func TestToggleBreakOpensAndCloses(t *testing.T) {
	engine, _, _ := newEngine()

	_, err := engine.ResolveArrival("EMP-1", at(9, 0))
	require.NoError(t, err)

	record, err := engine.ToggleBreak("EMP-1", at(9, 10))
	require.NoError(t, err)
	require.Len(t, record.Breaks, 1)
	assert.Nil(t, record.Breaks[0].End)
	assert.Equal(t, models.StateOnBreak, record.State())

	record, err = engine.ToggleBreak("EMP-1", at(9, 20))
	require.NoError(t, err)
	require.Len(t, record.Breaks, 1, "closing must not create a second interval")
	require.NotNil(t, record.Breaks[0].End)
	assert.Equal(t, at(9, 20), *record.Breaks[0].End)
	assert.Equal(t, models.StatePresent, record.State())
}

func TestToggleBreakWithoutSession(t *testing.T) {
	engine, _, _ := newEngine()

	_, err := engine.ToggleBreak("EMP-1", at(9, 10))
	assert.ErrorIs(t, err, ErrNoActiveSession)
}

func TestToggleBreakAfterCheckoutRejected(t *testing.T) {
	engine, repo, _ := newEngine()

	_, err := engine.ResolveArrival("EMP-1", at(9, 0))
	require.NoError(t, err)
	_, err = engine.ResolveArrival("EMP-1", at(17, 0))
	require.NoError(t, err)
	savesBefore := repo.saves

	_, err = engine.ToggleBreak("EMP-1", at(17, 10))
	assert.ErrorIs(t, err, ErrSessionAlreadyClosed)
	assert.Equal(t, savesBefore, repo.saves, "record must stay unchanged")
}

func TestComputeDurationsNoBreaks(t *testing.T) {
	engine, _, _ := newEngine()

	checkIn := at(9, 0)
	record := &models.AttendanceRecord{CheckIn: &checkIn}

	work, brk := engine.ComputeDurations(record, at(9, 30))
	assert.Equal(t, 30*time.Minute, work)
	assert.Equal(t, time.Duration(0), brk)
}

func TestComputeDurationsWithBreak(t *testing.T) {
	engine, _, _ := newEngine()

	checkIn := at(9, 0)
	breakEnd := at(9, 20)
	record := &models.AttendanceRecord{
		CheckIn: &checkIn,
		Breaks: []models.BreakInterval{
			{Start: at(9, 10), End: &breakEnd},
		},
	}

	work, brk := engine.ComputeDurations(record, at(9, 30))
	assert.Equal(t, 20*time.Minute, work)
	assert.Equal(t, 10*time.Minute, brk)
}

func TestComputeDurationsOpenBreakAdvances(t *testing.T) {
	engine, _, _ := newEngine()

	checkIn := at(9, 0)
	record := &models.AttendanceRecord{
		CheckIn: &checkIn,
		Breaks:  []models.BreakInterval{{Start: at(9, 10)}},
	}

	work, brk := engine.ComputeDurations(record, at(9, 30))
	assert.Equal(t, 10*time.Minute, work)
	assert.Equal(t, 20*time.Minute, brk)
}

func TestComputeDurationsFreezeAfterCheckout(t *testing.T) {
	engine, _, _ := newEngine()

	checkIn := at(9, 0)
	checkOut := at(17, 0)
	record := &models.AttendanceRecord{CheckIn: &checkIn, CheckOut: &checkOut}

	work1, _ := engine.ComputeDurations(record, at(18, 0))
	work2, _ := engine.ComputeDurations(record, at(23, 0))
	assert.Equal(t, 8*time.Hour, work1)
	assert.Equal(t, work1, work2, "durations must freeze once the day is closed")
}

func TestComputeDurationsNoArrival(t *testing.T) {
	engine, _, _ := newEngine()

	work, brk := engine.ComputeDurations(&models.AttendanceRecord{}, at(12, 0))
	assert.Equal(t, time.Duration(0), work)
	assert.Equal(t, time.Duration(0), brk)
}

func TestSummarizeDay(t *testing.T) {
	engine, _, employees := newEngine()
	require.NoError(t, employees.Create(activeEmployee("EMP-2", "Rohan Iyer")))
	require.NoError(t, employees.Create(activeEmployee("EMP-3", "Meera Pillai")))

	_, err := engine.ResolveArrival("EMP-1", at(8, 30))
	require.NoError(t, err)
	_, err = engine.ResolveArrival("EMP-2", at(9, 30))
	require.NoError(t, err)
	_, err = engine.ToggleBreak("EMP-2", at(10, 0))
	require.NoError(t, err)
	_, err = engine.ResolveArrival("EMP-3", at(8, 0))
	require.NoError(t, err)
	_, err = engine.ResolveArrival("EMP-3", at(16, 0))
	require.NoError(t, err)

	summary, err := engine.SummarizeDay(models.DateKey(at(12, 0)))
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 3, summary.Present)
	assert.Equal(t, 1, summary.Late)
	assert.Equal(t, 1, summary.OnBreak)
	assert.Equal(t, 1, summary.Closed)
}
