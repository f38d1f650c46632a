package service

import (
	"context"
	"sort"
	"time"

	"campus-gate/internal/models"
	"campus-gate/pkg/gemini"
)

// In-memory repositories for engine tests.

type fakeEmployeeRepo struct {
	employees map[string]*models.Employee
}

func newFakeEmployeeRepo(employees ...*models.Employee) *fakeEmployeeRepo {
	repo := &fakeEmployeeRepo{employees: make(map[string]*models.Employee)}
	for _, e := range employees {
		repo.employees[e.ID] = e
	}
	return repo
}

func (r *fakeEmployeeRepo) Create(e *models.Employee) error {
	r.employees[e.ID] = e
	return nil
}

func (r *fakeEmployeeRepo) Update(e *models.Employee) error {
	r.employees[e.ID] = e
	return nil
}

func (r *fakeEmployeeRepo) GetByID(id string) (*models.Employee, error) {
	return r.employees[id], nil
}

func (r *fakeEmployeeRepo) GetAll() ([]*models.Employee, error) {
	out := make([]*models.Employee, 0, len(r.employees))
	for _, e := range r.employees {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeEmployeeRepo) GetActive() ([]*models.Employee, error) {
	all, _ := r.GetAll()
	out := all[:0]
	for _, e := range all {
		if e.IsActive() {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEmployeeRepo) Deactivate(id string) error {
	if e, ok := r.employees[id]; ok {
		e.Status = models.EmployeeInactive
	}
	return nil
}

type fakeAttendanceRepo struct {
	records map[string]*models.AttendanceRecord
	saves   int
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]*models.AttendanceRecord)}
}

func (r *fakeAttendanceRepo) key(employeeID, date string) string {
	return employeeID + "|" + date
}

func (r *fakeAttendanceRepo) Save(record *models.AttendanceRecord) error {
	r.saves++
	clone := *record
	clone.Breaks = append([]models.BreakInterval(nil), record.Breaks...)
	r.records[r.key(record.EmployeeID, record.Date)] = &clone
	return nil
}

func (r *fakeAttendanceRepo) GetByEmployeeAndDate(employeeID, date string) (*models.AttendanceRecord, error) {
	record, ok := r.records[r.key(employeeID, date)]
	if !ok {
		return nil, nil
	}
	clone := *record
	clone.Breaks = append([]models.BreakInterval(nil), record.Breaks...)
	return &clone, nil
}

func (r *fakeAttendanceRepo) GetByEmployee(employeeID string, limit int) ([]*models.AttendanceRecord, error) {
	var out []*models.AttendanceRecord
	for _, rec := range r.records {
		if rec.EmployeeID == employeeID {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeAttendanceRepo) GetByDate(date string) ([]*models.AttendanceRecord, error) {
	var out []*models.AttendanceRecord
	for _, rec := range r.records {
		if rec.Date == date {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *fakeAttendanceRepo) GetByEmployeeAndMonth(employeeID string, year, month int) ([]*models.AttendanceRecord, error) {
	prefix := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
	var out []*models.AttendanceRecord
	for _, rec := range r.records {
		if rec.EmployeeID == employeeID && len(rec.Date) >= 7 && rec.Date[:7] == prefix {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *fakeAttendanceRepo) GetAll() ([]*models.AttendanceRecord, error) {
	var out []*models.AttendanceRecord
	for _, rec := range r.records {
		out = append(out, rec)
	}
	return out, nil
}

func (r *fakeAttendanceRepo) CountPresentByEmployeeAndMonth(employeeID string, year, month int) (int, error) {
	records, _ := r.GetByEmployeeAndMonth(employeeID, year, month)
	count := 0
	for _, rec := range records {
		if rec.CheckIn != nil {
			count++
		}
	}
	return count, nil
}

// fakeRecognizer returns scripted responses.

type fakeRecognizer struct {
	signature string
	identify  *gemini.RecognitionResult
	liveness  *gemini.LivenessResult
	err       error

	identifyCalls int
	livenessCalls int
}

func (f *fakeRecognizer) GenerateVisualSignature(ctx context.Context, images []string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.signature, nil
}

func (f *fakeRecognizer) IdentifyFace(ctx context.Context, frame string, roster []gemini.RosterEntry) (*gemini.RecognitionResult, error) {
	f.identifyCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.identify, nil
}

func (f *fakeRecognizer) VerifyLiveness(ctx context.Context, frames []string) (*gemini.LivenessResult, error) {
	f.livenessCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.liveness, nil
}

func activeEmployee(id, name string) *models.Employee {
	return &models.Employee{
		ID:     id,
		Name:   name,
		Status: models.EmployeeActive,
		SalaryConfig: models.SalaryConfig{
			Type:       models.SalaryMonthly,
			BaseAmount: 50000,
			Currency:   "INR",
		},
	}
}
