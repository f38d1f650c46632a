package models

import (
	"time"
)

// Attendance statuses
const (
	StatusOnTime = "on-time"
	StatusLate   = "late"
	StatusAbsent = "absent"
	StatusLeave  = "leave"
)

// PresenceState is the explicit per-day state machine of a record.
type PresenceState string

const (
	StateNotArrived PresenceState = "not_arrived"
	StatePresent    PresenceState = "present"
	StateOnBreak    PresenceState = "on_break"
	StateDeparted   PresenceState = "departed"
)

// LateHourThreshold marks the local hour from which a check-in counts as late.
const LateHourThreshold = 9

// BreakInterval is one break inside an attendance record.
// End stays nil while the break is ongoing.
type BreakInterval struct {
	ID       uint       `gorm:"primaryKey" json:"id"`
	RecordID string     `gorm:"type:varchar(64);not null;index" json:"record_id"`
	Start    time.Time  `gorm:"not null" json:"start"`
	End      *time.Time `json:"end"`
}

func (BreakInterval) TableName() string {
	return "break_intervals"
}

// IsOpen reports whether the break has not been closed yet.
func (b *BreakInterval) IsOpen() bool {
	return b.End == nil
}

// AttendanceRecord is the single attendance entry for one employee on one
// calendar date. At most one exists per (employee_id, date).
type AttendanceRecord struct {
	ID         string `gorm:"primaryKey;type:varchar(64)" json:"id"`
	EmployeeID string `gorm:"type:varchar(64);not null;index;uniqueIndex:idx_employee_date" json:"employee_id"`
	// Denormalized so history survives roster edits.
	EmployeeName string `gorm:"not null" json:"employee_name"`
	Date         string `gorm:"type:varchar(10);not null;index;uniqueIndex:idx_employee_date" json:"date"`

	CheckIn  *time.Time `json:"check_in"`
	CheckOut *time.Time `json:"check_out"`

	Status          string          `gorm:"type:varchar(10);not null;default:'absent'" json:"status"`
	DeviceID        string          `gorm:"type:varchar(64)" json:"device_id"`
	IsSynced        bool            `gorm:"not null;default:false" json:"is_synced"`
	Breaks          []BreakInterval `gorm:"foreignKey:RecordID;references:ID" json:"breaks"`
	OvertimeMinutes int             `gorm:"not null;default:0" json:"overtime_minutes"`
	IsEarlyExit     bool            `gorm:"not null;default:false" json:"is_early_exit"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (AttendanceRecord) TableName() string {
	return "attendance_records"
}

// DateKey formats a timestamp as the calendar-date key records are filed under.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// ClassifyArrival returns the status for a check-in at the given moment.
func ClassifyArrival(now time.Time) string {
	if now.Hour() >= LateHourThreshold {
		return StatusLate
	}
	return StatusOnTime
}

// OpenBreak returns the currently running break, or nil.
// Only the last interval may ever be open.
func (r *AttendanceRecord) OpenBreak() *BreakInterval {
	if len(r.Breaks) == 0 {
		return nil
	}
	last := &r.Breaks[len(r.Breaks)-1]
	if last.IsOpen() {
		return last
	}
	return nil
}

// IsClosed reports whether the day has been checked out.
func (r *AttendanceRecord) IsClosed() bool {
	return r.CheckOut != nil
}

// State derives the explicit presence state from the record.
func (r *AttendanceRecord) State() PresenceState {
	if r.CheckIn == nil {
		return StateNotArrived
	}
	if r.CheckOut != nil {
		return StateDeparted
	}
	if r.OpenBreak() != nil {
		return StateOnBreak
	}
	return StatePresent
}

// Durations returns worked and break time for the record. While the day is
// open both advance with referenceNow; once checked out they are frozen.
func (r *AttendanceRecord) Durations(referenceNow time.Time) (work, brk time.Duration) {
	if r.CheckIn == nil {
		return 0, 0
	}
	end := referenceNow
	if r.CheckOut != nil {
		end = *r.CheckOut
	}
	for _, b := range r.Breaks {
		bEnd := referenceNow
		if b.End != nil {
			bEnd = *b.End
		}
		brk += bEnd.Sub(b.Start)
	}
	work = end.Sub(*r.CheckIn) - brk
	if work < 0 {
		work = 0
	}
	if brk < 0 {
		brk = 0
	}
	return work, brk
}

// IsValid checks structural invariants before persisting.
func (r *AttendanceRecord) IsValid() bool {
	if r.ID == "" || r.EmployeeID == "" || r.Date == "" {
		return false
	}
	switch r.Status {
	case StatusOnTime, StatusLate, StatusAbsent, StatusLeave:
	default:
		return false
	}
	open := 0
	var prev *BreakInterval
	for i := range r.Breaks {
		b := &r.Breaks[i]
		if b.IsOpen() {
			open++
		} else if b.End.Before(b.Start) {
			return false
		}
		if prev != nil && b.Start.Before(prev.Start) {
			return false
		}
		prev = b
	}
	return open <= 1
}
