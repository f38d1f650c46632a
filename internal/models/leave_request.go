package models

import (
	"time"
)

// Leave types
const (
	LeaveSick   = "sick"
	LeaveCasual = "casual"
	LeavePaid   = "paid"
)

// Leave statuses
const (
	LeavePending  = "pending"
	LeaveApproved = "approved"
	LeaveRejected = "rejected"
)

type LeaveRequest struct {
	ID         string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	EmployeeID string    `gorm:"type:varchar(64);not null;index" json:"employee_id"`
	Type       string    `gorm:"type:varchar(10);not null" json:"type"`
	StartDate  string    `gorm:"type:varchar(10);not null" json:"start_date"`
	EndDate    string    `gorm:"type:varchar(10);not null" json:"end_date"`
	Status     string    `gorm:"type:varchar(10);not null;default:'pending'" json:"status"`
	Reason     string    `gorm:"type:text" json:"reason"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

// IsValid checks the data before persisting.
func (l *LeaveRequest) IsValid() bool {
	if l.ID == "" || l.EmployeeID == "" {
		return false
	}
	switch l.Type {
	case LeaveSick, LeaveCasual, LeavePaid:
	default:
		return false
	}
	switch l.Status {
	case LeavePending, LeaveApproved, LeaveRejected:
	default:
		return false
	}
	start, err := time.Parse("2006-01-02", l.StartDate)
	if err != nil {
		return false
	}
	end, err := time.Parse("2006-01-02", l.EndDate)
	if err != nil {
		return false
	}
	return !end.Before(start)
}
