package models

import (
	"time"
)

// Shift types
const (
	ShiftFixed      = "fixed"
	ShiftOpen       = "open"
	ShiftRotational = "rotational"
	ShiftNight      = "night"
)

type Shift struct {
	ID   string `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name string `gorm:"not null" json:"name"`
	Type string `gorm:"type:varchar(12);not null;default:'fixed'" json:"type"`

	// Times of day as "HH:MM".
	StartTime string `gorm:"type:varchar(5);not null" json:"start_time"`
	EndTime   string `gorm:"type:varchar(5);not null" json:"end_time"`

	GracePeriodMinutes int `gorm:"not null;default:0" json:"grace_period_minutes"`
	BreakMinutes       int `gorm:"not null;default:0" json:"break_minutes"`
	MinOvertimeHours   int `gorm:"not null;default:1" json:"min_overtime_hours"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Shift) TableName() string {
	return "shifts"
}

// IsValid checks the data before persisting.
func (s *Shift) IsValid() bool {
	if s.ID == "" || s.Name == "" {
		return false
	}
	switch s.Type {
	case ShiftFixed, ShiftOpen, ShiftRotational, ShiftNight:
	default:
		return false
	}
	if _, err := time.Parse("15:04", s.StartTime); err != nil {
		return false
	}
	if _, err := time.Parse("15:04", s.EndTime); err != nil {
		return false
	}
	if s.GracePeriodMinutes < 0 || s.BreakMinutes < 0 {
		return false
	}
	return true
}
