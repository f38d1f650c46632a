package models

import (
	"time"
)

// Holiday types
const (
	HolidayPublic   = "public"
	HolidayOptional = "optional"
)

type Holiday struct {
	ID        string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Date      string    `gorm:"type:varchar(10);not null;uniqueIndex" json:"date"`
	Name      string    `gorm:"not null" json:"name"`
	Type      string    `gorm:"type:varchar(10);not null;default:'public'" json:"type"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Holiday) TableName() string {
	return "holidays"
}

// IsValid checks the data before persisting.
func (h *Holiday) IsValid() bool {
	if h.ID == "" || h.Name == "" {
		return false
	}
	if _, err := time.Parse("2006-01-02", h.Date); err != nil {
		return false
	}
	return h.Type == HolidayPublic || h.Type == HolidayOptional
}
