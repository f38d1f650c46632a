package models

import (
	"time"
)

// Salary basis options
const (
	SalaryMonthly = "monthly"
	SalaryDaily   = "daily"
	SalaryHourly  = "hourly"
	SalaryWeekly  = "weekly"
)

// Employee statuses
const (
	EmployeeActive   = "active"
	EmployeeInactive = "inactive"
)

// SalaryConfig describes how an employee is paid.
type SalaryConfig struct {
	Type         string  `gorm:"type:varchar(20);not null;default:'monthly'" json:"type"`
	BaseAmount   float64 `gorm:"not null;default:0" json:"base_amount"`
	Currency     string  `gorm:"type:varchar(8);not null;default:'INR'" json:"currency"`
	OvertimeRate float64 `gorm:"not null;default:1.5" json:"overtime_rate"`
}

// BankDetails holds payout account data for an employee.
type BankDetails struct {
	AccountNumber string `json:"account_number"`
	IFSC          string `json:"ifsc"`
	BankName      string `json:"bank_name"`
}

type Employee struct {
	ID         string `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name       string `gorm:"not null" json:"name"`
	Department string `json:"department"`
	Role       string `json:"role"`
	Status     string `gorm:"type:varchar(10);not null;default:'active';index" json:"status"`

	// Text vector produced by the recognition gateway at enrollment.
	VisualSignature string `gorm:"type:text" json:"visual_signature"`
	Thumbnail       string `gorm:"type:text" json:"thumbnail"`

	JoiningDate  string       `gorm:"type:varchar(10)" json:"joining_date"`
	ShiftID      string       `gorm:"type:varchar(64);index" json:"shift_id"`
	SalaryConfig SalaryConfig `gorm:"embedded;embeddedPrefix:salary_" json:"salary_config"`

	DOB         string      `gorm:"type:varchar(10)" json:"dob"`
	Phone       string      `json:"phone"`
	Email       string      `json:"email"`
	Address     string      `json:"address"`
	BankDetails BankDetails `gorm:"embedded;embeddedPrefix:bank_" json:"bank_details"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Employee) TableName() string {
	return "employees"
}

// IsActive reports whether the employee may pass the gate.
func (e *Employee) IsActive() bool {
	return e.Status == EmployeeActive
}

// IsValid checks the data before persisting.
func (e *Employee) IsValid() bool {
	if e.ID == "" {
		return false
	}
	if e.Name == "" {
		return false
	}
	if e.Status != EmployeeActive && e.Status != EmployeeInactive {
		return false
	}
	switch e.SalaryConfig.Type {
	case SalaryMonthly, SalaryDaily, SalaryHourly, SalaryWeekly:
	default:
		return false
	}
	return true
}
