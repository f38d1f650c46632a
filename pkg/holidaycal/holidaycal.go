// Package holidaycal parses holiday calendar JSON files for bulk import
// into the policy screen.
package holidaycal

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// CalendarJSON is the file format: one year, holidays grouped by month.
type CalendarJSON struct {
	Year   int          `json:"year"`
	Months []MonthEntry `json:"months"`
}

type MonthEntry struct {
	Month    int        `json:"month"`
	Holidays []DayEntry `json:"holidays"`
}

type DayEntry struct {
	Day  int    `json:"day"`
	Name string `json:"name"`
	Type string `json:"type"` // public or optional
}

// Entry is one parsed holiday ready for storage.
type Entry struct {
	Date string
	Name string
	Type string
}

// Parse reads and validates a calendar file.
func Parse(filePath string) ([]Entry, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read calendar file: %w", err)
	}
	return ParseBytes(data)
}

// ParseBytes validates calendar JSON and flattens it to dated entries.
func ParseBytes(data []byte) ([]Entry, error) {
	var cal CalendarJSON
	if err := json.Unmarshal(data, &cal); err != nil {
		return nil, fmt.Errorf("failed to unmarshal calendar JSON: %w", err)
	}

	if cal.Year < 2000 || cal.Year > 2100 {
		return nil, fmt.Errorf("implausible calendar year %d", cal.Year)
	}

	entries := []Entry{}
	for _, month := range cal.Months {
		if month.Month < 1 || month.Month > 12 {
			return nil, fmt.Errorf("invalid month %d", month.Month)
		}
		for _, day := range month.Holidays {
			date := time.Date(cal.Year, time.Month(month.Month), day.Day, 0, 0, 0, 0, time.Local)
			if date.Day() != day.Day || int(date.Month()) != month.Month {
				return nil, fmt.Errorf("invalid day %d in month %d", day.Day, month.Month)
			}
			typ := day.Type
			if typ == "" {
				typ = "public"
			}
			if typ != "public" && typ != "optional" {
				return nil, fmt.Errorf("invalid holiday type %q", day.Type)
			}
			entries = append(entries, Entry{
				Date: date.Format("2006-01-02"),
				Name: day.Name,
				Type: typ,
			})
		}
	}

	return entries, nil
}
