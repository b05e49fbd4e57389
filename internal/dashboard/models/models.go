// Package models holds the admin dashboard's read model: where each active
// employee stands today and how many punches were turned away.
package models

import (
	"time"

	"punchclock/internal/geo"
	tcmodels "punchclock/internal/timeclock/models"
	id "punchclock/pkg/domain"
)

// Status is an employee's position in the day as shown on the dashboard.
type Status string

const (
	StatusWorking    Status = "WORKING"
	StatusBreak      Status = "BREAK"
	StatusOut        Status = "OUT"
	StatusNotStarted Status = "NOT_STARTED"
)

// StatusOf maps the day's last recorded punch type to a dashboard status.
// An empty or unrecognised type means the employee has not started.
func StatusOf(last tcmodels.EventType) Status {
	switch last {
	case tcmodels.EventIn, tcmodels.EventBreakEnd:
		return StatusWorking
	case tcmodels.EventBreakStart:
		return StatusBreak
	case tcmodels.EventOut:
		return StatusOut
	default:
		return StatusNotStarted
	}
}

// Summary counts the company's active employees by status.
type Summary struct {
	Date                 string
	TotalActiveEmployees int
	WorkingNow           int
	OnBreakNow           int
	OutNow               int
	NotStartedYet        int
	BlockedAttemptsToday int
	LastUpdatedAt        time.Time
}

// Add counts one employee under status.
func (s *Summary) Add(status Status) {
	s.TotalActiveEmployees++
	switch status {
	case StatusWorking:
		s.WorkingNow++
	case StatusBreak:
		s.OnBreakNow++
	case StatusOut:
		s.OutNow++
	default:
		s.NotStartedYet++
	}
}

// LiveRow is one active employee's line on the live board. The Last* fields
// are nil until the employee punches that day.
type LiveRow struct {
	EmployeeID           id.EmployeeID
	FullName             string
	Email                string
	IsActive             bool
	StatusNow            Status
	LastEventType        *tcmodels.EventType
	LastEventTime        *time.Time
	GeoStatus            *geo.Status
	LastDistanceMeters   *int
	BlockedAttemptsToday int
}
