package models

import (
	"fmt"
	"time"

	"punchclock/internal/block"
	"punchclock/internal/geo"
	id "punchclock/pkg/domain"
	dErrors "punchclock/pkg/domain-errors"
)

// EventType is one step of an employee's working day.
type EventType string

const (
	EventIn         EventType = "IN"
	EventBreakStart EventType = "BREAK_START"
	EventBreakEnd   EventType = "BREAK_END"
	EventOut        EventType = "OUT"
)

func (t EventType) IsValid() bool {
	switch t {
	case EventIn, EventBreakStart, EventBreakEnd, EventOut:
		return true
	}
	return false
}

var nextEvent = map[EventType]EventType{
	"":              EventIn,
	EventIn:         EventBreakStart,
	EventBreakStart: EventBreakEnd,
	EventBreakEnd:   EventOut,
}

// NextEventType maps the last event of the local day to the next one.
// An empty last means no event yet today. After OUT the day is closed and
// WORKDAY_ALREADY_CLOSED is returned. A stored type outside the four known
// ones is an invariant violation.
func NextEventType(last EventType) (EventType, error) {
	if last != "" && !last.IsValid() {
		return "", dErrors.New(dErrors.CodeInvariantViolation, fmt.Sprintf("unknown event type %q", last))
	}
	next, ok := nextEvent[last]
	if !ok {
		return "", block.New(block.WorkdayAlreadyClosed)
	}
	return next, nil
}

// Status is where an employee stands after their last event.
type Status string

const (
	StatusWorking Status = "WORKING"
	StatusOnBreak Status = "ON_BREAK"
	StatusOff     Status = "OFF"
)

// StatusAfter is the status an employee is in once last has been recorded.
func StatusAfter(last EventType) Status {
	switch last {
	case EventIn, EventBreakEnd:
		return StatusWorking
	case EventBreakStart:
		return StatusOnBreak
	default:
		return StatusOff
	}
}

// Method is how a punch was authorized.
type Method string

const (
	MethodGeo   Method = "GEO"
	MethodQR    Method = "QR"
	MethodKiosk Method = "KIOSK"
)

// Source is the client that recorded a punch.
type Source string

const (
	SourcePWA   Source = "PWA"
	SourceKiosk Source = "KIOSK"
)

// Event is a recorded punch. Geo fields are set only for GEO punches; QRDate
// only for QR punches.
type Event struct {
	ID         id.EventID
	CompanyID  id.CompanyID
	EmployeeID id.EmployeeID
	Type       EventType
	Timestamp  time.Time
	Source     Source
	Method     Method
	DeviceID   string
	IP         string
	UserAgent  string

	Reading        *geo.Reading
	DistanceMeters *int
	GeoStatus      geo.Status
	QRDate         string
}

// Last is the type and time of the latest event in a window. The zero
// value means the window is empty.
type Last struct {
	Type EventType
	At   time.Time
}

// DayStatus summarizes a local day: the last recorded type and the next one
// allowed. Next is empty once the day is closed.
type DayStatus struct {
	Current EventType
	Next    EventType
}

// DayStatusOf derives the status from a day's events in time order.
func DayStatusOf(events []Event) DayStatus {
	var last EventType
	if n := len(events); n > 0 {
		last = events[n-1].Type
	}
	next, err := NextEventType(last)
	if err != nil {
		next = ""
	}
	return DayStatus{Current: last, Next: next}
}

// KioskMethod is how a kiosk identified the employee before punching.
type KioskMethod string

const (
	KioskMethodPIN        KioskMethod = "PIN"
	KioskMethodEmployeeQR KioskMethod = "EMPLOYEE_QR"
)

func (m KioskMethod) IsValid() bool {
	return m == KioskMethodPIN || m == KioskMethodEmployeeQR
}
