// Package localday computes calendar days in a company's time zone.
// Day boundaries fall at local midnight, not UTC midnight.
package localday

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the ISO date carried by daily QR tokens.
const DateLayout = "2006-01-02"

// Location loads name, falling back to fallback (or time.Local) when name is
// empty or unknown.
func Location(name string, fallback *time.Location) *time.Location {
	if name = strings.TrimSpace(name); name != "" {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}
	if fallback != nil {
		return fallback
	}
	return time.Local
}

// Date is t's calendar date in loc.
func Date(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DateLayout)
}

// Bounds returns [start, end) of t's calendar day in loc.
func Bounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}

// NextMidnight is the first instant of the day after t in loc.
func NextMidnight(t time.Time, loc *time.Location) time.Time {
	_, end := Bounds(t, loc)
	return end
}

// ParseDate reads a YYYY-MM-DD calendar date and returns its local midnight
// in loc. Out-of-range days such as 2026-02-30 are rejected.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}
