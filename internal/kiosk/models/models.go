package models

import (
	"math"
	"strings"
	"time"

	id "punchclock/pkg/domain"
)

// UnknownDeviceLabel stands in for kiosks that send no label.
const UnknownDeviceLabel = "UNKNOWN"

// DeviceKey identifies one physical kiosk: the company, the kiosk account
// signed in on it and the label the device reports.
type DeviceKey struct {
	CompanyID id.CompanyID
	UserID    id.UserID
	Label     string
}

func NewDeviceKey(companyID id.CompanyID, userID id.UserID, label string) DeviceKey {
	label = strings.TrimSpace(label)
	if label == "" {
		label = UnknownDeviceLabel
	}
	return DeviceKey{CompanyID: companyID, UserID: userID, Label: label}
}

// String renders the key for external caches. Both IDs are fixed-width
// UUIDs, so the free-form label can only ever be the last segment.
func (k DeviceKey) String() string {
	return k.CompanyID.String() + ":" + k.UserID.String() + ":" + k.Label
}

// DeviceLockState is the throttle state of one device key.
type DeviceLockState struct {
	FailedAttempts int
	LockedUntil    time.Time
	LastAttemptAt  time.Time
}

// LockedAt reports whether the device is locked at now.
func (s DeviceLockState) LockedAt(now time.Time) bool {
	return !s.LockedUntil.IsZero() && s.LockedUntil.After(now)
}

// IdleAt reports whether the state has been untouched for longer than ttl.
func (s DeviceLockState) IdleAt(now time.Time, ttl time.Duration) bool {
	return !s.LastAttemptAt.IsZero() && now.Sub(s.LastAttemptAt) > ttl
}

// RetryAfterSeconds rounds the time left until until up, and is never below 1.
func RetryAfterSeconds(until, now time.Time) int {
	return max(1, int(math.Ceil(until.Sub(now).Seconds())))
}

// Identity is the employee a kiosk session resolved to, with a hint for the
// punch the kiosk should offer next.
type Identity struct {
	EmployeeID    id.EmployeeID
	UserID        id.UserID
	FullName      string
	Email         string
	CurrentType   string
	NextEventType string
}

// DailyQR is the company token a kiosk displays for browser QR punches.
type DailyQR struct {
	Date        string
	Token       string
	ExpiresAt   time.Time
	DeviceLabel string
}
