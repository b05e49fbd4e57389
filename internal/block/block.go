// Package block defines the policy-block taxonomy shared by the punch and
// kiosk flows.
//
// A block is an expected, enumerated denial. Its Code is a stable string that
// clients switch on; Message is for people. System failures are never
// represented as blocks.
package block

import (
	"errors"
	"fmt"
)

// Code is a stable reason code.
type Code string

const (
	GeoRequired          Code = "GEO_REQUIRED"
	LowAccuracy          Code = "LOW_ACCURACY"
	OutsideGeofence      Code = "OUTSIDE_GEOFENCE"
	GeoFailedQRRequired  Code = "GEO_FAILED_QR_REQUIRED"
	InvalidQR            Code = "INVALID_QR"
	QRDisabled           Code = "QR_DISABLED"
	QRExpired            Code = "QR_EXPIRED"
	PINInvalid           Code = "PIN_INVALID"
	PINLocked            Code = "PIN_LOCKED"
	InvalidEmployeeQR    Code = "INVALID_EMPLOYEE_QR"
	WorkdayAlreadyClosed Code = "WORKDAY_ALREADY_CLOSED"

	// EmployeeNotFound is recorded as an audit reason only; callers see a
	// not-found domain error instead of a block.
	EmployeeNotFound Code = "EMPLOYEE_NOT_FOUND"
)

var messages = map[Code]string{
	GeoRequired:          "Location is required to record a punch.",
	LowAccuracy:          "Your location could not be confirmed precisely. Turn on GPS and try again.",
	OutsideGeofence:      "You are outside the company area. Be on site to record a punch.",
	GeoFailedQRRequired:  "Your location could not be obtained. Scan the company QR code to record a punch.",
	InvalidQR:            "Invalid QR code. Scan the company QR code again.",
	QRDisabled:           "QR code punches are disabled for this company.",
	QRExpired:            "QR code expired. Scan today's QR code.",
	PINInvalid:           "Incorrect PIN.",
	InvalidEmployeeQR:    "Invalid employee QR code.",
	WorkdayAlreadyClosed: "The workday has already been closed.",
}

// Message returns the default human-readable message for c.
func (c Code) Message() string {
	if msg, ok := messages[c]; ok {
		return msg
	}
	return string(c)
}

// Scope of a PIN lock.
type Scope string

const (
	ScopeDevice   Scope = "DEVICE"
	ScopeEmployee Scope = "EMPLOYEE"
)

// Error is a policy block.
type Error struct {
	Code    Code
	Message string
	Details map[string]any
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// New builds a block with the default message for code.
func New(code Code) *Error {
	return &Error{Code: code, Message: code.Message()}
}

// WithDetails returns a block carrying structured details.
func WithDetails(code Code, details map[string]any) *Error {
	return &Error{Code: code, Message: code.Message(), Details: details}
}

// Locked builds a PIN_LOCKED block for scope.
func Locked(scope Scope, retryAfterSeconds int) *Error {
	return &Error{
		Code:    PINLocked,
		Message: fmt.Sprintf("Too many attempts. Try again in %ds.", retryAfterSeconds),
		Details: map[string]any{
			"retryAfterSeconds": retryAfterSeconds,
			"scope":             string(scope),
		},
	}
}

// As extracts a block from err's chain.
func As(err error) (*Error, bool) {
	var b *Error
	if errors.As(err, &b) {
		return b, true
	}
	return nil, false
}

// Is reports whether err is a block with code.
func Is(err error, code Code) bool {
	b, ok := As(err)
	return ok && b.Code == code
}
