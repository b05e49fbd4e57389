package models

import (
	"regexp"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"

	id "punchclock/pkg/domain"
	dErrors "punchclock/pkg/domain-errors"
)

const maxNameLength = 200

var pinPattern = regexp.MustCompile(`^\d{4}$`)

// Profile is an employee of one company. PINHash is empty until an admin
// sets a kiosk PIN.
type Profile struct {
	ID                id.EmployeeID
	CompanyID         id.CompanyID
	UserID            id.UserID
	FullName          string
	Email             string
	IsActive          bool
	UserActive        bool
	PINHash           string
	PINFailedAttempts int
	PINLockedUntil    *time.Time
	CreatedAt         time.Time
}

// CanPunch reports whether both the profile and its login are active.
func (p *Profile) CanPunch() bool {
	return p.IsActive && p.UserActive
}

// PINCandidate is one entry of a company's kiosk PIN roster.
type PINCandidate struct {
	EmployeeID     id.EmployeeID
	UserID         id.UserID
	FullName       string
	Email          string
	PINHash        string
	PINLockedUntil *time.Time
}

// LockedAt reports whether the employee-level PIN lock is in force at now.
func (c PINCandidate) LockedAt(now time.Time) bool {
	return c.PINLockedUntil != nil && c.PINLockedUntil.After(now)
}

// ValidatePIN checks that pin is exactly four digits.
func ValidatePIN(pin string) error {
	if !pinPattern.MatchString(pin) {
		return dErrors.New(dErrors.CodeInvalidInput, "pin must be exactly 4 digits")
	}
	return nil
}

// NewEmployee is an admin request to add someone to the roster. UserID links
// the profile to the login issued by the identity provider; when nil a new
// ID is minted.
type NewEmployee struct {
	UserID   id.UserID
	FullName string
	Email    string
}

// Normalize trims the name and lower-cases the email, then validates both.
func (n *NewEmployee) Normalize() error {
	n.FullName = strings.TrimSpace(n.FullName)
	n.Email = strings.ToLower(strings.TrimSpace(n.Email))
	if err := validateName(n.FullName); err != nil {
		return err
	}
	if !govalidator.StringLength(n.Email, "3", "255") || !govalidator.IsEmail(n.Email) {
		return dErrors.New(dErrors.CodeInvalidInput, "email must be a valid address")
	}
	return nil
}

// Update is a partial profile change; nil fields are left untouched.
// Setting IsActive to false removes the employee from punching and from the
// kiosk roster without deleting their history.
type Update struct {
	FullName *string
	IsActive *bool
}

// Apply validates u and writes it onto p.
func (u Update) Apply(p *Profile) error {
	if u.FullName == nil && u.IsActive == nil {
		return dErrors.New(dErrors.CodeInvalidInput, "nothing to update")
	}
	if u.FullName != nil {
		name := strings.TrimSpace(*u.FullName)
		if err := validateName(name); err != nil {
			return err
		}
		p.FullName = name
	}
	if u.IsActive != nil {
		p.IsActive = *u.IsActive
	}
	return nil
}

func validateName(name string) error {
	if name == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "fullName is required")
	}
	if len(name) > maxNameLength {
		return dErrors.New(dErrors.CodeInvalidInput, "fullName must be at most 200 characters")
	}
	return nil
}
