// Package domain holds the typed identifiers shared across modules.
//
// Each identifier is a distinct named uuid.UUID so a CompanyID can never be
// passed where an EmployeeID is expected. Parse* functions are the trust
// boundary: they reject empty, malformed and nil UUIDs.
package domain

import (
	"github.com/google/uuid"

	dErrors "punchclock/pkg/domain-errors"
)

type (
	CompanyID  uuid.UUID
	EmployeeID uuid.UUID
	UserID     uuid.UUID
	EventID    uuid.UUID
)

func (id CompanyID) String() string  { return uuid.UUID(id).String() }
func (id EmployeeID) String() string { return uuid.UUID(id).String() }
func (id UserID) String() string     { return uuid.UUID(id).String() }
func (id EventID) String() string    { return uuid.UUID(id).String() }

func (id CompanyID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id EmployeeID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id UserID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id EventID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

func ParseCompanyID(s string) (CompanyID, error) {
	u, err := parseUUID(s, "company ID")
	return CompanyID(u), err
}

func ParseEmployeeID(s string) (EmployeeID, error) {
	u, err := parseUUID(s, "employee ID")
	return EmployeeID(u), err
}

func ParseUserID(s string) (UserID, error) {
	u, err := parseUUID(s, "user ID")
	return UserID(u), err
}

func ParseEventID(s string) (EventID, error) {
	u, err := parseUUID(s, "event ID")
	return EventID(u), err
}

func parseUUID(s, label string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be empty")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+label)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be nil")
	}
	return u, nil
}
