package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/mssola/useragent"

	id "punchclock/pkg/domain"
)

// EventCategory classifies audit events by their primary purpose.
type EventCategory string

const (
	// CategoryCompliance covers recorded work time and policy changes.
	// Labor regulations require these to be kept for years.
	CategoryCompliance EventCategory = "compliance"

	// CategorySecurity covers denied punches, kiosk authentication and
	// credential changes. These feed fraud review and alerting.
	CategorySecurity EventCategory = "security"
)

// Action names are stable strings; downstream consumers key on them.
type Action string

const (
	ActionTimeclockPunch        Action = "TIMECLOCK_PUNCH"
	ActionTimeclockPunchBlocked Action = "TIMECLOCK_PUNCH_BLOCKED"
	ActionKioskAuthSuccess      Action = "KIOSK_AUTH_SUCCESS"
	ActionKioskAuthFailed       Action = "KIOSK_AUTH_FAILED"
	ActionKioskPunch            Action = "KIOSK_PUNCH"
	ActionKioskPunchBlocked     Action = "KIOSK_PUNCH_BLOCKED"
	ActionSettingsUpdated       Action = "SETTINGS_UPDATED"
	ActionQRSecretRotated       Action = "QR_SECRET_ROTATED"
	ActionEmployeePINSet        Action = "EMPLOYEE_PIN_SET"
	ActionEmployeePINReset      Action = "EMPLOYEE_PIN_RESET"
	ActionEmployeeQRRegenerated Action = "EMPLOYEE_QR_REGENERATED"
	ActionEmployeeCreated       Action = "EMPLOYEE_CREATED"
	ActionEmployeeUpdated       Action = "EMPLOYEE_UPDATED"
	ActionEmployeeDeactivated   Action = "EMPLOYEE_DEACTIVATED"
)

var actionCategories = map[Action]EventCategory{
	ActionTimeclockPunch:  CategoryCompliance,
	ActionKioskPunch:      CategoryCompliance,
	ActionSettingsUpdated: CategoryCompliance,
	ActionEmployeeCreated: CategoryCompliance,
	ActionEmployeeUpdated: CategoryCompliance,

	ActionTimeclockPunchBlocked: CategorySecurity,
	ActionKioskAuthSuccess:      CategorySecurity,
	ActionKioskAuthFailed:       CategorySecurity,
	ActionKioskPunchBlocked:     CategorySecurity,
	ActionQRSecretRotated:       CategorySecurity,
	ActionEmployeePINSet:        CategorySecurity,
	ActionEmployeePINReset:      CategorySecurity,
	ActionEmployeeQRRegenerated: CategorySecurity,
	ActionEmployeeDeactivated:   CategorySecurity,
}

// Category returns the category for a; unknown actions are security events.
func (a Action) Category() EventCategory {
	if cat, ok := actionCategories[a]; ok {
		return cat
	}
	return CategorySecurity
}

// Outcome of the audited decision.
type Outcome string

const (
	OutcomeSuccess Outcome = "SUCCESS"
	OutcomeBlocked Outcome = "BLOCKED"
)

// Event is one audit record. Fields that do not apply to an action stay zero
// and are omitted from the serialized payload.
type Event struct {
	Timestamp time.Time
	CompanyID id.CompanyID
	// ActorID is the session that made the request (employee, admin or kiosk account).
	ActorID  id.UserID
	Action   Action
	Outcome  Outcome
	Reason   string
	Entity   string
	EntityID string

	Method          string
	MethodAttempted string
	EmployeeID      string
	EventType       string
	DeviceLabel     string

	GeoStatus      string
	DistanceMeters *int
	RadiusMeters   *int
	AccuracyMeters *float64

	QRDate        string
	QRDisposition string

	IP        string
	UserAgent string
	RequestID string
}

// Category is derived from the action.
func (e Event) Category() EventCategory { return e.Action.Category() }

// ClientSummary describes the user agent as "browser version / os", with a
// mobile marker. Empty when no user agent was captured.
func (e Event) ClientSummary() string {
	if e.UserAgent == "" {
		return ""
	}
	ua := useragent.New(e.UserAgent)
	if ua.Bot() {
		name, _ := ua.Browser()
		return "bot " + name
	}
	name, version := ua.Browser()
	summary := fmt.Sprintf("%s %s / %s", name, version, ua.OS())
	if ua.Mobile() {
		summary += " (mobile)"
	}
	return summary
}

// Tally counts audit events of one action, in total and per actor.
// Events without an actor count toward Total only.
type Tally struct {
	Total   int
	ByActor map[id.UserID]int
}

// Store persists audit events. Implementations join the caller's
// transaction when one is present in ctx.
type Store interface {
	Append(ctx context.Context, event Event) error
}
