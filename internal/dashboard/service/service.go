// Package service builds the admin dashboard: a per-status headcount and a
// live board of the company's active employees for one local calendar day.
package service

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"punchclock/internal/dashboard/models"
	empmodels "punchclock/internal/employee/models"
	"punchclock/internal/localday"
	settingsmodels "punchclock/internal/settings/models"
	tcmodels "punchclock/internal/timeclock/models"
	id "punchclock/pkg/domain"
	dErrors "punchclock/pkg/domain-errors"
	audit "punchclock/pkg/platform/audit"
	"punchclock/pkg/requestcontext"
)

var tracer = otel.Tracer("punchclock/internal/dashboard/service")

type Roster interface {
	List(ctx context.Context, companyID id.CompanyID) ([]empmodels.Profile, error)
}

type EventReader interface {
	LatestPerEmployee(ctx context.Context, companyID id.CompanyID, from, to time.Time) (map[id.EmployeeID]tcmodels.Event, error)
}

type AuditCounter interface {
	CountByActor(ctx context.Context, companyID id.CompanyID, action audit.Action, from, to time.Time) (audit.Tally, error)
}

type SettingsProvider interface {
	Get(ctx context.Context, companyID id.CompanyID) (*settingsmodels.Settings, error)
}

type Service struct {
	roster          Roster
	events          EventReader
	audit           AuditCounter
	settings        SettingsProvider
	logger          *slog.Logger
	defaultLocation *time.Location
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithDefaultLocation sets the zone used when a company has no valid timezone.
func WithDefaultLocation(loc *time.Location) Option {
	return func(s *Service) {
		s.defaultLocation = loc
	}
}

func New(roster Roster, events EventReader, counter AuditCounter, settings SettingsProvider, opts ...Option) *Service {
	s := &Service{
		roster:   roster,
		events:   events,
		audit:    counter,
		settings: settings,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.defaultLocation == nil {
		s.defaultLocation = time.Local
	}
	return s
}

// day is one local calendar day: events are read over [from, to] and audit
// rows over [from, end).
type day struct {
	label    string
	from, to time.Time
	end      time.Time
}

// snapshot is the shared read behind Summary and Live.
type snapshot struct {
	day       day
	employees []empmodels.Profile
	latest    map[id.EmployeeID]tcmodels.Event
	blocked   audit.Tally
}

// Summary counts active employees by status for date (YYYY-MM-DD, company
// local). An empty date means today.
func (s *Service) Summary(ctx context.Context, companyID id.CompanyID, date string) (*models.Summary, error) {
	ctx, span := tracer.Start(ctx, "dashboard.Summary")
	defer span.End()
	span.SetAttributes(attribute.String("company_id", companyID.String()))

	snap, err := s.load(ctx, companyID, date)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	summary := &models.Summary{
		Date:                 snap.day.label,
		BlockedAttemptsToday: snap.blocked.Total,
		LastUpdatedAt:        requestcontext.Now(ctx),
	}
	for _, p := range snap.employees {
		summary.Add(models.StatusOf(snap.latest[p.ID].Type))
	}
	return summary, nil
}

// Live lists active employees by name with their last punch of the day and
// how many of their own punches were blocked.
func (s *Service) Live(ctx context.Context, companyID id.CompanyID, date string) ([]models.LiveRow, error) {
	ctx, span := tracer.Start(ctx, "dashboard.Live")
	defer span.End()
	span.SetAttributes(attribute.String("company_id", companyID.String()))

	snap, err := s.load(ctx, companyID, date)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	rows := make([]models.LiveRow, 0, len(snap.employees))
	for _, p := range snap.employees {
		row := models.LiveRow{
			EmployeeID:           p.ID,
			FullName:             p.FullName,
			Email:                p.Email,
			IsActive:             p.CanPunch(),
			StatusNow:            models.StatusNotStarted,
			BlockedAttemptsToday: snap.blocked.ByActor[p.UserID],
		}
		if e, ok := snap.latest[p.ID]; ok {
			row.StatusNow = models.StatusOf(e.Type)
			row.LastEventType = &e.Type
			row.LastEventTime = &e.Timestamp
			row.GeoStatus = &e.GeoStatus
			row.LastDistanceMeters = e.DistanceMeters
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *Service) load(ctx context.Context, companyID id.CompanyID, date string) (*snapshot, error) {
	d, err := s.resolveDay(ctx, companyID, date)
	if err != nil {
		return nil, err
	}

	profiles, err := s.roster.List(ctx, companyID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list employees")
	}
	employees := make([]empmodels.Profile, 0, len(profiles))
	for _, p := range profiles {
		if p.CanPunch() {
			employees = append(employees, p)
		}
	}
	slices.SortFunc(employees, func(a, b empmodels.Profile) int {
		return cmp.Or(
			strings.Compare(a.FullName, b.FullName),
			strings.Compare(a.ID.String(), b.ID.String()),
		)
	})

	latest, err := s.events.LatestPerEmployee(ctx, companyID, d.from, d.to)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load punches")
	}
	blocked, err := s.audit.CountByActor(ctx, companyID, audit.ActionTimeclockPunchBlocked, d.from, d.end)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count blocked punches")
	}

	if s.logger != nil {
		s.logger.DebugContext(ctx, "dashboard loaded",
			"company_id", companyID.String(),
			"date", d.label,
			"employees", len(employees),
			"blocked", blocked.Total,
		)
	}
	return &snapshot{day: d, employees: employees, latest: latest, blocked: blocked}, nil
}

func (s *Service) resolveDay(ctx context.Context, companyID id.CompanyID, date string) (day, error) {
	st, err := s.settings.Get(ctx, companyID)
	if err != nil {
		return day{}, err
	}
	loc := st.Location(s.defaultLocation)

	ref := requestcontext.Now(ctx)
	if date = strings.TrimSpace(date); date != "" {
		ref, err = localday.ParseDate(date, loc)
		if err != nil {
			return day{}, dErrors.New(dErrors.CodeInvalidInput, "date must be a valid YYYY-MM-DD date")
		}
	}
	start, end := localday.Bounds(ref, loc)
	return day{
		label: localday.Date(start, loc),
		from:  start,
		to:    end.Add(-time.Nanosecond),
		end:   end,
	}, nil
}
