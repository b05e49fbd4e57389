// Package resolver decides whether a browser punch may be recorded and by
// which method, following the company's fallback mode.
//
// Resolution order:
//  1. QR_ONLY skips geolocation entirely and requires a valid daily QR.
//  2. Otherwise the geofence is evaluated and the (mode, geo outcome) route
//     table picks one of: accept by GEO, fall back to QR, or reject.
//
// Being outside the geofence is rejected in every mode. A QR code stands in
// for a location that could not be evaluated, never for one that was
// evaluated and found outside.
package resolver

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"punchclock/internal/block"
	"punchclock/internal/geo"
	"punchclock/internal/qrtoken"
	settingsmodels "punchclock/internal/settings/models"
	"punchclock/internal/timeclock/models"
	id "punchclock/pkg/domain"
	audit "punchclock/pkg/platform/audit"
)

var tracer = otel.Tracer("punchclock/internal/timeclock/resolver")

// Policy is the company configuration a punch is resolved against.
type Policy struct {
	CompanyID id.CompanyID
	Geo       geo.Policy
	QREnabled bool
	Mode      settingsmodels.FallbackMode
	Secret    string
}

// PolicyFrom extracts the punch policy from company settings.
func PolicyFrom(st *settingsmodels.Settings) Policy {
	return Policy{
		CompanyID: st.CompanyID,
		Geo:       st.GeoPolicy(),
		QREnabled: st.QREnabled,
		Mode:      st.FallbackMode.Normalize(),
		Secret:    st.QRSecret,
	}
}

// Attempt is what the client supplied. Today is the company-local date the
// daily QR must carry.
type Attempt struct {
	Reading *geo.Reading
	QRToken string
	Today   string
}

// Resolution is an authorized punch.
type Resolution struct {
	Method         models.Method
	GeoStatus      geo.Status
	Reading        *geo.Reading
	DistanceMeters *int
	QRDate         string
}

// Denial is a blocked attempt with the diagnostics recorded in its audit.
type Denial struct {
	Err             *block.Error
	MethodAttempted models.Method
	GeoStatus       geo.Status
	DistanceMeters  *int
	RadiusMeters    *int
	AccuracyMeters  *float64
	QRDate          string
}

type geoOutcome uint8

const (
	geoPassed geoOutcome = iota
	geoUnavailable
	geoOutside
)

type route uint8

const (
	acceptGeo route = iota
	fallbackToQR
	rejectGeo
)

// routes covers every mode that evaluates geolocation.
var routes = map[settingsmodels.FallbackMode][3]route{
	settingsmodels.FallbackGeoOnly: {
		geoPassed:      acceptGeo,
		geoUnavailable: rejectGeo,
		geoOutside:     rejectGeo,
	},
	settingsmodels.FallbackGeoOrQR: {
		geoPassed:      acceptGeo,
		geoUnavailable: fallbackToQR,
		geoOutside:     rejectGeo,
	},
}

func outcomeOf(d geo.Decision) geoOutcome {
	switch {
	case !d.Blocked:
		return geoPassed
	case d.Code == block.OutsideGeofence:
		return geoOutside
	default:
		return geoUnavailable
	}
}

// Resolve decides attempt under policy. Exactly one of the results is set.
func Resolve(policy Policy, attempt Attempt) (Resolution, *Denial) {
	mode := policy.Mode.Normalize()
	if mode == settingsmodels.FallbackQROnly {
		return resolveQR(policy, attempt, block.InvalidQR)
	}

	decision := geo.Evaluate(policy.Geo, attempt.Reading)

	switch routes[mode][outcomeOf(decision)] {
	case acceptGeo:
		return Resolution{
			Method:         models.MethodGeo,
			GeoStatus:      decision.Status,
			Reading:        decision.Reading,
			DistanceMeters: decision.DistanceMeters,
		}, nil
	case fallbackToQR:
		res, denial := resolveQR(policy, attempt, block.GeoFailedQRRequired)
		if denial != nil && denial.Err.Code == block.GeoFailedQRRequired {
			geoDiagnostics(denial, policy, decision, attempt.Reading)
			denial.MethodAttempted = models.MethodGeo
		}
		return res, denial
	default:
		denial := &Denial{Err: decision.Block(), MethodAttempted: models.MethodGeo}
		geoDiagnostics(denial, policy, decision, attempt.Reading)
		return Resolution{}, denial
	}
}

// resolveQR verifies the daily token. missing is the block used when no
// token was supplied.
func resolveQR(policy Policy, attempt Attempt, missing block.Code) (Resolution, *Denial) {
	if !policy.QREnabled {
		return Resolution{}, &Denial{Err: block.New(block.QRDisabled), MethodAttempted: models.MethodQR}
	}
	if attempt.QRToken == "" {
		return Resolution{}, &Denial{Err: block.New(missing), MethodAttempted: models.MethodQR}
	}
	if policy.Secret == "" {
		return Resolution{}, &Denial{Err: block.New(block.InvalidQR), MethodAttempted: models.MethodQR}
	}

	claims, err := qrtoken.VerifyDaily(attempt.QRToken, policy.Secret, policy.CompanyID, attempt.Today)
	if err != nil {
		b, ok := block.As(err)
		if !ok {
			b = block.New(block.InvalidQR)
		}
		return Resolution{}, &Denial{Err: b, MethodAttempted: models.MethodQR, QRDate: claims.Date}
	}
	return Resolution{Method: models.MethodQR, GeoStatus: geo.StatusMissing, QRDate: claims.Date}, nil
}

func geoDiagnostics(d *Denial, policy Policy, decision geo.Decision, reading *geo.Reading) {
	d.GeoStatus = decision.Status
	d.DistanceMeters = decision.DistanceMeters
	if decision.Code == block.OutsideGeofence {
		radius := policy.Geo.RadiusMeters
		d.RadiusMeters = &radius
	}
	if reading != nil {
		accuracy := reading.AccuracyMeters
		d.AccuracyMeters = &accuracy
	}
}

// AuditRecorder records blocked attempts without failing the caller.
type AuditRecorder interface {
	RecordBlocked(ctx context.Context, event audit.Event)
}

// Resolver wraps Resolve with the blocked-attempt audit.
type Resolver struct {
	audit  AuditRecorder
	logger *slog.Logger
}

type Option func(*Resolver)

func WithAuditRecorder(r AuditRecorder) Option {
	return func(res *Resolver) {
		res.audit = r
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(res *Resolver) {
		res.logger = logger
	}
}

func New(opts ...Option) *Resolver {
	r := &Resolver{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ResolvePunch resolves attempt for actor. A denial is recorded as
// TIMECLOCK_PUNCH_BLOCKED before its block is returned.
func (r *Resolver) ResolvePunch(ctx context.Context, actor id.UserID, policy Policy, attempt Attempt) (Resolution, error) {
	ctx, span := tracer.Start(ctx, "resolver.ResolvePunch")
	defer span.End()
	span.SetAttributes(
		attribute.String("company_id", policy.CompanyID.String()),
		attribute.String("fallback_mode", string(policy.Mode)),
		attribute.Bool("geo_supplied", attempt.Reading != nil),
		attribute.Bool("qr_supplied", attempt.QRToken != ""),
	)

	res, denial := Resolve(policy, attempt)
	if denial == nil {
		span.SetAttributes(attribute.String("method", string(res.Method)))
		return res, nil
	}

	span.SetStatus(codes.Error, string(denial.Err.Code))
	if r.audit != nil {
		r.audit.RecordBlocked(ctx, denial.AuditEvent(policy.CompanyID, actor))
	}
	if r.logger != nil {
		r.logger.InfoContext(ctx, "punch blocked",
			"company_id", policy.CompanyID.String(),
			"reason", string(denial.Err.Code),
			"method_attempted", string(denial.MethodAttempted),
		)
	}
	return Resolution{}, denial.Err
}

// AuditEvent is the TIMECLOCK_PUNCH_BLOCKED record for d.
func (d *Denial) AuditEvent(companyID id.CompanyID, actor id.UserID) audit.Event {
	return audit.Event{
		CompanyID:       companyID,
		ActorID:         actor,
		Action:          audit.ActionTimeclockPunchBlocked,
		Outcome:         audit.OutcomeBlocked,
		Reason:          string(d.Err.Code),
		Entity:          "time_clock_event",
		MethodAttempted: string(d.MethodAttempted),
		GeoStatus:       string(d.GeoStatus),
		DistanceMeters:  d.DistanceMeters,
		RadiusMeters:    d.RadiusMeters,
		AccuracyMeters:  d.AccuracyMeters,
		QRDate:          d.QRDate,
		QRDisposition:   qrDisposition(d),
	}
}

func qrDisposition(d *Denial) string {
	if d.MethodAttempted != models.MethodQR {
		return ""
	}
	return string(d.Err.Code)
}
