package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"punchclock/internal/geo"
	"punchclock/internal/timeclock/models"
	id "punchclock/pkg/domain"
	txcontext "punchclock/pkg/platform/tx"
)

// PostgresStore persists punches in the time_clock_events table.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed punch store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, e *models.Event) error {
	var lat, lng, accuracy sql.NullFloat64
	var capturedAt sql.NullTime
	if e.Reading != nil {
		lat = sql.NullFloat64{Float64: e.Reading.Lat, Valid: true}
		lng = sql.NullFloat64{Float64: e.Reading.Lng, Valid: true}
		accuracy = sql.NullFloat64{Float64: e.Reading.AccuracyMeters, Valid: true}
		capturedAt = sql.NullTime{Time: e.Reading.CapturedAt, Valid: !e.Reading.CapturedAt.IsZero()}
	}
	var distance sql.NullInt64
	if e.DistanceMeters != nil {
		distance = sql.NullInt64{Int64: int64(*e.DistanceMeters), Valid: true}
	}

	_, err := txcontext.ExecerFrom(ctx, s.db).ExecContext(ctx, `
		INSERT INTO time_clock_events (
			id, company_id, employee_id, type, ts, source, punch_method, device_id,
			ip, user_agent, latitude, longitude, accuracy, geo_captured_at,
			geo_distance_m, geo_status, qr_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`,
		uuid.UUID(e.ID),
		uuid.UUID(e.CompanyID),
		uuid.UUID(e.EmployeeID),
		string(e.Type),
		e.Timestamp,
		string(e.Source),
		string(e.Method),
		nullString(e.DeviceID),
		nullString(e.IP),
		nullString(e.UserAgent),
		lat,
		lng,
		accuracy,
		capturedAt,
		distance,
		string(e.GeoStatus),
		nullString(e.QRDate),
	)
	if err != nil {
		return fmt.Errorf("create time clock event: %w", err)
	}
	return nil
}

// LockEmployee serializes punch sequencing for one employee until the
// surrounding transaction ends. Without a transaction it does nothing.
func (s *PostgresStore) LockEmployee(ctx context.Context, employeeID id.EmployeeID) error {
	tx, ok := txcontext.From(ctx)
	if !ok {
		return nil
	}
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, employeeID.String()); err != nil {
		return fmt.Errorf("lock employee: %w", err)
	}
	return nil
}

const eventColumns = `id, employee_id, type, ts, source, punch_method, device_id, latitude, longitude,
	accuracy, geo_captured_at, geo_distance_m, geo_status, qr_date`

func (s *PostgresStore) ListBetween(ctx context.Context, companyID id.CompanyID, employeeID id.EmployeeID, from, to time.Time) ([]models.Event, error) {
	rows, err := txcontext.ExecerFrom(ctx, s.db).QueryContext(ctx, `
		SELECT `+eventColumns+`
		FROM time_clock_events
		WHERE company_id = $1 AND employee_id = $2 AND ts >= $3 AND ts <= $4
		ORDER BY ts ASC, id ASC
	`, uuid.UUID(companyID), uuid.UUID(employeeID), from, to)
	if err != nil {
		return nil, fmt.Errorf("list time clock events: %w", err)
	}
	return scanEvents(rows, companyID)
}

// LatestPerEmployee returns each employee's last event in [from, to].
// Employees without events in the window are absent from the map.
func (s *PostgresStore) LatestPerEmployee(ctx context.Context, companyID id.CompanyID, from, to time.Time) (map[id.EmployeeID]models.Event, error) {
	rows, err := txcontext.ExecerFrom(ctx, s.db).QueryContext(ctx, `
		SELECT DISTINCT ON (employee_id) `+eventColumns+`
		FROM time_clock_events
		WHERE company_id = $1 AND ts >= $2 AND ts <= $3
		ORDER BY employee_id, ts DESC, id DESC
	`, uuid.UUID(companyID), from, to)
	if err != nil {
		return nil, fmt.Errorf("latest time clock events: %w", err)
	}
	events, err := scanEvents(rows, companyID)
	if err != nil {
		return nil, err
	}
	out := make(map[id.EmployeeID]models.Event, len(events))
	for _, e := range events {
		out[e.EmployeeID] = e
	}
	return out, nil
}

func scanEvents(rows *sql.Rows, companyID id.CompanyID) ([]models.Event, error) {
	defer rows.Close()

	var out []models.Event
	for rows.Next() {
		var (
			e                       models.Event
			eventID, employeeID     uuid.UUID
			eventType, source, meth string
			deviceID, qrDate        sql.NullString
			lat, lng, accuracy      sql.NullFloat64
			capturedAt              sql.NullTime
			distance                sql.NullInt64
			geoStatus               string
		)
		if err := rows.Scan(&eventID, &employeeID, &eventType, &e.Timestamp, &source, &meth, &deviceID,
			&lat, &lng, &accuracy, &capturedAt, &distance, &geoStatus, &qrDate); err != nil {
			return nil, fmt.Errorf("scan time clock event: %w", err)
		}
		e.ID = id.EventID(eventID)
		e.CompanyID = companyID
		e.EmployeeID = id.EmployeeID(employeeID)
		e.Type = models.EventType(eventType)
		e.Source = models.Source(source)
		e.Method = models.Method(meth)
		e.DeviceID = deviceID.String
		e.GeoStatus = geo.Status(geoStatus)
		e.QRDate = qrDate.String
		if lat.Valid && lng.Valid {
			e.Reading = &geo.Reading{Lat: lat.Float64, Lng: lng.Float64, AccuracyMeters: accuracy.Float64, CapturedAt: capturedAt.Time}
		}
		if distance.Valid {
			d := int(distance.Int64)
			e.DistanceMeters = &d
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate time clock events: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) LastBetween(ctx context.Context, companyID id.CompanyID, employeeID id.EmployeeID, from, to time.Time) (models.Last, error) {
	var (
		eventType string
		at        time.Time
	)
	err := txcontext.ExecerFrom(ctx, s.db).QueryRowContext(ctx, `
		SELECT type, ts FROM time_clock_events
		WHERE company_id = $1 AND employee_id = $2 AND ts >= $3 AND ts <= $4
		ORDER BY ts DESC, id DESC
		LIMIT 1
	`, uuid.UUID(companyID), uuid.UUID(employeeID), from, to).Scan(&eventType, &at)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Last{}, nil
		}
		return models.Last{}, fmt.Errorf("last time clock event: %w", err)
	}
	return models.Last{Type: models.EventType(eventType), At: at}, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
