package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"punchclock/internal/settings/models"
	id "punchclock/pkg/domain"
	"punchclock/pkg/platform/sentinel"
	txcontext "punchclock/pkg/platform/tx"
)

// PostgresStore persists company settings in the company_settings table.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed settings store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const settingsColumns = `company_id, geofence_enabled, geo_required, geofence_lat, geofence_lng,
	geofence_radius_m, max_accuracy_m, qr_enabled, punch_fallback_mode, qr_secret,
	kiosk_device_label, timezone, updated_at`

func (s *PostgresStore) FindByCompany(ctx context.Context, companyID id.CompanyID) (*models.Settings, error) {
	row := txcontext.ExecerFrom(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+settingsColumns+` FROM company_settings WHERE company_id = $1`,
		uuid.UUID(companyID),
	)
	st, err := scanSettings(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find settings by company: %w", err)
	}
	return st, nil
}

// CreateIfAbsent inserts settings unless the company already has a row, and
// returns whichever row won.
func (s *PostgresStore) CreateIfAbsent(ctx context.Context, settings *models.Settings) (*models.Settings, error) {
	_, err := txcontext.ExecerFrom(ctx, s.db).ExecContext(ctx, `
		INSERT INTO company_settings (`+settingsColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (company_id) DO NOTHING
	`,
		uuid.UUID(settings.CompanyID),
		settings.GeofenceEnabled,
		settings.GeoRequired,
		settings.CenterLat,
		settings.CenterLng,
		settings.RadiusMeters,
		settings.MaxAccuracyMeters,
		settings.QREnabled,
		string(settings.FallbackMode),
		settings.QRSecret,
		settings.KioskDeviceLabel,
		settings.Timezone,
		settings.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create settings: %w", err)
	}
	return s.FindByCompany(ctx, settings.CompanyID)
}

func (s *PostgresStore) Save(ctx context.Context, settings *models.Settings) error {
	res, err := txcontext.ExecerFrom(ctx, s.db).ExecContext(ctx, `
		UPDATE company_settings SET
			geofence_enabled = $2,
			geo_required = $3,
			geofence_lat = $4,
			geofence_lng = $5,
			geofence_radius_m = $6,
			max_accuracy_m = $7,
			qr_enabled = $8,
			punch_fallback_mode = $9,
			kiosk_device_label = $10,
			timezone = $11,
			updated_at = $12
		WHERE company_id = $1
	`,
		uuid.UUID(settings.CompanyID),
		settings.GeofenceEnabled,
		settings.GeoRequired,
		settings.CenterLat,
		settings.CenterLng,
		settings.RadiusMeters,
		settings.MaxAccuracyMeters,
		settings.QREnabled,
		string(settings.FallbackMode),
		settings.KioskDeviceLabel,
		settings.Timezone,
		settings.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return requireRow(res)
}

// SetSecretIfEmpty stores secret only when the company has none yet and
// returns the secret in effect afterwards.
func (s *PostgresStore) SetSecretIfEmpty(ctx context.Context, companyID id.CompanyID, secret string) (string, error) {
	var current string
	err := txcontext.ExecerFrom(ctx, s.db).QueryRowContext(ctx, `
		UPDATE company_settings
		SET qr_secret = CASE WHEN qr_secret = '' THEN $2 ELSE qr_secret END
		WHERE company_id = $1
		RETURNING qr_secret
	`, uuid.UUID(companyID), secret).Scan(&current)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", sentinel.ErrNotFound
		}
		return "", fmt.Errorf("set qr secret: %w", err)
	}
	return current, nil
}

func (s *PostgresStore) ReplaceSecret(ctx context.Context, companyID id.CompanyID, secret string) error {
	res, err := txcontext.ExecerFrom(ctx, s.db).ExecContext(ctx,
		`UPDATE company_settings SET qr_secret = $2 WHERE company_id = $1`,
		uuid.UUID(companyID), secret,
	)
	if err != nil {
		return fmt.Errorf("replace qr secret: %w", err)
	}
	return requireRow(res)
}

func scanSettings(row *sql.Row) (*models.Settings, error) {
	var (
		st        models.Settings
		companyID uuid.UUID
		mode      string
	)
	err := row.Scan(
		&companyID,
		&st.GeofenceEnabled,
		&st.GeoRequired,
		&st.CenterLat,
		&st.CenterLng,
		&st.RadiusMeters,
		&st.MaxAccuracyMeters,
		&st.QREnabled,
		&mode,
		&st.QRSecret,
		&st.KioskDeviceLabel,
		&st.Timezone,
		&st.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	st.CompanyID = id.CompanyID(companyID)
	st.FallbackMode = models.FallbackMode(mode).Normalize()
	return &st, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
