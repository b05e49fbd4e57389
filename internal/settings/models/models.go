package models

import (
	"time"

	"punchclock/internal/geo"
	"punchclock/internal/localday"
	id "punchclock/pkg/domain"
	dErrors "punchclock/pkg/domain-errors"
)

// FallbackMode selects how QR codes may substitute for geolocation.
type FallbackMode string

const (
	FallbackGeoOnly FallbackMode = "GEO_ONLY"
	FallbackGeoOrQR FallbackMode = "GEO_OR_QR"
	FallbackQROnly  FallbackMode = "QR_ONLY"
)

func (m FallbackMode) IsValid() bool {
	switch m {
	case FallbackGeoOnly, FallbackGeoOrQR, FallbackQROnly:
		return true
	}
	return false
}

// Normalize maps unknown stored values to GEO_OR_QR.
func (m FallbackMode) Normalize() FallbackMode {
	if m.IsValid() {
		return m
	}
	return FallbackGeoOrQR
}

// Settings is a company's punch policy plus kiosk presentation settings.
//
// Invariants:
//   - QRSecret is non-empty before any token is signed or verified
//   - RadiusMeters and MaxAccuracyMeters are positive
type Settings struct {
	CompanyID         id.CompanyID
	GeofenceEnabled   bool
	GeoRequired       bool
	CenterLat         float64
	CenterLng         float64
	RadiusMeters      int
	MaxAccuracyMeters int
	QREnabled         bool
	FallbackMode      FallbackMode
	QRSecret          string
	KioskDeviceLabel  string
	Timezone          string
	UpdatedAt         time.Time
}

// Defaults returns the settings a company starts with.
func Defaults(companyID id.CompanyID, secret string, now time.Time) *Settings {
	return &Settings{
		CompanyID:         companyID,
		GeofenceEnabled:   true,
		GeoRequired:       true,
		RadiusMeters:      200,
		MaxAccuracyMeters: 100,
		QREnabled:         true,
		FallbackMode:      FallbackGeoOrQR,
		QRSecret:          secret,
		UpdatedAt:         now,
	}
}

// GeoPolicy is the geofence subset evaluated for browser punches.
func (s *Settings) GeoPolicy() geo.Policy {
	return geo.Policy{
		GeofenceEnabled:   s.GeofenceEnabled,
		GeoRequired:       s.GeoRequired,
		CenterLat:         s.CenterLat,
		CenterLng:         s.CenterLng,
		RadiusMeters:      s.RadiusMeters,
		MaxAccuracyMeters: s.MaxAccuracyMeters,
	}
}

// Location is the company's zone, or fallback when unset or unknown.
func (s *Settings) Location(fallback *time.Location) *time.Location {
	return localday.Location(s.Timezone, fallback)
}

// Update is a partial settings change; nil fields are left untouched.
type Update struct {
	GeofenceEnabled   *bool
	GeoRequired       *bool
	CenterLat         *float64
	CenterLng         *float64
	RadiusMeters      *int
	MaxAccuracyMeters *int
	QREnabled         *bool
	FallbackMode      *FallbackMode
	KioskDeviceLabel  *string
	Timezone          *string
}

// Validate checks the fields that are present.
func (u Update) Validate() error {
	if u.CenterLat != nil && (*u.CenterLat < -90 || *u.CenterLat > 90) {
		return dErrors.New(dErrors.CodeInvalidInput, "geofence lat must be between -90 and 90")
	}
	if u.CenterLng != nil && (*u.CenterLng < -180 || *u.CenterLng > 180) {
		return dErrors.New(dErrors.CodeInvalidInput, "geofence lng must be between -180 and 180")
	}
	if u.RadiusMeters != nil && *u.RadiusMeters <= 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "geofence radius must be positive")
	}
	if u.MaxAccuracyMeters != nil && *u.MaxAccuracyMeters <= 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "max accuracy must be positive")
	}
	if u.FallbackMode != nil && !u.FallbackMode.IsValid() {
		return dErrors.New(dErrors.CodeInvalidInput, "fallback mode must be GEO_ONLY, GEO_OR_QR or QR_ONLY")
	}
	if u.Timezone != nil && *u.Timezone != "" {
		if _, err := time.LoadLocation(*u.Timezone); err != nil {
			return dErrors.New(dErrors.CodeInvalidInput, "unknown timezone")
		}
	}
	return nil
}

// Apply copies the present fields onto s.
func (u Update) Apply(s *Settings, now time.Time) {
	if u.GeofenceEnabled != nil {
		s.GeofenceEnabled = *u.GeofenceEnabled
	}
	if u.GeoRequired != nil {
		s.GeoRequired = *u.GeoRequired
	}
	if u.CenterLat != nil {
		s.CenterLat = *u.CenterLat
	}
	if u.CenterLng != nil {
		s.CenterLng = *u.CenterLng
	}
	if u.RadiusMeters != nil {
		s.RadiusMeters = *u.RadiusMeters
	}
	if u.MaxAccuracyMeters != nil {
		s.MaxAccuracyMeters = *u.MaxAccuracyMeters
	}
	if u.QREnabled != nil {
		s.QREnabled = *u.QREnabled
	}
	if u.FallbackMode != nil {
		s.FallbackMode = *u.FallbackMode
	}
	if u.KioskDeviceLabel != nil {
		s.KioskDeviceLabel = *u.KioskDeviceLabel
	}
	if u.Timezone != nil {
		s.Timezone = *u.Timezone
	}
	s.UpdatedAt = now
}
