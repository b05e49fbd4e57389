// Package geo decides whether a location reading satisfies a company's
// geofence. Evaluation is pure and deterministic.
package geo

import (
	"math"
	"time"

	"punchclock/internal/block"
	dErrors "punchclock/pkg/domain-errors"
)

// EarthRadiusMeters is the mean Earth radius used by the haversine formula.
const EarthRadiusMeters = 6_371_000

// Status is the geo diagnostic stored with every punch.
type Status string

const (
	StatusOK          Status = "OK"
	StatusMissing     Status = "MISSING"
	StatusOutside     Status = "OUTSIDE"
	StatusLowAccuracy Status = "LOW_ACCURACY"
)

// Policy is the geofence part of a company's punch policy.
type Policy struct {
	GeofenceEnabled   bool
	GeoRequired       bool
	CenterLat         float64
	CenterLng         float64
	RadiusMeters      int
	MaxAccuracyMeters int
}

// Reading is one location fix supplied with a punch attempt.
type Reading struct {
	Lat            float64
	Lng            float64
	AccuracyMeters float64
	CapturedAt     time.Time
}

// Validate checks coordinate ranges.
func (r Reading) Validate() error {
	switch {
	case math.IsNaN(r.Lat) || r.Lat < -90 || r.Lat > 90:
		return dErrors.New(dErrors.CodeInvalidInput, "lat must be between -90 and 90")
	case math.IsNaN(r.Lng) || r.Lng < -180 || r.Lng > 180:
		return dErrors.New(dErrors.CodeInvalidInput, "lng must be between -180 and 180")
	case math.IsNaN(r.AccuracyMeters) || r.AccuracyMeters < 0:
		return dErrors.New(dErrors.CodeInvalidInput, "accuracy must not be negative")
	}
	return nil
}

// Decision is the outcome of Evaluate. When Blocked is false Code is empty.
type Decision struct {
	Blocked        bool
	Code           block.Code
	Status         Status
	Reading        *Reading
	DistanceMeters *int
	Details        map[string]any
}

// Block converts a blocked decision into a policy block; nil otherwise.
func (d Decision) Block() *block.Error {
	if !d.Blocked {
		return nil
	}
	return block.WithDetails(d.Code, d.Details)
}

// Evaluate applies policy to reading. Accuracy is checked before distance:
// an imprecise fix is rejected however close it claims to be.
func Evaluate(policy Policy, reading *Reading) Decision {
	if reading == nil {
		if policy.GeoRequired {
			return Decision{Blocked: true, Code: block.GeoRequired, Status: StatusMissing}
		}
		return Decision{Status: StatusMissing}
	}

	if reading.AccuracyMeters > float64(policy.MaxAccuracyMeters) {
		return Decision{
			Blocked: true,
			Code:    block.LowAccuracy,
			Status:  StatusLowAccuracy,
			Reading: reading,
			Details: map[string]any{"accuracy": int(math.Round(reading.AccuracyMeters))},
		}
	}

	distance := int(math.Round(Distance(reading.Lat, reading.Lng, policy.CenterLat, policy.CenterLng)))
	if policy.GeofenceEnabled && distance > policy.RadiusMeters {
		return Decision{
			Blocked:        true,
			Code:           block.OutsideGeofence,
			Status:         StatusOutside,
			Reading:        reading,
			DistanceMeters: &distance,
			Details: map[string]any{
				"distanceMeters": distance,
				"radiusMeters":   policy.RadiusMeters,
			},
		}
	}

	return Decision{Status: StatusOK, Reading: reading, DistanceMeters: &distance}
}

// Distance is the haversine great-circle distance in meters.
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLng := toRadians(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusMeters * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
