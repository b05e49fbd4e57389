package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"punchclock/internal/block"
	dErrors "punchclock/pkg/domain-errors"
)

func defaultPolicy() Policy {
	return Policy{
		GeofenceEnabled:   true,
		GeoRequired:       true,
		RadiusMeters:      200,
		MaxAccuracyMeters: 100,
	}
}

func TestEvaluate_MissingReading(t *testing.T) {
	t.Run("required geo blocks", func(t *testing.T) {
		d := Evaluate(defaultPolicy(), nil)
		assert.True(t, d.Blocked)
		assert.Equal(t, block.GeoRequired, d.Code)
		assert.Equal(t, StatusMissing, d.Status)
		assert.Nil(t, d.DistanceMeters)
	})

	t.Run("optional geo passes as missing", func(t *testing.T) {
		p := defaultPolicy()
		p.GeoRequired = false
		d := Evaluate(p, nil)
		assert.False(t, d.Blocked)
		assert.Equal(t, StatusMissing, d.Status)
		assert.Nil(t, d.DistanceMeters)
		assert.Nil(t, d.Block())
	})
}

func TestEvaluate_Distance(t *testing.T) {
	t.Run("about 222m is outside a 200m fence", func(t *testing.T) {
		d := Evaluate(defaultPolicy(), &Reading{Lat: 0.0020, Lng: 0, AccuracyMeters: 10})
		require.True(t, d.Blocked)
		assert.Equal(t, block.OutsideGeofence, d.Code)
		assert.Equal(t, StatusOutside, d.Status)
		require.NotNil(t, d.DistanceMeters)
		assert.Equal(t, 222, *d.DistanceMeters)
		assert.Equal(t, map[string]any{"distanceMeters": 222, "radiusMeters": 200}, d.Details)
	})

	t.Run("about 111m is inside", func(t *testing.T) {
		d := Evaluate(defaultPolicy(), &Reading{Lat: 0.0010, Lng: 0, AccuracyMeters: 10})
		assert.False(t, d.Blocked)
		assert.Equal(t, StatusOK, d.Status)
		require.NotNil(t, d.DistanceMeters)
		assert.Equal(t, 111, *d.DistanceMeters)
	})

	t.Run("disabled fence accepts any distance but still measures", func(t *testing.T) {
		p := defaultPolicy()
		p.GeofenceEnabled = false
		d := Evaluate(p, &Reading{Lat: 1, Lng: 1, AccuracyMeters: 10})
		assert.False(t, d.Blocked)
		require.NotNil(t, d.DistanceMeters)
		assert.Greater(t, *d.DistanceMeters, 100_000)
	})

	t.Run("exactly on the radius is inside", func(t *testing.T) {
		p := defaultPolicy()
		p.RadiusMeters = 111
		d := Evaluate(p, &Reading{Lat: 0.0010, Lng: 0})
		assert.False(t, d.Blocked)
	})
}

func TestEvaluate_AccuracyGatesDistance(t *testing.T) {
	for _, r := range []Reading{
		{Lat: 0, Lng: 0, AccuracyMeters: 100.5},
		{Lat: 0.0001, Lng: 0, AccuracyMeters: 500},
		{Lat: 45, Lng: 90, AccuracyMeters: 5000},
	} {
		d := Evaluate(defaultPolicy(), &r)
		assert.True(t, d.Blocked)
		assert.Equal(t, block.LowAccuracy, d.Code)
		assert.Equal(t, StatusLowAccuracy, d.Status)
		assert.Nil(t, d.DistanceMeters)
	}

	d := Evaluate(defaultPolicy(), &Reading{AccuracyMeters: 100})
	assert.False(t, d.Blocked, "accuracy equal to the maximum is accepted")
}

func TestEvaluate_Deterministic(t *testing.T) {
	r := &Reading{Lat: -23.5505, Lng: -46.6333, AccuracyMeters: 12}
	p := defaultPolicy()
	p.CenterLat, p.CenterLng = -23.5510, -46.6340
	assert.Equal(t, Evaluate(p, r), Evaluate(p, r))
}

func TestReadingValidate(t *testing.T) {
	assert.NoError(t, Reading{Lat: 90, Lng: -180}.Validate())
	for _, r := range []Reading{{Lat: 91}, {Lng: 181}, {AccuracyMeters: -1}} {
		err := r.Validate()
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	}
}

func TestDistance(t *testing.T) {
	// one degree of latitude on this sphere
	assert.InDelta(t, 111_195, Distance(0, 0, 1, 0), 1)
	assert.Zero(t, Distance(10, 20, 10, 20))
}
