package localday

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateUsesLocalMidnight(t *testing.T) {
	saoPaulo, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	// 01:30 UTC is still the previous evening in Sao Paulo (UTC-3)
	instant := time.Date(2026, 3, 3, 1, 30, 0, 0, time.UTC)
	assert.Equal(t, "2026-03-02", Date(instant, saoPaulo))
	assert.Equal(t, "2026-03-03", Date(instant, time.UTC))

	start, end := Bounds(instant, saoPaulo)
	assert.Equal(t, time.Date(2026, 3, 2, 3, 0, 0, 0, time.UTC), start.UTC())
	assert.Equal(t, time.Date(2026, 3, 3, 3, 0, 0, 0, time.UTC), end.UTC())
	assert.Equal(t, end, NextMidnight(instant, saoPaulo))
}

func TestLocationFallback(t *testing.T) {
	assert.Equal(t, time.UTC, Location("", time.UTC))
	assert.Equal(t, time.UTC, Location("Not/AZone", time.UTC))
	assert.Equal(t, time.Local, Location("", nil))
	assert.Equal(t, "Europe/Lisbon", Location(" Europe/Lisbon ", time.UTC).String())
}

func TestParseDate(t *testing.T) {
	saoPaulo, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	day, err := ParseDate("2026-03-02", saoPaulo)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 2, 3, 0, 0, 0, time.UTC), day.UTC())
	start, _ := Bounds(day, saoPaulo)
	assert.True(t, start.Equal(day))

	for _, bad := range []string{"", "2026-3-2", "2026-02-30", "02/03/2026", "2026-03-02T00:00:00Z", "2026-13-01"} {
		_, err := ParseDate(bad, saoPaulo)
		assert.Error(t, err, bad)
	}
}
