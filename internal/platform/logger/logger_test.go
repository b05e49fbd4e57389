package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter(t *testing.T) {
	t.Run("json output carries service attribute", func(t *testing.T) {
		var buf bytes.Buffer
		log := NewWithWriter(&buf, "info", "json")
		log.Info("punch recorded", "method", "GEO")

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		assert.Equal(t, "punchclock", line["service"])
		assert.Equal(t, "GEO", line["method"])
	})

	t.Run("level filters debug", func(t *testing.T) {
		var buf bytes.Buffer
		log := NewWithWriter(&buf, "warn", "text")
		log.Info("hidden")
		log.Warn("shown")
		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "shown")
	})
}
