package models

import (
	"testing"

	"github.com/stretchr/testify/assert"

	tcmodels "punchclock/internal/timeclock/models"
)

func TestStatusOf(t *testing.T) {
	cases := map[tcmodels.EventType]Status{
		"":                          StatusNotStarted,
		tcmodels.EventIn:            StatusWorking,
		tcmodels.EventBreakStart:    StatusBreak,
		tcmodels.EventBreakEnd:      StatusWorking,
		tcmodels.EventOut:           StatusOut,
		tcmodels.EventType("LUNCH"): StatusNotStarted,
	}
	for last, want := range cases {
		assert.Equal(t, want, StatusOf(last), "last=%q", last)
	}
}

func TestSummaryAdd(t *testing.T) {
	var s Summary
	for _, st := range []Status{StatusWorking, StatusWorking, StatusBreak, StatusOut, StatusNotStarted} {
		s.Add(st)
	}
	assert.Equal(t, 5, s.TotalActiveEmployees)
	assert.Equal(t, 2, s.WorkingNow)
	assert.Equal(t, 1, s.OnBreakNow)
	assert.Equal(t, 1, s.OutNow)
	assert.Equal(t, 1, s.NotStartedYet)
}
