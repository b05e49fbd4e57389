package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"punchclock/internal/timeclock/models"
	id "punchclock/pkg/domain"
)

func TestInMemory_ListBetween(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()
	company := id.CompanyID(uuid.New())
	employee := id.EmployeeID(uuid.New())
	dayStart := time.Date(2026, 3, 2, 3, 0, 0, 0, time.UTC)

	add := func(companyID id.CompanyID, employeeID id.EmployeeID, typ models.EventType, at time.Time) {
		require.NoError(t, s.Create(ctx, &models.Event{
			ID: id.EventID(uuid.New()), CompanyID: companyID, EmployeeID: employeeID, Type: typ, Timestamp: at,
		}))
	}
	// inserted out of order on purpose
	add(company, employee, models.EventBreakStart, dayStart.Add(4*time.Hour))
	add(company, employee, models.EventIn, dayStart.Add(time.Hour))
	add(company, employee, models.EventOut, dayStart.Add(-time.Minute))
	add(company, id.EmployeeID(uuid.New()), models.EventIn, dayStart.Add(time.Hour))
	add(id.CompanyID(uuid.New()), employee, models.EventIn, dayStart.Add(time.Hour))

	events, err := s.ListBetween(ctx, company, employee, dayStart, dayStart.Add(24*time.Hour-time.Millisecond))
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, models.EventIn, events[0].Type)
	assert.Equal(t, models.EventBreakStart, events[1].Type)

	last, err := s.LastBetween(ctx, company, employee, dayStart, dayStart.Add(24*time.Hour-time.Millisecond))
	require.NoError(t, err)
	assert.Equal(t, models.EventBreakStart, last.Type)
	assert.Equal(t, dayStart.Add(4*time.Hour), last.At)

	t.Run("empty day has no last type", func(t *testing.T) {
		last, err := s.LastBetween(ctx, company, employee, dayStart.Add(48*time.Hour), dayStart.Add(72*time.Hour))
		require.NoError(t, err)
		assert.Zero(t, last)
	})

	t.Run("bounds are inclusive", func(t *testing.T) {
		at := dayStart.Add(time.Hour)
		events, err := s.ListBetween(ctx, company, employee, at, at)
		require.NoError(t, err)
		assert.Len(t, events, 1)
	})
}

func TestInMemory_LatestPerEmployee(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()
	company := id.CompanyID(uuid.New())
	ana := id.EmployeeID(uuid.New())
	bruno := id.EmployeeID(uuid.New())
	dayStart := time.Date(2026, 3, 2, 3, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24*time.Hour - time.Microsecond)

	add := func(companyID id.CompanyID, employeeID id.EmployeeID, typ models.EventType, at time.Time) {
		require.NoError(t, s.Create(ctx, &models.Event{
			ID: id.EventID(uuid.New()), CompanyID: companyID, EmployeeID: employeeID, Type: typ, Timestamp: at,
		}))
	}
	add(company, ana, models.EventBreakStart, dayStart.Add(4*time.Hour))
	add(company, ana, models.EventIn, dayStart.Add(time.Hour))
	add(company, bruno, models.EventOut, dayStart.Add(-time.Minute))
	add(id.CompanyID(uuid.New()), bruno, models.EventIn, dayStart.Add(time.Hour))

	latest, err := s.LatestPerEmployee(ctx, company, dayStart, dayEnd)
	require.NoError(t, err)
	require.Len(t, latest, 1)
	assert.Equal(t, models.EventBreakStart, latest[ana].Type)
	_, ok := latest[bruno]
	assert.False(t, ok, "yesterday's punch does not count")
}
