package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "punchclock/pkg/domain"
	audit "punchclock/pkg/platform/audit"
)

func TestListByCompany(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	a := id.CompanyID(uuid.New())
	b := id.CompanyID(uuid.New())

	require.NoError(t, store.Append(ctx, audit.Event{CompanyID: a, Action: audit.ActionTimeclockPunch}))
	require.NoError(t, store.Append(ctx, audit.Event{CompanyID: b, Action: audit.ActionTimeclockPunch}))
	require.NoError(t, store.Append(ctx, audit.Event{CompanyID: a, Action: audit.ActionTimeclockPunchBlocked}))

	got, err := store.ListByCompany(ctx, a)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, audit.ActionTimeclockPunch, got[0].Action)
	assert.Equal(t, audit.ActionTimeclockPunchBlocked, got[1].Action)

	none, err := store.ListByCompany(ctx, id.CompanyID(uuid.New()))
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCountByActor(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	company := id.CompanyID(uuid.New())
	ana := id.UserID(uuid.New())
	bruno := id.UserID(uuid.New())
	from := time.Date(2026, 3, 2, 3, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)

	add := func(e audit.Event) {
		require.NoError(t, store.Append(ctx, e))
	}
	blocked := func(actor id.UserID, at time.Time) audit.Event {
		return audit.Event{CompanyID: company, ActorID: actor, Action: audit.ActionTimeclockPunchBlocked, Timestamp: at}
	}
	add(blocked(ana, from))
	add(blocked(ana, from.Add(time.Hour)))
	add(blocked(bruno, from.Add(2*time.Hour)))
	add(blocked(id.UserID{}, from.Add(3*time.Hour)))
	add(blocked(ana, to))
	add(blocked(ana, from.Add(-time.Second)))
	add(audit.Event{CompanyID: company, ActorID: ana, Action: audit.ActionTimeclockPunch, Timestamp: from.Add(time.Hour)})
	add(audit.Event{CompanyID: id.CompanyID(uuid.New()), ActorID: ana, Action: audit.ActionTimeclockPunchBlocked, Timestamp: from.Add(time.Hour)})

	tally, err := store.CountByActor(ctx, company, audit.ActionTimeclockPunchBlocked, from, to)
	require.NoError(t, err)
	assert.Equal(t, 4, tally.Total)
	assert.Equal(t, map[id.UserID]int{ana: 2, bruno: 1}, tally.ByActor)
}
