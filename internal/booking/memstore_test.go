package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SlotFreedByCancellation(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	first := seed(t, s, appliedBooking())

	err := s.Create(ctx, appliedBooking())
	assert.ErrorIs(t, err, ErrAlreadyApplied)

	u, err := BuildUpdate(first, Command{Action: ActionCancel, ActorID: "u", ActorRole: RoleMusician, Reason: ReasonScheduleConflict}, t0.Add(time.Hour))
	require.NoError(t, err)
	_, err = s.Update(ctx, first.ID, u)
	require.NoError(t, err)

	second := appliedBooking()
	second.ID = ""
	require.NoError(t, s.Create(ctx, second))
	assert.NotEqual(t, first.ID, second.ID)
}

func TestMemoryStore_MarkCancelRequestedIsSetOnce(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	b := seed(t, s, appliedBooking())

	first := t0.Add(time.Hour)
	got, err := s.MarkCancelRequested(ctx, b.ID, "u-musician", RoleMusician, first)
	require.NoError(t, err)
	assert.Equal(t, first, *got.CancelRequestedAt)

	got, err = s.MarkCancelRequested(ctx, b.ID, "u-venue", RoleVenue, first.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, first, *got.CancelRequestedAt)
	assert.Equal(t, RoleMusician, got.CancelRequestedByRole)

	hist, err := s.History(ctx, b.ID)
	require.NoError(t, err)
	assert.Len(t, hist, 2)
}

func TestMemoryStore_Errors(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrBookingNotFound)
	_, err = s.Update(ctx, "missing", Update{Status: StatusBooked})
	assert.ErrorIs(t, err, ErrBookingNotFound)
	_, err = s.History(ctx, "missing")
	assert.ErrorIs(t, err, ErrBookingNotFound)

	b := appliedBooking()
	b.Status = StatusCompleted
	b.CompletedAt = ptr(t0)
	seed(t, s, b)
	_, err = s.MarkCancelRequested(ctx, b.ID, "u", RoleVenue, t0)
	assert.ErrorIs(t, err, ErrBookingFinalized)
}

func TestMemoryStore_ListsNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	older := appliedBooking()
	older.ID, older.EventID = "", "e-old"
	seed(t, s, older)

	newer := appliedBooking()
	newer.ID, newer.EventID = "", "e-new"
	newer.CreatedAt = t0.Add(time.Hour)
	seed(t, s, newer)

	got, err := s.ListByVenue(ctx, "v1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "e-new", got[0].EventID)

	got, err = s.ListByEvent(ctx, "e-old")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
