package booking

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullyPopulated() Booking {
	rate := decimal.RequireFromString("450")
	return Booking{
		ID:                    "b1",
		Status:                StatusCancelled,
		MusicianPitch:         "Acoustic duo",
		ProposedRate:          &rate,
		AppliedAt:             ptr(t0.Add(1 * time.Hour)),
		SelectedAt:            ptr(t0.Add(2 * time.Hour)),
		ConfirmedAt:           ptr(t0.Add(3 * time.Hour)),
		CancelRequestedAt:     ptr(t0.Add(4 * time.Hour)),
		CancelRequestedByRole: RoleMusician,
		CancelledAt:           ptr(t0.Add(5 * time.Hour)),
		CancelledByRole:       RoleVenue,
		CancellationReason:    "weather",
	}
}

func TestDeriveActivity_NewestFirst(t *testing.T) {
	ev := &EventInfo{ID: "e1", Title: "Sunday Brunch", CreatedAt: t0}
	got := DeriveActivity(fullyPopulated(), ev)

	var actions []string
	for _, e := range got {
		actions = append(actions, e.Action)
	}
	assert.Equal(t, []string{
		ActivityBookingCancelled,
		ActivityCancelRequested,
		ActivityBookingConfirmed,
		ActivityMusicianSelected,
		ActivityApplicationSubmitted,
		ActivityEventCreated,
	}, actions)

	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].Timestamp.After(got[i-1].Timestamp), "entry %d is newer than entry %d", i, i-1)
	}
}

func TestDeriveActivity_Details(t *testing.T) {
	got := DeriveActivity(fullyPopulated(), nil)
	byAction := map[string]ActivityEntry{}
	for _, e := range got {
		byAction[e.Action] = e
	}

	assert.Equal(t, "Acoustic duo | Proposed rate: 450.00", byAction[ActivityApplicationSubmitted].Details)
	assert.Equal(t, "Reason: weather", byAction[ActivityBookingCancelled].Details)
	assert.Equal(t, "venue", byAction[ActivityBookingCancelled].Actor)
	assert.Equal(t, "musician", byAction[ActivityCancelRequested].Actor)
	assert.Empty(t, byAction[ActivityMusicianSelected].Details)
}

func TestDeriveActivity_Idempotent(t *testing.T) {
	b := fullyPopulated()
	ev := &EventInfo{Title: "Sunday Brunch", CreatedAt: t0}
	assert.Equal(t, DeriveActivity(b, ev), DeriveActivity(b, ev))
}

func TestDeriveActivity_EqualTimestampsKeepLifecycleOrder(t *testing.T) {
	b := Booking{
		Status:     StatusBooked,
		InvitedAt:  ptr(t0),
		AppliedAt:  ptr(t0),
		SelectedAt: ptr(t0),
	}
	got := DeriveActivity(b, nil)
	require.Len(t, got, 3)
	assert.Equal(t, ActivityMusicianInvited, got[0].Action)
	assert.Equal(t, ActivityApplicationSubmitted, got[1].Action)
	assert.Equal(t, ActivityMusicianSelected, got[2].Action)
}

func TestDeriveActivity_Empty(t *testing.T) {
	got := DeriveActivity(Booking{Status: StatusCommunicating}, nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	// An event without a creation time contributes nothing.
	assert.Empty(t, DeriveActivity(Booking{}, &EventInfo{Title: "x"}))
}
