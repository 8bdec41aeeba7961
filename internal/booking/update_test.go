package booking

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 4, 10, 18, 0, 0, 0, time.UTC)

func ptr(t time.Time) *time.Time { return &t }

func appliedBooking() *Booking {
	return &Booking{
		ID:         "b1",
		EventID:    "e1",
		VenueID:    "v1",
		MusicianID: "m1",
		Status:     StatusApplied,
		CreatedAt:  t0,
		UpdatedAt:  t0,
		AppliedAt:  ptr(t0),
	}
}

func TestBuildUpdate_Select(t *testing.T) {
	now := t0.Add(time.Hour)
	u, err := BuildUpdate(appliedBooking(), Command{BookingID: "b1", Action: ActionSelect, ActorID: "u-venue", ActorRole: RoleVenue}, now)
	require.NoError(t, err)

	assert.Equal(t, StatusApplied, u.FromStatus)
	assert.Equal(t, StatusBooked, u.Status)
	require.NotNil(t, u.SelectedAt)
	assert.Equal(t, now, *u.SelectedAt)
	assert.Nil(t, u.CancelledAt)
	assert.Empty(t, u.CancellationReason)
}

func TestBuildUpdate_TargetOnly(t *testing.T) {
	u, err := BuildUpdate(appliedBooking(), Command{Target: StatusBooked, ActorID: "u-venue", ActorRole: RoleVenue}, t0)
	require.NoError(t, err)
	assert.Equal(t, ActionSelect, u.Action)
}

func TestBuildUpdate_ActionAndTargetMustAgree(t *testing.T) {
	_, err := BuildUpdate(appliedBooking(), Command{Action: ActionSelect, Target: StatusConfirmed, ActorID: "u", ActorRole: RoleVenue}, t0)
	var terr TransitionError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, StatusConfirmed, terr.Target)
}

func TestBuildUpdate_RejectsDisallowed(t *testing.T) {
	_, err := BuildUpdate(appliedBooking(), Command{Action: ActionSelect, ActorID: "u-musician", ActorRole: RoleMusician}, t0)
	var terr TransitionError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, TransitionError{From: StatusApplied, Role: RoleMusician, Target: StatusBooked}, terr)

	_, err = BuildUpdate(appliedBooking(), Command{ActorID: "u", ActorRole: RoleVenue}, t0)
	assert.True(t, errors.As(err, &terr))
}

func TestBuildUpdate_InputErrors(t *testing.T) {
	_, err := BuildUpdate(nil, Command{Action: ActionSelect, ActorID: "u", ActorRole: RoleVenue}, t0)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = BuildUpdate(appliedBooking(), Command{Action: ActionSelect, ActorID: "u", ActorRole: "admin"}, t0)
	assert.ErrorIs(t, err, ErrInvalidRole)

	_, err = BuildUpdate(appliedBooking(), Command{Action: ActionSelect, ActorRole: RoleVenue}, t0)
	var verr ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestBuildUpdate_CancelSetsAllFourFields(t *testing.T) {
	b := appliedBooking()
	b.Status = StatusConfirmed
	b.SelectedAt = ptr(t0.Add(time.Hour))
	b.ConfirmedAt = ptr(t0.Add(2 * time.Hour))

	now := t0.Add(3 * time.Hour)
	u, err := BuildUpdate(b, Command{Action: ActionCancel, ActorID: "u-musician", ActorRole: RoleMusician, Reason: ReasonIllness}, now)
	require.NoError(t, err)

	assert.Equal(t, StatusCancelled, u.Status)
	require.NotNil(t, u.CancelledAt)
	assert.Equal(t, now, *u.CancelledAt)
	assert.Equal(t, "u-musician", u.CancelledBy)
	assert.Equal(t, RoleMusician, u.CancelledByRole)
	assert.Equal(t, "illness", u.CancellationReason)
}

func TestBuildUpdate_CancelNeedsReason(t *testing.T) {
	_, err := BuildUpdate(appliedBooking(), Command{Action: ActionCancel, ActorID: "u", ActorRole: RoleVenue}, t0)
	var verr ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "CANCELLATION_REASON_REQUIRED", verr.Code)

	_, err = BuildUpdate(appliedBooking(), Command{Action: ActionCancel, ActorID: "u", ActorRole: RoleVenue, Reason: ReasonOther}, t0)
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "CANCELLATION_DETAILS_REQUIRED", verr.Code)
}

func TestBuildUpdate_TimestampsAreSetOnce(t *testing.T) {
	first := t0.Add(time.Minute)
	b := appliedBooking()
	b.SelectedAt = ptr(first)

	u, err := BuildUpdate(b, Command{Action: ActionSelect, ActorID: "u", ActorRole: RoleVenue}, t0.Add(time.Hour))
	require.NoError(t, err)
	assert.Nil(t, u.SelectedAt)

	merged := u.ApplyTo(*b)
	assert.Equal(t, first, *merged.SelectedAt)
	assert.Equal(t, StatusBooked, merged.Status)
}

func TestBuildUpdate_NormalisesToUTC(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	u, err := BuildUpdate(appliedBooking(), Command{Action: ActionSelect, ActorID: "u", ActorRole: RoleVenue}, t0.In(loc))
	require.NoError(t, err)
	assert.Equal(t, time.UTC, u.UpdatedAt.Location())
	assert.True(t, u.UpdatedAt.Equal(t0))
}
