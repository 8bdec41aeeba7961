package booking

import (
	"sort"
	"strings"
	"time"
)

// EventInfo is the slice of the parent event the booking workflow needs.
type EventInfo struct {
	ID        string    `json:"id"`
	VenueID   string    `json:"venueId"`
	Title     string    `json:"title"`
	StartsAt  time.Time `json:"startsAt"`
	Open      bool      `json:"open"`
	CreatedAt time.Time `json:"createdAt"`
}

type ActivityEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	Actor     string    `json:"actor,omitempty"`
	Details   string    `json:"details,omitempty"`
}

const (
	ActivityEventCreated         = "Event Created"
	ActivityMusicianInvited      = "Musician Invited"
	ActivityApplicationSubmitted = "Application Submitted"
	ActivityMusicianSelected     = "Musician Selected"
	ActivityBookingConfirmed     = "Booking Confirmed"
	ActivityCancelRequested      = "Cancellation Requested"
	ActivityBookingCancelled     = "Booking Cancelled"
	ActivityBookingCompleted     = "Booking Completed"
)

// DeriveActivity projects the booking's timestamps (and the event's creation, when ev is given)
// into a display list, newest first. Entries with equal timestamps keep lifecycle order.
func DeriveActivity(b Booking, ev *EventInfo) []ActivityEntry {
	out := []ActivityEntry{}
	add := func(at *time.Time, action string, actor Role, details ...string) {
		if at == nil {
			return
		}
		out = append(out, ActivityEntry{
			Timestamp: *at,
			Action:    action,
			Actor:     string(actor),
			Details:   joinDetails(details...),
		})
	}

	if ev != nil && !ev.CreatedAt.IsZero() {
		created := ev.CreatedAt
		add(&created, ActivityEventCreated, RoleVenue, ev.Title)
	}
	add(b.InvitedAt, ActivityMusicianInvited, RoleVenue)
	add(b.AppliedAt, ActivityApplicationSubmitted, RoleMusician, b.MusicianPitch, proposedRateDetail(b))
	add(b.SelectedAt, ActivityMusicianSelected, RoleVenue)
	add(b.ConfirmedAt, ActivityBookingConfirmed, RoleMusician)
	add(b.CancelRequestedAt, ActivityCancelRequested, b.CancelRequestedByRole)
	add(b.CancelledAt, ActivityBookingCancelled, b.CancelledByRole, reasonDetail(b.CancellationReason))
	add(b.CompletedAt, ActivityBookingCompleted, "")

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

func proposedRateDetail(b Booking) string {
	if b.ProposedRate == nil {
		return ""
	}
	return "Proposed rate: " + b.ProposedRate.StringFixed(2)
}

func reasonDetail(reason string) string {
	if reason == "" {
		return ""
	}
	return "Reason: " + reason
}

func joinDetails(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " | ")
}
