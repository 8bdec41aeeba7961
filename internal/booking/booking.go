package booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var ErrInconsistentRecord = errors.New("booking record is inconsistent")

// Booking joins a musician to a venue's event. Event, venue and musician are owned elsewhere;
// the booking only references them.
type Booking struct {
	ID         string `json:"id"`
	EventID    string `json:"eventId"`
	VenueID    string `json:"venueId"`
	MusicianID string `json:"musicianId"`
	Status     Status `json:"status"`

	ProposedRate  *decimal.Decimal `json:"proposedRate,omitempty"`
	MusicianPitch string           `json:"musicianPitch,omitempty"`

	CreatedAt             time.Time  `json:"createdAt"`
	UpdatedAt             time.Time  `json:"updatedAt"`
	AppliedAt             *time.Time `json:"appliedAt,omitempty"`
	InvitedAt             *time.Time `json:"invitedAt,omitempty"`
	SelectedAt            *time.Time `json:"selectedAt,omitempty"`
	ConfirmedAt           *time.Time `json:"confirmedAt,omitempty"`
	CancelRequestedAt     *time.Time `json:"cancelRequestedAt,omitempty"`
	CancelRequestedByRole Role       `json:"cancelRequestedByRole,omitempty"`
	CancelledAt           *time.Time `json:"cancelledAt,omitempty"`
	CompletedAt           *time.Time `json:"completedAt,omitempty"`

	CancelledBy        string `json:"cancelledBy,omitempty"`
	CancelledByRole    Role   `json:"cancelledByRole,omitempty"`
	CancellationReason string `json:"cancellationReason,omitempty"`
}

// CheckConsistency verifies that status and timestamps agree and that terminal bookkeeping is complete.
func (b Booking) CheckConsistency() error {
	if b.CompletedAt != nil && b.CancelledAt != nil {
		return fmt.Errorf("%w: both completed_at and cancelled_at are set", ErrInconsistentRecord)
	}

	var required *time.Time
	var field string
	switch b.Status {
	case StatusApplied:
		required, field = b.AppliedAt, "applied_at"
	case StatusInvited:
		required, field = b.InvitedAt, "invited_at"
	case StatusBooked:
		required, field = b.SelectedAt, "selected_at"
	case StatusConfirmed:
		required, field = b.ConfirmedAt, "confirmed_at"
	case StatusCompleted:
		required, field = b.CompletedAt, "completed_at"
	case StatusCancelled:
		required, field = b.CancelledAt, "cancelled_at"
	default:
		return nil
	}
	if required == nil {
		return fmt.Errorf("%w: status %s without %s", ErrInconsistentRecord, b.Status, field)
	}

	if b.Status == StatusCancelled && (b.CancelledByRole == "" || b.CancellationReason == "") {
		return fmt.Errorf("%w: cancellation without role or reason", ErrInconsistentRecord)
	}
	return nil
}
