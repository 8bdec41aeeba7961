package booking

import (
	"strings"
	"time"
)

// Command is a request by one participant to move a booking to another status.
// Either Action or Target must be set; when both are, they must agree.
type Command struct {
	BookingID   string
	Action      Action
	Target      Status
	ActorID     string
	ActorRole   Role
	Reason      CancellationReason
	OtherReason string
}

// Update is the partial-field payload written to the store in one call. Nil timestamps and
// empty strings mean "leave unchanged".
type Update struct {
	// FromStatus is the status the payload was built against; stores reject the write with
	// ErrStatusConflict if the record has moved on.
	FromStatus Status
	Status     Status
	UpdatedAt  time.Time

	SelectedAt  *time.Time
	ConfirmedAt *time.Time
	CompletedAt *time.Time
	CancelledAt *time.Time

	CancelledBy        string
	CancelledByRole    Role
	CancellationReason string

	// Not persisted on the booking row; recorded in history and audit.
	Action    Action
	ActorID   string
	ActorRole Role
}

// BuildUpdate checks cmd against the transition policy and builds the payload for it.
// It has no side effects.
func BuildUpdate(b *Booking, cmd Command, now time.Time) (Update, error) {
	if b == nil {
		return Update{}, ErrBookingNotFound
	}
	if cmd.ActorRole != RoleVenue && cmd.ActorRole != RoleMusician {
		return Update{}, ErrInvalidRole
	}
	if strings.TrimSpace(cmd.ActorID) == "" {
		return Update{}, ValidationError{Code: "VALIDATION_FAILED", Message: "actor is required"}
	}

	t, ok := resolveTransition(b.Status, cmd)
	if !ok {
		target := cmd.Target
		if target == "" {
			target = targetOf(cmd.Action)
		}
		return Update{}, TransitionError{From: b.Status, Role: cmd.ActorRole, Target: target}
	}

	at := now.UTC()
	u := Update{
		FromStatus: b.Status,
		Status:     t.Target,
		UpdatedAt:  at,
		Action:     t.Action,
		ActorID:    cmd.ActorID,
		ActorRole:  cmd.ActorRole,
	}

	switch t.Target {
	case StatusBooked:
		u.SelectedAt = setOnce(b.SelectedAt, at)
	case StatusConfirmed:
		u.ConfirmedAt = setOnce(b.ConfirmedAt, at)
	case StatusCompleted:
		u.CompletedAt = setOnce(b.CompletedAt, at)
	case StatusCancelled:
		reason, err := ResolveCancellationReason(cmd.Reason, cmd.OtherReason)
		if err != nil {
			return Update{}, err
		}
		u.CancelledAt = setOnce(b.CancelledAt, at)
		u.CancelledBy = cmd.ActorID
		u.CancelledByRole = cmd.ActorRole
		u.CancellationReason = reason
	}
	return u, nil
}

// ApplyTo merges u into b the same way the Postgres store does.
func (u Update) ApplyTo(b Booking) Booking {
	b.Status = u.Status
	b.UpdatedAt = u.UpdatedAt
	b.SelectedAt = coalesce(b.SelectedAt, u.SelectedAt)
	b.ConfirmedAt = coalesce(b.ConfirmedAt, u.ConfirmedAt)
	b.CompletedAt = coalesce(b.CompletedAt, u.CompletedAt)
	b.CancelledAt = coalesce(b.CancelledAt, u.CancelledAt)
	if u.CancelledBy != "" {
		b.CancelledBy = u.CancelledBy
	}
	if u.CancelledByRole != "" {
		b.CancelledByRole = u.CancelledByRole
	}
	if u.CancellationReason != "" {
		b.CancellationReason = u.CancellationReason
	}
	return b
}

func resolveTransition(from Status, cmd Command) (Transition, bool) {
	if cmd.Action != "" {
		t, ok := TransitionFor(from, cmd.ActorRole, cmd.Action)
		if ok && cmd.Target != "" && cmd.Target != t.Target {
			return Transition{}, false
		}
		return t, ok
	}
	if cmd.Target == "" {
		return Transition{}, false
	}
	return find(AllowedTransitions(from, cmd.ActorRole), func(t Transition) bool { return t.Target == cmd.Target })
}

func targetOf(a Action) Status {
	switch a {
	case ActionSelect:
		return StatusBooked
	case ActionConfirm:
		return StatusConfirmed
	case ActionComplete:
		return StatusCompleted
	case ActionCancel:
		return StatusCancelled
	}
	return ""
}

func setOnce(existing *time.Time, at time.Time) *time.Time {
	if existing != nil {
		return nil
	}
	return &at
}

func coalesce(existing, next *time.Time) *time.Time {
	if existing != nil {
		return existing
	}
	return next
}
