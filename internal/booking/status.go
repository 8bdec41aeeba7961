package booking

import (
	"fmt"
	"strings"
)

type Status string

const (
	StatusApplied       Status = "applied"
	StatusInvited       Status = "invited"
	StatusCommunicating Status = "communicating"
	StatusBooked        Status = "booked"
	StatusConfirmed     Status = "confirmed"
	StatusCompleted     Status = "completed"
	StatusCancelled     Status = "cancelled"
	StatusRejected      Status = "rejected"
)

// Statuses lists the canonical vocabulary in lifecycle order.
var Statuses = []Status{
	StatusApplied,
	StatusInvited,
	StatusCommunicating,
	StatusBooked,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
	StatusRejected,
}

// legacyStatuses maps values written by older clients onto the canonical enum.
// "selected" was used by some screens for the post-selection state that is canonically "booked".
var legacyStatuses = map[string]Status{
	"selected": StatusBooked,
}

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusApplied, StatusInvited, StatusCommunicating, StatusBooked,
		StatusConfirmed, StatusCompleted, StatusCancelled, StatusRejected:
		return Status(s), nil
	default:
		return "", fmt.Errorf("unknown status: %q", s)
	}
}

// MigrateStatus maps a stored value onto the canonical enum. The bool reports whether the
// stored value was not already canonical, so callers can log rows that still need rewriting.
func MigrateStatus(s string) (Status, bool, error) {
	if st, err := ParseStatus(s); err == nil {
		return st, false, nil
	}
	norm := strings.ToLower(strings.TrimSpace(s))
	if st, ok := legacyStatuses[norm]; ok {
		return st, true, nil
	}
	st, err := ParseStatus(norm)
	if err != nil {
		return "", false, fmt.Errorf("unknown status: %q", s)
	}
	return st, true, nil
}

// IsTerminal reports whether the booking has left the active flow.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}
