package booking

import (
	"errors"
	"fmt"
)

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrEventNotFound   = errors.New("event not found")
	ErrProfileNotFound = errors.New("profile not found")
)

var (
	ErrNotParticipant   = errors.New("user is not a participant of this booking")
	ErrAmbiguousRole    = errors.New("user holds both roles on this booking; a role must be chosen")
	ErrInvalidRole      = errors.New("invalid role")
	ErrStatusConflict   = errors.New("booking status changed concurrently")
	ErrAlreadyApplied   = errors.New("musician already has an active booking for this event")
	ErrEventClosed      = errors.New("event is not accepting applications")
	ErrBookingFinalized = errors.New("booking is already completed or cancelled")
)

// ValidationError is an input problem the caller can fix; Code is returned to API clients.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// TransitionError means the policy does not allow role to move the booking from From to Target.
type TransitionError struct {
	From   Status
	Role   Role
	Target Status
}

func (e TransitionError) Error() string {
	return fmt.Sprintf("%s may not move booking from %s to %s", e.Role, e.From, e.Target)
}
