package event

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"livelocal/internal/booking"
)

type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusOpen, StatusClosed:
		return Status(s), nil
	default:
		return "", fmt.Errorf("unknown event status: %s", s)
	}
}

// Closed events stay closed.
var allowedTransitions = map[Status]map[Status]bool{
	StatusOpen:   {StatusClosed: true},
	StatusClosed: {},
}

func CanTransition(from, to Status) bool {
	return allowedTransitions[from][to]
}

// Event is a performance slot a venue posts for musicians to apply to.
type Event struct {
	ID          string           `json:"id"`
	VenueID     string           `json:"venueId"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	StartsAt    time.Time        `json:"startsAt"`
	Budget      *decimal.Decimal `json:"budget,omitempty"`
	Status      Status           `json:"status"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

func (e Event) Info() *booking.EventInfo {
	return &booking.EventInfo{
		ID:        e.ID,
		VenueID:   e.VenueID,
		Title:     e.Title,
		StartsAt:  e.StartsAt,
		Open:      e.Status == StatusOpen,
		CreatedAt: e.CreatedAt,
	}
}
