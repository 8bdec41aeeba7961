package booking

import (
	"context"
	"time"

	"livelocal/internal/timeline"
)

// Records is the full booking store used by the HTTP layer; the executor only needs Store.
type Records interface {
	Store
	Create(ctx context.Context, b *Booking) error
	ListByVenue(ctx context.Context, venueID string) ([]Booking, error)
	ListByMusician(ctx context.Context, musicianID string) ([]Booking, error)
	ListByEvent(ctx context.Context, eventID string) ([]Booking, error)
	MarkCancelRequested(ctx context.Context, id, actorID string, role Role, at time.Time) (*Booking, error)
	History(ctx context.Context, id string) ([]timeline.Entry, error)
}

// Directory resolves profile ownership. Lookups return ErrProfileNotFound when nothing matches.
type Directory interface {
	VenueOwnerID(ctx context.Context, venueID string) (string, error)
	MusicianOwnerID(ctx context.Context, musicianID string) (string, error)
	VenueIDForOwner(ctx context.Context, userID string) (string, error)
	MusicianIDForUser(ctx context.Context, userID string) (string, error)
}

// Events resolves parent events. Lookups return ErrEventNotFound when nothing matches.
type Events interface {
	EventInfo(ctx context.Context, eventID string) (*EventInfo, error)
}
