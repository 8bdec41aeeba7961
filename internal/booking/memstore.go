package booking

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"livelocal/internal/timeline"
)

// MemoryStore is an in-process Records implementation with the same write semantics as the
// Postgres repository.
type MemoryStore struct {
	mu       sync.Mutex
	bookings map[string]Booking
	history  map[string][]timeline.Entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		bookings: map[string]Booking{},
		history:  map[string][]timeline.Entry{},
	}
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	return &b, nil
}

func (s *MemoryStore) Create(_ context.Context, b *Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, other := range s.bookings {
		if other.EventID == b.EventID && other.MusicianID == b.MusicianID && occupiesSlot(other.Status) {
			return ErrAlreadyApplied
		}
	}
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	if b.UpdatedAt.IsZero() {
		b.UpdatedAt = b.CreatedAt
	}
	s.bookings[b.ID] = *b
	s.appendLocked(b.ID, timeline.TypeCreated, "Booking created", "", b.CreatedAt, map[string]any{"status": b.Status})
	return nil
}

func (s *MemoryStore) Update(_ context.Context, id string, u Update) (*Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	if u.FromStatus != "" && b.Status != u.FromStatus {
		return nil, ErrStatusConflict
	}
	b = u.ApplyTo(b)
	s.bookings[id] = b
	s.appendLocked(id, timeline.TypeStatusChanged, "Status changed", string(u.ActorRole), u.UpdatedAt,
		map[string]any{"from": u.FromStatus, "to": u.Status})
	return &b, nil
}

func (s *MemoryStore) MarkCancelRequested(_ context.Context, id, actorID string, role Role, at time.Time) (*Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	if b.Status.IsTerminal() {
		return nil, ErrBookingFinalized
	}
	if b.CancelRequestedAt == nil {
		t := at.UTC()
		b.CancelRequestedAt = &t
		b.CancelRequestedByRole = role
		b.UpdatedAt = t
		s.bookings[id] = b
		s.appendLocked(id, timeline.TypeCancelRequested, "Cancellation requested", string(role), t,
			map[string]any{"actorId": actorID})
	}
	return &b, nil
}

func (s *MemoryStore) ListByVenue(_ context.Context, venueID string) ([]Booking, error) {
	return s.list(func(b Booking) bool { return b.VenueID == venueID }), nil
}

func (s *MemoryStore) ListByMusician(_ context.Context, musicianID string) ([]Booking, error) {
	return s.list(func(b Booking) bool { return b.MusicianID == musicianID }), nil
}

func (s *MemoryStore) ListByEvent(_ context.Context, eventID string) ([]Booking, error) {
	return s.list(func(b Booking) bool { return b.EventID == eventID }), nil
}

func (s *MemoryStore) History(_ context.Context, id string) ([]timeline.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bookings[id]; !ok {
		return nil, ErrBookingNotFound
	}
	return append([]timeline.Entry{}, s.history[id]...), nil
}

func (s *MemoryStore) list(match func(Booking) bool) []Booking {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []Booking{}
	for _, b := range s.bookings {
		if match(b) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (s *MemoryStore) appendLocked(id, eventType, summary, actor string, at time.Time, data map[string]any) {
	s.history[id] = append(s.history[id], timeline.Entry{
		ID:         uuid.NewString(),
		BookingID:  id,
		EventType:  eventType,
		Summary:    summary,
		Actor:      actor,
		OccurredAt: at,
		Data:       data,
	})
}

// occupiesSlot reports whether a booking blocks a new application by the same musician.
func occupiesSlot(s Status) bool {
	return s != StatusCancelled && s != StatusRejected
}
