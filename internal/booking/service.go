package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"livelocal/internal/timeline"
)

// Service covers the parts of the workflow that are not status transitions: creating bookings,
// working out who the caller is on a booking, and cancellation requests.
type Service struct {
	records   Records
	events    Events
	directory Directory
	log       *slog.Logger
	now       func() time.Time
}

func NewService(records Records, events Events, directory Directory, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		records:   records,
		events:    events,
		directory: directory,
		log:       log,
		now:       time.Now,
	}
}

type ApplyInput struct {
	Pitch        string
	ProposedRate *decimal.Decimal
}

// Apply creates an "applied" booking for the caller's musician profile.
func (s *Service) Apply(ctx context.Context, userID, eventID string, in ApplyInput) (*Booking, error) {
	musicianID, err := s.directory.MusicianIDForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("musician profile: %w", err)
	}
	ev, err := s.events.EventInfo(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("event: %w", err)
	}
	if !ev.Open {
		return nil, ErrEventClosed
	}
	if in.ProposedRate != nil && in.ProposedRate.IsNegative() {
		return nil, ValidationError{Code: "VALIDATION_FAILED", Message: "proposed rate must not be negative"}
	}

	now := s.now().UTC()
	b := &Booking{
		EventID:       ev.ID,
		VenueID:       ev.VenueID,
		MusicianID:    musicianID,
		Status:        StatusApplied,
		MusicianPitch: strings.TrimSpace(in.Pitch),
		ProposedRate:  in.ProposedRate,
		CreatedAt:     now,
		UpdatedAt:     now,
		AppliedAt:     &now,
	}
	if err := s.records.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("musician applied",
		slog.String("booking_id", b.ID),
		slog.String("event_id", b.EventID),
		slog.String("musician_id", b.MusicianID),
	)
	return b, nil
}

// Invite creates an "invited" booking. Only the owner of the event's venue may invite.
func (s *Service) Invite(ctx context.Context, userID, eventID, musicianID string) (*Booking, error) {
	ev, err := s.events.EventInfo(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("event: %w", err)
	}
	venueID, err := s.directory.VenueIDForOwner(ctx, userID)
	if errors.Is(err, ErrProfileNotFound) || (err == nil && venueID != ev.VenueID) {
		return nil, ErrNotParticipant
	}
	if err != nil {
		return nil, fmt.Errorf("venue profile: %w", err)
	}
	if !ev.Open {
		return nil, ErrEventClosed
	}
	if _, err := s.directory.MusicianOwnerID(ctx, musicianID); err != nil {
		return nil, fmt.Errorf("musician profile: %w", err)
	}

	now := s.now().UTC()
	b := &Booking{
		EventID:    ev.ID,
		VenueID:    ev.VenueID,
		MusicianID: musicianID,
		Status:     StatusInvited,
		CreatedAt:  now,
		UpdatedAt:  now,
		InvitedAt:  &now,
	}
	if err := s.records.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("musician invited",
		slog.String("booking_id", b.ID),
		slog.String("event_id", b.EventID),
		slog.String("musician_id", b.MusicianID),
	)
	return b, nil
}

// Load fetches the booking and the caller's role on it. requested may be empty.
func (s *Service) Load(ctx context.Context, bookingID, userID string, requested Role) (*Booking, Role, error) {
	b, err := s.records.Get(ctx, bookingID)
	if err != nil {
		return nil, "", err
	}
	p, err := s.Participants(ctx, b, userID)
	if err != nil {
		return nil, "", err
	}
	role, err := ResolveRole(p, requested)
	if err != nil {
		return nil, "", err
	}
	return b, role, nil
}

func (s *Service) Participants(ctx context.Context, b *Booking, userID string) (Participants, error) {
	venueOwner, err := s.directory.VenueOwnerID(ctx, b.VenueID)
	if err != nil && !errors.Is(err, ErrProfileNotFound) {
		return Participants{}, fmt.Errorf("venue owner: %w", err)
	}
	musicianOwner, err := s.directory.MusicianOwnerID(ctx, b.MusicianID)
	if err != nil && !errors.Is(err, ErrProfileNotFound) {
		return Participants{}, fmt.Errorf("musician owner: %w", err)
	}
	return Participants{
		BookingID:       b.ID,
		UserID:          userID,
		VenueOwnerID:    venueOwner,
		MusicianOwnerID: musicianOwner,
	}, nil
}

// RequestCancellation flags that the caller wants out without changing status.
func (s *Service) RequestCancellation(ctx context.Context, bookingID, userID string, requested Role) (*Booking, Role, error) {
	b, role, err := s.Load(ctx, bookingID, userID, requested)
	if err != nil {
		return nil, "", err
	}
	if b.Status.IsTerminal() {
		return nil, "", ErrBookingFinalized
	}
	b, err = s.records.MarkCancelRequested(ctx, b.ID, userID, role, s.now())
	if err != nil {
		return nil, "", err
	}
	return b, role, nil
}

// ListMine returns the caller's bookings seen from one side.
func (s *Service) ListMine(ctx context.Context, userID string, as Role) ([]Booking, error) {
	switch as {
	case RoleVenue:
		venueID, err := s.directory.VenueIDForOwner(ctx, userID)
		if err != nil {
			return nil, err
		}
		return s.records.ListByVenue(ctx, venueID)
	case RoleMusician:
		musicianID, err := s.directory.MusicianIDForUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		return s.records.ListByMusician(ctx, musicianID)
	default:
		return nil, ErrInvalidRole
	}
}

// ListForEvent is restricted to the owner of the event's venue.
func (s *Service) ListForEvent(ctx context.Context, userID, eventID string) ([]Booking, error) {
	ev, err := s.events.EventInfo(ctx, eventID)
	if err != nil {
		return nil, err
	}
	owner, err := s.directory.VenueOwnerID(ctx, ev.VenueID)
	if err != nil && !errors.Is(err, ErrProfileNotFound) {
		return nil, err
	}
	if owner == "" || owner != userID {
		return nil, ErrNotParticipant
	}
	return s.records.ListByEvent(ctx, ev.ID)
}

// View returns the booking when the caller is on either side of it.
func (s *Service) View(ctx context.Context, bookingID, userID string) (*Booking, error) {
	b, err := s.records.Get(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	p, err := s.Participants(ctx, b, userID)
	if err != nil {
		return nil, err
	}
	if len(p.roles()) == 0 {
		return nil, ErrNotParticipant
	}
	return b, nil
}

// Activity derives the display log for a booking the caller participates in.
func (s *Service) Activity(ctx context.Context, bookingID, userID string) ([]ActivityEntry, error) {
	b, err := s.View(ctx, bookingID, userID)
	if err != nil {
		return nil, err
	}
	ev, err := s.events.EventInfo(ctx, b.EventID)
	if err != nil && !errors.Is(err, ErrEventNotFound) {
		return nil, err
	}
	return DeriveActivity(*b, ev), nil
}

func (s *Service) History(ctx context.Context, bookingID, userID string) ([]timeline.Entry, error) {
	if _, err := s.View(ctx, bookingID, userID); err != nil {
		return nil, err
	}
	return s.records.History(ctx, bookingID)
}
