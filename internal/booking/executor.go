package booking

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Store is the record store the executor writes through. Update must apply the whole payload
// in one write or not at all.
type Store interface {
	Get(ctx context.Context, id string) (*Booking, error)
	Update(ctx context.Context, id string, u Update) (*Booking, error)
}

// StatusChange is published after a transition has been persisted.
type StatusChange struct {
	BookingID  string    `json:"bookingId"`
	EventID    string    `json:"eventId"`
	VenueID    string    `json:"venueId"`
	MusicianID string    `json:"musicianId"`
	From       Status    `json:"from"`
	To         Status    `json:"to"`
	Action     Action    `json:"action"`
	ActorID    string    `json:"actorId"`
	ActorRole  Role      `json:"actorRole"`
	OccurredAt time.Time `json:"occurredAt"`
}

type Notifier interface {
	BookingStatusChanged(ctx context.Context, c StatusChange) error
}

type noopNotifier struct{}

func (noopNotifier) BookingStatusChanged(context.Context, StatusChange) error { return nil }

const DefaultStoreTimeout = 10 * time.Second

type Executor struct {
	store    Store
	notifier Notifier
	log      *slog.Logger
	timeout  time.Duration
	now      func() time.Time
}

type ExecutorOption func(*Executor)

func WithNotifier(n Notifier) ExecutorOption {
	return func(e *Executor) {
		if n != nil {
			e.notifier = n
		}
	}
}

func WithLogger(l *slog.Logger) ExecutorOption {
	return func(e *Executor) {
		if l != nil {
			e.log = l
		}
	}
}

func WithStoreTimeout(d time.Duration) ExecutorOption {
	return func(e *Executor) {
		if d > 0 {
			e.timeout = d
		}
	}
}

func WithClock(now func() time.Time) ExecutorOption {
	return func(e *Executor) {
		if now != nil {
			e.now = now
		}
	}
}

func NewExecutor(store Store, opts ...ExecutorOption) *Executor {
	e := &Executor{
		store:    store,
		notifier: noopNotifier{},
		log:      slog.Default(),
		timeout:  DefaultStoreTimeout,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute applies cmd to the booking with a single store update. onUpdated, if non-nil, receives
// the persisted record and is only called on success. Failures are returned as-is (wrapped) and
// never retried.
func (e *Executor) Execute(ctx context.Context, cmd Command, onUpdated func(*Booking)) (*Booking, error) {
	current, err := e.get(ctx, cmd.BookingID)
	if err != nil {
		return nil, fmt.Errorf("load booking: %w", err)
	}

	u, err := BuildUpdate(current, cmd, e.now())
	if err != nil {
		return nil, err
	}

	updated, err := e.update(ctx, current.ID, u)
	if err != nil {
		e.log.Error("booking update failed",
			slog.String("booking_id", current.ID),
			slog.String("from", string(u.FromStatus)),
			slog.String("to", string(u.Status)),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("update booking: %w", err)
	}

	e.log.Info("booking transitioned",
		slog.String("booking_id", updated.ID),
		slog.String("from", string(u.FromStatus)),
		slog.String("to", string(updated.Status)),
		slog.String("actor_role", string(u.ActorRole)),
	)
	if err := updated.CheckConsistency(); err != nil {
		e.log.Warn("booking record inconsistent",
			slog.String("booking_id", updated.ID),
			slog.String("status", string(updated.Status)),
			slog.String("error", err.Error()),
		)
	}

	change := StatusChange{
		BookingID:  updated.ID,
		EventID:    updated.EventID,
		VenueID:    updated.VenueID,
		MusicianID: updated.MusicianID,
		From:       u.FromStatus,
		To:         updated.Status,
		Action:     u.Action,
		ActorID:    u.ActorID,
		ActorRole:  u.ActorRole,
		OccurredAt: u.UpdatedAt,
	}
	if err := e.notifier.BookingStatusChanged(context.WithoutCancel(ctx), change); err != nil {
		e.log.Warn("status change notification failed",
			slog.String("booking_id", updated.ID),
			slog.String("error", err.Error()),
		)
	}

	if onUpdated != nil {
		onUpdated(updated)
	}
	return updated, nil
}

func (e *Executor) get(ctx context.Context, id string) (*Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()
	return e.store.Get(ctx, id)
}

func (e *Executor) update(ctx context.Context, id string, u Update) (*Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()
	return e.store.Update(ctx, id, u)
}
