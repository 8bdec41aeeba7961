package booking

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"livelocal/internal/audit"
	"livelocal/internal/timeline"
	"livelocal/pkg/db"
)

const bookingColumns = `
id, event_id, venue_id, musician_id, status,
proposed_rate::text, musician_pitch,
created_at, updated_at, applied_at, invited_at, selected_at, confirmed_at,
cancel_requested_at, COALESCE(cancel_requested_by_role, ''), cancelled_at, completed_at,
COALESCE(cancelled_by::text, ''), COALESCE(cancelled_by_role, ''), COALESCE(cancellation_reason, '')
`

type Repository struct {
	db  *pgxpool.Pool
	log *slog.Logger
}

func NewRepository(db *pgxpool.Pool, log *slog.Logger) *Repository {
	if log == nil {
		log = slog.Default()
	}
	return &Repository{db: db, log: log}
}

func (r *Repository) Get(ctx context.Context, id string) (*Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	return r.scan(row)
}

func (r *Repository) Create(ctx context.Context, b *Booking) error {
	var rate *string
	if b.ProposedRate != nil {
		s := b.ProposedRate.String()
		rate = &s
	}

	return db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		const q = `
INSERT INTO bookings (event_id, venue_id, musician_id, status, proposed_rate, musician_pitch, applied_at, invited_at)
VALUES ($1, $2, $3, $4, CAST($5 AS numeric), $6, $7, $8)
RETURNING ` + bookingColumns
		created, err := r.scan(tx.QueryRow(ctx, q,
			b.EventID, b.VenueID, b.MusicianID, string(b.Status), rate, b.MusicianPitch, b.AppliedAt, b.InvitedAt,
		))
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return ErrAlreadyApplied
			}
			return err
		}
		*b = *created

		return timeline.Insert(ctx, tx, b.ID, timeline.TypeCreated, "Booking created", "", b.CreatedAt,
			map[string]any{"status": b.Status})
	})
}

// Update writes the payload in one statement. Timestamps already set on the row win over the
// payload, and the write only applies while the row is still in u.FromStatus.
func (r *Repository) Update(ctx context.Context, id string, u Update) (*Booking, error) {
	var out *Booking
	err := db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		const q = `
UPDATE bookings SET
  status = $3,
  updated_at = $4,
  selected_at = COALESCE(selected_at, $5),
  confirmed_at = COALESCE(confirmed_at, $6),
  completed_at = COALESCE(completed_at, $7),
  cancelled_at = COALESCE(cancelled_at, $8),
  cancelled_by = COALESCE(CAST(NULLIF($9::text, '') AS uuid), cancelled_by),
  cancelled_by_role = COALESCE(NULLIF($10::text, ''), cancelled_by_role),
  cancellation_reason = COALESCE(NULLIF($11::text, ''), cancellation_reason)
WHERE id = $1 AND ($2::text = '' OR status = $2::text)
RETURNING ` + bookingColumns
		b, err := r.scan(tx.QueryRow(ctx, q,
			id, string(u.FromStatus), string(u.Status), u.UpdatedAt,
			u.SelectedAt, u.ConfirmedAt, u.CompletedAt, u.CancelledAt,
			u.CancelledBy, string(u.CancelledByRole), u.CancellationReason,
		))
		if errors.Is(err, ErrBookingNotFound) {
			return missingOrConflict(ctx, tx, id)
		}
		if err != nil {
			return err
		}

		change := map[string]any{"from": u.FromStatus, "to": u.Status}
		if err := timeline.Insert(ctx, tx, b.ID, timeline.TypeStatusChanged, "Status changed", string(u.ActorRole), u.UpdatedAt, change); err != nil {
			return err
		}
		if u.CancellationReason != "" {
			change["reason"] = u.CancellationReason
		}
		if err := audit.Insert(ctx, tx, u.ActorID, &b.ID, "BOOKING_"+strings.ToUpper(string(u.Action)), string(u.ActorRole), change); err != nil {
			return err
		}
		out = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repository) MarkCancelRequested(ctx context.Context, id, actorID string, role Role, at time.Time) (*Booking, error) {
	var out *Booking
	err := db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		b, err := r.scan(tx.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			return err
		}
		if b.Status.IsTerminal() {
			return ErrBookingFinalized
		}
		if b.CancelRequestedAt != nil {
			out = b
			return nil
		}

		const q = `
UPDATE bookings
SET cancel_requested_at = $2, cancel_requested_by_role = $3, updated_at = $2
WHERE id = $1
RETURNING ` + bookingColumns
		b, err = r.scan(tx.QueryRow(ctx, q, id, at.UTC(), string(role)))
		if err != nil {
			return err
		}
		if err := timeline.Insert(ctx, tx, id, timeline.TypeCancelRequested, "Cancellation requested", string(role), at.UTC(), nil); err != nil {
			return err
		}
		if err := audit.Insert(ctx, tx, actorID, &b.ID, "BOOKING_CANCEL_REQUESTED", string(role), nil); err != nil {
			return err
		}
		out = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repository) ListByVenue(ctx context.Context, venueID string) ([]Booking, error) {
	return r.list(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE venue_id = $1 ORDER BY created_at DESC`, venueID)
}

func (r *Repository) ListByMusician(ctx context.Context, musicianID string) ([]Booking, error) {
	return r.list(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE musician_id = $1 ORDER BY created_at DESC`, musicianID)
}

func (r *Repository) ListByEvent(ctx context.Context, eventID string) ([]Booking, error) {
	return r.list(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE event_id = $1 ORDER BY created_at DESC`, eventID)
}

func (r *Repository) History(ctx context.Context, id string) ([]timeline.Entry, error) {
	if _, err := r.Get(ctx, id); err != nil {
		return nil, err
	}
	return timeline.ListByBooking(ctx, r.db, id)
}

func (r *Repository) list(ctx context.Context, q string, arg string) ([]Booking, error) {
	rows, err := r.db.Query(ctx, q, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Booking{}
	for rows.Next() {
		b, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

func missingOrConflict(ctx context.Context, tx pgx.Tx, id string) error {
	var status string
	err := tx.QueryRow(ctx, `SELECT status FROM bookings WHERE id = $1`, id).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrBookingNotFound
	}
	if err != nil {
		return err
	}
	return ErrStatusConflict
}

// scan reads one booking row and warns about rows still carrying a legacy
// status value. They are served under the canonical status until 000002 runs.
func (r *Repository) scan(row pgx.Row) (*Booking, error) {
	b, legacy, err := scanBooking(row)
	if err != nil {
		return nil, err
	}
	if legacy != "" {
		r.log.Warn("booking row has legacy status",
			"booking_id", b.ID,
			"stored", legacy,
			"status", string(b.Status),
		)
	}
	return b, nil
}

// scanBooking returns the raw stored status as legacy when it had to be migrated.
func scanBooking(row pgx.Row) (*Booking, string, error) {
	var (
		b                     Booking
		status, cancelReqRole string
		cancelledByRole       string
		rate                  *string
	)
	err := row.Scan(
		&b.ID, &b.EventID, &b.VenueID, &b.MusicianID, &status,
		&rate, &b.MusicianPitch,
		&b.CreatedAt, &b.UpdatedAt, &b.AppliedAt, &b.InvitedAt, &b.SelectedAt, &b.ConfirmedAt,
		&b.CancelRequestedAt, &cancelReqRole, &b.CancelledAt, &b.CompletedAt,
		&b.CancelledBy, &cancelledByRole, &b.CancellationReason,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, "", ErrBookingNotFound
	}
	if err != nil {
		return nil, "", err
	}

	st, migrated, err := MigrateStatus(status)
	if err != nil {
		return nil, "", err
	}
	legacy := ""
	if migrated {
		legacy = status
	}
	b.Status = st
	b.CancelRequestedByRole = Role(cancelReqRole)
	b.CancelledByRole = Role(cancelledByRole)
	if rate != nil {
		d, err := decimal.NewFromString(*rate)
		if err != nil {
			return nil, "", err
		}
		b.ProposedRate = &d
	}
	return &b, legacy, nil
}
