package event

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"livelocal/internal/booking"
)

const eventColumns = `id, venue_id, title, COALESCE(description,''), starts_at, budget::text, status, created_at, updated_at`

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, e Event) (*Event, error) {
	var budget *string
	if e.Budget != nil {
		s := e.Budget.String()
		budget = &s
	}
	const q = `
INSERT INTO events (venue_id, title, description, starts_at, budget, status)
VALUES ($1, $2, NULLIF($3, ''), $4, CAST($5 AS numeric), 'open')
RETURNING ` + eventColumns
	return scanEvent(r.db.QueryRow(ctx, q, e.VenueID, e.Title, e.Description, e.StartsAt.UTC(), budget))
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Event, error) {
	return scanEvent(r.db.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id))
}

// ListOpen returns open events starting after `from`, soonest first.
func (r *Repository) ListOpen(ctx context.Context, from time.Time) ([]Event, error) {
	return r.list(ctx, `
SELECT `+eventColumns+`
FROM events
WHERE status = 'open' AND starts_at >= $1
ORDER BY starts_at ASC
`, from.UTC())
}

func (r *Repository) ListByVenue(ctx context.Context, venueID string) ([]Event, error) {
	return r.list(ctx, `SELECT `+eventColumns+` FROM events WHERE venue_id = $1 ORDER BY starts_at DESC`, venueID)
}

// Close stops new applications and invitations. Closing a closed event is a no-op.
func (r *Repository) Close(ctx context.Context, id string) (*Event, error) {
	const q = `
UPDATE events SET status = 'closed', updated_at = NOW()
WHERE id = $1 AND status = 'open'
RETURNING ` + eventColumns
	e, err := scanEvent(r.db.QueryRow(ctx, q, id))
	if errors.Is(err, booking.ErrEventNotFound) {
		return r.GetByID(ctx, id)
	}
	return e, err
}

// EventInfo satisfies booking.Events.
func (r *Repository) EventInfo(ctx context.Context, id string) (*booking.EventInfo, error) {
	e, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return e.Info(), nil
}

func (r *Repository) list(ctx context.Context, q string, arg any) ([]Event, error) {
	rows, err := r.db.Query(ctx, q, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

func scanEvent(row pgx.Row) (*Event, error) {
	var (
		e      Event
		budget *string
		status string
	)
	err := row.Scan(&e.ID, &e.VenueID, &e.Title, &e.Description, &e.StartsAt, &budget, &status, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, booking.ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}
	st, err := ParseStatus(status)
	if err != nil {
		return nil, err
	}
	e.Status = st
	if budget != nil {
		d, err := decimal.NewFromString(*budget)
		if err != nil {
			return nil, err
		}
		e.Budget = &d
	}
	return &e, nil
}
