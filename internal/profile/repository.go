package profile

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"livelocal/internal/booking"
)

// Repository stores venue and musician profiles and answers the booking
// workflow's ownership lookups.
type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const venueColumns = `id, owner_id, name, COALESCE(city,''), COALESCE(capacity,0), created_at, updated_at`

const musicianColumns = `id, user_id, stage_name, COALESCE(genres, '{}'), hourly_rate::text, created_at, updated_at`

func (r *Repository) UpsertVenue(ctx context.Context, ownerID string, v Venue) (*Venue, error) {
	const q = `
INSERT INTO venues (owner_id, name, city, capacity)
VALUES ($1, $2, NULLIF($3, ''), $4)
ON CONFLICT (owner_id) DO UPDATE SET
  name = EXCLUDED.name,
  city = EXCLUDED.city,
  capacity = EXCLUDED.capacity,
  updated_at = NOW()
RETURNING ` + venueColumns
	return scanVenue(r.db.QueryRow(ctx, q, ownerID, v.Name, v.City, v.Capacity))
}

func (r *Repository) UpsertMusician(ctx context.Context, userID string, m Musician) (*Musician, error) {
	var rate *string
	if m.HourlyRate != nil {
		s := m.HourlyRate.String()
		rate = &s
	}
	genres := m.Genres
	if genres == nil {
		genres = []string{}
	}

	const q = `
INSERT INTO musicians (user_id, stage_name, genres, hourly_rate)
VALUES ($1, $2, $3, CAST($4 AS numeric))
ON CONFLICT (user_id) DO UPDATE SET
  stage_name = EXCLUDED.stage_name,
  genres = EXCLUDED.genres,
  hourly_rate = EXCLUDED.hourly_rate,
  updated_at = NOW()
RETURNING ` + musicianColumns
	return scanMusician(r.db.QueryRow(ctx, q, userID, m.StageName, genres, rate))
}

func (r *Repository) VenueByOwner(ctx context.Context, ownerID string) (*Venue, error) {
	return scanVenue(r.db.QueryRow(ctx, `SELECT `+venueColumns+` FROM venues WHERE owner_id = $1`, ownerID))
}

func (r *Repository) VenueByID(ctx context.Context, id string) (*Venue, error) {
	return scanVenue(r.db.QueryRow(ctx, `SELECT `+venueColumns+` FROM venues WHERE id = $1`, id))
}

func (r *Repository) MusicianByUser(ctx context.Context, userID string) (*Musician, error) {
	return scanMusician(r.db.QueryRow(ctx, `SELECT `+musicianColumns+` FROM musicians WHERE user_id = $1`, userID))
}

func (r *Repository) MusicianByID(ctx context.Context, id string) (*Musician, error) {
	return scanMusician(r.db.QueryRow(ctx, `SELECT `+musicianColumns+` FROM musicians WHERE id = $1`, id))
}

func (r *Repository) VenueOwnerID(ctx context.Context, venueID string) (string, error) {
	v, err := r.VenueByID(ctx, venueID)
	if err != nil {
		return "", err
	}
	return v.OwnerID, nil
}

func (r *Repository) MusicianOwnerID(ctx context.Context, musicianID string) (string, error) {
	m, err := r.MusicianByID(ctx, musicianID)
	if err != nil {
		return "", err
	}
	return m.UserID, nil
}

func (r *Repository) VenueIDForOwner(ctx context.Context, ownerID string) (string, error) {
	v, err := r.VenueByOwner(ctx, ownerID)
	if err != nil {
		return "", err
	}
	return v.ID, nil
}

func (r *Repository) MusicianIDForUser(ctx context.Context, userID string) (string, error) {
	m, err := r.MusicianByUser(ctx, userID)
	if err != nil {
		return "", err
	}
	return m.ID, nil
}

func scanVenue(row pgx.Row) (*Venue, error) {
	v := &Venue{}
	err := row.Scan(&v.ID, &v.OwnerID, &v.Name, &v.City, &v.Capacity, &v.CreatedAt, &v.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, booking.ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func scanMusician(row pgx.Row) (*Musician, error) {
	m := &Musician{}
	var rate *string
	err := row.Scan(&m.ID, &m.UserID, &m.StageName, &m.Genres, &rate, &m.CreatedAt, &m.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, booking.ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	if rate != nil {
		d, err := decimal.NewFromString(*rate)
		if err != nil {
			return nil, err
		}
		m.HourlyRate = &d
	}
	return m, nil
}
