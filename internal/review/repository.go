package review

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"livelocal/internal/audit"
	"livelocal/pkg/db"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Create stores the review; each side may review a booking once.
func (r *Repository) Create(ctx context.Context, rv Review) (*Review, error) {
	out := rv
	err := db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		const q = `
INSERT INTO reviews (booking_id, author_id, author_role, rating, comment)
VALUES ($1, $2, $3, $4, NULLIF($5, ''))
RETURNING id, created_at
`
		if err := tx.QueryRow(ctx, q, rv.BookingID, rv.AuthorID, string(rv.AuthorRole), rv.Rating, rv.Comment).
			Scan(&out.ID, &out.CreatedAt); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return ErrAlreadyReviewed
			}
			return err
		}
		return audit.Insert(ctx, tx, rv.AuthorID, &rv.BookingID, "BOOKING_REVIEWED", string(rv.AuthorRole),
			map[string]any{"rating": rv.Rating})
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Repository) ListByBooking(ctx context.Context, bookingID string) ([]Review, error) {
	const q = `
SELECT id, booking_id, author_id, author_role, rating, COALESCE(comment,''), created_at
FROM reviews
WHERE booking_id = $1
ORDER BY created_at ASC
`
	rows, err := r.db.Query(ctx, q, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Review{}
	for rows.Next() {
		var rv Review
		if err := rows.Scan(&rv.ID, &rv.BookingID, &rv.AuthorID, &rv.AuthorRole, &rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}
