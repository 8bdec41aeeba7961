package review

import (
	"errors"
	"time"

	"livelocal/internal/booking"
)

var (
	ErrAlreadyReviewed = errors.New("review already submitted for this booking")
	ErrNotReviewable   = errors.New("only completed bookings can be reviewed")
)

// Review is one side's rating of the other after a completed booking.
type Review struct {
	ID         string       `json:"id"`
	BookingID  string       `json:"bookingId"`
	AuthorID   string       `json:"authorId"`
	AuthorRole booking.Role `json:"authorRole"`
	Rating     int          `json:"rating"`
	Comment    string       `json:"comment,omitempty"`
	CreatedAt  time.Time    `json:"createdAt"`
}

// CanReview reports whether the given side may review a booking in status.
func CanReview(status booking.Status, role booking.Role) error {
	if _, err := booking.ParseRole(string(role)); err != nil {
		return err
	}
	if status != booking.StatusCompleted {
		return ErrNotReviewable
	}
	return nil
}
