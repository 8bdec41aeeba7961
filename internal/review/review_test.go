package review

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"livelocal/internal/booking"
)

func TestCanReview(t *testing.T) {
	for _, role := range []booking.Role{booking.RoleVenue, booking.RoleMusician} {
		assert.NoError(t, CanReview(booking.StatusCompleted, role))
	}

	for _, st := range booking.Statuses {
		if st == booking.StatusCompleted {
			continue
		}
		assert.ErrorIs(t, CanReview(st, booking.RoleVenue), ErrNotReviewable, st)
	}
}

func TestCanReview_InvalidRole(t *testing.T) {
	assert.ErrorIs(t, CanReview(booking.StatusCompleted, "promoter"), booking.ErrInvalidRole)
}
