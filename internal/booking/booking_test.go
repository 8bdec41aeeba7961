package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCheckConsistency(t *testing.T) {
	ok := appliedBooking()
	assert.NoError(t, ok.CheckConsistency())

	missing := appliedBooking()
	missing.Status = StatusBooked
	assert.ErrorIs(t, missing.CheckConsistency(), ErrInconsistentRecord)

	both := appliedBooking()
	both.Status = StatusCompleted
	both.CompletedAt = ptr(t0)
	both.CancelledAt = ptr(t0)
	assert.ErrorIs(t, both.CheckConsistency(), ErrInconsistentRecord)

	cancelled := appliedBooking()
	cancelled.Status = StatusCancelled
	cancelled.CancelledAt = ptr(t0.Add(time.Hour))
	assert.ErrorIs(t, cancelled.CheckConsistency(), ErrInconsistentRecord)

	cancelled.CancelledByRole = RoleVenue
	cancelled.CancellationReason = "weather"
	assert.NoError(t, cancelled.CheckConsistency())
}

func TestCheckConsistency_StatusesWithoutTimestamp(t *testing.T) {
	b := Booking{Status: StatusCommunicating}
	assert.NoError(t, b.CheckConsistency())

	b.Status = StatusRejected
	assert.NoError(t, b.CheckConsistency())
}
