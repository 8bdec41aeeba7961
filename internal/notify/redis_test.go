package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"livelocal/internal/booking"
)

type fakePublisher struct {
	channel string
	payload []byte
	err     error
}

func (f *fakePublisher) Publish(_ context.Context, channel string, message any) *redis.IntCmd {
	f.channel = channel
	f.payload, _ = message.([]byte)
	return redis.NewIntResult(1, f.err)
}

func TestRedisNotifier_PublishesJSON(t *testing.T) {
	pub := &fakePublisher{}
	n := &RedisNotifier{client: pub, channel: StatusChannel}

	change := booking.StatusChange{
		BookingID:  "b1",
		From:       booking.StatusApplied,
		To:         booking.StatusBooked,
		Action:     booking.ActionSelect,
		ActorRole:  booking.RoleVenue,
		OccurredAt: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, n.BookingStatusChanged(context.Background(), change))
	assert.Equal(t, StatusChannel, pub.channel)

	var got booking.StatusChange
	require.NoError(t, json.Unmarshal(pub.payload, &got))
	assert.Equal(t, change, got)
}

func TestRedisNotifier_WrapsPublishError(t *testing.T) {
	boom := errors.New("connection refused")
	n := &RedisNotifier{client: &fakePublisher{err: boom}, channel: StatusChannel}

	err := n.BookingStatusChanged(context.Background(), booking.StatusChange{BookingID: "b1"})
	assert.ErrorIs(t, err, boom)
}

func TestConnect_RejectsBadURL(t *testing.T) {
	_, err := Connect(context.Background(), "http://not-redis")
	assert.Error(t, err)
}
