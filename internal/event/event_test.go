package event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus("open")
	require.NoError(t, err)
	assert.Equal(t, StatusOpen, st)

	_, err = ParseStatus("Open")
	assert.Error(t, err)
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StatusOpen, StatusClosed))
	assert.False(t, CanTransition(StatusClosed, StatusOpen))
	assert.False(t, CanTransition(StatusClosed, StatusClosed))
	assert.False(t, CanTransition("draft", StatusClosed))
}

func TestInfo(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	e := Event{ID: "e1", VenueID: "v1", Title: "Friday Jazz", Status: StatusOpen, CreatedAt: created}

	info := e.Info()
	assert.Equal(t, "e1", info.ID)
	assert.Equal(t, "v1", info.VenueID)
	assert.True(t, info.Open)
	assert.Equal(t, created, info.CreatedAt)

	e.Status = StatusClosed
	assert.False(t, e.Info().Open)
}
