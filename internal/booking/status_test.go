package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus_Strict(t *testing.T) {
	for _, st := range Statuses {
		got, err := ParseStatus(string(st))
		require.NoError(t, err)
		assert.Equal(t, st, got)
	}

	for _, bad := range []string{"", "Booked", "selected", " applied", "done"} {
		_, err := ParseStatus(bad)
		assert.Error(t, err, bad)
	}
}

func TestMigrateStatus(t *testing.T) {
	cases := []struct {
		in      string
		want    Status
		changed bool
	}{
		{"booked", StatusBooked, false},
		{"selected", StatusBooked, true},
		{"Selected", StatusBooked, true},
		{"Confirmed", StatusConfirmed, true},
		{" cancelled ", StatusCancelled, true},
		{"rejected", StatusRejected, false},
	}
	for _, tc := range cases {
		got, changed, err := MigrateStatus(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
		assert.Equal(t, tc.changed, changed, tc.in)
	}

	_, _, err := MigrateStatus("archived")
	assert.Error(t, err)
}

func TestIsTerminal(t *testing.T) {
	terminal := map[Status]bool{StatusCompleted: true, StatusCancelled: true}
	for _, st := range Statuses {
		assert.Equal(t, terminal[st], st.IsTerminal(), st)
	}
}
