package booking

import (
	"bytes"
	"log/slog"
	"reflect"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRow scans values positionally; nil leaves the destination untouched.
type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		if i >= len(r.values) || r.values[i] == nil {
			continue
		}
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(r.values[i]))
	}
	return nil
}

func bookingRow(status string) fakeRow {
	return fakeRow{values: []any{
		"b1", "e1", "v1", "m1", status,
		nil, "pitch",
		t0, t0, ptr(t0), nil, ptr(t0), nil,
		nil, "", nil, nil,
		"", "", "",
	}}
}

func TestScan_LegacyStatusIsMigratedAndLogged(t *testing.T) {
	var buf bytes.Buffer
	repo := &Repository{log: slog.New(slog.NewTextHandler(&buf, nil))}

	b, err := repo.scan(bookingRow("selected"))
	require.NoError(t, err)
	assert.Equal(t, StatusBooked, b.Status)
	assert.Equal(t, "pitch", b.MusicianPitch)

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "booking row has legacy status")
	assert.Contains(t, out, "stored=selected")
}

func TestScan_CanonicalStatusIsQuiet(t *testing.T) {
	var buf bytes.Buffer
	repo := &Repository{log: slog.New(slog.NewTextHandler(&buf, nil))}

	b, err := repo.scan(bookingRow("booked"))
	require.NoError(t, err)
	assert.Equal(t, StatusBooked, b.Status)
	assert.Empty(t, buf.String())
}

func TestScan_NoRows(t *testing.T) {
	repo := &Repository{log: slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))}
	_, err := repo.scan(fakeRow{err: pgx.ErrNoRows})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
