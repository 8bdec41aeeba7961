package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeGenres(t *testing.T) {
	got := normalizeGenres([]string{" Jazz", "jazz", "", "Indie Rock ", "JAZZ", "folk"})
	assert.Equal(t, []string{"jazz", "indie rock", "folk"}, got)
}

func TestNormalizeGenres_Empty(t *testing.T) {
	assert.Equal(t, []string{}, normalizeGenres(nil))
}
