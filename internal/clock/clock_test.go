package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTodayAfterDayStart(t *testing.T) {
	// 09:00 UTC = 12:00 local (UTC+3), well past the 7 AM boundary.
	at := time.Date(2025, 10, 11, 9, 0, 0, 0, time.UTC)
	c := NewAt(3, 7, at)

	assert.Equal(t, "11-Oct-2025", FormatDay(c.Today()))
}

func TestTodayBeforeDayStart(t *testing.T) {
	// 02:30 UTC = 05:30 local, still the previous journal day.
	at := time.Date(2025, 10, 11, 2, 30, 0, 0, time.UTC)
	c := NewAt(3, 7, at)

	assert.Equal(t, "10-Oct-2025", FormatDay(c.Today()))
}

func TestTodayCrossesMonth(t *testing.T) {
	at := time.Date(2025, 11, 1, 1, 0, 0, 0, time.UTC)
	c := NewAt(3, 7, at)

	assert.Equal(t, "31-Oct-2025", FormatDay(c.Today()))
}

func TestFilename(t *testing.T) {
	d := time.Date(2025, 2, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "05-Feb-2025.md", Filename(d))
}

func TestParseDay(t *testing.T) {
	for _, in := range []string{"05-Feb-2025", "05-Feb-2025.md", " 05-Feb-2025 "} {
		d, err := ParseDay(in)
		require.NoError(t, err, in)
		assert.Equal(t, "05-Feb-2025", FormatDay(d))
	}

	_, err := ParseDay("2025-02-05")
	assert.Error(t, err)

	_, err = ParseDay("yesterday")
	assert.Error(t, err)
}
