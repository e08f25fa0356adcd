// Package clock decides which "journal day" a moment belongs to.
//
// Notes are filed per day, but a day does not flip at midnight: anything
// written before DayStartHour still belongs to the previous day's note.
package clock

import (
	"fmt"
	"strings"
	"time"
)

// DayFormat is the filename stem layout, e.g. "11-Oct-2025".
const DayFormat = "02-Jan-2006"

type Clock struct {
	offset   time.Duration // fixed UTC offset of the operator
	dayStart int           // local hour at which a new journal day begins
	now      func() time.Time
}

func New(offsetHours, dayStartHour int) *Clock {
	return &Clock{
		offset:   time.Duration(offsetHours) * time.Hour,
		dayStart: dayStartHour,
		now:      time.Now,
	}
}

// NewAt returns a Clock frozen at the given instant. Test seam.
func NewAt(offsetHours, dayStartHour int, at time.Time) *Clock {
	c := New(offsetHours, dayStartHour)
	c.now = func() time.Time { return at }
	return c
}

// Today returns the current journal day, truncated to midnight UTC.
func (c *Clock) Today() time.Time {
	local := c.now().UTC().Add(c.offset)
	if local.Hour() < c.dayStart {
		local = local.AddDate(0, 0, -1)
	}
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// Now returns the operator-local wall time.
func (c *Clock) Now() time.Time {
	return c.now().UTC().Add(c.offset)
}

func FormatDay(d time.Time) string {
	return d.Format(DayFormat)
}

// Filename returns the note filename for a day, e.g. "11-Oct-2025.md".
func Filename(d time.Time) string {
	return FormatDay(d) + ".md"
}

// ParseDay parses "DD-MMM-YYYY", with or without a trailing ".md".
func ParseDay(s string) (time.Time, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), ".md")
	d, err := time.Parse(DayFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return d, nil
}
