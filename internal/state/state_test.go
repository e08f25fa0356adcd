package state

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"dailynotesbot/internal/clock"
)

func newManager() *Manager {
	at := time.Date(2025, 10, 11, 9, 0, 0, 0, time.UTC)
	return NewManager(clock.NewAt(3, 7, at))
}

func TestGetCreatesContext(t *testing.T) {
	m := newManager()

	ctx := m.Get(42)
	assert.Equal(t, int64(42), ctx.UserID)
	assert.Equal(t, Idle, ctx.State)
	assert.Equal(t, "11-Oct-2025", clock.FormatDay(ctx.ActiveDate))
	assert.Equal(t, time.October, ctx.CalendarMonth)
	assert.Equal(t, 2025, ctx.CalendarYear)
}

func TestUpdates(t *testing.T) {
	m := newManager()

	m.SetState(1, WaitingRating)
	assert.Equal(t, WaitingRating, m.Get(1).State)

	d := time.Date(2025, 2, 5, 0, 0, 0, 0, time.UTC)
	m.SetActiveDate(1, d)
	assert.Equal(t, d, m.Get(1).ActiveDate)

	m.SetCalendar(1, 2024, time.December)
	ctx := m.Get(1)
	assert.Equal(t, 2024, ctx.CalendarYear)
	assert.Equal(t, time.December, ctx.CalendarMonth)

	m.SetTaskPage(1, 3)
	assert.Equal(t, 3, m.Get(1).TaskPage)
}

func TestResetKeepsDateAndCalendar(t *testing.T) {
	m := newManager()
	d := time.Date(2025, 2, 5, 0, 0, 0, 0, time.UTC)
	m.SetActiveDate(7, d)
	m.SetCalendar(7, 2025, time.February)
	m.SetState(7, TasksView)
	m.SetTaskPage(7, 2)

	m.Reset(7)

	ctx := m.Get(7)
	assert.Equal(t, Idle, ctx.State)
	assert.Equal(t, 0, ctx.TaskPage)
	assert.Equal(t, d, ctx.ActiveDate)
	assert.Equal(t, time.February, ctx.CalendarMonth)
}

func TestConcurrentAccess(t *testing.T) {
	m := newManager()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			m.SetState(int64(n%4), TasksView)
			m.SetTaskPage(int64(n%4), n)
			_ = m.Get(int64(n % 4))
			m.Reset(int64(n % 4))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, Idle, m.Get(0).State)
}
