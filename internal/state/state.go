// Package state tracks the per-user conversation state of the bot.
package state

import (
	"sync"
	"time"

	"dailynotesbot/internal/clock"
)

// UserState is where a user currently is in the bot workflow.
type UserState string

const (
	Idle           UserState = "idle"
	WaitingRating  UserState = "waiting_rating"
	TasksView      UserState = "tasks_view"
	WaitingNewTask UserState = "waiting_new_task"
	CalendarView   UserState = "calendar_view"
)

// Context is one user's session: current state, the journal day being
// worked on, and the calendar/tasks view position.
type Context struct {
	UserID        int64
	State         UserState
	ActiveDate    time.Time
	CalendarMonth time.Month
	CalendarYear  int
	TaskPage      int
}

// Manager holds user contexts in memory. Contexts are created lazily with
// today's date and the current month.
type Manager struct {
	mu       sync.RWMutex
	clk      *clock.Clock
	contexts map[int64]*Context
}

func NewManager(clk *clock.Clock) *Manager {
	return &Manager{clk: clk, contexts: make(map[int64]*Context)}
}

// Get returns a copy of the user's context, creating it if needed.
func (m *Manager) Get(userID int64) Context {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.locked(userID)
}

func (m *Manager) locked(userID int64) *Context {
	ctx, ok := m.contexts[userID]
	if !ok {
		today := m.clk.Today()
		ctx = &Context{
			UserID:        userID,
			State:         Idle,
			ActiveDate:    today,
			CalendarMonth: today.Month(),
			CalendarYear:  today.Year(),
		}
		m.contexts[userID] = ctx
	}
	return ctx
}

// SetState moves the user to a new state.
func (m *Manager) SetState(userID int64, st UserState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locked(userID).State = st
}

// SetActiveDate selects the journal day the user is working on.
func (m *Manager) SetActiveDate(userID int64, d time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locked(userID).ActiveDate = d
}

// SetCalendar positions the calendar view.
func (m *Manager) SetCalendar(userID int64, year int, month time.Month) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ctx := m.locked(userID)
	ctx.CalendarYear = year
	ctx.CalendarMonth = month
}

// SetTaskPage remembers the tasks view page.
func (m *Manager) SetTaskPage(userID int64, page int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locked(userID).TaskPage = page
}

// Reset returns the user to Idle, keeping the active date and calendar
// position.
func (m *Manager) Reset(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ctx := m.locked(userID)
	ctx.State = Idle
	ctx.TaskPage = 0
}
