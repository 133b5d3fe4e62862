package calendar

import (
	"sync"
	"time"
)

// DisplayMode is the navigator's view mode.
type DisplayMode int

const (
	MonthView DisplayMode = iota
	WeekView
)

func (m DisplayMode) String() string {
	if m == WeekView {
		return "week"
	}
	return "month"
}

// Navigator is the cursor over time driving which window of the calendar is
// visible: a focused date plus a month/week display mode. Month and week
// stepping are both valid in either mode; switching modes never moves the
// cursor. There are no invalid transitions and no errors. Safe for
// concurrent use.
type Navigator struct {
	mu      sync.RWMutex
	focused time.Time
	mode    DisplayMode
}

// NewNavigator starts focused on the given date in month view.
func NewNavigator(focused time.Time) *Navigator {
	return &Navigator{focused: focused}
}

func (n *Navigator) FocusedDate() time.Time {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.focused
}

func (n *Navigator) DisplayMode() DisplayMode {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.mode
}

func (n *Navigator) NextMonth() {
	n.step(0, 1, 0)
}

func (n *Navigator) PreviousMonth() {
	n.step(0, -1, 0)
}

func (n *Navigator) NextWeek() {
	n.step(0, 0, 7)
}

func (n *Navigator) PreviousWeek() {
	n.step(0, 0, -7)
}

func (n *Navigator) step(years, months, days int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.focused = n.focused.AddDate(years, months, days)
}

func (n *Navigator) ShowMonthView() {
	n.setMode(MonthView)
}

func (n *Navigator) ShowWeekView() {
	n.setMode(WeekView)
}

func (n *Navigator) setMode(m DisplayMode) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.mode = m
}

// DaysInCurrentMonth returns every calendar date of the month containing the
// focused date, first through last inclusive (28 to 31 entries), at local
// midnight in the focused date's location.
func (n *Navigator) DaysInCurrentMonth() []time.Time {
	n.mu.RLock()
	focused := n.focused
	n.mu.RUnlock()

	first := time.Date(focused.Year(), focused.Month(), 1, 0, 0, 0, 0, focused.Location())
	days := make([]time.Time, 0, 31)
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
