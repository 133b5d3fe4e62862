package calendar

import (
	"testing"
	"time"
)

func TestNavigatorStepping(t *testing.T) {
	start := mustDate(t, "2025-03-15T12:00:00Z")
	nav := NewNavigator(start)

	nav.NextMonth()
	if want := mustDate(t, "2025-04-15T12:00:00Z"); !nav.FocusedDate().Equal(want) {
		t.Errorf("after NextMonth got %v, want %v", nav.FocusedDate(), want)
	}
	nav.PreviousMonth()
	if !nav.FocusedDate().Equal(start) {
		t.Errorf("after PreviousMonth got %v, want %v", nav.FocusedDate(), start)
	}

	nav.NextWeek()
	if want := mustDate(t, "2025-03-22T12:00:00Z"); !nav.FocusedDate().Equal(want) {
		t.Errorf("after NextWeek got %v, want %v", nav.FocusedDate(), want)
	}
	nav.PreviousWeek()
	if !nav.FocusedDate().Equal(start) {
		t.Errorf("after PreviousWeek got %v, want %v", nav.FocusedDate(), start)
	}
}

func TestNavigatorMonthSteppingValidInWeekView(t *testing.T) {
	nav := NewNavigator(mustDate(t, "2025-03-15T12:00:00Z"))
	nav.ShowWeekView()
	nav.NextMonth()
	if want := mustDate(t, "2025-04-15T12:00:00Z"); !nav.FocusedDate().Equal(want) {
		t.Errorf("month stepping must work in week view, got %v", nav.FocusedDate())
	}
	if nav.DisplayMode() != WeekView {
		t.Error("stepping must not change the display mode")
	}
}

func TestNavigatorModeSwitchKeepsFocus(t *testing.T) {
	start := mustDate(t, "2025-03-15T12:00:00Z")
	nav := NewNavigator(start)

	if nav.DisplayMode() != MonthView {
		t.Errorf("expected month view by default, got %v", nav.DisplayMode())
	}
	nav.ShowWeekView()
	if nav.DisplayMode() != WeekView {
		t.Errorf("expected week view, got %v", nav.DisplayMode())
	}
	if !nav.FocusedDate().Equal(start) {
		t.Error("switching display mode must not move the focused date")
	}
	nav.ShowMonthView()
	if nav.DisplayMode() != MonthView {
		t.Errorf("expected month view, got %v", nav.DisplayMode())
	}
}

func TestNavigatorDaysInCurrentMonth(t *testing.T) {
	cases := []struct {
		focused string
		want    int
	}{
		{"2025-01-15T12:00:00Z", 31},
		{"2025-02-10T08:00:00Z", 28},
		{"2024-02-10T08:00:00Z", 29}, // leap year
		{"2025-04-01T00:00:00Z", 30},
	}
	for _, c := range cases {
		nav := NewNavigator(mustDate(t, c.focused))
		days := nav.DaysInCurrentMonth()
		if len(days) != c.want {
			t.Errorf("%s: expected %d days, got %d", c.focused, c.want, len(days))
			continue
		}
		first := days[0]
		if first.Day() != 1 {
			t.Errorf("%s: first entry is day %d, want 1", c.focused, first.Day())
		}
		last := days[len(days)-1]
		if last.Day() != c.want {
			t.Errorf("%s: last entry is day %d, want %d", c.focused, last.Day(), c.want)
		}
		if first.Month() != last.Month() {
			t.Errorf("%s: entries span months %v and %v", c.focused, first.Month(), last.Month())
		}
	}
}

func TestNavigatorEndOfMonthDrift(t *testing.T) {
	// Jan 31 + 1 month normalizes the same way expansion does
	nav := NewNavigator(mustDate(t, "2025-01-31T00:00:00Z"))
	nav.NextMonth()
	if want := mustDate(t, "2025-03-03T00:00:00Z"); !nav.FocusedDate().Equal(want) {
		t.Errorf("after NextMonth from Jan 31 got %v, want %v", nav.FocusedDate(), want)
	}
}

func TestNavigatorDaysUseFocusedLocation(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	nav := NewNavigator(time.Date(2025, 3, 15, 12, 0, 0, 0, loc))
	days := nav.DaysInCurrentMonth()
	if days[0].Location() != loc {
		t.Errorf("expected days in the focused date's location, got %v", days[0].Location())
	}
	if h, m, s := days[0].Clock(); h != 0 || m != 0 || s != 0 {
		t.Errorf("expected local midnight, got %02d:%02d:%02d", h, m, s)
	}
}
