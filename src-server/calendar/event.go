package calendar

import (
	"strings"
	"time"

	"github.com/xyedo/rrule"
)

// Recurrence is the closed set of repeat rules the engine understands.
// Anything else degrades to RecurrenceNone; the expander never errors on
// an unrecognized rule.
type Recurrence int

const (
	RecurrenceNone Recurrence = iota
	RecurrenceWeekly
	RecurrenceBiweekly
	RecurrenceMonthly
)

func (r Recurrence) String() string {
	switch r {
	case RecurrenceWeekly:
		return "weekly"
	case RecurrenceBiweekly:
		return "biweekly"
	case RecurrenceMonthly:
		return "monthly"
	default:
		return "none"
	}
}

// ParseRecurrence maps a wire string to a Recurrence. It accepts the plain
// keywords ("weekly", "biweekly", "monthly") as well as iCalendar RRULE
// strings imported from external calendars; RRULEs that don't land on one of
// the three supported rules (other frequencies, odd intervals, COUNT/UNTIL
// bounds) degrade to RecurrenceNone.
func ParseRecurrence(s string) Recurrence {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "weekly":
		return RecurrenceWeekly
	case "biweekly":
		return RecurrenceBiweekly
	case "monthly":
		return RecurrenceMonthly
	}

	raw := strings.TrimSpace(s)
	if cut, found := strings.CutPrefix(raw, "RRULE:"); found {
		raw = cut
	}
	if !strings.Contains(raw, "FREQ=") {
		return RecurrenceNone
	}
	opt, err := rrule.StrToROption(raw)
	if err != nil {
		return RecurrenceNone
	}
	if opt.Count != 0 || !opt.Until.IsZero() {
		return RecurrenceNone
	}
	switch {
	case opt.Freq == rrule.WEEKLY && opt.Interval <= 1:
		return RecurrenceWeekly
	case opt.Freq == rrule.WEEKLY && opt.Interval == 2:
		return RecurrenceBiweekly
	case opt.Freq == rrule.MONTHLY && opt.Interval <= 1:
		return RecurrenceMonthly
	default:
		return RecurrenceNone
	}
}

// Event is a master record for the signed-in user. StartDate <= EndDate is
// assumed but not enforced here; the backend collaborator validates on write.
type Event struct {
	ID          string
	Title       string
	Description string
	EventType   string
	Recurrence  Recurrence

	StartDate time.Time
	EndDate   time.Time

	InvitedFriends []string
}

// Duration of the master instance; derived occurrences preserve it.
func (e Event) Duration() time.Duration {
	return e.EndDate.Sub(e.StartDate)
}
