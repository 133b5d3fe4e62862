package calendar

import "time"

// how far ahead of "now" derived instances are generated
const horizonMonths = 6

// safety cap per event; a weekly rule over 6 months stays far under this
const maxDerivedPerEvent = 1000

// Expand materializes the occurrence set for a batch of master events. Every
// event yields its identity occurrence; recurring events additionally yield
// derived instances with the master's duration, stepping the cursor from the
// master's own start date until it reaches now + 6 months. An instance
// landing exactly on the horizon is excluded.
//
// The horizon is re-evaluated on every call, so two calls separated by real
// time legitimately produce different result sizes for the same master set.
// Expand is pure given (events, now): identical inputs yield identical
// output, and it never fails. Misbehaving date arithmetic only stops
// expansion of the event it belongs to.
func Expand(events []Event, now time.Time) []Occurrence {
	horizon := now.AddDate(0, horizonMonths, 0)

	occurrences := make([]Occurrence, 0, len(events))
	for _, ev := range events {
		occurrences = append(occurrences, identityOccurrence(ev))
		occurrences = append(occurrences, deriveInstances(ev, horizon)...)
	}
	return occurrences
}

func deriveInstances(ev Event, horizon time.Time) []Occurrence {
	if ev.Recurrence == RecurrenceNone {
		return nil
	}

	var out []Occurrence
	cursor := ev.StartDate
	for seq := 1; seq <= maxDerivedPerEvent; seq++ {
		next := advance(cursor, ev.Recurrence)
		if !next.After(cursor) {
			// arithmetic stopped moving forward; stop this event only
			break
		}
		if !next.Before(horizon) {
			break
		}
		out = append(out, derivedOccurrence(ev, seq, next))
		cursor = next
	}
	return out
}

func advance(cursor time.Time, r Recurrence) time.Time {
	switch r {
	case RecurrenceWeekly:
		return cursor.AddDate(0, 0, 7)
	case RecurrenceBiweekly:
		return cursor.AddDate(0, 0, 14)
	case RecurrenceMonthly:
		// AddDate normalizes short months (Jan 31 + 1 month -> Mar 2/3);
		// the next step advances from the normalized date
		return cursor.AddDate(0, 1, 0)
	default:
		return cursor
	}
}
