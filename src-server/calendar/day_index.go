package calendar

import (
	"slices"
	"time"
)

// startOfDay is local midnight in the timestamp's own location.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// OccurrencesOnDay returns the occurrences overlapping the given day, ordered
// for presentation. Membership is half-open on both sides: an occurrence
// ending exactly at the day's midnight is excluded, one starting exactly at
// the next midnight is excluded. The sort is stable on category rank alone
// (rent, subscription*, goal*, then everything else); relative input order
// breaks ties.
func OccurrencesOnDay(day time.Time, occurrences []Occurrence) []Occurrence {
	dayStart := startOfDay(day)
	dayEnd := dayStart.AddDate(0, 0, 1)

	out := make([]Occurrence, 0)
	for _, occ := range occurrences {
		if occ.Start.Before(dayEnd) && occ.End.After(dayStart) {
			out = append(out, occ)
		}
	}
	slices.SortStableFunc(out, func(a, b Occurrence) int {
		return CategoryOf(a.EventType).Rank() - CategoryOf(b.EventType).Rank()
	})
	return out
}

// HasEvent reports whether any occurrence touches the given day. Note that
// this deliberately uses a wider containment rule than OccurrencesOnDay: the
// day's midnight only has to fall between the start-of-day of the occurrence
// boundaries, inclusive on both ends. An occurrence ending at exactly
// midnight still marks that day here while OccurrencesOnDay drops it. Both
// behaviors are pinned by tests; do not unify without a product decision.
func HasEvent(day time.Time, occurrences []Occurrence) bool {
	d := startOfDay(day)
	for _, occ := range occurrences {
		from := startOfDay(occ.Start)
		to := startOfDay(occ.End)
		if !d.Before(from) && !d.After(to) {
			return true
		}
	}
	return false
}
