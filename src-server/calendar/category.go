package calendar

import "strings"

// Category is the display-ordering class of an event type. Rank ascends with
// the numeric value; lower comes first on a day cell.
type Category int

const (
	CategoryRent Category = iota
	CategorySubscription
	CategoryGoal
	CategoryOther
)

func (c Category) String() string {
	switch c {
	case CategoryRent:
		return "rent"
	case CategorySubscription:
		return "subscription"
	case CategoryGoal:
		return "goal"
	default:
		return "other"
	}
}

// CategoryOf buckets a free-form event type: exact "rent", prefix
// "subscription", prefix "goal", everything else CategoryOther.
func CategoryOf(eventType string) Category {
	switch {
	case eventType == "rent":
		return CategoryRent
	case strings.HasPrefix(eventType, "subscription"):
		return CategorySubscription
	case strings.HasPrefix(eventType, "goal"):
		return CategoryGoal
	default:
		return CategoryOther
	}
}

// Rank is the sort key used by OccurrencesOnDay. No secondary key; the sort
// is stable and source order breaks ties.
func (c Category) Rank() int {
	return int(c)
}
