package calendar

import "time"

// Occurrence is one concrete date-bound instance of a master event. The
// identity occurrence (Derived == false, Seq == 0) is the master itself;
// derived occurrences are display-only projections with shifted dates and
// Seq counting up from 1. Derived instances never get their own identifier:
// mutations must always target MasterID.
type Occurrence struct {
	Event

	MasterID string
	Derived  bool
	Seq      int

	Start time.Time
	End   time.Time
}

func identityOccurrence(ev Event) Occurrence {
	return Occurrence{
		Event:    ev,
		MasterID: ev.ID,
		Start:    ev.StartDate,
		End:      ev.EndDate,
	}
}

func derivedOccurrence(ev Event, seq int, start time.Time) Occurrence {
	return Occurrence{
		Event:    ev,
		MasterID: ev.ID,
		Derived:  true,
		Seq:      seq,
		Start:    start,
		End:      start.Add(ev.Duration()),
	}
}
