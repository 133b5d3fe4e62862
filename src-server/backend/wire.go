package backend

import (
	"time"

	"lifecal/src-server/calendar"
)

// EventBody is the JSON wire shape shared by the HTTP client and the backend
// routes. Dates travel as unix seconds UTC.
type EventBody struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	EventType        string   `json:"eventType"`
	Recurrence       string   `json:"recurrence"`
	StartDateUnixUTC int64    `json:"startDateUnixUTC"`
	EndDateUnixUTC   int64    `json:"endDateUnixUTC"`
	InvitedFriends   []string `json:"invitedFriends,omitempty"`
}

func toEventBody(ev calendar.Event) EventBody {
	return EventBody{
		ID:               ev.ID,
		Title:            ev.Title,
		Description:      ev.Description,
		EventType:        ev.EventType,
		Recurrence:       ev.Recurrence.String(),
		StartDateUnixUTC: ev.StartDate.UTC().Unix(),
		EndDateUnixUTC:   ev.EndDate.UTC().Unix(),
		InvitedFriends:   ev.InvitedFriends,
	}
}

func (b EventBody) toEvent() calendar.Event {
	return calendar.Event{
		ID:             b.ID,
		Title:          b.Title,
		Description:    b.Description,
		EventType:      b.EventType,
		Recurrence:     calendar.ParseRecurrence(b.Recurrence),
		StartDate:      time.Unix(b.StartDateUnixUTC, 0).UTC(),
		EndDate:        time.Unix(b.EndDateUnixUTC, 0).UTC(),
		InvitedFriends: b.InvitedFriends,
	}
}
