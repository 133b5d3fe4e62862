package model

import (
	"context"
	"fmt"
	"strings"
	"time"

	"lifecal/src-server/calendar"

	"github.com/uptrace/bun"
)

type Event struct {
	bun.BaseModel `bun:"table:events"`

	ID          string `bun:"id,pk"`            // required
	Username    string `bun:"username,notnull"` // required
	Title       string `bun:"title,notnull"`    // required
	Description string `bun:"description"`

	EventType  string `bun:"event_type"`
	Recurrence string `bun:"recurrence"`

	StartDateUnixUTC int64 `bun:"start_date,notnull"` // required
	EndDateUnixUTC   int64 `bun:"end_date,notnull"`   // required

	// comma-joined usernames; opaque to the calendar engine
	InvitedFriends string `bun:"invited_friends"`

	CreatedAt int64 `bun:"created_at,notnull"`
	UpdatedAt int64 `bun:"updated_at"`
	Sequence  int   `bun:"sequence"`
}

func (e *Event) Upsert(ctx context.Context, db bun.IDB) error {
	switch {
	case e.ID == "":
		return fmt.Errorf("(*Event).Upsert: event id is blank")
	case e.Username == "":
		return fmt.Errorf("(*Event).Upsert: username is blank")
	case e.Title == "":
		return fmt.Errorf("(*Event).Upsert: title is blank")
	case e.StartDateUnixUTC == 0:
		return fmt.Errorf("(*Event).Upsert: start date is blank")
	case e.EndDateUnixUTC == 0:
		return fmt.Errorf("(*Event).Upsert: end date is blank")
	case e.StartDateUnixUTC > e.EndDateUnixUTC:
		return fmt.Errorf("(*Event).Upsert: start date must be before end date")
	}
	if e.CreatedAt == 0 {
		e.CreatedAt = time.Now().UTC().Unix()
	}

	exists, err := db.NewSelect().
		Model((*Event)(nil)).
		Where("id = ?", e.ID).
		Exists(ctx)
	if err != nil {
		return fmt.Errorf("(*Event).Upsert: %w", err)
	}

	switch exists {
	case true:
		e.UpdatedAt = time.Now().UTC().Unix()
		e.Sequence++
		if _, err := db.NewUpdate().
			Model(e).
			WherePK().
			Exec(ctx); err != nil {
			return fmt.Errorf("(*Event).Upsert: %w", err)
		}
	case false:
		if _, err := db.NewInsert().
			Model(e).
			Exec(ctx); err != nil {
			return fmt.Errorf("(*Event).Upsert: %w", err)
		}
	}

	return nil
}

// ToCalendarEvent converts the row into the engine's domain type.
func (e *Event) ToCalendarEvent() calendar.Event {
	var friends []string
	if e.InvitedFriends != "" {
		friends = strings.Split(e.InvitedFriends, ",")
	}
	return calendar.Event{
		ID:             e.ID,
		Title:          e.Title,
		Description:    e.Description,
		EventType:      e.EventType,
		Recurrence:     calendar.ParseRecurrence(e.Recurrence),
		StartDate:      time.Unix(e.StartDateUnixUTC, 0).UTC(),
		EndDate:        time.Unix(e.EndDateUnixUTC, 0).UTC(),
		InvitedFriends: friends,
	}
}

// FromCalendarEvent fills the row from the engine's domain type.
func (e *Event) FromCalendarEvent(ev calendar.Event, username string) {
	e.ID = ev.ID
	e.Username = username
	e.Title = ev.Title
	e.Description = ev.Description
	e.EventType = ev.EventType
	e.Recurrence = ev.Recurrence.String()
	e.StartDateUnixUTC = ev.StartDate.UTC().Unix()
	e.EndDateUnixUTC = ev.EndDate.UTC().Unix()
	e.InvitedFriends = strings.Join(ev.InvitedFriends, ",")
}
