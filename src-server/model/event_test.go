package model_test

import (
	"context"
	"database/sql"
	"testing"

	"lifecal/src-server/model"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()
	db, err := sql.Open(sqliteshim.ShimName, ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	bundb := bun.NewDB(db, sqlitedialect.New())
	if err := model.CreateSchema(bundb); err != nil {
		t.Fatal(err)
	}
	return bundb
}

func TestEventUpsert(t *testing.T) {
	bundb := newTestDB(t)

	eventModel := model.Event{
		ID:               uuid.NewString(),
		Username:         "alice",
		Title:            "Rent",
		EventType:        "rent",
		Recurrence:       "monthly",
		StartDateUnixUTC: 1736154000,
		EndDateUnixUTC:   1736157600,
	}
	if err := eventModel.Upsert(context.Background(), bundb); err != nil {
		t.Fatal(err)
	}
	if eventModel.CreatedAt == 0 {
		t.Error("created at should be filled on insert")
	}
	if eventModel.Sequence != 0 {
		t.Errorf("sequence should start at 0, got %d", eventModel.Sequence)
	}

	// second upsert is an update and bumps the sequence
	eventModel.Title = "Rent (updated)"
	if err := eventModel.Upsert(context.Background(), bundb); err != nil {
		t.Fatal(err)
	}
	if eventModel.Sequence != 1 {
		t.Errorf("sequence should bump on update, got %d", eventModel.Sequence)
	}
	if eventModel.UpdatedAt == 0 {
		t.Error("updated at should be filled on update")
	}

	count, err := bundb.NewSelect().
		Model((*model.Event)(nil)).
		Count(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("expected 1 row, got %d", count)
	}
}

func TestEventUpsertValidation(t *testing.T) {
	bundb := newTestDB(t)

	cases := []struct {
		name  string
		event model.Event
	}{
		{"blank id", model.Event{Username: "alice", Title: "x", StartDateUnixUTC: 1, EndDateUnixUTC: 2}},
		{"blank username", model.Event{ID: "1", Title: "x", StartDateUnixUTC: 1, EndDateUnixUTC: 2}},
		{"blank title", model.Event{ID: "1", Username: "alice", StartDateUnixUTC: 1, EndDateUnixUTC: 2}},
		{"blank start date", model.Event{ID: "1", Username: "alice", Title: "x", EndDateUnixUTC: 2}},
		{"blank end date", model.Event{ID: "1", Username: "alice", Title: "x", StartDateUnixUTC: 1}},
		{"start after end", model.Event{ID: "1", Username: "alice", Title: "x", StartDateUnixUTC: 2, EndDateUnixUTC: 1}},
	}
	for _, c := range cases {
		if err := c.event.Upsert(context.Background(), bundb); err == nil {
			t.Errorf("%s: expected a validation error", c.name)
		}
	}
}

func TestEventCalendarRoundTrip(t *testing.T) {
	eventModel := model.Event{
		ID:               uuid.NewString(),
		Username:         "alice",
		Title:            "Gym",
		EventType:        "goal-fitness",
		Recurrence:       "biweekly",
		StartDateUnixUTC: 1736154000,
		EndDateUnixUTC:   1736157600,
		InvitedFriends:   "bob,carol",
	}

	ev := eventModel.ToCalendarEvent()
	if len(ev.InvitedFriends) != 2 {
		t.Fatalf("expected 2 invited friends, got %d", len(ev.InvitedFriends))
	}

	var back model.Event
	back.FromCalendarEvent(ev, "alice")
	if back.ID != eventModel.ID ||
		back.Recurrence != eventModel.Recurrence ||
		back.StartDateUnixUTC != eventModel.StartDateUnixUTC ||
		back.InvitedFriends != eventModel.InvitedFriends {
		t.Errorf("round trip mismatch: %+v vs %+v", back, eventModel)
	}
}
