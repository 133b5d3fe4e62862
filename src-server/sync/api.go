package sync

import (
	"context"

	"lifecal/src-server/calendar"
)

// Session identifies the signed-in user the controller works on behalf of.
// It is passed in explicitly at construction; nothing in this package reads
// ambient process-wide state.
type Session struct {
	Username string
}

// EventAPI is the external event collaborator. Implementations live in
// src-server/backend (HTTP client for the hosted backend, bun/sqlite for
// self-hosted deployments) and in test fakes.
type EventAPI interface {
	// ListEvents returns all master events for the user.
	ListEvents(ctx context.Context, username string) ([]calendar.Event, error)
	// CreateEvent stores a new event and returns the server-confirmed copy,
	// which may differ from the request (normalized fields).
	CreateEvent(ctx context.Context, ev calendar.Event, username string) (calendar.Event, error)
	// UpdateEvent replaces the event with the same ID and returns the
	// server-confirmed copy.
	UpdateEvent(ctx context.Context, ev calendar.Event, username string) (calendar.Event, error)
	// DeleteEvent removes one master event by ID.
	DeleteEvent(ctx context.Context, id string, username string) error
	// DeleteEventsByType removes every master whose event type matches exactly.
	DeleteEventsByType(ctx context.Context, eventType string, username string) error
}
