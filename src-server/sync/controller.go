package sync

import (
	"context"
	"log/slog"
	stdsync "sync"
	"time"

	"lifecal/src-server/calendar"

	"github.com/google/uuid"
)

// Controller orchestrates mutations against the event collaborator and keeps
// the derived occurrence set consistent with the master list. Mutations are
// fire-and-forget: remote failures are logged, local state stays as applied
// optimistically, and nothing is returned to the caller. Queries never fail.
type Controller struct {
	session Session
	api     EventAPI
	store   *calendar.EventStore

	// now is swappable so tests can pin the expansion horizon
	now func() time.Time

	// latency of the last expansion, reported if non-nil
	expandLatencyChan chan float64

	mu          stdsync.RWMutex
	occurrences []calendar.Occurrence
}

func NewController(session Session, api EventAPI, store *calendar.EventStore) *Controller {
	return &Controller{
		session: session,
		api:     api,
		store:   store,
		now:     time.Now,
	}
}

// WithClock overrides the time source. Test helper.
func (c *Controller) WithClock(now func() time.Time) *Controller {
	c.now = now
	return c
}

// WithExpandLatencyChan wires the expansion-latency metric channel.
func (c *Controller) WithExpandLatencyChan(ch chan float64) *Controller {
	c.expandLatencyChan = ch
	return c
}

// reexpand recomputes the occurrence cache from the current master snapshot
// and swaps it in atomically. The horizon is re-evaluated from the clock on
// every call.
func (c *Controller) reexpand() {
	start := time.Now()
	expanded := calendar.Expand(c.store.Snapshot(), c.now())

	c.mu.Lock()
	c.occurrences = expanded
	c.mu.Unlock()

	if c.expandLatencyChan != nil {
		select {
		case c.expandLatencyChan <- float64(time.Since(start).Microseconds()):
		default:
		}
	}
}

// Refresh pulls the full master list from the collaborator, replaces the
// store content and re-derives the occurrence set. On failure the last-known
// local state is kept.
func (c *Controller) Refresh(ctx context.Context) {
	events, err := c.api.ListEvents(ctx, c.session.Username)
	if err != nil {
		slog.Error("can't fetch events", "username", c.session.Username, "error", err)
		return
	}
	c.store.ReplaceAll(events)
	c.reexpand()
}

// Create sends a new event to the collaborator, appends the server-confirmed
// copy and re-expands, then runs a full refetch cycle. The created event is
// therefore expanded twice in immediate succession; the optimistic pass keeps
// the UI responsive while the refetch settles the authoritative state. Keep
// both passes.
func (c *Controller) Create(ctx context.Context, ev calendar.Event) {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	confirmed, err := c.api.CreateEvent(ctx, ev, c.session.Username)
	if err != nil {
		slog.Error("can't create event", "title", ev.Title, "error", err)
		return
	}
	c.store.Append(confirmed)
	c.reexpand()
	c.Refresh(ctx)
}

// Update sends the mutated event, replaces the matching master by ID and
// re-expands, then refetches unconditionally.
func (c *Controller) Update(ctx context.Context, ev calendar.Event) {
	confirmed, err := c.api.UpdateEvent(ctx, ev, c.session.Username)
	if err != nil {
		slog.Error("can't update event", "id", ev.ID, "error", err)
		return
	}
	c.store.Update(confirmed)
	c.reexpand()
	c.Refresh(ctx)
}

// Delete removes the master locally first, then remotely, then refetches.
// A remote failure leaves the optimistic local removal in place.
func (c *Controller) Delete(ctx context.Context, id string) {
	c.store.RemoveByID(id)
	c.reexpand()
	if err := c.api.DeleteEvent(ctx, id, c.session.Username); err != nil {
		slog.Error("can't delete event", "id", id, "error", err)
		return
	}
	c.Refresh(ctx)
}

// DeleteByType removes every master with the exact event type, locally and
// remotely. Unlike Delete there is no follow-up refetch.
func (c *Controller) DeleteByType(ctx context.Context, eventType string) {
	c.store.RemoveByType(eventType)
	c.reexpand()
	if err := c.api.DeleteEventsByType(ctx, eventType, c.session.Username); err != nil {
		slog.Error("can't delete events by type", "event_type", eventType, "error", err)
	}
}

// Occurrences returns the latest expansion snapshot.
func (c *Controller) Occurrences() []calendar.Occurrence {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.occurrences
}

// OccurrencesOnDay answers the day query against the latest snapshot.
func (c *Controller) OccurrencesOnDay(day time.Time) []calendar.Occurrence {
	return calendar.OccurrencesOnDay(day, c.Occurrences())
}

// HasEvent answers the day marker query against the latest snapshot.
func (c *Controller) HasEvent(day time.Time) bool {
	return calendar.HasEvent(day, c.Occurrences())
}
