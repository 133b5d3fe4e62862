package backend

import (
	"context"
	"fmt"
	"time"

	"lifecal/src-server/calendar"
	"lifecal/src-server/model"
	"lifecal/src-server/utils"

	"github.com/uptrace/bun"
)

// Local is the bun/sqlite implementation of the event collaborator for
// self-hosted deployments. It satisfies the same contract as HTTPClient so
// the sync controller cannot tell them apart.
type Local struct {
	db          *bun.DB
	metricChans *utils.Metric
}

func NewLocal(db *bun.DB) *Local {
	return &Local{db: db}
}

// WithMetricChans wires the database latency metric channels. Sends never
// block; samples are dropped when no collector is listening.
func (l *Local) WithMetricChans(chans *utils.Metric) *Local {
	l.metricChans = chans
	return l
}

func (l *Local) reportRead(start time.Time) {
	if l.metricChans == nil {
		return
	}
	select {
	case l.metricChans.DatabaseRead <- float64(time.Since(start).Microseconds()):
	default:
	}
}

func (l *Local) reportWrite(start time.Time) {
	if l.metricChans == nil {
		return
	}
	select {
	case l.metricChans.DatabaseWrite <- float64(time.Since(start).Microseconds()):
	default:
	}
}

func (l *Local) ListEvents(ctx context.Context, username string) ([]calendar.Event, error) {
	startTimer := time.Now()
	eventModels := make([]model.Event, 0)
	if err := l.db.NewSelect().
		Model(&eventModels).
		Where("username = ?", username).
		Order("created_at ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("(*Local).ListEvents: %w", err)
	}
	l.reportRead(startTimer)
	events := make([]calendar.Event, 0, len(eventModels))
	for i := range eventModels {
		events = append(events, eventModels[i].ToCalendarEvent())
	}
	return events, nil
}

func (l *Local) CreateEvent(ctx context.Context, ev calendar.Event, username string) (calendar.Event, error) {
	startTimer := time.Now()
	eventModel := new(model.Event)
	eventModel.FromCalendarEvent(ev, username)
	if err := eventModel.Upsert(ctx, l.db); err != nil {
		return calendar.Event{}, fmt.Errorf("(*Local).CreateEvent: %w", err)
	}
	l.reportWrite(startTimer)
	return eventModel.ToCalendarEvent(), nil
}

func (l *Local) UpdateEvent(ctx context.Context, ev calendar.Event, username string) (calendar.Event, error) {
	exists, err := l.db.NewSelect().
		Model((*model.Event)(nil)).
		Where("id = ?", ev.ID).
		Where("username = ?", username).
		Exists(ctx)
	if err != nil {
		return calendar.Event{}, fmt.Errorf("(*Local).UpdateEvent: %w", err)
	}
	if !exists {
		return calendar.Event{}, fmt.Errorf("(*Local).UpdateEvent: event %s not found", ev.ID)
	}

	eventModel := new(model.Event)
	if err := l.db.NewSelect().
		Model(eventModel).
		Where("id = ?", ev.ID).
		Scan(ctx); err != nil {
		return calendar.Event{}, fmt.Errorf("(*Local).UpdateEvent: %w", err)
	}
	createdAt, sequence := eventModel.CreatedAt, eventModel.Sequence

	startTimer := time.Now()
	eventModel.FromCalendarEvent(ev, username)
	eventModel.CreatedAt = createdAt
	eventModel.Sequence = sequence
	if err := eventModel.Upsert(ctx, l.db); err != nil {
		return calendar.Event{}, fmt.Errorf("(*Local).UpdateEvent: %w", err)
	}
	l.reportWrite(startTimer)
	return eventModel.ToCalendarEvent(), nil
}

func (l *Local) DeleteEvent(ctx context.Context, id string, username string) error {
	startTimer := time.Now()
	if _, err := l.db.NewDelete().
		Model((*model.Event)(nil)).
		Where("id = ?", id).
		Where("username = ?", username).
		Exec(ctx); err != nil {
		return fmt.Errorf("(*Local).DeleteEvent: %w", err)
	}
	l.reportWrite(startTimer)
	return nil
}

func (l *Local) DeleteEventsByType(ctx context.Context, eventType string, username string) error {
	startTimer := time.Now()
	if _, err := l.db.NewDelete().
		Model((*model.Event)(nil)).
		Where("event_type = ?", eventType).
		Where("username = ?", username).
		Exec(ctx); err != nil {
		return fmt.Errorf("(*Local).DeleteEventsByType: %w", err)
	}
	l.reportWrite(startTimer)
	return nil
}
