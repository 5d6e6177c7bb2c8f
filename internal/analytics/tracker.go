// Package analytics sends best-effort usage events.
package analytics

import (
	"adventcal/internal/failure"
	"adventcal/internal/gateway"
	"adventcal/internal/model"
	"context"
	"log"
	"time"

	"github.com/google/uuid"
)

const (
	EventCalendarDayOpened = "calendar_day_opened"
	EventTaskCompleted     = "task_completed"
	EventRewardPurchased   = "reward_purchased"
)

// Journal keeps a local copy of tracked events
type Journal interface {
	Record(ctx context.Context, event *model.TrackedEvent) error
}

// Tracker forwards events to the service. Failures are logged and dropped.
type Tracker struct {
	gw      gateway.Gateway
	journal Journal
	now     func() time.Time
}

// NewTracker creates a tracker. journal may be nil.
func NewTracker(gw gateway.Gateway, journal Journal) *Tracker {
	return &Tracker{
		gw:      gw,
		journal: journal,
		now:     time.Now,
	}
}

// Track sends one event
func (t *Tracker) Track(ctx context.Context, name string, data map[string]interface{}) {
	err := failure.Do(ctx, func(ctx context.Context) error {
		return t.gw.TrackEvent(ctx, name, data)
	})
	if err != nil {
		log.Printf("[analytics] failed to track %s: %v", name, err)
	}

	if t.journal == nil {
		return
	}
	event := &model.TrackedEvent{
		ID:        uuid.New().String(),
		Name:      name,
		Data:      data,
		Delivered: err == nil,
		Timestamp: t.now().UTC(),
	}
	if id, ok := data["playerId"].(string); ok {
		event.PlayerID = id
	}
	if err := t.journal.Record(ctx, event); err != nil {
		log.Printf("[analytics] failed to journal %s: %v", name, err)
	}
}
