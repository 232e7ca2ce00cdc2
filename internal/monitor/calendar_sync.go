package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/teemow/classwatch/internal/calendar"
	"github.com/teemow/classwatch/internal/logging"
	"github.com/teemow/classwatch/internal/session"
)

// EventSource lists the calendar events for the day around a reference
// time. *calendar.Client satisfies it.
type EventSource interface {
	ListDayEvents(ctx context.Context, now time.Time) ([]calendar.EventSummary, error)
}

// CalendarSync rebuilds the session skeleton from the calendar. A failed
// sync keeps the previous skeleton in place.
type CalendarSync struct {
	events   EventSource
	store    *session.Store
	logger   *slog.Logger
	metrics  *Metrics
	now      func() time.Time
	onSynced func()
}

// NewCalendarSync creates a sync loop. onSynced is invoked after every
// successful cycle and may be nil; the caller uses it to flip readiness.
func NewCalendarSync(events EventSource, store *session.Store, logger *slog.Logger, metrics *Metrics, onSynced func()) *CalendarSync {
	return &CalendarSync{
		events:   events,
		store:    store,
		logger:   logging.WithComponent(logger, "calendar-sync"),
		metrics:  metrics,
		now:      time.Now,
		onSynced: onSynced,
	}
}

// Run performs one sync cycle.
func (c *CalendarSync) Run(ctx context.Context) error {
	events, err := c.events.ListDayEvents(ctx, c.now())
	if err != nil {
		c.logger.Error("calendar sync failed",
			logging.Operation("sync"),
			logging.Err(err))
		c.metrics.SyncCycles.WithLabelValues(logging.StatusError).Inc()
		return fmt.Errorf("listing day events: %w", err)
	}

	skeleton := buildSkeleton(events)
	c.store.ReplaceSkeleton(skeleton)

	c.metrics.SyncCycles.WithLabelValues(logging.StatusSuccess).Inc()
	c.metrics.Sessions.Set(float64(len(skeleton)))
	c.logger.Info("calendar sync completed",
		logging.Operation("sync"),
		slog.Int(logging.KeySessions, len(skeleton)))

	if c.onSynced != nil {
		c.onSynced()
	}
	return nil
}

// buildSkeleton converts calendar events into idle sessions, dropping
// cancelled events and duplicate IDs, sorted by start time.
func buildSkeleton(events []calendar.EventSummary) []session.Session {
	seen := make(map[string]struct{}, len(events))
	skeleton := make([]session.Session, 0, len(events))
	for _, event := range events {
		if event.Status == "cancelled" || event.ID == "" {
			continue
		}
		if _, ok := seen[event.ID]; ok {
			continue
		}
		seen[event.ID] = struct{}{}

		attendees := make([]session.Attendee, 0, len(event.Attendees))
		for _, att := range event.Attendees {
			attendees = append(attendees, session.Attendee{
				Email:    att.Email,
				Name:     att.DisplayName,
				Response: att.ResponseStatus,
			})
		}

		skeleton = append(skeleton, session.Session{
			ID:          event.ID,
			Summary:     event.Summary,
			MeetingLink: event.MeetLink,
			StartTime:   event.Start,
			EndTime:     event.End,
			Attendees:   attendees,
			Status:      session.StatusIdle,
		})
	}

	sort.Slice(skeleton, func(i, j int) bool {
		return skeleton[i].StartTime.Before(skeleton[j].StartTime)
	})
	return skeleton
}
