package monitor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/classwatch/internal/calendar"
	"github.com/teemow/classwatch/internal/session"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testMetrics() *Metrics {
	return NewMetrics(prometheus.NewRegistry())
}

type fakeEvents struct {
	events []calendar.EventSummary
	err    error
	calls  int
}

func (f *fakeEvents) ListDayEvents(_ context.Context, _ time.Time) ([]calendar.EventSummary, error) {
	f.calls++
	return f.events, f.err
}

func dayEvents() []calendar.EventSummary {
	start := time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC)
	return []calendar.EventSummary{
		{
			ID:      "evt-late",
			Summary: "Geometry",
			Start:   start.Add(2 * time.Hour),
			End:     start.Add(3 * time.Hour),
			Status:  "confirmed",
		},
		{
			ID:       "evt-early",
			Summary:  "Algebra",
			MeetLink: "https://meet.google.com/abc-defg-hij",
			Start:    start,
			End:      start.Add(time.Hour),
			Status:   "confirmed",
			Attendees: []calendar.AttendeeInfo{
				{Email: "jane@example.com", DisplayName: "Jane Doe", ResponseStatus: "accepted"},
			},
		},
		{
			ID:      "evt-cancelled",
			Summary: "Cancelled class",
			Start:   start,
			Status:  "cancelled",
		},
	}
}

func TestCalendarSyncBuildsSkeleton(t *testing.T) {
	store := session.NewStore(nil)
	synced := 0
	sync := NewCalendarSync(&fakeEvents{events: dayEvents()}, store, testLogger(), testMetrics(), func() { synced++ })

	require.NoError(t, sync.Run(context.Background()))

	got := store.Skeleton()
	require.Len(t, got, 2)
	assert.Equal(t, "evt-early", got[0].ID)
	assert.Equal(t, "evt-late", got[1].ID)
	assert.Equal(t, session.StatusIdle, got[0].Status)
	assert.Equal(t, "https://meet.google.com/abc-defg-hij", got[0].MeetingLink)
	require.Len(t, got[0].Attendees, 1)
	assert.Equal(t, "jane@example.com", got[0].Attendees[0].Email)
	assert.Equal(t, 1, synced)
}

func TestCalendarSyncDeduplicatesEvents(t *testing.T) {
	events := dayEvents()
	events = append(events, events[0])
	store := session.NewStore(nil)
	sync := NewCalendarSync(&fakeEvents{events: events}, store, testLogger(), testMetrics(), nil)

	require.NoError(t, sync.Run(context.Background()))
	assert.Len(t, store.Skeleton(), 2)
}

func TestCalendarSyncKeepsSkeletonOnError(t *testing.T) {
	source := &fakeEvents{events: dayEvents()}
	store := session.NewStore(nil)
	sync := NewCalendarSync(source, store, testLogger(), testMetrics(), nil)
	require.NoError(t, sync.Run(context.Background()))

	source.err = errors.New("calendar unavailable")
	require.Error(t, sync.Run(context.Background()))
	assert.Len(t, store.Skeleton(), 2)
}

func TestCalendarSyncSeedsServedSessions(t *testing.T) {
	store := session.NewStore(nil)
	sync := NewCalendarSync(&fakeEvents{events: dayEvents()}, store, testLogger(), testMetrics(), nil)

	require.NoError(t, sync.Run(context.Background()))

	// Before any monitor cycle the API already serves the skeleton.
	got := store.Sessions()
	require.Len(t, got, 2)
	assert.Equal(t, session.StatusIdle, got[0].Status)
}
