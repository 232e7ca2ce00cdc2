package monitor

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/classwatch/internal/meet"
	"github.com/teemow/classwatch/internal/roster"
	"github.com/teemow/classwatch/internal/session"
)

var monitorNow = time.Date(2026, 3, 2, 14, 10, 0, 0, time.UTC)

type fakeConferences struct {
	records      map[string][]meet.ConferenceRecordSummary
	participants map[string][]meet.Participant
	recordings   map[string][]meet.Recording

	recordsErr      error
	participantsErr error

	recordCalls atomic.Int64
}

func (f *fakeConferences) ListConferenceRecords(_ context.Context, filter string) ([]meet.ConferenceRecordSummary, error) {
	f.recordCalls.Add(1)
	if f.recordsErr != nil {
		return nil, f.recordsErr
	}
	return f.records[filter], nil
}

func (f *fakeConferences) ListParticipants(_ context.Context, name string) ([]meet.Participant, error) {
	if f.participantsErr != nil {
		return nil, f.participantsErr
	}
	return f.participants[name], nil
}

func (f *fakeConferences) ListRecordings(_ context.Context, name string) ([]meet.Recording, error) {
	return f.recordings[name], nil
}

func testRoster() *roster.Roster {
	return roster.New([]roster.Entry{
		{Name: "jane doe", ID: "jane@example.com", Kind: roster.KindStudent},
		{Name: "john smith", ID: "john@example.com", Kind: roster.KindTutor},
	})
}

func monitorStore(t *testing.T) *session.Store {
	t.Helper()
	store := session.NewStore([]string{"14:00"})
	store.ReplaceSkeleton([]session.Session{
		{
			ID:          "evt-active",
			Summary:     "Algebra",
			MeetingLink: "https://meet.google.com/abc-defg-hij",
			StartTime:   monitorNow.Add(-10 * time.Minute),
			EndTime:     monitorNow.Add(50 * time.Minute),
			Status:      session.StatusIdle,
		},
		{
			ID:        "evt-outside",
			Summary:   "Geometry",
			StartTime: monitorNow.Add(2 * time.Hour),
			EndTime:   monitorNow.Add(3 * time.Hour),
			Status:    session.StatusIdle,
		},
	})
	return store
}

func newTestMonitor(store *session.Store, conferences *fakeConferences) *AttendanceMonitor {
	m := NewAttendanceMonitor(conferences, testRoster(), store, testLogger(), testMetrics(), 4, 10*time.Minute)
	m.now = func() time.Time { return monitorNow }
	return m
}

func activeConference() *fakeConferences {
	filter := meet.MeetingCodeFilter("abc-defg-hij")
	return &fakeConferences{
		records: map[string][]meet.ConferenceRecordSummary{
			filter: {{Name: "conferenceRecords/live", StartTime: monitorNow.Add(-9 * time.Minute)}},
		},
		participants: map[string][]meet.Participant{
			"conferenceRecords/live": {
				{DisplayName: "Jane Doe", SignedIn: true},
				{DisplayName: "Guest"},
				{DisplayName: "Left Early", LatestEndTime: monitorNow.Add(-time.Minute)},
			},
		},
		recordings: map[string][]meet.Recording{
			"conferenceRecords/live": {{Name: "conferenceRecords/live/recordings/r1", State: "STARTED"}},
		},
	}
}

func TestMonitorEnrichesActiveSession(t *testing.T) {
	store := monitorStore(t)
	monitor := newTestMonitor(store, activeConference())

	require.NoError(t, monitor.Run(context.Background()))

	got := store.Sessions()
	require.Len(t, got, 2)

	active := got[0]
	assert.Equal(t, "evt-active", active.ID)
	assert.Equal(t, session.StatusActive, active.Status)
	assert.True(t, active.IsRecording)
	require.Len(t, active.Participants, 2)
	assert.Equal(t, "Jane Doe", active.Participants[0].Name)
	assert.Equal(t, "jane@example.com", active.Participants[0].Email)
	assert.Equal(t, "Guest", active.Participants[1].Name)
	assert.Empty(t, active.Participants[1].Email)

	// The session outside the active timeframe stays an idle skeleton.
	outside := got[1]
	assert.Equal(t, "evt-outside", outside.ID)
	assert.Equal(t, session.StatusIdle, outside.Status)
	assert.Empty(t, outside.Participants)
}

func TestMonitorSkipsWithoutTimeframes(t *testing.T) {
	store := monitorStore(t)
	store.SetTimeframes(nil)
	conferences := activeConference()
	monitor := newTestMonitor(store, conferences)

	require.NoError(t, monitor.Run(context.Background()))
	assert.Zero(t, conferences.recordCalls.Load())
}

func TestMonitorQueriesEachSessionOnce(t *testing.T) {
	store := monitorStore(t)
	conferences := activeConference()
	monitor := newTestMonitor(store, conferences)

	require.NoError(t, monitor.Run(context.Background()))
	assert.Equal(t, int64(1), conferences.recordCalls.Load())
}

func TestMonitorZeroRecordsStaysIdle(t *testing.T) {
	store := monitorStore(t)
	monitor := newTestMonitor(store, &fakeConferences{})

	require.NoError(t, monitor.Run(context.Background()))

	got := store.Sessions()
	assert.Equal(t, session.StatusIdle, got[0].Status)
	assert.Empty(t, got[0].Participants)
	assert.False(t, got[0].IsRecording)
}

func TestMonitorUpcomingWithinLead(t *testing.T) {
	store := session.NewStore([]string{"14:00"})
	store.ReplaceSkeleton([]session.Session{{
		ID:          "evt-soon",
		Summary:     "Algebra",
		MeetingLink: "https://meet.google.com/abc-defg-hij",
		StartTime:   monitorNow.Add(5 * time.Minute),
		EndTime:     monitorNow.Add(65 * time.Minute),
		Status:      session.StatusIdle,
	}})

	conferences := activeConference()
	conferences.participants = nil
	conferences.recordings = nil
	monitor := newTestMonitor(store, conferences)

	require.NoError(t, monitor.Run(context.Background()))

	got := store.Sessions()
	assert.Equal(t, session.StatusUpcoming, got[0].Status)
	assert.False(t, got[0].IsRecording)
}

func TestMonitorKeepsPriorStateOnFailure(t *testing.T) {
	store := monitorStore(t)
	monitor := newTestMonitor(store, activeConference())
	require.NoError(t, monitor.Run(context.Background()))
	require.Equal(t, session.StatusActive, store.Sessions()[0].Status)

	failing := activeConference()
	failing.participantsErr = errors.New("meet unavailable")
	monitor = newTestMonitor(store, failing)

	require.NoError(t, monitor.Run(context.Background()))

	// The previous enriched value survives the failed lookup.
	got := store.Sessions()
	assert.Equal(t, session.StatusActive, got[0].Status)
	require.Len(t, got[0].Participants, 2)
}

func TestMonitorSessionWithoutLinkPassesThrough(t *testing.T) {
	store := session.NewStore([]string{"14:00"})
	store.ReplaceSkeleton([]session.Session{{
		ID:        "evt-nolink",
		Summary:   "Office hours",
		StartTime: monitorNow,
		Status:    session.StatusIdle,
	}})
	conferences := &fakeConferences{}
	monitor := newTestMonitor(store, conferences)

	require.NoError(t, monitor.Run(context.Background()))

	got := store.Sessions()
	assert.Equal(t, session.StatusIdle, got[0].Status)
	assert.Zero(t, conferences.recordCalls.Load())
}

func TestMonitorIdempotentWhenStateUnchanged(t *testing.T) {
	store := monitorStore(t)
	monitor := newTestMonitor(store, activeConference())

	require.NoError(t, monitor.Run(context.Background()))
	first := store.Sessions()
	require.NoError(t, monitor.Run(context.Background()))
	second := store.Sessions()

	assert.Equal(t, first, second)
}

func TestSelectRecord(t *testing.T) {
	older := monitorNow.Add(-2 * time.Hour)
	newer := monitorNow.Add(-10 * time.Minute)

	t.Run("prefers ongoing over newer ended", func(t *testing.T) {
		got := selectRecord([]meet.ConferenceRecordSummary{
			{Name: "ended", StartTime: newer, EndTime: monitorNow},
			{Name: "ongoing", StartTime: older},
		})
		assert.Equal(t, "ongoing", got.Name)
	})

	t.Run("prefers newest among ongoing", func(t *testing.T) {
		got := selectRecord([]meet.ConferenceRecordSummary{
			{Name: "ongoing-old", StartTime: older},
			{Name: "ongoing-new", StartTime: newer},
		})
		assert.Equal(t, "ongoing-new", got.Name)
	})

	t.Run("falls back to newest ended", func(t *testing.T) {
		got := selectRecord([]meet.ConferenceRecordSummary{
			{Name: "ended-old", StartTime: older, EndTime: older.Add(time.Hour)},
			{Name: "ended-new", StartTime: newer, EndTime: monitorNow},
		})
		assert.Equal(t, "ended-new", got.Name)
	})
}
