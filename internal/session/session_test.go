package session

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSessions() []Session {
	start := time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC)
	return []Session{
		{
			ID:          "evt-1",
			Summary:     "Algebra",
			MeetingLink: "https://meet.google.com/abc-defg-hij",
			StartTime:   start,
			EndTime:     start.Add(time.Hour),
			Attendees:   []Attendee{{Email: "jane@example.com", Name: "Jane Doe", Response: "accepted"}},
			Status:      StatusIdle,
		},
		{
			ID:        "evt-2",
			Summary:   "Geometry",
			StartTime: start.Add(2 * time.Hour),
			EndTime:   start.Add(3 * time.Hour),
			Status:    StatusIdle,
		},
	}
}

func TestCloneIsolatesSlices(t *testing.T) {
	orig := sampleSessions()[0]
	orig.Participants = []Participant{{Name: "Jane Doe", IsActive: true}}

	cp := orig.Clone()
	cp.Attendees[0].Email = "other@example.com"
	cp.Participants[0].Name = "Someone Else"

	assert.Equal(t, "jane@example.com", orig.Attendees[0].Email)
	assert.Equal(t, "Jane Doe", orig.Participants[0].Name)
}

func TestHourLabel(t *testing.T) {
	berlin := time.FixedZone("CET", 3600)
	assert.Equal(t, "14:00", HourLabel(time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC)))
	assert.Equal(t, "09:00", HourLabel(time.Date(2026, 3, 2, 9, 5, 0, 0, berlin)))
}

func TestReplaceSkeletonSeedsEnriched(t *testing.T) {
	store := NewStore(nil)
	store.ReplaceSkeleton(sampleSessions())

	got := store.Sessions()
	require.Len(t, got, 2)
	assert.Equal(t, "evt-1", got[0].ID)

	// A later skeleton sync must not clobber an existing enriched snapshot.
	enriched := sampleSessions()
	enriched[0].Status = StatusActive
	store.ReplaceEnriched(enriched)
	store.ReplaceSkeleton(sampleSessions())

	got = store.Sessions()
	assert.Equal(t, StatusActive, got[0].Status)
}

func TestSessionsFallsBackToSkeleton(t *testing.T) {
	store := NewStore(nil)
	assert.Empty(t, store.Sessions())

	store.ReplaceSkeleton(sampleSessions())
	assert.Len(t, store.Sessions(), 2)
	assert.Empty(t, store.Enriched()[1].Participants)
}

func TestStoreCopiesOnReadAndWrite(t *testing.T) {
	in := sampleSessions()
	store := NewStore(nil)
	store.ReplaceSkeleton(in)

	// Mutating the caller's slice after the write must not leak in.
	in[0].Summary = "changed"
	got := store.Skeleton()
	assert.Equal(t, "Algebra", got[0].Summary)

	// Mutating a read result must not leak back.
	got[0].Attendees[0].Name = "changed"
	assert.Equal(t, "Jane Doe", store.Skeleton()[0].Attendees[0].Name)
}

func TestTimeframes(t *testing.T) {
	store := NewStore([]string{"14:00"})
	assert.Equal(t, []string{"14:00"}, store.Timeframes())

	store.SetTimeframes([]string{"09:00", "10:00"})
	frames := store.Timeframes()
	assert.Equal(t, []string{"09:00", "10:00"}, frames)

	frames[0] = "mutated"
	assert.Equal(t, []string{"09:00", "10:00"}, store.Timeframes())
}

func TestStoreConcurrentAccess(t *testing.T) {
	store := NewStore([]string{"14:00"})
	store.ReplaceSkeleton(sampleSessions())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				store.ReplaceEnriched(sampleSessions())
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				got := store.Sessions()
				// Each snapshot is complete: never a torn write.
				assert.Len(t, got, 2)
			}
		}()
	}
	wg.Wait()
}
