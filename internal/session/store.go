package session

import "sync"

// Store holds the shared session state exchanged between the calendar
// sync loop, the attendance monitor, and the HTTP API. All access goes
// through the single mutex; every method copies on the way in and out so
// callers never alias internal state.
type Store struct {
	mu         sync.Mutex
	skeleton   []Session
	enriched   []Session
	timeframes []string
}

// NewStore returns a store with the given initial active timeframes.
func NewStore(timeframes []string) *Store {
	s := &Store{}
	s.SetTimeframes(timeframes)
	return s
}

// ReplaceSkeleton swaps in a freshly synced skeleton. When no enriched
// snapshot exists yet the skeleton also seeds it, so the API has data to
// serve before the first monitor cycle completes.
func (s *Store) ReplaceSkeleton(list []Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.skeleton = CloneAll(list)
	if len(s.enriched) == 0 {
		s.enriched = CloneAll(list)
	}
}

// Skeleton returns a copy of the current skeleton.
func (s *Store) Skeleton() []Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return CloneAll(s.skeleton)
}

// ReplaceEnriched swaps in a complete enriched snapshot. Partial updates
// are not supported; the monitor always writes the full day.
func (s *Store) ReplaceEnriched(list []Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enriched = CloneAll(list)
}

// Enriched returns a copy of the last enriched snapshot.
func (s *Store) Enriched() []Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return CloneAll(s.enriched)
}

// Sessions returns the sessions to serve: the enriched snapshot when one
// exists, else the skeleton.
func (s *Store) Sessions() []Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.enriched) > 0 {
		return CloneAll(s.enriched)
	}
	return CloneAll(s.skeleton)
}

// SetTimeframes replaces the active hour labels.
func (s *Store) SetTimeframes(frames []string) {
	cp := make([]string, len(frames))
	copy(cp, frames)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timeframes = cp
}

// Timeframes returns a copy of the active hour labels.
func (s *Store) Timeframes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]string, len(s.timeframes))
	copy(cp, s.timeframes)
	return cp
}
