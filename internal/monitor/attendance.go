package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/teemow/classwatch/internal/logging"
	"github.com/teemow/classwatch/internal/meet"
	"github.com/teemow/classwatch/internal/roster"
	"github.com/teemow/classwatch/internal/session"
)

// ConferenceSource provides live Meet state. *meet.Client satisfies it.
type ConferenceSource interface {
	ListConferenceRecords(ctx context.Context, filter string) ([]meet.ConferenceRecordSummary, error)
	ListParticipants(ctx context.Context, recordName string) ([]meet.Participant, error)
	ListRecordings(ctx context.Context, recordName string) ([]meet.Recording, error)
}

// AttendanceMonitor enriches the sessions of the active timeframes with
// live conference state. Sessions outside the active timeframes keep
// their idle skeleton values; a session whose lookup fails keeps its
// value from the previous cycle.
type AttendanceMonitor struct {
	conferences ConferenceSource
	roster      *roster.Roster
	store       *session.Store
	logger      *slog.Logger
	metrics     *Metrics
	workers     int
	lead        time.Duration
	now         func() time.Time
}

// NewAttendanceMonitor creates a monitor loop. workers bounds the number
// of concurrent Meet lookups; lead is how long before its start a session
// with a conference record counts as upcoming.
func NewAttendanceMonitor(conferences ConferenceSource, r *roster.Roster, store *session.Store, logger *slog.Logger, metrics *Metrics, workers int, lead time.Duration) *AttendanceMonitor {
	if workers < 1 {
		workers = 1
	}
	return &AttendanceMonitor{
		conferences: conferences,
		roster:      r,
		store:       store,
		logger:      logging.WithComponent(logger, "attendance-monitor"),
		metrics:     metrics,
		workers:     workers,
		lead:        lead,
		now:         time.Now,
	}
}

// Run performs one monitoring cycle.
func (m *AttendanceMonitor) Run(ctx context.Context) error {
	frames := m.store.Timeframes()
	if len(frames) == 0 {
		m.logger.Debug("no active timeframes, skipping cycle",
			logging.Operation("monitor"))
		return nil
	}
	frameSet := make(map[string]struct{}, len(frames))
	for _, f := range frames {
		frameSet[f] = struct{}{}
	}

	skeleton := m.store.Skeleton()
	prior := make(map[string]session.Session, len(skeleton))
	for _, s := range m.store.Sessions() {
		prior[s.ID] = s
	}

	var active, idle []session.Session
	for _, s := range skeleton {
		if _, ok := frameSet[session.HourLabel(s.StartTime)]; ok {
			active = append(active, s)
		} else {
			idle = append(idle, s)
		}
	}

	enriched := make([]session.Session, len(active))
	var failures atomic.Int64
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(m.workers)
	for i, s := range active {
		i, s := i, s
		group.Go(func() error {
			out, err := m.enrich(groupCtx, s.Clone())
			if err != nil {
				m.logger.Error("session enrichment failed",
					logging.Operation("monitor"),
					slog.String(logging.KeySession, s.ID),
					logging.Err(err))
				m.metrics.EnrichmentFailures.Inc()
				failures.Add(1)
				if previous, ok := prior[s.ID]; ok {
					out = previous
				} else {
					out = s.Clone()
				}
			}
			enriched[i] = out
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		m.metrics.MonitorCycles.WithLabelValues(logging.StatusError).Inc()
		return fmt.Errorf("monitoring sessions: %w", err)
	}

	combined := append(enriched, idle...)
	sort.Slice(combined, func(i, j int) bool {
		return combined[i].StartTime.Before(combined[j].StartTime)
	})
	m.store.ReplaceEnriched(combined)

	live := 0
	for _, s := range combined {
		for _, p := range s.Participants {
			if p.IsActive {
				live++
			}
		}
	}
	m.metrics.ActiveParticipants.Set(float64(live))
	m.metrics.MonitorCycles.WithLabelValues(logging.StatusSuccess).Inc()
	m.logger.Info("attendance cycle completed",
		logging.Operation("monitor"),
		slog.Int("monitored", len(active)),
		slog.Int("participants", live),
		slog.Int64("failures", failures.Load()))
	return nil
}

// enrich fetches the live conference state for one session.
func (m *AttendanceMonitor) enrich(ctx context.Context, s session.Session) (session.Session, error) {
	if s.MeetingLink == "" {
		return s, nil
	}

	code := meet.MeetingCodeFromLink(s.MeetingLink)
	records, err := m.conferences.ListConferenceRecords(ctx, meet.MeetingCodeFilter(code))
	if err != nil {
		return s, fmt.Errorf("listing conference records: %w", err)
	}
	if len(records) == 0 {
		s.Participants = nil
		s.IsRecording = false
		s.Status = session.StatusIdle
		return s, nil
	}

	record := selectRecord(records)
	participants, err := m.conferences.ListParticipants(ctx, record.Name)
	if err != nil {
		return s, fmt.Errorf("listing participants: %w", err)
	}
	s.Participants = m.liveParticipants(participants)

	recordings, err := m.conferences.ListRecordings(ctx, record.Name)
	if err != nil {
		return s, fmt.Errorf("listing recordings: %w", err)
	}
	s.IsRecording = false
	for _, rec := range recordings {
		if rec.Ongoing() {
			s.IsRecording = true
			break
		}
	}

	now := m.now()
	switch {
	case len(s.Participants) > 0:
		s.Status = session.StatusActive
	case now.Before(s.StartTime) && s.StartTime.Sub(now) <= m.lead:
		s.Status = session.StatusUpcoming
	default:
		s.Status = session.StatusIdle
	}
	return s, nil
}

// selectRecord picks the conference record to inspect: the most recently
// started ongoing record, else the most recently started one overall.
func selectRecord(records []meet.ConferenceRecordSummary) meet.ConferenceRecordSummary {
	best := records[0]
	for _, r := range records[1:] {
		switch {
		case r.Ongoing() && !best.Ongoing():
			best = r
		case r.Ongoing() == best.Ongoing() && r.StartTime.After(best.StartTime):
			best = r
		}
	}
	return best
}

// liveParticipants maps the currently present participants into the wire
// shape, attaching the roster identifier when the display name matches.
func (m *AttendanceMonitor) liveParticipants(participants []meet.Participant) []session.Participant {
	var out []session.Participant
	for _, p := range participants {
		if !p.Present() {
			continue
		}
		sp := session.Participant{Name: p.DisplayName, IsActive: true}
		if entry, ok := m.roster.Find(p.DisplayName); ok {
			sp.Email = entry.ID
		}
		out = append(out, sp)
	}
	return out
}
