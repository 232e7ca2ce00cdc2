package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "classwatch"

// Metrics bundles the Prometheus collectors updated by the loops.
type Metrics struct {
	SyncCycles         *prometheus.CounterVec
	MonitorCycles      *prometheus.CounterVec
	EnrichmentFailures prometheus.Counter
	Sessions           prometheus.Gauge
	ActiveParticipants prometheus.Gauge
	RosterEntries      prometheus.Gauge
}

// NewMetrics creates and registers the collectors with the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SyncCycles: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "calendar_sync_cycles_total",
			Help:      "Calendar sync cycles by outcome.",
		}, []string{"status"}),
		MonitorCycles: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "attendance_cycles_total",
			Help:      "Attendance monitor cycles by outcome.",
		}, []string{"status"}),
		EnrichmentFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "session_enrichment_failures_total",
			Help:      "Sessions whose live state could not be fetched.",
		}),
		Sessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "sessions",
			Help:      "Sessions in the current day's skeleton.",
		}),
		ActiveParticipants: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "active_participants",
			Help:      "Live participants across all monitored sessions.",
		}),
		RosterEntries: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "roster_entries",
			Help:      "Entries loaded from the roster files.",
		}),
	}
}
