package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	FlightTicks          prometheus.Counter
	StatusTransitions    *prometheus.CounterVec
	GateChanges          prometheus.Counter
	TickDuration         prometheus.Histogram
	NotificationsEmitted *prometheus.CounterVec
	UnreadNotifications  prometheus.Gauge
	StoreMutations       *prometheus.CounterVec
	RosterSize           prometheus.Gauge
	ErrorsCount          *prometheus.CounterVec
}

// NewMetrics creates prometheus metrics registered on reg.
// Pass prometheus.DefaultRegisterer in the server and a fresh registry in tests.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		FlightTicks: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flight_ticks_total",
			Help:      "The total number of flight simulator ticks",
		}),
		StatusTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flight_status_transitions_total",
			Help:      "The total number of flight status transitions",
		}, []string{"from", "to"}),
		GateChanges: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gate_changes_total",
			Help:      "The total number of gate reassignments",
		}),
		TickDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "flight_tick_duration_seconds",
			Help:      "Time taken to evaluate a simulator tick",
			Buckets:   prometheus.DefBuckets,
		}),
		NotificationsEmitted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_emitted_total",
			Help:      "The total number of notifications added to the feed",
		}, []string{"type"}),
		UnreadNotifications: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "unread_notifications",
			Help:      "Unread notifications observed by the last poll",
		}),
		StoreMutations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_mutations_total",
			Help:      "The total number of accepted store mutations",
		}, []string{"operation"}),
		RosterSize: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "roster_size",
			Help:      "Number of crew members on the roster",
		}),
		ErrorsCount: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}
