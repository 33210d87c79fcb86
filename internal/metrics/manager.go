package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager bundles the service's Prometheus collectors.
type Manager struct {
	// counters
	CounterRequests          *prometheus.CounterVec
	CounterEnrollments       prometheus.Counter
	CounterWorkoutsGenerated prometheus.Counter
	CounterSessionsCompleted prometheus.Counter
	CounterRelayMessages     prometheus.Counter
	CounterCheckIns          prometheus.Counter

	// gauges
	GaugeWatchSubscribers prometheus.Gauge
}

// NewTestManager builds a Manager against a throwaway registry.
func NewTestManager() *Manager {
	return NewManager("fitstride", "server", prometheus.NewRegistry())
}

// NewManager registers all collectors with the given registerer.
func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	return &Manager{
		CounterRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "requests",
			Help:      "The total number of incoming requests",
		}, []string{"method", "status"}),
		CounterEnrollments: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "program_enrollments",
			Help:      "The total number of program enrollments",
		}),
		CounterWorkoutsGenerated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "workouts_generated",
			Help:      "The total number of workout instances generated from programs",
		}),
		CounterSessionsCompleted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "sessions_completed",
			Help:      "The total number of completed workout sessions",
		}),
		CounterRelayMessages: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "relay_messages",
			Help:      "The total number of watch relay messages published",
		}),
		CounterCheckIns: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "check_ins",
			Help:      "The total number of daily check-ins recorded",
		}),
		GaugeWatchSubscribers: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "watch_subscribers",
			Help:      "The current number of attached watch mirrors",
		}),
	}
}
