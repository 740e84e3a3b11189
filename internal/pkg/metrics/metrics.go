package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Instructor store metrics

	// PersistenceChecks tracks post-write visibility checks by outcome.
	// outcome: confirmed, timed_out, failed
	PersistenceChecks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "courseroom",
			Subsystem: "instructor_store",
			Name:      "persistence_checks_total",
			Help:      "Post-write visibility checks by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	// PersistenceTimeouts tracks writes whose visibility was not confirmed
	// before the wait budget ran out. The write is still assumed applied;
	// this counter is the only external signal that the confirmation was
	// abandoned.
	PersistenceTimeouts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "courseroom",
			Subsystem: "instructor_store",
			Name:      "persistence_timeouts_total",
			Help:      "Writes not confirmed visible before the wait budget elapsed",
		},
		[]string{"operation"},
	)
)
