// Package telemetry exposes prometheus collectors for the orchestration
// engine. Metrics are injected where needed and nil-safe, so the engine runs
// unchanged with telemetry disabled.
package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles the collectors recorded per turn.
type Metrics struct {
	turnsTotal             *prometheus.CounterVec
	classificationFailures prometheus.Counter
	generationFailures     prometheus.Counter
	turnDuration           prometheus.Histogram
}

// NewMetrics registers the povo collectors with the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		turnsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "povo",
			Name:      "turns_total",
			Help:      "Completed turns by flow and outcome.",
		}, []string{"flow", "outcome"}),
		classificationFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "povo",
			Name:      "classification_failures_total",
			Help:      "Classification calls recovered via the fallback intent.",
		}),
		generationFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "povo",
			Name:      "generation_failures_total",
			Help:      "Generation calls recovered via the generic apology reply.",
		}),
		turnDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "povo",
			Name:      "turn_duration_seconds",
			Help:      "End-to-end turn latency including external calls.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// ObserveTurn records a completed turn. Safe on a nil receiver.
func (m *Metrics) ObserveTurn(flow string, terminal bool, dur time.Duration) {
	if m == nil {
		return
	}
	outcome := "continuing"
	if terminal {
		outcome = "terminal"
	}
	m.turnsTotal.WithLabelValues(flow, outcome).Inc()
	m.turnDuration.Observe(dur.Seconds())
}

// ClassificationFailure counts one recovered classification failure. Safe on
// a nil receiver.
func (m *Metrics) ClassificationFailure() {
	if m == nil {
		return
	}
	m.classificationFailures.Inc()
}

// GenerationFailure counts one recovered generation failure. Safe on a nil
// receiver.
func (m *Metrics) GenerationFailure() {
	if m == nil {
		return
	}
	m.generationFailures.Inc()
}
