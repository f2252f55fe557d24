package lifecycle

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	decisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lifecycle_meeting_decisions_total",
			Help: "Total number of post-meeting decisions saved",
		},
		[]string{"decision"},
	)

	outcomesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lifecycle_outcomes_total",
			Help: "Total number of resolved pair outcomes",
		},
		[]string{"outcome"},
	)
)

func RecordDecision(decision string) {
	decisionsTotal.WithLabelValues(decision).Inc()
}

func RecordOutcome(outcome string) {
	outcomesTotal.WithLabelValues(outcome).Inc()
}
