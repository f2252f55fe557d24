package matching

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	candidatesScored = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matching_candidates_scored_total",
			Help: "Total number of pool members scored",
		},
	)

	candidateScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "matching_candidate_scores",
			Help:    "Distribution of compatibility scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	destinyPicks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matching_destiny_picks_total",
			Help: "Total number of destiny candidates returned",
		},
	)

	emptyPools = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matching_empty_pools_total",
			Help: "Total number of requests that found no eligible candidates",
		},
	)
)

func RecordCandidateScore(score float64) {
	candidatesScored.Inc()
	candidateScores.Observe(score)
}

func RecordDestinyPick() {
	destinyPicks.Inc()
}

func RecordEmptyPool() {
	emptyPools.Inc()
}
