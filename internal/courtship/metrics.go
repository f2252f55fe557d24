package courtship

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	lettersSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "courtship_letters_sent_total",
			Help: "Total number of letters sent",
		},
	)

	matchesAccepted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "courtship_matches_accepted_total",
			Help: "Total number of mutual matches accepted",
		},
	)
)

func RecordLetterSent() {
	lettersSent.Inc()
}

func RecordMatchAccepted() {
	matchesAccepted.Inc()
}
