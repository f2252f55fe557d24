package negotiation

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	proposalsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "negotiation_proposals_total",
			Help: "Total number of proposals written per channel",
		},
		[]string{"attribute", "kind"},
	)

	acceptancesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "negotiation_acceptances_total",
			Help: "Total number of accepted proposals per channel",
		},
		[]string{"attribute"},
	)

	confirmationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "negotiation_meetings_confirmed_total",
			Help: "Total number of confirmed meetings",
		},
	)
)

func RecordProposal(attribute string, counterOffer bool) {
	kind := "initial"
	if counterOffer {
		kind = "counter"
	}
	proposalsTotal.WithLabelValues(attribute, kind).Inc()
}

func RecordAcceptance(attribute string) {
	acceptancesTotal.WithLabelValues(attribute).Inc()
}

func RecordConfirmation() {
	confirmationsTotal.Inc()
}
