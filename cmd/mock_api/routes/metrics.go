package routes

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeAccepted  = "accepted"
	outcomeInvalid   = "invalid"
	outcomeDuplicate = "duplicate"
)

type metrics struct {
	submissionsTotal *prometheus.CounterVec
	recordsStored    *prometheus.GaugeVec
}

func newMetrics(registry prometheus.Registerer) *metrics {
	factory := promauto.With(registry)

	return &metrics{
		submissionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mockapi",
			Name:      "submissions_total",
			Help:      "Envelopes received by collection and outcome",
		}, []string{"collection", "outcome"}),

		recordsStored: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "mockapi",
			Name:      "records_stored",
			Help:      "Records currently held per collection",
		}, []string{"collection"}),
	}
}
