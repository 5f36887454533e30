package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	outboxEventsProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "healthdata_outbox_events_processed_total",
			Help: "Total number of outbox events published to the broker",
		},
	)

	outboxEventsFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "healthdata_outbox_events_failed_total",
			Help: "Total number of outbox events that failed to publish",
		},
	)

	outboxDrainDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "healthdata_outbox_drain_duration_seconds",
			Help:    "Duration of one outbox drain cycle in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
	)
)
