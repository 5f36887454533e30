package inference

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	predictionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "healthdata_predictions_total",
		Help: "Predictions served, by predicted class.",
	}, []string{"class"})

	predictionFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "healthdata_prediction_failures_total",
		Help: "Prediction requests that could not be served.",
	})

	predictionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "healthdata_prediction_duration_seconds",
		Help:    "Wall time of a single prediction, profile load included.",
		Buckets: prometheus.DefBuckets,
	})
)
