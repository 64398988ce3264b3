package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EvaluationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "greenhalal_evaluations_total",
			Help: "Total number of compliance evaluations by rating and channel",
		},
		[]string{"rating", "channel"},
	)

	EnrichmentHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "greenhalal_enrichment_hits_total",
			Help: "Total number of evaluations enriched from the reference table",
		},
	)

	GreenHalalScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "greenhalal_score",
			Help:    "Distribution of combined GreenHalal scores",
			Buckets: prometheus.LinearBuckets(10, 10, 10),
		},
	)

	EvaluationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "greenhalal_evaluation_duration_seconds",
			Help:    "Duration of evaluation requests in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		},
		[]string{"channel"},
	)

	CertificatesIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "greenhalal_certificates_issued_total",
			Help: "Total number of PDF certificates rendered",
		},
	)

	CertificatesRefused = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "greenhalal_certificates_refused_total",
			Help: "Total number of certificate requests refused for a non-Excellent rating",
		},
	)

	StreamClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "greenhalal_stream_clients",
			Help: "Number of connected live evaluation websocket clients",
		},
	)
)
