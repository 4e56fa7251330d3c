package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Analysis pipeline metrics
var (
	// AnalysesTotal tracks analyze requests by outcome label and status
	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "review_analyses_total",
			Help: "Total review analyses by sentiment label and status",
		},
		[]string{"label", "status"},
	)

	// InferenceDuration tracks model inference latency in seconds
	InferenceDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "review_inference_duration_seconds",
			Help:    "Model inference duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
	)

	// UnknownTokenRatio observes the share of out-of-vocabulary tokens per review
	UnknownTokenRatio = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "review_unknown_token_ratio",
			Help:    "Share of review tokens that fell outside the vocabulary",
			Buckets: []float64{0, .05, .1, .2, .3, .5, .75, 1},
		},
	)
)

// Cache metrics
var (
	// CacheLookupsTotal tracks prediction cache lookups by result (hit/miss)
	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prediction_cache_lookups_total",
			Help: "Prediction cache lookups by result",
		},
		[]string{"result"},
	)
)
