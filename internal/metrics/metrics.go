// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "happenings"

// Moderation outcomes.
const (
	ModerationSafe    = "safe"
	ModerationUnsafe  = "unsafe"
	ModerationFailed  = "failed"
	ModerationSkipped = "skipped"
)

type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	SubmissionsCreated  prometheus.Counter
	DuplicatesRejected  prometheus.Counter
	SimilarityScores    prometheus.Histogram
	ModerationChecks    *prometheus.CounterVec
	FormSyncs           *prometheus.CounterVec
	BrokerPublishErrors prometheus.Counter
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		SubmissionsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_created_total",
			Help:      "Submissions inserted",
		}),
		DuplicatesRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_duplicate_total",
			Help:      "Submissions rejected as near-duplicates",
		}),
		SimilarityScores: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "submission_max_similarity",
			Help:      "Highest description similarity seen per add request",
			Buckets:   []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1},
		}),
		ModerationChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "moderation_checks_total",
			Help:      "Image moderation checks by outcome",
		}, []string{"outcome"}),
		FormSyncs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "form_syncs_total",
			Help:      "Google Form sync requests by result",
		}, []string{"result"}),
		BrokerPublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "broker_publish_errors_total",
			Help:      "Failed submission.created publishes",
		}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.SubmissionsCreated,
		m.DuplicatesRejected,
		m.SimilarityScores,
		m.ModerationChecks,
		m.FormSyncs,
		m.BrokerPublishErrors,
	)

	return m
}
