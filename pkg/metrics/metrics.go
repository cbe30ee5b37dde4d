// Package metrics holds the Prometheus instruments used by the form
// handlers. All collectors are registered with the default registry, so
// mounting promhttp.Handler() is enough to expose them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for FormSubmissions.
const (
	OutcomeAccepted  = "accepted"
	OutcomeInvalid   = "invalid"
	OutcomeDuplicate = "duplicate"
	OutcomeFailed    = "failed"
)

var (
	FormSubmissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "form_submissions_total",
			Help: "Form submissions by form and outcome.",
		}, []string{"form", "outcome"})

	ImageResizeSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "image_resize_duration_seconds",
			Help:    "Time spent decoding, resizing and encoding uploads.",
			Buckets: prometheus.DefBuckets,
		})

	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by route and status code.",
		}, []string{"route", "code"})
)

func init() {
	prometheus.MustRegister(
		FormSubmissions,
		ImageResizeSeconds,
		HTTPRequests,
	)
}
