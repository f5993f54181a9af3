// Package metrics exposes prometheus collectors for the webhook surface.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	webhookEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhook_events_total",
			Help: "Webhook deliveries by platform, topic and outcome.",
		},
		[]string{"platform", "topic", "outcome"},
	)
	webhookDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "webhook_handle_duration_seconds",
			Help:    "Webhook handling duration.",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2},
		},
		[]string{"platform", "topic"},
	)
)

func init() {
	prometheus.MustRegister(webhookEventsTotal)
	prometheus.MustRegister(webhookDuration)
}

// Webhook delivery outcomes.
const (
	OutcomeDelivered   = "delivered"
	OutcomeDuplicate   = "duplicate"
	OutcomeRejected    = "rejected"
	OutcomeBadPayload  = "bad_payload"
	OutcomeDispatchErr = "dispatch_error"
)

// ObserveWebhook records one delivery attempt.
func ObserveWebhook(platform, topic, outcome string, duration time.Duration) {
	webhookEventsTotal.WithLabelValues(platform, topic, outcome).Inc()
	webhookDuration.WithLabelValues(platform, topic).Observe(duration.Seconds())
}

// Handler returns the /metrics endpoint handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
