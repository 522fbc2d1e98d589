package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Webhook outcomes.
const (
	OutcomeSent         = "sent"
	OutcomeFailed       = "failed"
	OutcomeUnauthorized = "unauthorized"
	OutcomeInvalidBody  = "invalid_body"
)

func init() {
	register(webhookRequestsTotal, providerSendsTotal, providerSendDurationMs)
}

var (
	webhookRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_webhook_requests_total",
			Help: "Webhook calls by outcome (sent/failed/unauthorized/invalid_body).",
		},
		[]string{"outcome"},
	)

	providerSendsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_provider_sends_total",
			Help: "Provider send attempts per provider and result.",
		},
		[]string{"provider", "success"},
	)

	providerSendDurationMs = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "relay_provider_send_duration_ms",
			Help:    "Provider send latency distribution in milliseconds.",
			Buckets: []float64{25, 50, 100, 200, 400, 800, 1600, 3000, 5000, 10000},
		},
		[]string{"provider", "success"},
	)
)

func IncWebhook(outcome string) {
	webhookRequestsTotal.WithLabelValues(norm(outcome)).Inc()
}

func ObserveProviderSend(provider string, success bool, elapsed time.Duration) {
	lbl := []string{norm(provider), strconv.FormatBool(success)}
	providerSendsTotal.WithLabelValues(lbl...).Inc()
	providerSendDurationMs.WithLabelValues(lbl...).Observe(float64(elapsed.Milliseconds()))
}
