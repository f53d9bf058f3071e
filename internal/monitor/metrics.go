package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Business and HTTP metrics, registered on the default registry.
var (
	CheckoutTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "relove",
			Name:      "checkout_total",
			Help:      "Total number of checkout attempts by outcome",
		},
		[]string{"outcome"},
	)

	WebhookTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "relove",
			Name:      "payment_webhook_total",
			Help:      "Total number of payment notifications by gateway status and outcome",
		},
		[]string{"transaction_status", "outcome"},
	)

	StockRestoreTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "relove",
			Name:      "stock_restore_total",
			Help:      "Total number of inventory units returned by canceled payments",
		},
	)

	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "relove",
			Name:      "http_request_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "relove",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	GatewayRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "relove",
			Name:      "gateway_request_duration_seconds",
			Help:      "Payment gateway request latency",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"outcome"},
	)
)
