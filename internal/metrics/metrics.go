package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestCounter counts HTTP requests by status code, method, and path
	RequestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "humbug_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"status", "method", "path"},
	)

	// RequestDuration measures HTTP request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "humbug_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"status", "method", "path"},
	)

	// RateLimiterRejections counts requests rejected by the rate limiter
	RateLimiterRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "humbug_rate_limiter_rejections_total",
			Help: "Total number of requests rejected by rate limiter",
		},
		[]string{"ip"},
	)

	// ActiveRooms tracks the number of rooms currently alive
	ActiveRooms = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "humbug_active_rooms",
			Help: "Number of active rooms",
		},
	)

	// ChallengesTotal counts challenge resolutions by outcome
	ChallengesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "humbug_challenges_total",
			Help: "Total number of resolved challenges by outcome",
		},
		[]string{"outcome"},
	)
)
