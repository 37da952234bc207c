package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bonushunt_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bonushunt_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bonushunt_http_requests_in_flight",
			Help: "Number of HTTP requests currently being served",
		},
	)
)

// Business Metrics
var (
	HuntsClosed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bonushunt_hunts_closed_total",
			Help: "Total number of hunt closings settled",
		},
	)

	GuessesSubmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bonushunt_guesses_submitted_total",
			Help: "Total number of guesses submitted or amended",
		},
	)

	TournamentsRecalculated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bonushunt_tournaments_recalculated_total",
			Help: "Total number of tournament result rebuilds",
		},
	)

	JackpotsTriggered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bonushunt_jackpots_triggered_total",
			Help: "Total number of jackpot hits",
		},
	)

	WinLimitSkips = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bonushunt_win_limit_skips_total",
			Help: "Participants skipped by the rolling win-rate limit",
		},
	)

	SettlementDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bonushunt_settlement_duration_seconds",
			Help:    "Wall time of a full hunt closing",
			Buckets: prometheus.DefBuckets,
		},
	)
)
