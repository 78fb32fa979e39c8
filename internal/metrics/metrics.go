package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "icc_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "icc_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	GuardRedirects = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "icc_guard_redirects_total",
		Help: "Page guard denials by redirect target",
	}, []string{"target"})

	Logins = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "icc_logins_total",
		Help: "Sign-in attempts by outcome",
	}, []string{"outcome"})

	ForcedLogouts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "icc_forced_logouts_total",
		Help: "Sessions cleared because the backend rejected their token",
	})

	ReportExports = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "icc_report_exports_total",
		Help: "Report exports by kind and format",
	}, []string{"kind", "format"})

	LiveConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "icc_live_connections",
		Help: "Open session websocket connections",
	})

	PanicsRecovered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "icc_panics_recovered_total",
		Help: "Handler panics caught by the recovery middleware",
	})
)
