// Package metrics holds the process-wide prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Request latency by route template, labelled with the final status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bizmodel_http_request_duration_seconds",
			Help:    "Time spent serving HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// Analyses served, by kind (fit, skills, insights, descriptions) and source (ai, cache, fallback).
	AnalysisTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bizmodel_analysis_total",
			Help: "Total number of analyses served",
		},
		[]string{"kind", "source"},
	)

	// outcome: recorded/denied
	QuizAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bizmodel_quiz_attempts_total",
			Help: "Total number of quiz attempt submissions",
		},
		[]string{"outcome"},
	)

	PaymentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bizmodel_payments_total",
			Help: "Total number of completed payments",
		},
		[]string{"type"},
	)

	// outcome: sent/failed
	EmailsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bizmodel_emails_total",
			Help: "Total number of emails dispatched",
		},
		[]string{"kind", "outcome"},
	)
)

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
