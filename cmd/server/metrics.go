//go:build !js && !wasm

package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stagecue_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "stagecue_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
	}, []string{"route"})

	takesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stagecue_takes_total",
		Help: "Total number of recorded takes",
	}, []string{"kind"})

	performanceScore = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "stagecue_performance_score",
		Help:    "Composite performance scores",
		Buckets: []float64{2.5, 3.0, 3.5, 4.0, 4.5, 5.0},
	})

	recitationAccuracy = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "stagecue_recitation_accuracy",
		Help:    "Share of correctly recited words per take",
		Buckets: prometheus.LinearBuckets(0.1, 0.1, 10),
	})
)

func recordPerformance(score float64) {
	takesTotal.WithLabelValues("performance").Inc()
	performanceScore.Observe(score)
}

func recordRecitation(accuracy float64) {
	takesTotal.WithLabelValues("memorization").Inc()
	recitationAccuracy.Observe(accuracy)
}

// metricsMiddleware counts requests per matched route pattern.
func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(wrapped.statusCode)).Inc()
		httpLatency.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}
