// Package metrics owns the Prometheus registry served on /metrics and the
// collectors for HTTP traffic, database latency, the Redis cache, cell
// writes and the solver. Other packages record through the helpers below
// rather than touching collectors directly.
//
//	r.Use(metrics.Middleware())
//	r.Handle("/metrics", "metrics", metrics.Handler())
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "sudoku"

// Registry is served by Handler. It carries the Go and process collectors
// plus everything registered through MustRegister.
var Registry = prometheus.NewRegistry()

var (
	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace, Subsystem: "http", Name: "request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: "http", Name: "requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	httpInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace, Subsystem: "http", Name: "requests_in_flight",
		Help: "HTTP requests currently being served.",
	})

	dbDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace, Subsystem: "db", Name: "query_duration_seconds",
		Help:    "Duration of ORM queries in seconds.",
		Buckets: []float64{.001, .005, .01, .025, .05, .1, .5, 1},
	}, []string{"operation"})

	cacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: "cache", Name: "lookups_total",
		Help: "Solution cache lookups by result (hit, miss).",
	}, []string{"result"})

	cellWrites = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: "cells", Name: "writes_total",
		Help: "Cell write attempts by result (created, rejected).",
	}, []string{"result"})

	solves = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: "solver", Name: "solves_total",
		Help: "Solve requests by result (solved, cached, invalid, unsolvable, timeout).",
	}, []string{"result"})

	solveDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace, Subsystem: "solver", Name: "search_duration_seconds",
		Help:    "Backtracking time of puzzles that were solved, excluding cache hits.",
		Buckets: []float64{.0001, .001, .01, .1, .5, 1, 5},
	})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		httpDuration, httpRequests, httpInFlight,
		dbDuration, cacheLookups, cellWrites, solves, solveDuration,
	)
}

// MustRegister adds collectors owned by other packages, such as the gRPC
// interceptors.
func MustRegister(c ...prometheus.Collector) {
	Registry.MustRegister(c...)
}

// Handler serves Registry in text or OpenMetrics format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// ObserveDBQuery records one ORM call:
//
//	defer metrics.ObserveDBQuery("select", time.Now())
func ObserveDBQuery(operation string, start time.Time) {
	dbDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// CacheLookup counts a cache hit or miss.
func CacheLookup(hit bool) {
	if hit {
		cacheLookups.WithLabelValues("hit").Inc()
		return
	}
	cacheLookups.WithLabelValues("miss").Inc()
}

// CellWrite counts a stored or rejected cell.
func CellWrite(created bool) {
	if created {
		cellWrites.WithLabelValues("created").Inc()
		return
	}
	cellWrites.WithLabelValues("rejected").Inc()
}

// Solve counts a solve outcome. took is recorded only for "solved".
func Solve(result string, took time.Duration) {
	solves.WithLabelValues(result).Inc()
	if result == "solved" {
		solveDuration.Observe(took.Seconds())
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware records latency, count and in-flight requests, labelled by
// chi route pattern so path parameters do not multiply series.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			httpInFlight.Inc()
			defer httpInFlight.Dec()

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			route, status := routePattern(r), strconv.Itoa(rec.status)
			httpDuration.WithLabelValues(r.Method, route, status).Observe(time.Since(start).Seconds())
			httpRequests.WithLabelValues(r.Method, route, status).Inc()
		})
	}
}

func routePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}
