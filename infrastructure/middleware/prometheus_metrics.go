// Package middleware provides cross-cutting concerns for the ranking
// engine: Prometheus metrics and OpenTelemetry tracing, applied as
// decorators around the Ranker port.
package middleware

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/trailcrew/trekrank/internal/ports"
)

// PrometheusMetrics implements the MetricsCollector interface using
// Prometheus. It tracks ranking throughput, latency, result sizes, and
// program-score cache effectiveness.
type PrometheusMetrics struct {
	operationLatency *prometheus.HistogramVec
	operationCounter *prometheus.CounterVec
	cacheCounter     *prometheus.CounterVec
	systemGauges     *prometheus.GaugeVec
}

// NewPrometheusMetrics creates a PrometheusMetrics instance and registers
// all metrics in the given registry. Pass nil to use the default registry.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		operationLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "trekrank_operation_duration_seconds",
				Help:    "Execution time of ranking engine operations.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "trek_type", "method"},
		),
		operationCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trekrank_operations_total",
				Help: "Total ranking engine operations by outcome.",
			},
			[]string{"operation", "status", "method"},
		),
		cacheCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trekrank_program_score_cache_total",
				Help: "Program-score cache lookups by outcome.",
			},
			[]string{"outcome"},
		),
		systemGauges: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "trekrank_system_state",
				Help: "Current system state values for the ranking engine.",
			},
			[]string{"metric", "trek_type"},
		),
	}
}

// RecordLatency implements the MetricsCollector interface by recording
// operation latency in a Prometheus histogram.
func (pm *PrometheusMetrics) RecordLatency(
	operation string,
	duration time.Duration,
	labels map[string]string,
) {
	pm.operationLatency.WithLabelValues(
		operation,
		labels["trek_type"],
		labels["method"],
	).Observe(duration.Seconds())
}

// RecordCounter implements the MetricsCollector interface by incrementing
// Prometheus counters. Cache metrics route to the dedicated cache counter;
// everything else increments the general operation counter.
func (pm *PrometheusMetrics) RecordCounter(
	metric string, value float64, labels map[string]string,
) {
	switch metric {
	case "program_score_cache_hit":
		pm.cacheCounter.WithLabelValues("hit").Add(value)
	case "program_score_cache_miss":
		pm.cacheCounter.WithLabelValues("miss").Add(value)
	default:
		status, ok := labels["status"]
		if !ok {
			status = "success"
		}
		pm.operationCounter.WithLabelValues(metric, status, labels["method"]).Add(value)
	}
}

// RecordGauge implements the MetricsCollector interface by setting
// Prometheus gauge values.
func (pm *PrometheusMetrics) RecordGauge(
	metric string, value float64, labels map[string]string,
) {
	pm.systemGauges.WithLabelValues(metric, labels["trek_type"]).Set(value)
}

// Compile-time verification that PrometheusMetrics implements MetricsCollector.
var _ ports.MetricsCollector = (*PrometheusMetrics)(nil)
