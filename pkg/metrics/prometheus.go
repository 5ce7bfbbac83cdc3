package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	barsGenerated *prometheus.CounterVec
	errorsTotal   *prometheus.CounterVec
	violations    *prometheus.CounterVec
	lastPrice     *prometheus.GaugeVec
	latency       *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		barsGenerated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketsim_bars_generated_total",
				Help: "Total number of daily bars generated",
			},
			[]string{"symbol", "scenario"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketsim_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		violations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketsim_validation_violations_total",
				Help: "Total number of validation rule violations detected",
			},
			[]string{"rule"},
		),
		lastPrice: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "marketsim_last_price",
				Help: "Last generated closing price for a symbol",
			},
			[]string{"symbol"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "marketsim_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordBarsGenerated records a completed generation run for a symbol.
func (r *Recorder) RecordBarsGenerated(symbol, scenario string, n int) {
	r.barsGenerated.WithLabelValues(symbol, scenario).Add(float64(n))
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordViolation records one failed validation rule.
func (r *Recorder) RecordViolation(rule string) {
	r.violations.WithLabelValues(rule).Inc()
}

// RecordLastPrice records the last price for a symbol.
func (r *Recorder) RecordLastPrice(symbol string, price float64) {
	r.lastPrice.WithLabelValues(symbol).Set(price)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
