package daemon

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricPrefix = "griha_"

var (
	registerOnce sync.Once

	pollsTotal   *prometheus.CounterVec
	pollLatency  *prometheus.HistogramVec
	jobEvents    *prometheus.CounterVec
	jobsInFlight prometheus.Gauge
)

// initMetrics registers daemon metrics once per process.
func initMetrics() {
	registerOnce.Do(func() {
		pollsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "polls_total",
				Help: "Total backend polls by result",
			},
			[]string{"result"},
		)
		pollLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "poll_latency_seconds",
				Help:    "Backend poll latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)
		jobEvents = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "job_events_total",
				Help: "Total generation job events by type",
			},
			[]string{"type"},
		)
		jobsInFlight = prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: metricPrefix + "jobs_in_flight",
				Help: "Generation jobs currently queued or processing",
			},
		)

		prometheus.MustRegister(
			pollsTotal,
			pollLatency,
			jobEvents,
			jobsInFlight,
		)
	})
}

// observePoll records one poll's result and duration.
func observePoll(result string, duration time.Duration) {
	if result == "" {
		result = "success"
	}
	if pollsTotal != nil {
		pollsTotal.WithLabelValues(result).Inc()
	}
	if pollLatency != nil {
		pollLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// incJobEvent increments the job event counter.
func incJobEvent(typ string) {
	if typ == "" {
		typ = "unknown"
	}
	if jobEvents != nil {
		jobEvents.WithLabelValues(typ).Inc()
	}
}

// setJobsInFlight updates the in-flight gauge.
func setJobsInFlight(n int) {
	if jobsInFlight != nil {
		jobsInFlight.Set(float64(n))
	}
}
