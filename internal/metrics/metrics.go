package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jo-hoe/gobrush/internal/pipeline"
)

// Job outcomes
const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// Metrics collects stage timings and job outcomes on its own registry
type Metrics struct {
	registry      *prometheus.Registry
	stageDuration *prometheus.HistogramVec
	jobs          *prometheus.CounterVec
}

// New creates the collectors and registers them together with the Go
// runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gobrush_stage_duration_seconds",
			Help:    "Duration of load, filter and save stages.",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
		}, []string{"stage", "status"}),
		jobs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gobrush_jobs_total",
			Help: "Number of finished jobs by outcome.",
		}, []string{"status"}),
	}

	m.registry.MustRegister(
		m.stageDuration,
		m.jobs,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	// export both outcomes from the start
	m.jobs.WithLabelValues(StatusSucceeded)
	m.jobs.WithLabelValues(StatusFailed)
	return m
}

// StageDone implements pipeline.Observer. A job counts as succeeded once its
// save stage succeeds and as failed when any of its stages fails.
func (m *Metrics) StageDone(ev pipeline.StageEvent) {
	status := StatusSucceeded
	if ev.Err != nil {
		status = StatusFailed
	}
	m.stageDuration.WithLabelValues(string(ev.Stage), status).Observe(ev.Duration.Seconds())

	if ev.Err != nil {
		m.jobs.WithLabelValues(StatusFailed).Inc()
	} else if ev.Stage == pipeline.StageSave {
		m.jobs.WithLabelValues(StatusSucceeded).Inc()
	}
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
