package telemetry

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/go-drift/animwrap/pkg/config"
)

// MetricsConfig configures the metrics collector.
type MetricsConfig struct {
	// Namespace prefixes every metric name.
	Namespace string
	// Buckets for the run duration histogram. Empty uses prometheus.DefBuckets.
	Buckets []float64
}

// Metrics counts animation runs. It implements wrapper.Observer and keeps
// its own registry so several collectors can coexist in one process.
type Metrics struct {
	runsStarted  *prometheus.CounterVec
	runsFinished *prometheus.CounterVec
	runsStopped  *prometheus.CounterVec
	runDuration  *prometheus.HistogramVec
	activeRuns   prometheus.Gauge

	registry *prometheus.Registry
}

// NewMetrics creates a collector with a private registry.
func NewMetrics(cfg MetricsConfig) *Metrics {
	buckets := cfg.Buckets
	if len(buckets) == 0 {
		buckets = prometheus.DefBuckets
	}
	ns := cfg.Namespace

	m := &Metrics{
		registry: prometheus.NewRegistry(),
		runsStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "runs_started_total",
			Help:      "Total number of animation runs started",
		}, []string{"type"}),
		runsFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "runs_finished_total",
			Help:      "Total number of animation runs that completed naturally",
		}, []string{"type"}),
		runsStopped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "runs_stopped_total",
			Help:      "Total number of animation runs aborted before completion",
		}, []string{"type"}),
		runDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "run_duration_seconds",
			Help:      "Wall time from start to completion of animation runs",
			Buckets:   buckets,
		}, []string{"type"}),
		activeRuns: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "active_runs",
			Help:      "Number of animation runs in flight",
		}),
	}
	m.registry.MustRegister(m.runsStarted, m.runsFinished, m.runsStopped, m.runDuration, m.activeRuns)
	return m
}

// AnimationStarted records a run start.
func (m *Metrics) AnimationStarted(t config.Type) {
	m.runsStarted.WithLabelValues(string(t)).Inc()
	m.activeRuns.Inc()
}

// AnimationFinished records a natural completion.
func (m *Metrics) AnimationFinished(t config.Type, elapsed time.Duration) {
	m.runsFinished.WithLabelValues(string(t)).Inc()
	m.runDuration.WithLabelValues(string(t)).Observe(elapsed.Seconds())
	m.activeRuns.Dec()
}

// AnimationStopped records an aborted run.
func (m *Metrics) AnimationStopped(t config.Type) {
	m.runsStopped.WithLabelValues(string(t)).Inc()
	m.activeRuns.Dec()
}

// Registry returns the collector's registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an HTTP handler for the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- server.ListenAndServe() }()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}
