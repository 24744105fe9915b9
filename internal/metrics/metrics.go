// Package metrics defines the Prometheus instrumentation for a
// stickerforge run and an optional HTTP listener to expose it.
package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	JobsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stickerforge",
		Name:      "jobs_total",
		Help:      "Total jobs processed, by target and input kind.",
	}, []string{"target", "kind"})

	JobsFailedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stickerforge",
		Name:      "jobs_failed_total",
		Help:      "Total jobs that ended in error or failed validation, by target and input kind.",
	}, []string{"target", "kind"})

	AttemptsPerJob = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "stickerforge",
		Name:      "attempts_per_job",
		Help:      "Number of encode attempts consumed before a job succeeded or exhausted its strategy.",
		Buckets:   []float64{1, 2, 3, 5, 8, 13, 21},
	})

	JobDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "stickerforge",
		Name:      "job_duration_seconds",
		Help:      "Wall-clock time spent processing one job, from dispatch to terminal result.",
		Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
	})

	ActiveWorkers = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "stickerforge",
		Name:      "active_workers",
		Help:      "Number of worker goroutines currently processing a job.",
	})
)

// Register adds all stickerforge collectors to reg.
func Register(reg prometheus.Registerer) {
	reg.MustRegister(
		JobsTotal,
		JobsFailedTotal,
		AttemptsPerJob,
		JobDuration,
		ActiveWorkers,
	)
}

// Serve starts an HTTP listener exposing /metrics on addr and blocks
// until ctx is cancelled or the listener fails. Errors other than the
// listener's own shutdown are returned to the caller.
func Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{Addr: addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		return server.Shutdown(context.Background())
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
