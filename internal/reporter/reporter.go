// Package reporter provides dispatcher.Reporter implementations: a
// colorized terminal reporter and a Prometheus-backed reporter, fanned
// out together via Composite.
package reporter

import (
	"sync"
	"time"

	"github.com/brightvale/stickerforge/internal/dispatcher"
	"github.com/brightvale/stickerforge/internal/job"
	"github.com/brightvale/stickerforge/internal/media"
	"github.com/brightvale/stickerforge/internal/metrics"
)

// PrometheusReporter feeds per-job outcomes into the process-wide
// metrics registered by metrics.Register.
type PrometheusReporter struct {
	Target string

	mu      sync.Mutex
	started map[int]time.Time
}

// NewPrometheusReporter returns a PrometheusReporter labeling every
// observation with target.
func NewPrometheusReporter(target string) *PrometheusReporter {
	return &PrometheusReporter{Target: target, started: map[int]time.Time{}}
}

func (p *PrometheusReporter) Started(index int, inputPath string) {
	metrics.ActiveWorkers.Inc()
	p.mu.Lock()
	p.started[index] = time.Now()
	p.mu.Unlock()
}

func (p *PrometheusReporter) Finished(index int, result job.Result) {
	metrics.ActiveWorkers.Dec()

	p.mu.Lock()
	startedAt, ok := p.started[index]
	delete(p.started, index)
	p.mu.Unlock()
	if ok {
		metrics.JobDuration.Observe(time.Since(startedAt).Seconds())
	}

	kind := "UNKNOWN"
	if detected, err := media.DetectInputKind(result.InputPath); err == nil {
		kind = string(detected)
	}

	metrics.JobsTotal.WithLabelValues(p.Target, kind).Inc()
	if !result.Ok() {
		metrics.JobsFailedTotal.WithLabelValues(p.Target, kind).Inc()
	}
	if result.Attempts > 0 {
		metrics.AttemptsPerJob.Observe(float64(result.Attempts))
	}
}

func (p *PrometheusReporter) BatchComplete(counts dispatcher.Counts) {}
