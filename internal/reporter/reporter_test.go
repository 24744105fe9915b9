package reporter

import (
	"testing"

	dto "github.com/prometheus/client_model/go"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/brightvale/stickerforge/internal/dispatcher"
	"github.com/brightvale/stickerforge/internal/job"
	"github.com/brightvale/stickerforge/internal/metrics"
)

func TestPrometheusReporterTracksFailures(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics.Register(reg)
	metrics.JobsFailedTotal.Reset()

	p := NewPrometheusReporter("EMOJI")
	p.Started(0, "cat.png")
	p.Finished(0, job.Result{InputPath: "cat.png", Err: nil})

	p.Started(1, "dog.gif")
	p.Finished(1, job.Result{InputPath: "dog.gif", Err: errBoom})

	var failed dto.Metric
	if err := metrics.JobsFailedTotal.WithLabelValues("EMOJI", "GIF").Write(&failed); err != nil {
		t.Fatalf("failed to read counter: %v", err)
	}
	if got := failed.GetCounter().GetValue(); got != 1 {
		t.Errorf("expected 1 failure for the gif job, got %v", got)
	}
	var succeeded dto.Metric
	if err := metrics.JobsFailedTotal.WithLabelValues("EMOJI", "IMAGE").Write(&succeeded); err != nil {
		t.Fatalf("failed to read counter: %v", err)
	}
	if got := succeeded.GetCounter().GetValue(); got != 0 {
		t.Errorf("expected no failure for the successful png job, got %v", got)
	}
}

func TestPrometheusReporterObservesAttemptsPerJob(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics.Register(reg)

	p := NewPrometheusReporter("VIDEO_STICKER")
	p.Finished(0, job.Result{InputPath: "clip.mp4", Attempts: 3})

	var m dto.Metric
	if err := metrics.AttemptsPerJob.Write(&m); err != nil {
		t.Fatalf("failed to read histogram: %v", err)
	}
	if got := m.GetHistogram().GetSampleCount(); got != 1 {
		t.Errorf("expected 1 observation, got %d", got)
	}
	if got := m.GetHistogram().GetSampleSum(); got != 3 {
		t.Errorf("expected sample sum 3, got %v", got)
	}
}

func TestCompositeFansOutToAllReporters(t *testing.T) {
	var a, b recorder
	c := NewComposite(&a, &b)

	c.Started(0, "x.png")
	c.Finished(0, job.Result{InputPath: "x.png"})
	c.BatchComplete(dispatcher.Counts{Total: 1, Success: 1})

	if a.startedCount != 1 || b.startedCount != 1 {
		t.Errorf("expected both reporters to see Started, got %+v %+v", a, b)
	}
	if a.finishedCount != 1 || b.finishedCount != 1 {
		t.Errorf("expected both reporters to see Finished, got %+v %+v", a, b)
	}
	if a.batches != 1 || b.batches != 1 {
		t.Errorf("expected both reporters to see BatchComplete, got %+v %+v", a, b)
	}
}

type recorder struct {
	startedCount  int
	finishedCount int
	batches       int
}

func (r *recorder) Started(index int, inputPath string)    { r.startedCount++ }
func (r *recorder) Finished(index int, result job.Result)  { r.finishedCount++ }
func (r *recorder) BatchComplete(counts dispatcher.Counts) { r.batches++ }

type errString string

func (e errString) Error() string { return string(e) }

var errBoom = errString("boom")
