// Package stickerforge converts arbitrary images, GIFs, and videos into
// sticker- and emoji-compliant artifacts.
//
// Basic usage:
//
//	converter, err := stickerforge.New(job.TargetVideoSticker,
//	    stickerforge.WithOutputDir("./output"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	batch, err := converter.Convert(ctx, []string{"clip.mp4", "memes/"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, r := range batch.Results {
//	    fmt.Printf("%s -> %s (ok=%v)\n", r.InputPath, r.OutputPath, r.Ok())
//	}
package stickerforge

import (
	"context"
	"fmt"
	"os"

	"github.com/brightvale/stickerforge/internal/discovery"
	"github.com/brightvale/stickerforge/internal/dispatcher"
	"github.com/brightvale/stickerforge/internal/job"
	"github.com/brightvale/stickerforge/internal/pipeline"
	"github.com/brightvale/stickerforge/internal/prober"
	"github.com/brightvale/stickerforge/internal/selection"
	"github.com/brightvale/stickerforge/internal/target"
	"github.com/brightvale/stickerforge/internal/transcoder"
)

// Result is a re-export of job.Result, the terminal outcome of
// converting one input.
type Result = job.Result

// BatchResult is the outcome of converting an entire selection.
type BatchResult struct {
	Results    []Result
	Skipped    []job.Skipped
	Counts     dispatcher.Counts
	TargetInfo TargetInfo
}

// TargetInfo reports how well a selection matched the requested target
// before any conversion began.
type TargetInfo struct {
	Status  target.Status
	Message string
}

// Option configures a Converter.
type Option func(*Converter)

// Converter is the main entry point for converting a selection into
// sticker/emoji artifacts for one TargetType.
type Converter struct {
	target     job.TargetType
	outputDir  string
	workers    int
	lister     selection.FileLister
	reporter   dispatcher.Reporter
	transcoder pipeline.Transcoder
	prober     interface {
		pipeline.Prober
		pipeline.ImageProber
	}

	dispatcher *dispatcher.Dispatcher
}

// New creates a Converter producing artifacts for target, using the
// default ffmpeg/ffprobe-backed collaborators unless overridden by
// opts.
func New(t job.TargetType, opts ...Option) (*Converter, error) {
	switch t {
	case job.TargetVideoSticker, job.TargetStaticSticker, job.TargetEmoji:
	default:
		return nil, fmt.Errorf("unknown target: %v", t)
	}

	defaultProber := prober.New()
	c := &Converter{
		target:     t,
		outputDir:  "./output",
		workers:    0,
		lister:     discovery.New(nil),
		reporter:   dispatcher.NullReporter{},
		transcoder: transcoder.New(),
		prober:     defaultProber,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.dispatcher = dispatcher.New(c.workers, c.reporter)

	return c, nil
}

// Cancel sets the cooperative cancellation flag checked by the running
// batch's dispatcher: before a worker starts its job and between a
// video job's retry attempts. Safe to call from any goroutine,
// including a signal handler, before or during Convert.
func (c *Converter) Cancel() {
	c.dispatcher.Cancel()
}

// WithOutputDir sets the default output directory for jobs whose
// selection did not otherwise determine one.
func WithOutputDir(dir string) Option {
	return func(c *Converter) { c.outputDir = dir }
}

// WithWorkers bounds the number of jobs converted concurrently. A
// non-positive value defers to the host's logical CPU count.
func WithWorkers(n int) Option {
	return func(c *Converter) { c.workers = n }
}

// WithReporter attaches a dispatcher.Reporter to observe run progress.
func WithReporter(r dispatcher.Reporter) Option {
	return func(c *Converter) { c.reporter = r }
}

// WithLister overrides the default recursive directory walker.
func WithLister(l selection.FileLister) Option {
	return func(c *Converter) { c.lister = l }
}

// Convert expands selections into jobs, filters them down to what the
// converter's target accepts, and runs them across a bounded worker
// pool. Selections that cannot be converted end up in BatchResult's
// Skipped or as a failed Result, never as an error from Convert
// itself; Convert only errors on a selection path that cannot even be
// statted.
func (c *Converter) Convert(ctx context.Context, selections []string) (*BatchResult, error) {
	items, err := toItems(selections)
	if err != nil {
		return nil, err
	}

	expander := selection.NewExpander(c.lister)
	expanded := expander.Expand(items, c.outputDir)

	summary := target.SummarizeJobs(expanded.Jobs)
	status, message := target.EvaluateTarget(summary, c.target)
	jobs := target.FilterJobsForTarget(expanded.Jobs, c.target)

	videoPipeline := pipeline.NewVideoPipeline(c.prober, c.transcoder)
	imagePipeline := pipeline.NewImagePipeline(c.prober, c.transcoder)

	results := c.dispatcher.Run(ctx, jobs, func(ctx context.Context, j job.Job, cancelled func() bool) job.Result {
		if c.target == job.TargetVideoSticker {
			return videoPipeline.Run(ctx, j, cancelled)
		}
		return imagePipeline.Run(ctx, j, c.target, cancelled)
	})

	total := dispatcher.Counts{Total: len(jobs)}
	for _, r := range results {
		total.Completed++
		switch {
		case r.Ok():
			total.Success++
		default:
			total.Failed++
		}
	}

	return &BatchResult{
		Results: results,
		Skipped: expanded.Skipped,
		Counts:  total,
		TargetInfo: TargetInfo{
			Status:  status,
			Message: message,
		},
	}, nil
}

func toItems(selections []string) ([]selection.Item, error) {
	items := make([]selection.Item, 0, len(selections))
	for _, path := range selections {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("cannot stat %s: %w", path, err)
		}
		items = append(items, selection.Item{Path: path, IsDir: info.IsDir()})
	}
	return items, nil
}
