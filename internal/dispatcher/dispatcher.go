// Package dispatcher fans a filtered job list out across a bounded
// pool of concurrent workers, one worker owning one job end-to-end,
// and reports Started/Finished signals plus run-wide aggregate counts.
package dispatcher

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"

	sferrors "github.com/brightvale/stickerforge/internal/errors"
	"github.com/brightvale/stickerforge/internal/job"
)

// Reporter receives the dispatcher's lifecycle signals. All methods
// must be safe for concurrent use, since Started/Finished fire from
// worker goroutines.
type Reporter interface {
	Started(index int, inputPath string)
	Finished(index int, result job.Result)
	BatchComplete(counts Counts)
}

// NullReporter implements Reporter with no-ops. Embed it to satisfy
// the interface without implementing every method.
type NullReporter struct{}

func (NullReporter) Started(index int, inputPath string) {}
func (NullReporter) Finished(index int, result job.Result) {}
func (NullReporter) BatchComplete(counts Counts)           {}

// Counts is the dispatcher's running tally over a batch.
type Counts struct {
	Total     int
	Completed int
	Success   int
	Failed    int
	Skipped   int
}

// Work is the unit of work a single worker processes.
type Work func(ctx context.Context, j job.Job, cancelled func() bool) job.Result

// Dispatcher runs jobs across a bounded worker pool.
type Dispatcher struct {
	Workers  int
	Reporter Reporter

	cancelled atomic.Bool
}

// New returns a Dispatcher bounded to workers concurrent jobs. A
// non-positive value defaults to the host's logical CPU count. A nil
// reporter is replaced with NullReporter.
func New(workers int, reporter Reporter) *Dispatcher {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if reporter == nil {
		reporter = NullReporter{}
	}
	return &Dispatcher{Workers: workers, Reporter: reporter}
}

// Cancel sets the process-wide cancellation flag. It is safe to call
// from any goroutine, at most once in effect (subsequent calls are
// no-ops).
func (d *Dispatcher) Cancel() {
	d.cancelled.Store(true)
}

// Cancelled reports whether Cancel has been called.
func (d *Dispatcher) Cancelled() bool {
	return d.cancelled.Load()
}

// Run dispatches jobs across the bounded worker pool, calling work for
// each job, and returns results indexed exactly like jobs. Started is
// always reported before Finished for a given job; there is no
// ordering guarantee across jobs.
func (d *Dispatcher) Run(ctx context.Context, jobs []job.Job, work Work) []job.Result {
	results := make([]job.Result, len(jobs))
	counts := Counts{Total: len(jobs)}
	var mu sync.Mutex

	sem := semaphore.NewWeighted(int64(d.Workers))
	var wg sync.WaitGroup

	for i, j := range jobs {
		if err := sem.Acquire(ctx, 1); err != nil {
			// Context cancelled out-of-band: stop dispatching and give
			// every job that never got a worker a cancellation Result.
			for k := i; k < len(jobs); k++ {
				results[k] = job.Result{InputPath: jobs[k].InputPath, Err: sferrors.NewCancelledError()}
			}
			break
		}
		j.CorrelationID = job.NewCorrelationID()

		wg.Add(1)
		go func(index int, j job.Job) {
			defer wg.Done()
			defer sem.Release(1)

			d.Reporter.Started(index, j.InputPath)
			result := work(ctx, j, d.Cancelled)
			results[index] = result
			d.Reporter.Finished(index, result)

			mu.Lock()
			counts.Completed++
			switch {
			case sferrors.IsCancelled(result.Err):
				counts.Skipped++
			case result.Ok():
				counts.Success++
			default:
				counts.Failed++
			}
			done := counts.Completed == counts.Total
			snapshot := counts
			mu.Unlock()

			if done {
				d.Reporter.BatchComplete(snapshot)
			}
		}(i, j)
	}

	wg.Wait()
	return results
}
