package reporter

import (
	"github.com/brightvale/stickerforge/internal/dispatcher"
	"github.com/brightvale/stickerforge/internal/job"
	"github.com/brightvale/stickerforge/internal/logging"
)

// Log writes one line per finished job and one batch-summary line to
// the run's log file, each job line carrying its CorrelationID so a
// failure can be cross-referenced with its ffmpeg-error.log sidecar.
type Log struct {
	logger *logging.Logger
}

// NewLog returns a Log reporter writing through logger. logger may be
// nil (logging disabled), in which case Log is a no-op.
func NewLog(logger *logging.Logger) *Log {
	return &Log{logger: logger}
}

func (l *Log) Started(index int, inputPath string) {}

func (l *Log) Finished(index int, result job.Result) {
	if result.Ok() {
		l.logger.Info("job %s %s succeeded -> %s", result.CorrelationID, result.InputPath, result.OutputPath)
		return
	}
	l.logger.Error("job %s %s failed after %d attempt(s): %s", result.CorrelationID, result.InputPath, result.Attempts, result.Message())
}

func (l *Log) BatchComplete(counts dispatcher.Counts) {
	l.logger.Info("batch complete: %d/%d succeeded, %d failed, %d skipped",
		counts.Success, counts.Total, counts.Failed, counts.Skipped)
}
