package reporter

import (
	"github.com/brightvale/stickerforge/internal/dispatcher"
	"github.com/brightvale/stickerforge/internal/job"
)

// Composite fans dispatcher lifecycle events out to multiple reporters.
type Composite struct {
	reporters []dispatcher.Reporter
}

// NewComposite creates a composite reporter.
func NewComposite(reporters ...dispatcher.Reporter) *Composite {
	return &Composite{reporters: reporters}
}

func (c *Composite) Started(index int, inputPath string) {
	for _, r := range c.reporters {
		r.Started(index, inputPath)
	}
}

func (c *Composite) Finished(index int, result job.Result) {
	for _, r := range c.reporters {
		r.Finished(index, result)
	}
}

func (c *Composite) BatchComplete(counts dispatcher.Counts) {
	for _, r := range c.reporters {
		r.BatchComplete(counts)
	}
}
