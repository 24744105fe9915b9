// Package job holds the value types that flow through a stickerforge
// run: a discovered Job, a Skipped input, a TargetType, and the
// terminal Result of processing one job.
package job

import (
	"github.com/google/uuid"

	"github.com/brightvale/stickerforge/internal/media"
	"github.com/brightvale/stickerforge/internal/validation"
)

// TargetType is the sticker/emoji artifact family a run produces.
type TargetType string

const (
	// TargetVideoSticker accepts VIDEO and GIF inputs and produces a WebM/VP9 sticker.
	TargetVideoSticker TargetType = "VIDEO_STICKER"
	// TargetStaticSticker accepts IMAGE inputs and produces a 512-side PNG sticker.
	TargetStaticSticker TargetType = "STATIC_STICKER"
	// TargetEmoji accepts IMAGE inputs and produces a 100x100 PNG emoji.
	TargetEmoji TargetType = "EMOJI"
)

// AllowedKinds returns the input kinds a target accepts.
func (t TargetType) AllowedKinds() []media.InputKind {
	switch t {
	case TargetVideoSticker:
		return []media.InputKind{media.InputVideo, media.InputGIF}
	case TargetStaticSticker, TargetEmoji:
		return []media.InputKind{media.InputImage}
	default:
		return nil
	}
}

// Allows reports whether kind is accepted by this target.
func (t TargetType) Allows(kind media.InputKind) bool {
	for _, k := range t.AllowedKinds() {
		if k == kind {
			return true
		}
	}
	return false
}

// Job is one discovered input awaiting conversion. An empty OutputDir
// means the output should be written alongside the input file.
// CorrelationID is stamped by the dispatcher before a job is handed to
// a worker; it is empty on a freshly expanded Job.
type Job struct {
	InputPath     string
	Kind          media.InputKind
	OutputDir     string
	CorrelationID string
}

// Skipped records an input that could not be turned into a Job.
type Skipped struct {
	Path   string
	Reason string
}

// Result is the terminal outcome of processing one Job.
type Result struct {
	InputPath       string
	OutputPath      string
	Err             error
	Issues          []validation.Issue
	CorrelationID   string
	InputSizeBytes  int64
	OutputSizeBytes int64
	Attempts        int
}

// Ok reports whether the job succeeded: no error and no validation issues.
func (r Result) Ok() bool {
	return r.Err == nil && len(r.Issues) == 0
}

// Message returns the text a user-facing report should show for this
// result: the error text if present, else the first issue's message,
// else empty for a successful result.
func (r Result) Message() string {
	if r.Err != nil {
		return r.Err.Error()
	}
	if len(r.Issues) > 0 {
		return r.Issues[0].Message
	}
	return ""
}

// NewCorrelationID returns a fresh run-scoped correlation ID for a job,
// used in log lines and as a disambiguator for error-log sidecar names.
func NewCorrelationID() string {
	return uuid.NewString()
}
