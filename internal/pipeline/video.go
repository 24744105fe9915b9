package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sferrors "github.com/brightvale/stickerforge/internal/errors"
	"github.com/brightvale/stickerforge/internal/job"
	"github.com/brightvale/stickerforge/internal/media"
	"github.com/brightvale/stickerforge/internal/strategy"
	"github.com/brightvale/stickerforge/internal/validation"
)

// videoTrimSeconds is the fixed trim applied to every video attempt,
// per the retry loop's contract with the Transcoder.
const videoTrimSeconds = 3

// Prober reads technical metadata from a media file.
type Prober interface {
	Probe(ctx context.Context, mediaPath string) (media.MediaInfo, error)
}

// Transcoder produces sticker/emoji artifacts from a source file.
type Transcoder interface {
	Encode(ctx context.Context, inputPath string, attempt strategy.EncodeAttempt, outputPath string, opts EncodeOptions) error
	EncodeImage(ctx context.Context, inputPath string, opts ImageEncodeOptions, outputPath string) error
}

// Cancelled reports whether a run-scoped cancellation flag has been set.
type Cancelled func() bool

// VideoPipeline converts VIDEO and GIF jobs into WebM/VP9 stickers,
// retrying across BuildAttempts until one attempt's probed output
// passes ValidateVideoOutput, or the attempt list is exhausted.
type VideoPipeline struct {
	Prober     Prober
	Transcoder Transcoder
}

// NewVideoPipeline returns a VideoPipeline using the given collaborators.
func NewVideoPipeline(prober Prober, transcoder Transcoder) *VideoPipeline {
	return &VideoPipeline{Prober: prober, Transcoder: transcoder}
}

// Run converts one job. cancelled is polled at the top of the function,
// before each attempt, and again when each encode returns; an in-flight
// encode is never interrupted, but its result is discarded in favor of
// a cancellation Result.
func (p *VideoPipeline) Run(ctx context.Context, j job.Job, cancelled Cancelled) job.Result {
	result := job.Result{InputPath: j.InputPath, CorrelationID: j.CorrelationID}

	if cancelled != nil && cancelled() {
		result.Err = sferrors.NewCancelledError()
		return result
	}

	info, err := p.Prober.Probe(ctx, j.InputPath)
	if err != nil {
		result.Err = sferrors.NewProbeError(j.InputPath, err)
		return result
	}

	if stat, statErr := os.Stat(j.InputPath); statErr == nil {
		info.InputSizeBytes = stat.Size()
		result.InputSizeBytes = stat.Size()
	}

	attempts := strategy.BuildAttempts(info, j.Kind)
	outputDir := resolveOutputDir(j)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		result.Err = sferrors.NewIOError("failed to create output directory", err)
		return result
	}

	outputPath := videoOutputPath(j.InputPath, outputDir)

	var lastErr error
	var lastIssues []validation.Issue

	encodeOpts := EncodeOptions{TrimSeconds: videoTrimSeconds, CorrelationID: j.CorrelationID}

	for attemptIndex, attempt := range attempts {
		if cancelled != nil && cancelled() {
			result.Err = sferrors.NewCancelledError()
			return result
		}
		result.Attempts = attemptIndex + 1

		encodeErr := p.Transcoder.Encode(ctx, j.InputPath, attempt, outputPath, encodeOpts)
		if cancelled != nil && cancelled() {
			result.Err = sferrors.NewCancelledError()
			return result
		}
		if encodeErr != nil {
			lastErr = sferrors.NewTranscodeError("transcode attempt failed", encodeErr)
			lastIssues = nil
			continue
		}

		stat, statErr := os.Stat(outputPath)
		if statErr != nil {
			lastErr = sferrors.NewOutputMissingError(outputPath)
			lastIssues = nil
			continue
		}

		outputInfo, probeErr := p.Prober.Probe(ctx, outputPath)
		if probeErr != nil {
			lastErr = sferrors.NewProbeError(outputPath, probeErr)
			lastIssues = nil
			continue
		}

		issues := validation.VideoOutput(outputInfo, stat.Size())
		if len(issues) == 0 {
			result.OutputPath = outputPath
			result.OutputSizeBytes = stat.Size()
			return result
		}
		lastErr = nil
		lastIssues = issues
	}

	result.Err = lastErr
	result.Issues = lastIssues
	if result.Err == nil && result.Issues == nil {
		result.Err = fmt.Errorf("no encode attempts were available for %s", j.InputPath)
	}
	return result
}

func resolveOutputDir(j job.Job) string {
	if j.OutputDir != "" {
		return j.OutputDir
	}
	return filepath.Dir(j.InputPath)
}

func videoOutputPath(inputPath, outputDir string) string {
	return filepath.Join(outputDir, stem(inputPath)+"_sticker.webm")
}

func stem(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext)
}
