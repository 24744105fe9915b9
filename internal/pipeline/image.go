package pipeline

import (
	"context"
	"os"
	"path/filepath"

	sferrors "github.com/brightvale/stickerforge/internal/errors"
	"github.com/brightvale/stickerforge/internal/constraints"
	"github.com/brightvale/stickerforge/internal/job"
	"github.com/brightvale/stickerforge/internal/validation"
)

// ImageProber reads the width/height/format of a still-image file.
type ImageProber interface {
	ProbeImage(ctx context.Context, imagePath string) (validation.ImageInfo, error)
}

// ImagePipeline converts IMAGE jobs into a PNG sticker or emoji. Unlike
// VideoPipeline, there is no retry: a single encode is probed and
// validated once.
type ImagePipeline struct {
	Prober     ImageProber
	Transcoder Transcoder
}

// NewImagePipeline returns an ImagePipeline using the given collaborators.
func NewImagePipeline(prober ImageProber, transcoder Transcoder) *ImagePipeline {
	return &ImagePipeline{Prober: prober, Transcoder: transcoder}
}

// Run converts one IMAGE job for the given target.
func (p *ImagePipeline) Run(ctx context.Context, j job.Job, target job.TargetType, cancelled Cancelled) job.Result {
	result := job.Result{InputPath: j.InputPath, CorrelationID: j.CorrelationID, Attempts: 1}

	if cancelled != nil && cancelled() {
		result.Err = sferrors.NewCancelledError()
		return result
	}

	opts, suffix := imageEncodeOptionsFor(target)
	opts.CorrelationID = j.CorrelationID

	if stat, statErr := os.Stat(j.InputPath); statErr == nil {
		result.InputSizeBytes = stat.Size()
	}

	outputDir := resolveOutputDir(j)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		result.Err = sferrors.NewIOError("failed to create output directory", err)
		return result
	}
	outputPath := filepath.Join(outputDir, stem(j.InputPath)+suffix)

	if err := p.Transcoder.EncodeImage(ctx, j.InputPath, opts, outputPath); err != nil {
		result.Err = sferrors.NewTranscodeError("image encode failed", err)
		return result
	}

	outputStat, err := os.Stat(outputPath)
	if err != nil {
		result.Err = sferrors.NewOutputMissingError(outputPath)
		return result
	}
	result.OutputSizeBytes = outputStat.Size()

	info, err := p.Prober.ProbeImage(ctx, outputPath)
	if err != nil {
		result.Err = sferrors.NewProbeError(outputPath, err)
		return result
	}

	var issues []validation.Issue
	if target == job.TargetEmoji {
		issues = validation.EmojiImage(info)
	} else {
		issues = validation.StaticStickerImage(info)
	}

	if len(issues) == 0 {
		result.OutputPath = outputPath
		return result
	}
	result.Issues = issues
	return result
}

func imageEncodeOptionsFor(target job.TargetType) (ImageEncodeOptions, string) {
	if target == job.TargetEmoji {
		return ImageEncodeOptions{TargetSide: constraints.EmojiSide, PadToSquare: true}, "_emoji.png"
	}
	return ImageEncodeOptions{TargetSide: constraints.StaticStickerSide, PadToSquare: false}, "_sticker.png"
}
