// Package transcoder implements the default Transcoder used by the
// pipelines, wrapping the ffmpeg-go binding around the system ffmpeg
// binary.
package transcoder

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/brightvale/stickerforge/internal/media"
	"github.com/brightvale/stickerforge/internal/pipeline"
	"github.com/brightvale/stickerforge/internal/strategy"
)

// maxLoggedStderrChars is the longest stderr tail surfaced in an error message.
const maxLoggedStderrChars = 2048

// FFmpeg is the default Transcoder, invoking the system ffmpeg via
// ffmpeg-go's command builder.
type FFmpeg struct{}

// New returns an FFmpeg transcoder.
func New() *FFmpeg { return &FFmpeg{} }

// Encode produces a VP9/WebM sticker candidate for attempt. On failure
// it writes an "<outputPath>.ffmpeg-error.log" sidecar (named
// "<outputPath>.<correlationID>.ffmpeg-error.log" when opts carries a
// correlation ID) and returns an error carrying up to the last 2048
// characters of stderr.
func (f *FFmpeg) Encode(ctx context.Context, inputPath string, attempt strategy.EncodeAttempt, outputPath string, opts pipeline.EncodeOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	inputArgs := ffmpeg.KwArgs{}
	switch attempt.InputKind {
	case media.InputImage:
		inputArgs["loop"] = 1
	case media.InputGIF:
		inputArgs["stream_loop"] = -1
	}

	vf := fmt.Sprintf("scale=%d:%d", attempt.Width, attempt.Height)
	if attempt.FPS > 0 {
		vf += fmt.Sprintf(",fps=%d", attempt.FPS)
	}

	outputArgs := ffmpeg.KwArgs{
		"c:v": "libvpx-vp9",
		"an":  "",
		"vf":  vf,
	}
	if attempt.BitrateKbps > 0 {
		outputArgs["b:v"] = fmt.Sprintf("%dk", attempt.BitrateKbps)
	}
	if attempt.FPS > 0 {
		outputArgs["r"] = strconv.Itoa(attempt.FPS)
	} else {
		outputArgs["fps_mode"] = "vfr"
	}
	if opts.TrimSeconds > 0 {
		outputArgs["t"] = strconv.FormatFloat(opts.TrimSeconds, 'f', -1, 64)
	}

	var stderr bytes.Buffer
	err := ffmpeg.Input(inputPath, inputArgs).
		Output(outputPath, outputArgs).
		OverWriteOutput().
		WithErrorOutput(&stderr).
		Run()
	if err != nil {
		return f.fail(outputPath, opts.CorrelationID, "", stderr.String(), err)
	}
	return nil
}

// EncodeImage produces a single-frame PNG, scaled to fit inside
// opts.TargetSide and centered-padded to a square when requested.
func (f *FFmpeg) EncodeImage(ctx context.Context, inputPath string, opts pipeline.ImageEncodeOptions, outputPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	vf := fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=decrease", opts.TargetSide, opts.TargetSide)
	if opts.PadToSquare {
		vf += fmt.Sprintf(",pad=%d:%d:(ow-iw)/2:(oh-ih)/2:color=0x00000000", opts.TargetSide, opts.TargetSide)
	}

	var stderr bytes.Buffer
	err := ffmpeg.Input(inputPath).
		Output(outputPath, ffmpeg.KwArgs{
			"vf":      vf,
			"vframes": "1",
			"vcodec":  "png",
			"f":       "image2",
		}).
		OverWriteOutput().
		WithErrorOutput(&stderr).
		Run()
	if err != nil {
		return f.fail(outputPath, opts.CorrelationID, "", stderr.String(), err)
	}
	return nil
}

func (f *FFmpeg) fail(outputPath, correlationID, stdout, stderr string, cause error) error {
	logPath, logErr := writeErrorLog(outputPath, correlationID, stdout, stderr)
	suffix := formatStderrSuffix(stderr)
	switch {
	case logErr == nil && logPath != "":
		suffix = fmt.Sprintf("%s (ffmpeg log: %s)", suffix, logPath)
	case logErr != nil:
		suffix = fmt.Sprintf("%s (ffmpeg log write failed: %v)", suffix, logErr)
	}
	return fmt.Errorf("ffmpeg failed: %w%s", cause, suffix)
}

func formatStderrSuffix(stderr string) string {
	trimmed := strings.TrimSpace(stderr)
	if trimmed == "" {
		return ""
	}
	if len(trimmed) > maxLoggedStderrChars {
		trimmed = trimmed[len(trimmed)-maxLoggedStderrChars:]
	}
	return ": " + trimmed
}

func writeErrorLog(outputPath, correlationID, stdout, stderr string) (string, error) {
	if outputPath == "" {
		return "", fmt.Errorf("empty output path")
	}
	logPath := outputPath + ".ffmpeg-error.log"
	if correlationID != "" {
		logPath = fmt.Sprintf("%s.%s.ffmpeg-error.log", outputPath, correlationID)
	}
	content := formatLogSection("STDOUT", stdout) + formatLogSection("STDERR", stderr)
	if err := os.WriteFile(logPath, []byte(content), 0644); err != nil {
		return "", err
	}
	return logPath, nil
}

func formatLogSection(title, content string) string {
	if strings.TrimSpace(content) == "" {
		return title + ":\n<empty>\n"
	}
	if strings.HasSuffix(content, "\n") {
		return title + ":\n" + content
	}
	return title + ":\n" + content + "\n"
}
