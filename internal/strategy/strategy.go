// Package strategy generates the ordered list of encoding attempts a
// VideoPipeline should try, from the cheapest/highest-quality
// candidate to the most aggressively shrunk fallback.
package strategy

import (
	"math"

	"github.com/brightvale/stickerforge/internal/constraints"
	"github.com/brightvale/stickerforge/internal/media"
)

// EncodeAttempt is one candidate set of encode parameters. FPS == 0
// means no frame-rate filter is applied; LoopSeconds > 0 means the
// source should be looped before being trimmed to DurationSeconds.
type EncodeAttempt struct {
	Width           int
	Height          int
	FPS             int
	BitrateKbps     int
	DurationSeconds int
	InputKind       media.InputKind
	LoopSeconds     int
}

var bitrateSteps = []float64{1.0, 0.85, 0.7, 0.55, 0.45, 0.3}
var scaleDownSteps = []float64{0.9, 0.8, 0.7, 0.6}
var fpsFallbackCandidates = []int{24, 20, 15}

// BuildAttempts generates the full, strictly ordered attempt list for a
// probed input: a primary band at the scaled-to-fit dimensions, a
// scale-down band at progressively smaller dimensions, and (for still
// images, and for other inputs with a detected frame rate) an
// fps-fallback band. Every band is
// crossed with the same size-aware-reordered bitrate steps.
func BuildAttempts(info media.MediaInfo, kind media.InputKind) []EncodeAttempt {
	scaled, err := constraints.ScaleToFit(constraints.Size{Width: info.Width, Height: info.Height}, constraints.MaxStickerSide)
	if err != nil {
		return nil
	}

	baseAttemptFPS := pickBaseAttemptFPS(info, kind)
	fallbackBaseFPS, allowFPSFallback := pickFallbackBaseFPS(info, kind)
	fpsFallbackSteps := buildFPSFallbackSteps(fallbackBaseFPS, allowFPSFallback)

	baseDuration := int(constraints.MaxStickerDurationSeconds)
	if info.DurationSeconds > 0 && info.DurationSeconds < constraints.MaxStickerDurationSeconds {
		baseDuration = int(math.Ceil(info.DurationSeconds))
	}
	if kind == media.InputImage || kind == media.InputGIF {
		baseDuration = constraints.DefaultImageDuration
	}
	if baseDuration <= 0 {
		baseDuration = int(constraints.MaxStickerDurationSeconds)
	}

	bitrateBase := int(float64(constraints.MaxStickerSizeBytes*8) / float64(baseDuration) / 1000.0)
	if bitrateBase < 150 {
		bitrateBase = 150
	}

	sourceSize := estimateSourceSizeBytes(info.InputSizeBytes, info.BitrateBPS, baseDuration)
	steps := chooseBitrateSteps(bitrateSteps, sourceSize, constraints.MaxStickerSizeBytes)

	loopSeconds := 0
	if kind == media.InputImage || kind == media.InputGIF {
		loopSeconds = constraints.DefaultImageDuration
	}

	var attempts []EncodeAttempt

	for _, step := range steps {
		attempts = append(attempts, EncodeAttempt{
			Width:           scaled.Width,
			Height:          scaled.Height,
			FPS:             baseAttemptFPS,
			BitrateKbps:     int(float64(bitrateBase) * step),
			DurationSeconds: baseDuration,
			InputKind:       kind,
			LoopSeconds:     loopSeconds,
		})
	}

	for _, scale := range scaleDownSteps {
		width := int(float64(scaled.Width) * scale)
		height := int(float64(scaled.Height) * scale)
		if width <= 0 {
			width = 1
		}
		if height <= 0 {
			height = 1
		}
		for _, step := range steps {
			attempts = append(attempts, EncodeAttempt{
				Width:           width,
				Height:          height,
				FPS:             baseAttemptFPS,
				BitrateKbps:     int(float64(bitrateBase) * step),
				DurationSeconds: baseDuration,
				InputKind:       kind,
				LoopSeconds:     loopSeconds,
			})
		}
	}

	for _, fps := range fpsFallbackSteps {
		for _, step := range steps {
			attempts = append(attempts, EncodeAttempt{
				Width:           scaled.Width,
				Height:          scaled.Height,
				FPS:             fps,
				BitrateKbps:     int(float64(bitrateBase) * step),
				DurationSeconds: baseDuration,
				InputKind:       kind,
				LoopSeconds:     loopSeconds,
			})
		}
	}

	return attempts
}

func pickBaseAttemptFPS(info media.MediaInfo, kind media.InputKind) int {
	if kind == media.InputImage {
		return constraints.DefaultImageFPS
	}
	if info.FPS > float64(constraints.MaxStickerFPS) {
		return constraints.MaxStickerFPS
	}
	return 0
}

func pickFallbackBaseFPS(info media.MediaInfo, kind media.InputKind) (int, bool) {
	if kind == media.InputImage {
		return constraints.DefaultImageFPS, true
	}
	if info.FPS <= 0 {
		return 0, false
	}
	baseFPS := int(math.Min(info.FPS, float64(constraints.MaxStickerFPS)))
	if baseFPS <= 0 {
		return 0, false
	}
	return baseFPS, true
}

func buildFPSFallbackSteps(baseFPS int, allow bool) []int {
	if !allow {
		return nil
	}
	var steps []int
	for _, fps := range fpsFallbackCandidates {
		if fps > 0 && fps < baseFPS {
			steps = append(steps, fps)
		}
	}
	return steps
}

func estimateSourceSizeBytes(inputSizeBytes, bitrateBPS int64, durationSeconds int) int64 {
	var sizeByBitrate int64
	if bitrateBPS > 0 && durationSeconds > 0 {
		sizeByBitrate = bitrateBPS * int64(durationSeconds) / 8
	}
	if inputSizeBytes > sizeByBitrate {
		return inputSizeBytes
	}
	return sizeByBitrate
}

func chooseBitrateSteps(steps []float64, sourceSizeBytes int64, targetSizeBytes int64) []float64 {
	if sourceSizeBytes <= 0 || targetSizeBytes <= 0 {
		return steps
	}
	ratio := float64(targetSizeBytes) / float64(sourceSizeBytes)
	return reorderSteps(steps, pickBitrateStep(ratio))
}

func pickBitrateStep(ratio float64) float64 {
	switch {
	case ratio >= 0.9:
		return 1.0
	case ratio >= 0.7:
		return 0.85
	case ratio >= 0.5:
		return 0.7
	default:
		return 0.55
	}
}

func reorderSteps(steps []float64, first float64) []float64 {
	found := false
	for _, step := range steps {
		if step == first {
			found = true
			break
		}
	}
	if !found {
		return steps
	}

	reordered := make([]float64, 0, len(steps))
	for _, step := range steps {
		if step == first {
			reordered = append(reordered, step)
		}
	}
	for _, step := range steps {
		if step != first {
			reordered = append(reordered, step)
		}
	}
	return reordered
}
