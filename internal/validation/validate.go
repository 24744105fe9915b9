// Package validation checks a probed video or image output against the
// fixed sticker/emoji rules. Every validation function runs its full
// rule list and returns every failing Issue — it never short-circuits
// on the first failure, so a caller can report (or test for) all of
// them at once.
package validation

import (
	"strings"

	"github.com/brightvale/stickerforge/internal/constraints"
	"github.com/brightvale/stickerforge/internal/media"
)

// Issue is one failed validation rule. Code is a stable identifier
// ("size", "fps", "duration", "audio", "codec", "format") a caller can
// match on without parsing Message.
type Issue struct {
	Code    string
	Message string
}

// ImageInfo is the probed width/height/format of a still image output.
// Format is always lower-cased.
type ImageInfo struct {
	Width  int
	Height int
	Format string
}

// VideoOutput runs the 8 video sticker rules against info/sizeBytes, in
// the order a reader of the rules would expect them to be checked.
func VideoOutput(info media.MediaInfo, sizeBytes int64) []Issue {
	var issues []Issue

	if sizeBytes > constraints.MaxStickerSizeBytes {
		issues = append(issues, Issue{Code: "size", Message: "size exceeds limit"})
	}
	if info.FPS > constraints.MaxStickerFPS {
		issues = append(issues, Issue{Code: "fps", Message: "fps exceeds limit"})
	}
	if info.DurationSeconds > constraints.MaxStickerDurationSeconds {
		issues = append(issues, Issue{Code: "duration", Message: "duration exceeds limit"})
	}
	if info.HasAudio {
		issues = append(issues, Issue{Code: "audio", Message: "audio stream present"})
	}
	if !strings.Contains(strings.ToLower(info.CodecName), "vp9") {
		issues = append(issues, Issue{Code: "codec", Message: "codec is not vp9"})
	}
	if !strings.Contains(strings.ToLower(info.FormatName), "webm") {
		issues = append(issues, Issue{Code: "format", Message: "format is not webm"})
	}
	if info.Width != constraints.MaxStickerSide && info.Height != constraints.MaxStickerSide {
		issues = append(issues, Issue{Code: "size", Message: "one side must be 512"})
	}
	if info.Width > constraints.MaxStickerSide || info.Height > constraints.MaxStickerSide {
		issues = append(issues, Issue{Code: "size", Message: "dimension exceeds 512"})
	}

	return issues
}

// StaticStickerImage runs the static-sticker image rules: png format,
// at least one side equal to 512, neither side exceeding 512.
func StaticStickerImage(info ImageInfo) []Issue {
	var issues []Issue

	if !isPNG(info.Format) {
		issues = append(issues, Issue{Code: "format", Message: "format is not png"})
	}
	if info.Width != constraints.StaticStickerSide && info.Height != constraints.StaticStickerSide {
		issues = append(issues, Issue{Code: "size", Message: "one side must be 512"})
	}
	if info.Width > constraints.StaticStickerSide || info.Height > constraints.StaticStickerSide {
		issues = append(issues, Issue{Code: "size", Message: "dimension exceeds 512"})
	}

	return issues
}

// EmojiImage runs the emoji image rules: png format, exact 100x100 dimensions.
func EmojiImage(info ImageInfo) []Issue {
	var issues []Issue

	if !isPNG(info.Format) {
		issues = append(issues, Issue{Code: "format", Message: "format is not png"})
	}
	if info.Width != constraints.EmojiSide || info.Height != constraints.EmojiSide {
		issues = append(issues, Issue{Code: "size", Message: "dimension must be 100x100"})
	}

	return issues
}

func isPNG(format string) bool {
	return strings.ToLower(format) == "png"
}
