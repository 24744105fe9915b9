package validation

import (
	"testing"

	"github.com/brightvale/stickerforge/internal/media"
)

func compliantVideoInfo() media.MediaInfo {
	return media.MediaInfo{
		Width:           512,
		Height:          288,
		FPS:             24,
		DurationSeconds: 2.5,
		HasAudio:        false,
		FormatName:      "matroska,webm",
		CodecName:       "vp9",
	}
}

func TestVideoOutputAcceptsCompliantOutput(t *testing.T) {
	issues := VideoOutput(compliantVideoInfo(), 100000)
	if len(issues) != 0 {
		t.Fatalf("expected no issues, got %+v", issues)
	}
}

func TestVideoOutputFlagsOversizedFile(t *testing.T) {
	info := compliantVideoInfo()
	issues := VideoOutput(info, 300000)
	if !hasCode(issues, "size") {
		t.Errorf("expected a size issue, got %+v", issues)
	}
}

func TestVideoOutputFlagsHighFPS(t *testing.T) {
	info := compliantVideoInfo()
	info.FPS = 60
	issues := VideoOutput(info, 100000)
	if !hasCode(issues, "fps") {
		t.Errorf("expected an fps issue, got %+v", issues)
	}
}

func TestVideoOutputFlagsLongDuration(t *testing.T) {
	info := compliantVideoInfo()
	info.DurationSeconds = 5
	issues := VideoOutput(info, 100000)
	if !hasCode(issues, "duration") {
		t.Errorf("expected a duration issue, got %+v", issues)
	}
}

func TestVideoOutputFlagsAudio(t *testing.T) {
	info := compliantVideoInfo()
	info.HasAudio = true
	issues := VideoOutput(info, 100000)
	if !hasCode(issues, "audio") {
		t.Errorf("expected an audio issue, got %+v", issues)
	}
}

func TestVideoOutputFlagsWrongCodec(t *testing.T) {
	info := compliantVideoInfo()
	info.CodecName = "h264"
	issues := VideoOutput(info, 100000)
	if !hasCode(issues, "codec") {
		t.Errorf("expected a codec issue, got %+v", issues)
	}
}

func TestVideoOutputFlagsWrongFormat(t *testing.T) {
	info := compliantVideoInfo()
	info.FormatName = "mov,mp4"
	issues := VideoOutput(info, 100000)
	if !hasCode(issues, "format") {
		t.Errorf("expected a format issue, got %+v", issues)
	}
}

func TestVideoOutputFlagsBothSizeRulesWhenNeitherSideIs512(t *testing.T) {
	info := compliantVideoInfo()
	info.Width = 600
	info.Height = 600
	issues := VideoOutput(info, 100000)
	count := 0
	for _, issue := range issues {
		if issue.Code == "size" {
			count++
		}
	}
	if count != 2 {
		t.Errorf("expected both size issues when neither side is 512 and a dimension exceeds it, got %d: %+v", count, issues)
	}
}

func TestStaticStickerImageAcceptsCompliant(t *testing.T) {
	issues := StaticStickerImage(ImageInfo{Width: 512, Height: 300, Format: "PNG"})
	if len(issues) != 0 {
		t.Fatalf("expected no issues, got %+v", issues)
	}
}

func TestStaticStickerImageFlagsNonPNG(t *testing.T) {
	issues := StaticStickerImage(ImageInfo{Width: 512, Height: 300, Format: "jpeg"})
	if !hasCode(issues, "format") {
		t.Errorf("expected a format issue, got %+v", issues)
	}
}

func TestEmojiImageAcceptsExact100(t *testing.T) {
	issues := EmojiImage(ImageInfo{Width: 100, Height: 100, Format: "png"})
	if len(issues) != 0 {
		t.Fatalf("expected no issues, got %+v", issues)
	}
}

func TestEmojiImageRejectsWrongDimensions(t *testing.T) {
	issues := EmojiImage(ImageInfo{Width: 128, Height: 128, Format: "png"})
	if !hasCode(issues, "size") {
		t.Errorf("expected a size issue, got %+v", issues)
	}
}

func hasCode(issues []Issue, code string) bool {
	for _, issue := range issues {
		if issue.Code == code {
			return true
		}
	}
	return false
}
