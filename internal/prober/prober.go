// Package prober implements the default Prober and ImageProber, using
// go-ffprobe.v2 for media metadata and the standard image decoders for
// still-image metadata.
package prober

import (
	"context"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strconv"
	"strings"

	ffprobe "gopkg.in/vansante/go-ffprobe.v2"

	"github.com/brightvale/stickerforge/internal/media"
	"github.com/brightvale/stickerforge/internal/validation"
)

// FFprobe is the default Prober, backed by the system ffprobe binary.
type FFprobe struct{}

// New returns an FFprobe prober.
func New() *FFprobe { return &FFprobe{} }

// Probe extracts MediaInfo from mediaPath. fps is parsed from a
// "num/den" string, falling back to 0 on malformed input or a zero
// denominator; duration and bitrate are parsed as decimals, falling
// back to 0 on a parse failure; HasAudio is true iff any stream has
// codec_type "audio".
func (f *FFprobe) Probe(ctx context.Context, mediaPath string) (media.MediaInfo, error) {
	data, err := ffprobe.ProbeURL(ctx, mediaPath)
	if err != nil {
		return media.MediaInfo{}, err
	}

	info := media.MediaInfo{}
	if data.Format != nil {
		info.FormatName = data.Format.FormatName
		info.DurationSeconds = parseDuration(data.Format.DurationSecs, data.Format.Duration)
		info.BitrateBPS = parseBitrate(data.Format.BitRate)
	}

	for _, stream := range data.Streams {
		if strings.EqualFold(stream.CodecType, "audio") {
			info.HasAudio = true
			continue
		}
		if strings.EqualFold(stream.CodecType, "video") && info.Width == 0 && info.Height == 0 {
			info.Width = stream.Width
			info.Height = stream.Height
			info.CodecName = stream.CodecName
			info.FPS = parseFrameRate(stream.AvgFrameRate)
			if info.FPS == 0 {
				info.FPS = parseFrameRate(stream.RFrameRate)
			}
			if info.DurationSeconds == 0 {
				info.DurationSeconds = parseDuration(0, stream.Duration)
			}
		}
	}

	return info, nil
}

// ProbeImage reads the width, height, and lower-cased format name of a
// still image via the standard library's registered image decoders.
func (f *FFprobe) ProbeImage(ctx context.Context, imagePath string) (validation.ImageInfo, error) {
	file, err := os.Open(imagePath)
	if err != nil {
		return validation.ImageInfo{}, err
	}
	defer file.Close()

	cfg, format, err := image.DecodeConfig(file)
	if err != nil {
		return validation.ImageInfo{}, err
	}

	return validation.ImageInfo{
		Width:  cfg.Width,
		Height: cfg.Height,
		Format: strings.ToLower(format),
	}, nil
}

func parseFrameRate(raw string) float64 {
	parts := strings.SplitN(raw, "/", 2)
	if len(parts) != 2 {
		return 0
	}
	num, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0
	}
	den, err := strconv.ParseFloat(parts[1], 64)
	if err != nil || den == 0 {
		return 0
	}
	return num / den
}

func parseDuration(fallback float64, raw string) float64 {
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return v
}

func parseBitrate(raw string) int64 {
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err == nil {
		return v
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return int64(f)
}
