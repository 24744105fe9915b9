// Package media holds the input classification and probed-metadata
// types shared across the strategy generator, pipelines, and validator.
package media

import (
	"path/filepath"
	"strings"

	sferrors "github.com/brightvale/stickerforge/internal/errors"
)

// InputKind identifies the broad category of an input file.
type InputKind string

const (
	// InputImage is a still image (png/jpg/jpeg/webp).
	InputImage InputKind = "IMAGE"
	// InputGIF is an animated GIF.
	InputGIF InputKind = "GIF"
	// InputVideo is a video clip (mp4/mov/webm/mkv/avi).
	InputVideo InputKind = "VIDEO"
)

var (
	videoExtensions = map[string]bool{
		".mp4":  true,
		".mov":  true,
		".webm": true,
		".mkv":  true,
		".avi":  true,
	}
	imageExtensions = map[string]bool{
		".png":  true,
		".jpg":  true,
		".jpeg": true,
		".webp": true,
	}
)

// DetectInputKind classifies path by its file extension. It returns a
// *errors.CoreError with KindClassification for any extension outside
// the supported video/image/gif sets.
func DetectInputKind(path string) (InputKind, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case ext == ".gif":
		return InputGIF, nil
	case imageExtensions[ext]:
		return InputImage, nil
	case videoExtensions[ext]:
		return InputVideo, nil
	default:
		return "", sferrors.NewClassificationError(path)
	}
}

// MediaInfo is the technical metadata a Prober extracts from a media file.
type MediaInfo struct {
	Width           int
	Height          int
	FPS             float64
	DurationSeconds float64
	HasAudio        bool
	FormatName      string
	CodecName       string
	BitrateBPS      int64
	InputSizeBytes  int64
}
