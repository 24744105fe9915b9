package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/brightvale/stickerforge/internal/job"
	"github.com/brightvale/stickerforge/internal/media"
	"github.com/brightvale/stickerforge/internal/strategy"
)

type fakeProber struct {
	info map[string]media.MediaInfo
	err  error
}

func (f fakeProber) Probe(ctx context.Context, mediaPath string) (media.MediaInfo, error) {
	if f.err != nil {
		return media.MediaInfo{}, f.err
	}
	return f.info[mediaPath], nil
}

type fakeTranscoder struct {
	encodeCalls int
	failUntil   int
	writeOutput func(outputPath string) error
}

func (f *fakeTranscoder) Encode(ctx context.Context, inputPath string, attempt strategy.EncodeAttempt, outputPath string, opts EncodeOptions) error {
	f.encodeCalls++
	if f.encodeCalls <= f.failUntil {
		return errBoom
	}
	if f.writeOutput != nil {
		return f.writeOutput(outputPath)
	}
	return os.WriteFile(outputPath, []byte("fake"), 0644)
}

func (f *fakeTranscoder) EncodeImage(ctx context.Context, inputPath string, opts ImageEncodeOptions, outputPath string) error {
	f.encodeCalls++
	if f.encodeCalls <= f.failUntil {
		return errBoom
	}
	return os.WriteFile(outputPath, []byte("fake"), 0644)
}

type errString string

func (e errString) Error() string { return string(e) }

const errBoom = errString("boom")

func TestVideoPipelineSucceedsOnFirstCompliantAttempt(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "clip.mp4")
	os.WriteFile(input, []byte("x"), 0644)
	outputPath := filepath.Join(dir, "clip_sticker.webm")

	prober := fakeProber{info: map[string]media.MediaInfo{
		input:      {Width: 512, Height: 512, FPS: 24, DurationSeconds: 2},
		outputPath: {Width: 512, Height: 512, FPS: 0, DurationSeconds: 2, FormatName: "webm", CodecName: "vp9"},
	}}
	transcoder := &fakeTranscoder{}

	p := NewVideoPipeline(prober, transcoder)
	result := p.Run(context.Background(), job.Job{InputPath: input, Kind: media.InputVideo, OutputDir: dir}, nil)

	if !result.Ok() {
		t.Fatalf("expected success, got err=%v issues=%+v", result.Err, result.Issues)
	}
	if transcoder.encodeCalls != 1 {
		t.Errorf("expected exactly one encode attempt for a compliant source, got %d", transcoder.encodeCalls)
	}
}

func TestVideoPipelineAdvancesPastFailedAttempts(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "clip.mp4")
	os.WriteFile(input, []byte("x"), 0644)
	outputPath := filepath.Join(dir, "clip_sticker.webm")

	prober := fakeProber{info: map[string]media.MediaInfo{
		input:      {Width: 1024, Height: 1024, FPS: 24, DurationSeconds: 2},
		outputPath: {Width: 512, Height: 512, FPS: 0, DurationSeconds: 2, FormatName: "webm", CodecName: "vp09"},
	}}
	transcoder := &fakeTranscoder{failUntil: 2}

	p := NewVideoPipeline(prober, transcoder)
	result := p.Run(context.Background(), job.Job{InputPath: input, Kind: media.InputVideo, OutputDir: dir}, nil)

	if !result.Ok() {
		t.Fatalf("expected eventual success, got err=%v issues=%+v", result.Err, result.Issues)
	}
	if transcoder.encodeCalls != 3 {
		t.Errorf("expected 3 encode attempts (2 failures + 1 success), got %d", transcoder.encodeCalls)
	}
}

func TestVideoPipelineRespectsCancellation(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "clip.mp4")
	os.WriteFile(input, []byte("x"), 0644)

	p := NewVideoPipeline(fakeProber{}, &fakeTranscoder{})
	result := p.Run(context.Background(), job.Job{InputPath: input, Kind: media.InputVideo, OutputDir: dir}, func() bool { return true })

	if result.Ok() {
		t.Fatal("expected a cancellation result")
	}
}
