package job

import (
	"errors"
	"testing"

	"github.com/brightvale/stickerforge/internal/media"
	"github.com/brightvale/stickerforge/internal/validation"
)

func TestTargetTypeAllows(t *testing.T) {
	if !TargetVideoSticker.Allows(media.InputVideo) {
		t.Error("TargetVideoSticker should allow InputVideo")
	}
	if !TargetVideoSticker.Allows(media.InputGIF) {
		t.Error("TargetVideoSticker should allow InputGIF")
	}
	if TargetVideoSticker.Allows(media.InputImage) {
		t.Error("TargetVideoSticker should not allow InputImage")
	}
	if !TargetStaticSticker.Allows(media.InputImage) {
		t.Error("TargetStaticSticker should allow InputImage")
	}
	if !TargetEmoji.Allows(media.InputImage) {
		t.Error("TargetEmoji should allow InputImage")
	}
	if TargetType("BOGUS").Allows(media.InputImage) {
		t.Error("an unknown target should allow nothing")
	}
}

func TestResultOk(t *testing.T) {
	if !(Result{}).Ok() {
		t.Error("a result with no error and no issues should be Ok")
	}
	if (Result{Err: errors.New("boom")}).Ok() {
		t.Error("a result with an error should not be Ok")
	}
	if (Result{Issues: []validation.Issue{{Message: "too small"}}}).Ok() {
		t.Error("a result with issues should not be Ok")
	}
}

func TestResultMessage(t *testing.T) {
	if got := (Result{Err: errors.New("boom")}).Message(); got != "boom" {
		t.Errorf("Message() = %q, want %q", got, "boom")
	}
	if got := (Result{Issues: []validation.Issue{{Message: "too small"}}}).Message(); got != "too small" {
		t.Errorf("Message() = %q, want %q", got, "too small")
	}
	if got := (Result{}).Message(); got != "" {
		t.Errorf("Message() = %q, want empty", got)
	}
}

func TestNewCorrelationIDIsUnique(t *testing.T) {
	a := NewCorrelationID()
	b := NewCorrelationID()
	if a == b {
		t.Error("NewCorrelationID should not repeat")
	}
	if a == "" {
		t.Error("NewCorrelationID should not be empty")
	}
}
