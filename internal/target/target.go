// Package target evaluates a job selection against the target type a
// run is producing, and filters jobs down to what that target accepts.
package target

import (
	"github.com/brightvale/stickerforge/internal/job"
	"github.com/brightvale/stickerforge/internal/media"
)

// Status is the outcome of evaluating a selection against a target.
type Status int

const (
	// OK means every selected job matches the target's allowed kinds.
	OK Status = iota
	// Warning means some, but not all, selected jobs match.
	Warning
	// Blocked means no selected job matches, or nothing was selected.
	Blocked
)

// Summary counts a job list by input kind.
type Summary struct {
	Total int
	Image int
	GIF   int
	Video int
}

// SummarizeJobs tallies jobs by kind.
func SummarizeJobs(jobs []job.Job) Summary {
	s := Summary{Total: len(jobs)}
	for _, j := range jobs {
		switch j.Kind {
		case media.InputImage:
			s.Image++
		case media.InputGIF:
			s.GIF++
		case media.InputVideo:
			s.Video++
		}
	}
	return s
}

func allowedCount(s Summary, t job.TargetType) int {
	switch t {
	case job.TargetVideoSticker:
		return s.Video + s.GIF
	case job.TargetStaticSticker, job.TargetEmoji:
		return s.Image
	default:
		return 0
	}
}

func blockedMessage(t job.TargetType) string {
	switch t {
	case job.TargetVideoSticker:
		return "Must select videos or GIFs for this target"
	case job.TargetStaticSticker, job.TargetEmoji:
		return "Must select images for this target"
	default:
		return "No valid inputs"
	}
}

func warningMessage(t job.TargetType) string {
	switch t {
	case job.TargetVideoSticker:
		return "Only videos or GIFs will be processed"
	case job.TargetStaticSticker, job.TargetEmoji:
		return "Only images will be processed"
	default:
		return "Some inputs will be skipped"
	}
}

// EvaluateTarget classifies a selection summary against a target: no
// selection at all is always Blocked with "No selection"; zero
// matching jobs is Blocked with a target-specific message; some but
// not all matching is Warning; everything matching is OK.
func EvaluateTarget(s Summary, t job.TargetType) (Status, string) {
	if s.Total == 0 {
		return Blocked, "No selection"
	}

	allowed := allowedCount(s, t)
	if allowed == 0 {
		return Blocked, blockedMessage(t)
	}
	if allowed < s.Total {
		return Warning, warningMessage(t)
	}
	return OK, ""
}

// FilterJobsForTarget drops jobs whose kind is not accepted by t. It is
// idempotent: filtering an already-filtered list changes nothing.
func FilterJobsForTarget(jobs []job.Job, t job.TargetType) []job.Job {
	filtered := make([]job.Job, 0, len(jobs))
	for _, j := range jobs {
		if t.Allows(j.Kind) {
			filtered = append(filtered, j)
		}
	}
	return filtered
}
