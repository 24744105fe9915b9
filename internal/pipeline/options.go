// Package pipeline runs a single Job through probe → encode → validate,
// retrying across the strategy generator's attempt list for video and
// running once for static images.
package pipeline

// EncodeOptions carries the video transcoder's per-attempt knobs that
// are not already expressed on strategy.EncodeAttempt.
type EncodeOptions struct {
	TrimSeconds   float64
	CorrelationID string
}

// ImageEncodeOptions selects the target geometry for a still-image encode.
type ImageEncodeOptions struct {
	TargetSide    int
	PadToSquare   bool
	CorrelationID string
}

