// Package config provides configuration types and defaults for
// stickerforge.
package config

import "errors"

// Sentinel errors for configuration validation.
var (
	// ErrInvalidOutputDir indicates an empty output directory.
	ErrInvalidOutputDir = errors.New("output directory must not be empty")

	// ErrInvalidWorkers indicates a non-positive worker count.
	ErrInvalidWorkers = errors.New("workers must be at least 1")

	// ErrInvalidLogDir indicates logging is enabled with no log directory set.
	ErrInvalidLogDir = errors.New("log directory must not be empty unless logging is disabled")

	// ErrInvalidTarget indicates an unrecognized sticker target.
	ErrInvalidTarget = errors.New("unknown target")
)
