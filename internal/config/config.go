// Package config provides configuration types and defaults for
// stickerforge.
package config

import (
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"

	"github.com/brightvale/stickerforge/internal/job"
)

// Defaults.
const (
	DefaultOutputDir   = "./output"
	DefaultLogDir      = "./logs"
	DefaultMetricsAddr = ""
)

// Config holds the run-wide configuration for a stickerforge invocation.
type Config struct {
	OutputDir   string
	Target      job.TargetType
	Workers     int
	Verbose     bool
	NoLog       bool
	LogDir      string
	MetricsAddr string // empty disables the metrics listener
}

// NewConfig returns a Config with AutoParallelConfig-derived worker
// count and otherwise-default fields.
func NewConfig(outputDir string, target job.TargetType) *Config {
	if outputDir == "" {
		outputDir = DefaultOutputDir
	}
	return &Config{
		OutputDir:   outputDir,
		Target:      target,
		Workers:     AutoParallelConfig(),
		LogDir:      DefaultLogDir,
		MetricsAddr: DefaultMetricsAddr,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return ErrInvalidOutputDir
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidWorkers, c.Workers)
	}
	if !c.NoLog && c.LogDir == "" {
		return ErrInvalidLogDir
	}
	switch c.Target {
	case job.TargetVideoSticker, job.TargetStaticSticker, job.TargetEmoji:
	default:
		return fmt.Errorf("%w: %v", ErrInvalidTarget, c.Target)
	}
	return nil
}

// AutoParallelConfig returns a worker count derived from the host's
// logical CPU count, falling back to runtime.NumCPU when the CPU
// counters are unavailable (e.g. in a restricted container).
func AutoParallelConfig() int {
	counts, err := cpu.Counts(true)
	if err != nil || counts < 1 {
		counts = runtime.NumCPU()
	}
	if counts < 1 {
		counts = 1
	}
	return counts
}
