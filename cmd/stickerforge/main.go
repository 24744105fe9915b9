// Package main provides the CLI entry point for stickerforge.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/brightvale/stickerforge"
	"github.com/brightvale/stickerforge/internal/config"
	"github.com/brightvale/stickerforge/internal/job"
	"github.com/brightvale/stickerforge/internal/logging"
	"github.com/brightvale/stickerforge/internal/metrics"
	"github.com/brightvale/stickerforge/internal/reporter"
	"github.com/brightvale/stickerforge/internal/target"
)

const appVersion = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "stickerforge",
		Short: "Convert images, GIFs, and videos into sticker/emoji artifacts",
	}

	root.AddCommand(newEncodeCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("stickerforge version %s\n", appVersion)
			return nil
		},
	}
}

func newEncodeCmd() *cobra.Command {
	var (
		targetFlag  string
		outputDir   string
		logDir      string
		workers     int
		verbose     bool
		noLog       bool
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "encode [flags] <path>...",
		Short: "Convert one or more inputs into sticker/emoji artifacts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := parseTarget(targetFlag)
			if err != nil {
				return err
			}

			cfg := config.NewConfig(outputDir, target)
			cfg.LogDir = logDir
			cfg.Verbose = verbose
			cfg.NoLog = noLog
			cfg.MetricsAddr = metricsAddr
			if workers > 0 {
				cfg.Workers = workers
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			return runEncode(cfg, args)
		},
	}

	cmd.Flags().StringVarP(&targetFlag, "target", "t", "video-sticker",
		"Sticker target: video-sticker, static-sticker, or emoji")
	cmd.Flags().StringVarP(&outputDir, "output", "o", config.DefaultOutputDir, "Output directory")
	cmd.Flags().StringVarP(&logDir, "log-dir", "l", config.DefaultLogDir, "Log directory")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Concurrent worker count (0 = auto)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	cmd.Flags().BoolVar(&noLog, "no-log", false, "Disable log file creation")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Address to serve Prometheus /metrics on (empty disables)")

	return cmd
}

func parseTarget(s string) (job.TargetType, error) {
	switch s {
	case "video-sticker", "video_sticker", string(job.TargetVideoSticker):
		return job.TargetVideoSticker, nil
	case "static-sticker", "static_sticker", string(job.TargetStaticSticker):
		return job.TargetStaticSticker, nil
	case "emoji", string(job.TargetEmoji):
		return job.TargetEmoji, nil
	default:
		return "", fmt.Errorf("unknown target %q", s)
	}
}

func runEncode(cfg *config.Config, selections []string) error {
	logger, err := logging.Setup(cfg.LogDir, cfg.Verbose, cfg.NoLog)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	if logger != nil {
		defer func() { _ = logger.Close() }()
		logger.Info("stickerforge encode starting: target=%s output=%s workers=%d", cfg.Target, cfg.OutputDir, cfg.Workers)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.MetricsAddr != "" {
		metrics.Register(prometheus.DefaultRegisterer)
		go func() {
			if err := metrics.Serve(ctx, cfg.MetricsAddr); err != nil && logger != nil {
				logger.Error("metrics listener stopped: %v", err)
			}
		}()
	}

	rep := reporter.NewComposite(
		reporter.NewTerminal(len(selections)),
		reporter.NewPrometheusReporter(string(cfg.Target)),
		reporter.NewLog(logger),
	)

	converter, err := stickerforge.New(cfg.Target,
		stickerforge.WithOutputDir(cfg.OutputDir),
		stickerforge.WithWorkers(cfg.Workers),
		stickerforge.WithReporter(rep),
	)
	if err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
		converter.Cancel()
	}()

	batch, err := converter.Convert(ctx, selections)
	if err != nil {
		return err
	}

	if batch.TargetInfo.Status != target.OK && batch.TargetInfo.Message != "" {
		fmt.Fprintln(os.Stderr, batch.TargetInfo.Message)
	}
	if batch.Counts.Failed > 0 {
		return fmt.Errorf("%d of %d conversions failed", batch.Counts.Failed, batch.Counts.Total)
	}
	return nil
}
