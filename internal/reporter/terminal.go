package reporter

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"

	"github.com/brightvale/stickerforge/internal/dispatcher"
	"github.com/brightvale/stickerforge/internal/job"
	"github.com/brightvale/stickerforge/internal/util"
)

// Terminal reports dispatcher lifecycle events as colorized text plus a
// progress bar when stdout is a TTY. On a non-TTY (piped output, CI)
// it falls back to plain lines: one when a job starts and one when it
// finishes.
type Terminal struct {
	mu    sync.Mutex
	bar   *progressbar.ProgressBar
	isTTY bool

	totalInputBytes  uint64
	totalOutputBytes uint64

	cyan   *color.Color
	green  *color.Color
	red    *color.Color
	yellow *color.Color
	bold   *color.Color
}

// NewTerminal returns a Terminal reporter sized to total jobs.
func NewTerminal(total int) *Terminal {
	t := &Terminal{
		isTTY:  term.IsTerminal(int(os.Stdout.Fd())),
		cyan:   color.New(color.FgCyan, color.Bold),
		green:  color.New(color.FgGreen),
		red:    color.New(color.FgRed, color.Bold),
		yellow: color.New(color.FgYellow, color.Bold),
		bold:   color.New(color.Bold),
	}
	if t.isTTY {
		t.bar = progressbar.NewOptions(total,
			progressbar.OptionSetDescription("converting"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "=",
				SaucerHead:    ">",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
		)
	}
	return t
}

func (t *Terminal) Started(index int, inputPath string) {
	if t.isTTY {
		return
	}
	fmt.Printf("%s %s\n", t.cyan.Sprint("›"), filepath.Base(inputPath))
}

func (t *Terminal) Finished(index int, result job.Result) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if result.Ok() && result.InputSizeBytes > 0 && result.OutputSizeBytes > 0 {
		t.totalInputBytes += uint64(result.InputSizeBytes)
		t.totalOutputBytes += uint64(result.OutputSizeBytes)
	}

	if t.bar != nil {
		_ = t.bar.Add(1)
		return
	}

	name := filepath.Base(result.InputPath)
	if result.Ok() {
		reduction := util.CalculateSizeReduction(uint64(result.InputSizeBytes), uint64(result.OutputSizeBytes))
		fmt.Printf("  %s %s -> %s (%s -> %s, %.1f%% smaller)\n", t.green.Sprint("✓"), name, result.OutputPath,
			util.FormatBytes(uint64(result.InputSizeBytes)), util.FormatBytes(uint64(result.OutputSizeBytes)), reduction)
		return
	}
	fmt.Printf("  %s %s: %s\n", t.red.Sprint("✗"), name, result.Message())
}

func (t *Terminal) BatchComplete(counts dispatcher.Counts) {
	t.mu.Lock()
	if t.bar != nil {
		_ = t.bar.Finish()
	}
	t.mu.Unlock()

	fmt.Println()
	_, _ = t.cyan.Println("SUMMARY")
	fmt.Printf("  %s\n", t.bold.Sprintf("%d of %d succeeded", counts.Success, counts.Total))
	if counts.Failed > 0 {
		fmt.Printf("  %s\n", t.red.Sprintf("%d failed", counts.Failed))
	}
	if counts.Skipped > 0 {
		fmt.Printf("  %s\n", t.yellow.Sprintf("%d skipped", counts.Skipped))
	}
	if t.totalInputBytes > 0 {
		reduction := util.CalculateSizeReduction(t.totalInputBytes, t.totalOutputBytes)
		fmt.Printf("  %s -> %s (%.1f%% smaller)\n",
			util.FormatBytes(t.totalInputBytes), util.FormatBytes(t.totalOutputBytes), reduction)
	}
}
