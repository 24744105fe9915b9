// Package selection expands a user's file/directory selection into a
// deduplicated list of Jobs, classifying and skipping anything whose
// input kind cannot be determined.
package selection

import (
	"sort"

	"github.com/brightvale/stickerforge/internal/job"
	"github.com/brightvale/stickerforge/internal/media"
)

const defaultOutputDir = "./output"

// Item is one entry in a user's selection: a single file, or a
// directory to be walked recursively.
type Item struct {
	Path  string
	IsDir bool
}

// Result is the outcome of expanding a selection.
type Result struct {
	Jobs        []job.Job
	DirCount    int
	FileCount   int
	TotalFiles  int
	OutputDirs  []string
	Skipped     []job.Skipped
}

// FileLister recursively lists every file under root. Order is
// unspecified; implementations are not required to sort.
type FileLister interface {
	List(root string) ([]string, error)
}

// Expander expands selections into jobs, using lister to walk
// directories.
type Expander struct {
	Lister FileLister
}

// NewExpander returns an Expander backed by lister.
func NewExpander(lister FileLister) *Expander {
	return &Expander{Lister: lister}
}

// Expand classifies every file reachable from selections into a Job or
// a Skipped entry, processing files before directories and
// deduplicating by exact input path. An empty outputDir defaults to
// "./output".
func (e *Expander) Expand(selections []Item, outputDir string) Result {
	if outputDir == "" {
		outputDir = defaultOutputDir
	}

	result := Result{}
	seen := make(map[string]bool)
	outputDirs := make(map[string]bool)

	var files, dirs []Item
	for _, item := range selections {
		if item.IsDir {
			dirs = append(dirs, item)
		} else {
			files = append(files, item)
		}
	}

	for _, f := range files {
		if e.classifyAndAdd(f.Path, outputDir, seen, outputDirs, &result) {
			result.FileCount++
			result.TotalFiles++
		}
	}

	for _, d := range dirs {
		result.DirCount++
		listed, err := e.Lister.List(d.Path)
		if err != nil {
			result.Skipped = append(result.Skipped, job.Skipped{Path: d.Path, Reason: err.Error()})
			continue
		}
		for _, path := range listed {
			if e.classifyAndAdd(path, outputDir, seen, outputDirs, &result) {
				result.TotalFiles++
			}
		}
	}

	result.OutputDirs = sortedKeys(outputDirs)
	return result
}

// classifyAndAdd classifies path into a Job (or a Skipped entry on an
// unrecognized extension; a duplicate path already seen is dropped
// without a Skipped entry) and reports
// whether it produced a new Job, so the caller can apply its own
// counter semantics: a direct file selection counts toward both
// FileCount and TotalFiles, a directory-walked file counts only
// toward TotalFiles.
func (e *Expander) classifyAndAdd(path, outputDir string, seen map[string]bool, outputDirs map[string]bool, result *Result) bool {
	if seen[path] {
		return false
	}

	kind, err := media.DetectInputKind(path)
	if err != nil {
		result.Skipped = append(result.Skipped, job.Skipped{Path: path, Reason: err.Error()})
		return false
	}

	seen[path] = true
	outputDirs[outputDir] = true
	result.Jobs = append(result.Jobs, job.Job{InputPath: path, Kind: kind, OutputDir: outputDir})
	return true
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
