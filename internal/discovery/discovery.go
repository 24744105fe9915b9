// Package discovery implements the default selection.FileLister,
// walking a directory recursively to list the files it contains.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sferrors "github.com/brightvale/stickerforge/internal/errors"
)

// Logger receives discovery progress messages.
type Logger interface {
	Info(format string, args ...any)
	Debug(format string, args ...any)
}

// Walker lists every file reachable under a directory, skipping hidden
// files and directories. It does not sort its output; ordering is a
// selection-layer concern, not a discovery one.
type Walker struct {
	Logger Logger
}

// New returns a Walker. A nil logger disables progress logging.
func New(logger Logger) *Walker {
	return &Walker{Logger: logger}
}

// List implements selection.FileLister.
func (w *Walker) List(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, sferrors.NewPathError(fmt.Sprintf("cannot stat %s: %v", root, err))
	}
	if !info.IsDir() {
		return nil, sferrors.NewPathError(fmt.Sprintf("%s is not a directory", root))
	}

	var files []string

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if strings.HasPrefix(name, ".") {
			if d.IsDir() && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, sferrors.NewIOError(fmt.Sprintf("walk directory %s", root), err)
	}

	if w.Logger != nil {
		w.logResults(root, files)
	}

	return files, nil
}

func (w *Walker) logResults(root string, files []string) {
	if len(files) == 0 {
		w.Logger.Info("no files found under %s", root)
		return
	}
	w.Logger.Info("found %d file(s) under %s", len(files), root)
	max := len(files)
	if max > 5 {
		max = 5
	}
	for i := 0; i < max; i++ {
		w.Logger.Debug("  %s", filepath.Base(files[i]))
	}
	if len(files) > 5 {
		w.Logger.Debug("  ... and %d more", len(files)-5)
	}
}
