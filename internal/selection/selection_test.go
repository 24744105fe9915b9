package selection

import (
	"sort"
	"testing"
)

type fakeLister struct {
	files map[string][]string
}

func (f fakeLister) List(root string) ([]string, error) {
	files := append([]string(nil), f.files[root]...)
	sort.Strings(files)
	return files, nil
}

func TestExpandFilesBeforeDirs(t *testing.T) {
	lister := fakeLister{files: map[string][]string{
		"dir": {"dir/b.png", "dir/a.mp4"},
	}}
	expander := NewExpander(lister)

	result := expander.Expand([]Item{
		{Path: "one.png"},
		{Path: "dir", IsDir: true},
	}, "")

	if len(result.Jobs) != 3 {
		t.Fatalf("expected 3 jobs, got %d: %+v", len(result.Jobs), result.Jobs)
	}
	if result.Jobs[0].InputPath != "one.png" {
		t.Errorf("expected the standalone file to be processed first, got %+v", result.Jobs[0])
	}
	if result.DirCount != 1 {
		t.Errorf("expected DirCount 1, got %d", result.DirCount)
	}
}

func TestExpandDefaultsOutputDir(t *testing.T) {
	expander := NewExpander(fakeLister{})
	result := expander.Expand([]Item{{Path: "a.png"}}, "")
	if len(result.OutputDirs) != 1 || result.OutputDirs[0] != "./output" {
		t.Errorf("expected default output dir, got %+v", result.OutputDirs)
	}
}

func TestExpandDedupesByExactPath(t *testing.T) {
	lister := fakeLister{files: map[string][]string{"dir": {"a.png"}}}
	expander := NewExpander(lister)

	result := expander.Expand([]Item{
		{Path: "a.png"},
		{Path: "dir", IsDir: true},
	}, "")

	if len(result.Jobs) != 1 {
		t.Errorf("expected the duplicate from the directory walk to be dropped, got %+v", result.Jobs)
	}
}

func TestExpandCountsFileCountOnlyForDirectSelections(t *testing.T) {
	lister := fakeLister{files: map[string][]string{
		"dir": {"dir/b.png", "dir/a.mp4"},
	}}
	expander := NewExpander(lister)

	result := expander.Expand([]Item{
		{Path: "one.png"},
		{Path: "dir", IsDir: true},
	}, "")

	if result.FileCount != 1 {
		t.Errorf("expected FileCount 1 (direct selections only), got %d", result.FileCount)
	}
	if result.TotalFiles != 3 {
		t.Errorf("expected TotalFiles 3 (direct + walked), got %d", result.TotalFiles)
	}
}

func TestExpandDirectoryOnlySelectionHasZeroFileCount(t *testing.T) {
	lister := fakeLister{files: map[string][]string{"dir": {"dir/a.png"}}}
	expander := NewExpander(lister)

	result := expander.Expand([]Item{{Path: "dir", IsDir: true}}, "")

	if result.FileCount != 0 {
		t.Errorf("expected FileCount 0 for a directory-only selection, got %d", result.FileCount)
	}
	if result.TotalFiles != 1 {
		t.Errorf("expected TotalFiles 1, got %d", result.TotalFiles)
	}
}

func TestExpandSkipsUnsupportedExtension(t *testing.T) {
	expander := NewExpander(fakeLister{})
	result := expander.Expand([]Item{{Path: "notes.txt"}}, "")

	if len(result.Jobs) != 0 {
		t.Errorf("expected no jobs for an unsupported file, got %+v", result.Jobs)
	}
	if len(result.Skipped) != 1 {
		t.Fatalf("expected one skipped entry, got %+v", result.Skipped)
	}
	if len(result.OutputDirs) != 0 {
		t.Errorf("expected no output dirs when nothing was accepted, got %+v", result.OutputDirs)
	}
}
