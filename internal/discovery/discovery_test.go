package discovery

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func TestListFindsNestedFiles(t *testing.T) {
	dir := t.TempDir()
	mustWriteFile(t, filepath.Join(dir, "a.png"))
	mustWriteFile(t, filepath.Join(dir, "sub", "b.mp4"))

	w := New(nil)
	files, err := w.List(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sort.Strings(files)
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d: %v", len(files), files)
	}
}

func TestListSkipsHiddenFilesAndDirs(t *testing.T) {
	dir := t.TempDir()
	mustWriteFile(t, filepath.Join(dir, ".hidden.png"))
	mustWriteFile(t, filepath.Join(dir, "visible.png"))
	mustWriteFile(t, filepath.Join(dir, ".git", "config"))

	w := New(nil)
	files, err := w.List(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 1 || filepath.Base(files[0]) != "visible.png" {
		t.Fatalf("expected only visible.png, got %v", files)
	}
}

func TestListRejectsNonDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.png")
	mustWriteFile(t, path)

	w := New(nil)
	if _, err := w.List(path); err == nil {
		t.Fatal("expected an error for a non-directory root")
	}
}

func mustWriteFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
}
