package fileutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"culler/internal/fileutil"
)

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if !fileutil.FileExists(path) {
		t.Error("expected regular file to exist")
	}
	if fileutil.FileExists(dir) {
		t.Error("directory should not count as a regular file")
	}
	if fileutil.FileExists(filepath.Join(dir, "missing")) {
		t.Error("missing path should not exist")
	}
}

func TestIsHidden(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{".git", true},
		{".DS_Store", true},
		{"visible.txt", false},
		{".", false},
		{"", false},
	}
	for _, tc := range tests {
		if got := fileutil.IsHidden(tc.name); got != tc.want {
			t.Errorf("IsHidden(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}
