package logging

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestConsoleHandlerFormatsLine(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newConsoleHandler(&buf, slog.LevelInfo))

	logger.With("component", "scanner").Info("scan complete", "files", 42, "path", "/tmp/a b")

	line := strings.TrimSpace(buf.String())
	for _, want := range []string{"INFO scanner: scan complete", "files=42", `path="/tmp/a b"`} {
		if !strings.Contains(line, want) {
			t.Errorf("line %q missing %q", line, want)
		}
	}
}

func TestConsoleHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newConsoleHandler(&buf, slog.LevelWarn))

	logger.Info("dropped")
	logger.Warn("kept")

	if strings.Contains(buf.String(), "dropped") {
		t.Error("info record logged despite warn threshold")
	}
	if !strings.Contains(buf.String(), "kept") {
		t.Error("warn record missing")
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestCleanupOldFilesPrunesByPattern(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "culler-20200101000000.log")
	fresh := filepath.Join(dir, "culler-29990101000000.log")
	other := filepath.Join(dir, "notes.txt")
	for _, path := range []string{old, fresh, other} {
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
	stale := time.Now().AddDate(0, 0, -30)
	if err := os.Chtimes(old, stale, stale); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	if err := os.Chtimes(other, stale, stale); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	CleanupOldFiles(NewNop(), 7, RetentionTarget{Dir: dir, Pattern: "culler-*.log"})

	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Error("stale report should have been pruned")
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Error("fresh report should remain")
	}
	if _, err := os.Stat(other); err != nil {
		t.Error("non-matching file should remain")
	}
}

func TestCleanupOldFilesHonorsExclusions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "culler.log")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	stale := time.Now().AddDate(0, 0, -30)
	if err := os.Chtimes(path, stale, stale); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	CleanupOldFiles(NewNop(), 7, RetentionTarget{Dir: dir, Pattern: "*.log", Exclude: []string{path}})

	if _, err := os.Stat(path); err != nil {
		t.Error("excluded file should remain")
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := NewNop()
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Error("nop logger should not be enabled at any level")
	}
}
