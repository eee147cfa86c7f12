package sweep_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"culler/internal/scanner"
	"culler/internal/sweep"
)

func writeFiles(t *testing.T, contents map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range contents {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func TestCullKeepsFirstOccurrence(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.txt": "same",
		"b.txt": "same",
		"c.txt": "same",
	})
	group := scanner.Group{
		Digest: "d41d",
		Size:   4,
		Paths: []string{
			filepath.Join(dir, "a.txt"),
			filepath.Join(dir, "b.txt"),
			filepath.Join(dir, "c.txt"),
		},
	}

	outcome, err := sweep.New(false, nil).Cull(context.Background(), []scanner.Group{group})
	if err != nil {
		t.Fatalf("Cull: %v", err)
	}

	if len(outcome.Deletions) != 2 {
		t.Fatalf("deletions = %d, want 2", len(outcome.Deletions))
	}
	if _, err := os.Stat(group.Paths[0]); err != nil {
		t.Error("first occurrence must survive")
	}
	for _, path := range group.Paths[1:] {
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("expected %s to be deleted", path)
		}
	}
	if outcome.BytesReclaimed != 8 {
		t.Errorf("BytesReclaimed = %d, want 8", outcome.BytesReclaimed)
	}
	for _, deletion := range outcome.Deletions {
		if deletion.KeptPath != group.Paths[0] {
			t.Errorf("KeptPath = %s, want %s", deletion.KeptPath, group.Paths[0])
		}
	}
}

func TestCullDryRunTouchesNothing(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.txt": "same", "b.txt": "same"})
	group := scanner.Group{
		Digest: "d41d",
		Size:   4,
		Paths:  []string{filepath.Join(dir, "a.txt"), filepath.Join(dir, "b.txt")},
	}

	culler := sweep.New(true, nil)
	if !culler.DryRun() {
		t.Fatal("expected dry-run mode")
	}
	outcome, err := culler.Cull(context.Background(), []scanner.Group{group})
	if err != nil {
		t.Fatalf("Cull: %v", err)
	}

	if len(outcome.Deletions) != 1 {
		t.Fatalf("deletions = %d, want 1", len(outcome.Deletions))
	}
	if !outcome.Deletions[0].DryRun {
		t.Error("deletion record should be flagged dry-run")
	}
	for _, path := range group.Paths {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("dry run must not delete %s", path)
		}
	}
}

func TestCullVanishedDuplicateIsNotAFailure(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.txt": "same"})
	group := scanner.Group{
		Digest: "d41d",
		Size:   4,
		Paths:  []string{filepath.Join(dir, "a.txt"), filepath.Join(dir, "gone.txt")},
	}

	outcome, err := sweep.New(false, nil).Cull(context.Background(), []scanner.Group{group})
	if err != nil {
		t.Fatalf("Cull: %v", err)
	}
	if outcome.Failures != 0 {
		t.Errorf("Failures = %d, want 0 for vanished file", outcome.Failures)
	}
	if len(outcome.Deletions) != 0 {
		t.Errorf("deletions = %d, want 0", len(outcome.Deletions))
	}
}

func TestCullSkipsSingletonGroups(t *testing.T) {
	dir := writeFiles(t, map[string]string{"only.txt": "unique"})
	group := scanner.Group{Digest: "aaaa", Size: 6, Paths: []string{filepath.Join(dir, "only.txt")}}

	outcome, err := sweep.New(false, nil).Cull(context.Background(), []scanner.Group{group})
	if err != nil {
		t.Fatalf("Cull: %v", err)
	}
	if len(outcome.Deletions) != 0 {
		t.Errorf("deletions = %d, want 0", len(outcome.Deletions))
	}
	if _, err := os.Stat(group.Paths[0]); err != nil {
		t.Error("singleton file must survive")
	}
}

func TestCullHonorsContextCancellation(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.txt": "same", "b.txt": "same"})
	group := scanner.Group{
		Digest: "d41d",
		Size:   4,
		Paths:  []string{filepath.Join(dir, "a.txt"), filepath.Join(dir, "b.txt")},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := sweep.New(false, nil).Cull(ctx, []scanner.Group{group}); err == nil {
		t.Fatal("expected cancellation error")
	}
	if _, err := os.Stat(filepath.Join(dir, "b.txt")); err != nil {
		t.Error("cancelled cull must not delete")
	}
}
