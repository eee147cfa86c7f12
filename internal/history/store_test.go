package history_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"culler/internal/history"
)

func openStore(t *testing.T) *history.Store {
	t.Helper()
	store, err := history.OpenPath(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("OpenPath: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleRun(started time.Time) history.Run {
	return history.Run{
		ID:              uuid.NewString(),
		StartedAt:       started,
		FinishedAt:      started.Add(2 * time.Second),
		Roots:           []string{"/data", "/archive"},
		Algorithm:       "md5",
		FilesScanned:    10,
		FilesSkipped:    1,
		DuplicateGroups: 2,
		FilesDeleted:    3,
		BytesReclaimed:  4096,
		ReportPath:      "/reports/culler-20260826103000.log",
	}
}

func TestRecordRunRoundTrips(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	run := sampleRun(time.Now().UTC())
	deletions := []history.Deletion{
		{RunID: run.ID, Path: "/data/b.txt", KeptPath: "/data/a.txt", Digest: "abcd", SizeBytes: 2048, DeletedAt: time.Now().UTC()},
		{RunID: run.ID, Path: "/data/c.txt", KeptPath: "/data/a.txt", Digest: "abcd", SizeBytes: 2048, DeletedAt: time.Now().UTC()},
	}
	if err := store.RecordRun(ctx, run, deletions); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}

	got, err := store.GetRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if got.FilesDeleted != 3 || got.BytesReclaimed != 4096 {
		t.Errorf("run counters = (%d, %d), want (3, 4096)", got.FilesDeleted, got.BytesReclaimed)
	}
	if len(got.Roots) != 2 || got.Roots[1] != "/archive" {
		t.Errorf("roots = %v, want [/data /archive]", got.Roots)
	}
	if got.ReportPath != run.ReportPath {
		t.Errorf("report path = %q, want %q", got.ReportPath, run.ReportPath)
	}

	rows, err := store.Deletions(ctx, run.ID)
	if err != nil {
		t.Fatalf("Deletions: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("deletions = %d, want 2", len(rows))
	}
	if rows[0].Path != "/data/b.txt" || rows[0].KeptPath != "/data/a.txt" {
		t.Errorf("unexpected first deletion: %+v", rows[0])
	}
}

func TestListRunsNewestFirst(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	older := sampleRun(base)
	newer := sampleRun(base.Add(30 * time.Minute))
	for _, run := range []history.Run{older, newer} {
		if err := store.RecordRun(ctx, run, nil); err != nil {
			t.Fatalf("RecordRun: %v", err)
		}
	}

	runs, err := store.ListRuns(ctx, 0)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("runs = %d, want 2", len(runs))
	}
	if runs[0].ID != newer.ID {
		t.Error("expected newest run first")
	}

	limited, err := store.ListRuns(ctx, 1)
	if err != nil {
		t.Fatalf("ListRuns limited: %v", err)
	}
	if len(limited) != 1 || limited[0].ID != newer.ID {
		t.Errorf("limited list = %v, want just the newest run", limited)
	}

	last, err := store.LastRun(ctx)
	if err != nil {
		t.Fatalf("LastRun: %v", err)
	}
	if last == nil || last.ID != newer.ID {
		t.Error("LastRun should return the newest run")
	}
}

func TestGetRunPrefixMatching(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	run := sampleRun(time.Now().UTC())
	if err := store.RecordRun(ctx, run, nil); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}

	got, err := store.GetRun(ctx, run.ID[:8])
	if err != nil {
		t.Fatalf("GetRun by prefix: %v", err)
	}
	if got.ID != run.ID {
		t.Errorf("prefix lookup returned %s, want %s", got.ID, run.ID)
	}

	if _, err := store.GetRun(ctx, "no-such-run"); !errors.Is(err, history.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestLastRunEmptyHistory(t *testing.T) {
	store := openStore(t)

	last, err := store.LastRun(context.Background())
	if err != nil {
		t.Fatalf("LastRun: %v", err)
	}
	if last != nil {
		t.Errorf("expected nil run for empty history, got %+v", last)
	}
}

func TestClearCascadesDeletions(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	run := sampleRun(time.Now().UTC())
	deletions := []history.Deletion{
		{RunID: run.ID, Path: "/data/b.txt", KeptPath: "/data/a.txt", Digest: "abcd", DeletedAt: time.Now().UTC()},
	}
	if err := store.RecordRun(ctx, run, deletions); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}

	removed, err := store.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if removed != 1 {
		t.Errorf("Clear removed %d runs, want 1", removed)
	}

	rows, err := store.Deletions(ctx, run.ID)
	if err != nil {
		t.Fatalf("Deletions: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("deletions should cascade on clear, found %d", len(rows))
	}
}
