package daemon_test

import (
	"context"
	"testing"
	"time"

	"culler/internal/config"
	"culler/internal/daemon"
	"culler/internal/history"
	"culler/internal/logging"
	"culler/internal/testsupport"
	"culler/internal/workflow"
)

func newDaemon(t *testing.T, cfg *config.Config) *daemon.Daemon {
	t.Helper()
	store, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	mgr := workflow.NewManager(cfg, store, logging.NewNop())
	d, err := daemon.New(cfg, store, logging.NewNop(), mgr)
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func TestDaemonStartStop(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteFile(t, cfg, "a.txt", "x")
	d := newDaemon(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := d.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	status := d.Status()
	if !status.Running {
		t.Error("daemon should report running")
	}
	if status.LockFilePath != daemon.LockPath(cfg) {
		t.Errorf("lock path = %s, want %s", status.LockFilePath, daemon.LockPath(cfg))
	}

	if err := d.Start(ctx); err == nil {
		t.Error("second Start on a running daemon should fail")
	}

	d.Stop()
	if d.Status().Running {
		t.Error("daemon should report stopped")
	}
}

func TestDaemonLockExcludesSecondInstance(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteFile(t, cfg, "a.txt", "x")

	first := newDaemon(t, cfg)
	second := newDaemon(t, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := first.Start(ctx); err != nil {
		t.Fatalf("first Start: %v", err)
	}
	if err := second.Start(ctx); err == nil {
		t.Fatal("second daemon must not acquire the lock")
	}

	first.Stop()
	if err := second.Start(ctx); err != nil {
		t.Fatalf("second daemon should start after first released the lock: %v", err)
	}
	second.Stop()
}

func TestDaemonRequiresDependencies(t *testing.T) {
	if _, err := daemon.New(nil, nil, nil, nil); err == nil {
		t.Fatal("expected constructor error with nil dependencies")
	}
}
