package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"

	"github.com/gofrs/flock"

	"culler/internal/config"
	"culler/internal/history"
	"culler/internal/workflow"
)

// Daemon coordinates the workflow manager and enforces single-instance
// execution via a lock file.
type Daemon struct {
	cfg      *config.Config
	logger   *slog.Logger
	store    *history.Store
	workflow *workflow.Manager

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
	cancel  context.CancelFunc
}

// Status represents daemon runtime information.
type Status struct {
	Running      bool
	Workflow     workflow.StatusSummary
	HistoryPath  string
	LockFilePath string
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, store *history.Store, logger *slog.Logger, wf *workflow.Manager) (*Daemon, error) {
	if cfg == nil || store == nil || logger == nil || wf == nil {
		return nil, errors.New("daemon requires config, store, logger, and workflow manager")
	}

	lockPath := LockPath(cfg)
	return &Daemon{
		cfg:      cfg,
		logger:   logger,
		store:    store,
		workflow: wf,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}, nil
}

// LockPath returns the daemon lock file location for a configuration.
func LockPath(cfg *config.Config) string {
	return filepath.Join(cfg.Paths.DataDir, "cullerd.lock")
}

// Start acquires the daemon lock and launches the workflow manager.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another culler daemon instance is already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	if err := d.workflow.Start(runCtx); err != nil {
		_ = d.lock.Unlock()
		cancel()
		return fmt.Errorf("start workflow: %w", err)
	}
	d.cancel = cancel

	d.running.Store(true)
	d.logger.Info("culler daemon started", "lock", d.lockPath)
	return nil
}

// Stop stops background processing and releases the daemon lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.workflow.Stop()
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", "error", err)
	}
	d.running.Store(false)
	d.logger.Info("culler daemon stopped")
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	if d.store != nil {
		return d.store.Close()
	}
	return nil
}

// Status reports the daemon's current state.
func (d *Daemon) Status() Status {
	return Status{
		Running:      d.running.Load(),
		Workflow:     d.workflow.Status(),
		HistoryPath:  d.store.Path(),
		LockFilePath: d.lockPath,
	}
}
