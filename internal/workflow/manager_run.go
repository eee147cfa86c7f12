package workflow

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"culler/internal/history"
	"culler/internal/logging"
	"culler/internal/notifications"
	"culler/internal/report"
	"culler/internal/scanner"
	"culler/internal/sweep"
	"culler/internal/watcher"
)

// Start begins background processing. The first cycle runs immediately; later
// cycles run per interval tick or, in watch mode, when the watcher settles.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return errors.New("workflow already running")
	}

	runCtx, cancel := context.WithCancel(ctx)

	var triggers <-chan struct{}
	var fsWatcher *watcher.Watcher
	if m.cfg.Schedule.Watch {
		settle := time.Duration(m.cfg.Schedule.WatchSettleSeconds) * time.Second
		w, err := watcher.New(m.cfg.Paths.Roots, settle, m.logger)
		if err != nil {
			cancel()
			m.mu.Unlock()
			return err
		}
		if err := w.Start(runCtx); err != nil {
			_ = w.Close()
			cancel()
			m.mu.Unlock()
			return err
		}
		fsWatcher = w
		triggers = w.Triggers()
	}

	m.cancel = cancel
	m.running = true
	m.wg.Add(1)
	m.mu.Unlock()

	go func() {
		defer m.wg.Done()
		if fsWatcher != nil {
			defer fsWatcher.Close()
		}
		m.loop(runCtx, triggers)
	}()
	return nil
}

// Stop terminates background processing and waits for the current cycle.
func (m *Manager) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	cancel := m.cancel
	m.running = false
	m.cancel = nil
	m.mu.Unlock()

	cancel()
	m.wg.Wait()
}

func (m *Manager) loop(ctx context.Context, triggers <-chan struct{}) {
	m.cycle(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("workflow stopped")
			return
		case <-ticker.C:
			m.cycle(ctx)
		case <-triggers:
			m.logger.Info("filesystem change detected; running early cycle")
			m.cycle(ctx)
			ticker.Reset(m.interval)
		}
	}
}

func (m *Manager) cycle(ctx context.Context) {
	run, err := m.RunOnce(ctx)
	m.recordOutcome(run, err)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		m.logger.Error("cycle failed", "error", err)
		if notifyErr := m.notifier.NotifyError(ctx, err, "scan cycle"); notifyErr != nil {
			m.logger.Warn("error notification failed", "error", notifyErr)
		}
	}
}

// RunOnce executes a single scan/cull/report/record/notify cycle and returns
// the persisted run.
func (m *Manager) RunOnce(ctx context.Context) (*history.Run, error) {
	runID := uuid.NewString()
	logger := m.logger.With("run_id", runID)
	logger.Info("cycle started", "roots", len(m.cfg.Paths.Roots), "dry_run", m.cfg.Cull.DryRun)

	scan, err := scanner.New(m.cfg.Scanner, m.cfg.Paths.Roots, m.logger)
	if err != nil {
		return nil, err
	}
	result, err := scan.Scan(ctx)
	if err != nil {
		return nil, err
	}

	culler := sweep.New(m.cfg.Cull.DryRun, m.logger)
	outcome, err := culler.Cull(ctx, result.Duplicates)
	if err != nil {
		return nil, err
	}

	summary := report.Summary{
		RunID:     runID,
		Result:    result,
		Outcome:   outcome,
		DryRun:    m.cfg.Cull.DryRun,
		FreeBytes: report.ProbeFreeBytes(result.Roots),
	}
	reportPath, err := report.Write(m.cfg.Paths.ReportDir, summary)
	if err != nil {
		// The cycle already deleted files; losing the report must not lose
		// the history row as well.
		logger.Error("report write failed", "error", err)
		reportPath = ""
	}

	logging.CleanupOldFiles(m.logger, m.cfg.Cull.ReportRetentionDays, logging.RetentionTarget{
		Dir:     m.cfg.Paths.ReportDir,
		Pattern: report.FilePattern,
		Exclude: []string{reportPath},
	})
	logging.CleanupOldFiles(m.logger, m.cfg.Logging.RetentionDays, logging.RetentionTarget{
		Dir:     m.cfg.Paths.LogDir,
		Pattern: "*.log",
		Exclude: []string{m.cfg.LogPath()},
	})

	run := buildRun(runID, result, outcome, m.cfg.Cull.DryRun, reportPath)
	deletions := buildDeletions(runID, outcome)
	if err := m.store.RecordRun(ctx, run, deletions); err != nil {
		return nil, err
	}

	m.notify(ctx, logger, run, reportPath)

	logger.Info("cycle complete",
		"files", run.FilesScanned,
		"deleted", run.FilesDeleted,
		"failures", run.DeleteFailures,
		"reclaimed_bytes", run.BytesReclaimed,
	)
	return &run, nil
}

func (m *Manager) notify(ctx context.Context, logger *slog.Logger, run history.Run, reportPath string) {
	if !notifications.Enabled(m.notifier) {
		return
	}
	if !m.prober.Online(ctx) {
		logger.Warn("offline; run notification skipped")
		return
	}
	summary := notifications.RunSummary{
		RunID:        run.ID,
		StartedAt:    run.StartedAt,
		Duration:     run.FinishedAt.Sub(run.StartedAt),
		FilesScanned: run.FilesScanned,
		FilesDeleted: run.FilesDeleted,
		Failures:     run.DeleteFailures,
		Bytes:        run.BytesReclaimed,
		DryRun:       run.DryRun,
		ReportPath:   reportPath,
	}
	if err := m.notifier.NotifyRunCompleted(ctx, summary); err != nil {
		logger.Warn("run notification failed", "error", err)
	}
}

func buildRun(runID string, result *scanner.Result, outcome *sweep.Outcome, dryRun bool, reportPath string) history.Run {
	return history.Run{
		ID:              runID,
		StartedAt:       result.StartedAt.UTC(),
		FinishedAt:      result.StartedAt.Add(result.Duration).UTC(),
		Roots:           result.Roots,
		Algorithm:       result.Algorithm,
		FilesScanned:    result.FilesScanned,
		FilesSkipped:    result.FilesSkipped,
		DuplicateGroups: len(result.Duplicates),
		FilesDeleted:    len(outcome.Deletions),
		DeleteFailures:  outcome.Failures,
		BytesReclaimed:  outcome.BytesReclaimed,
		DryRun:          dryRun,
		ReportPath:      reportPath,
	}
}

func buildDeletions(runID string, outcome *sweep.Outcome) []history.Deletion {
	deletions := make([]history.Deletion, 0, len(outcome.Deletions))
	for _, d := range outcome.Deletions {
		deletions = append(deletions, history.Deletion{
			RunID:     runID,
			Path:      d.Path,
			KeptPath:  d.KeptPath,
			Digest:    d.Digest,
			SizeBytes: d.Size,
			DeletedAt: d.DeletedAt,
		})
	}
	return deletions
}
