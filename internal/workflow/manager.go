package workflow

import (
	"log/slog"
	"sync"
	"time"

	"culler/internal/config"
	"culler/internal/history"
	"culler/internal/logging"
	"culler/internal/notifications"
)

// Manager runs the scan/cull/report/notify cycle on a timer.
type Manager struct {
	cfg      *config.Config
	store    *history.Store
	logger   *slog.Logger
	notifier notifications.Service
	prober   *notifications.Prober
	interval time.Duration

	mu      sync.RWMutex
	running bool
	cancel  func()
	wg      sync.WaitGroup
	lastRun *history.Run
	lastErr error
}

// StatusSummary describes the manager's most recent activity.
type StatusSummary struct {
	Running bool
	LastRun *history.Run
	LastErr error
}

// NewManager constructs a workflow manager with notifications built from
// configuration.
func NewManager(cfg *config.Config, store *history.Store, logger *slog.Logger) *Manager {
	return NewManagerWithNotifier(cfg, store, logger, notifications.NewService(cfg))
}

// ManagerOption configures optional Manager behavior.
type ManagerOption func(*Manager)

// WithProber overrides the connectivity prober (used in tests).
func WithProber(prober *notifications.Prober) ManagerOption {
	return func(m *Manager) {
		m.prober = prober
	}
}

// WithInterval overrides the cycle interval (used in tests).
func WithInterval(interval time.Duration) ManagerOption {
	return func(m *Manager) {
		m.interval = interval
	}
}

// NewManagerWithNotifier constructs a workflow manager with a custom notifier
// (used in tests).
func NewManagerWithNotifier(cfg *config.Config, store *history.Store, logger *slog.Logger, notifier notifications.Service, opts ...ManagerOption) *Manager {
	if logger == nil {
		logger = logging.NewNop()
	}
	interval := cfg.Interval()
	if interval <= 0 {
		interval = time.Minute
	}
	m := &Manager{
		cfg:      cfg,
		store:    store,
		logger:   logger.With("component", "workflow"),
		notifier: notifier,
		prober:   notifications.NewProber(5 * time.Second),
		interval: interval,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Status returns the manager's current state.
func (m *Manager) Status() StatusSummary {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return StatusSummary{
		Running: m.running,
		LastRun: m.lastRun,
		LastErr: m.lastErr,
	}
}

func (m *Manager) recordOutcome(run *history.Run, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if run != nil {
		m.lastRun = run
	}
	m.lastErr = err
}
