// Package testsupport provides helpers shared by package tests.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"culler/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test,
// including one scan root populated by the caller.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	root := filepath.Join(base, "root")
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatalf("create scan root: %v", err)
	}
	cfg.Paths.Roots = []string{root}
	cfg.Paths.ReportDir = filepath.Join(base, "reports")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Schedule.IntervalMinutes = 60

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// Root returns the first scan root of a test config.
func Root(cfg *config.Config) string {
	return cfg.Paths.Roots[0]
}

// WithDryRun enables dry-run mode on the test config.
func WithDryRun() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Cull.DryRun = true
	}
}

// WithWatch enables watch mode with a short settle window.
func WithWatch() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Schedule.Watch = true
		cfg.Schedule.WatchSettleSeconds = 1
	}
}

// WriteFile writes contents beneath the config's scan root.
func WriteFile(t testing.TB, cfg *config.Config, name, contents string) string {
	t.Helper()
	path := filepath.Join(Root(cfg), name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}
