package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	Roots     []string `toml:"roots"`
	ReportDir string   `toml:"report_dir"`
	LogDir    string   `toml:"log_dir"`
	DataDir   string   `toml:"data_dir"`
}

// Scanner contains configuration for directory traversal and hashing.
type Scanner struct {
	Algorithm     string   `toml:"algorithm"`
	ChunkSize     int      `toml:"chunk_size"`
	MinSizeBytes  int64    `toml:"min_size_bytes"`
	Exclude       []string `toml:"exclude"`
	IncludeHidden bool     `toml:"include_hidden"`
}

// Schedule contains configuration for the periodic scan loop.
type Schedule struct {
	IntervalMinutes    int  `toml:"interval_minutes"`
	Watch              bool `toml:"watch"`
	WatchSettleSeconds int  `toml:"watch_settle_seconds"`
}

// Cull contains configuration for duplicate removal and report files.
type Cull struct {
	DryRun              bool `toml:"dry_run"`
	ReportRetentionDays int  `toml:"report_retention_days"`
}

// Email contains SMTP delivery settings for emailed reports.
type Email struct {
	Enabled        bool     `toml:"enabled"`
	Host           string   `toml:"host"`
	Port           int      `toml:"port"`
	Username       string   `toml:"username"`
	Password       string   `toml:"password"`
	From           string   `toml:"from"`
	To             []string `toml:"to"`
	StartTLS       bool     `toml:"starttls"`
	RequestTimeout int      `toml:"request_timeout"`
}

// Ntfy contains push notification settings.
type Ntfy struct {
	Topic          string `toml:"topic"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format        string `toml:"format"`
	Level         string `toml:"level"`
	RetentionDays int    `toml:"retention_days"`
}

// Config encapsulates all configuration values for culler.
//
// Configuration sections by subsystem:
//   - Paths: scan roots and report/log/data directories
//   - Scanner: digest algorithm, chunking, and traversal filters
//   - Schedule: scan interval and optional filesystem watch trigger
//   - Cull: dry-run mode and report retention
//   - Email: SMTP delivery of run reports
//   - Ntfy: push notification topic
//   - Logging: log format, level, and retention
type Config struct {
	Paths    Paths    `toml:"paths"`
	Scanner  Scanner  `toml:"scanner"`
	Schedule Schedule `toml:"schedule"`
	Cull     Cull     `toml:"cull"`
	Email    Email    `toml:"email"`
	Ntfy     Ntfy     `toml:"ntfy"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/culler/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config
// has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("culler.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates required directories for daemon operation.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.ReportDir, c.Paths.LogDir, c.Paths.DataDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// Interval returns the scan interval as a duration.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.Schedule.IntervalMinutes) * time.Minute
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
