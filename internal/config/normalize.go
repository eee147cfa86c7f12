package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeScanner()
	c.normalizeSchedule()
	c.normalizeEmail()
	c.normalizeNtfy()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	roots := make([]string, 0, len(c.Paths.Roots))
	for i, root := range c.Paths.Roots {
		trimmed := strings.TrimSpace(root)
		if trimmed == "" {
			continue
		}
		expanded, err := expandPath(trimmed)
		if err != nil {
			return fmt.Errorf("paths.roots[%d]: %w", i, err)
		}
		roots = append(roots, expanded)
	}
	c.Paths.Roots = roots

	if strings.TrimSpace(c.Paths.ReportDir) == "" {
		c.Paths.ReportDir = defaultReportDir
	}
	if c.Paths.ReportDir, err = expandPath(c.Paths.ReportDir); err != nil {
		return fmt.Errorf("paths.report_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeScanner() {
	c.Scanner.Algorithm = strings.ToLower(strings.TrimSpace(c.Scanner.Algorithm))
	if c.Scanner.Algorithm == "" {
		c.Scanner.Algorithm = defaultAlgorithm
	}
	if c.Scanner.ChunkSize <= 0 {
		c.Scanner.ChunkSize = defaultChunkSize
	}
	if c.Scanner.MinSizeBytes < 0 {
		c.Scanner.MinSizeBytes = 0
	}
	patterns := make([]string, 0, len(c.Scanner.Exclude))
	for _, pattern := range c.Scanner.Exclude {
		if trimmed := strings.TrimSpace(pattern); trimmed != "" {
			patterns = append(patterns, trimmed)
		}
	}
	c.Scanner.Exclude = patterns
}

func (c *Config) normalizeSchedule() {
	if c.Schedule.IntervalMinutes <= 0 {
		c.Schedule.IntervalMinutes = defaultIntervalMinutes
	}
	if c.Schedule.WatchSettleSeconds <= 0 {
		c.Schedule.WatchSettleSeconds = defaultWatchSettleSeconds
	}
}

func (c *Config) normalizeEmail() {
	c.Email.Host = strings.TrimSpace(c.Email.Host)
	c.Email.Username = strings.TrimSpace(c.Email.Username)
	c.Email.From = strings.TrimSpace(c.Email.From)
	if c.Email.Password == "" {
		if value, ok := os.LookupEnv("CULLER_SMTP_PASSWORD"); ok {
			c.Email.Password = value
		}
	}
	recipients := make([]string, 0, len(c.Email.To))
	for _, addr := range c.Email.To {
		if trimmed := strings.TrimSpace(addr); trimmed != "" {
			recipients = append(recipients, trimmed)
		}
	}
	c.Email.To = recipients
	if c.Email.Port <= 0 {
		c.Email.Port = defaultEmailPort
	}
	if c.Email.RequestTimeout <= 0 {
		c.Email.RequestTimeout = defaultEmailTimeout
	}
}

func (c *Config) normalizeNtfy() {
	c.Ntfy.Topic = strings.TrimSpace(c.Ntfy.Topic)
	if c.Ntfy.RequestTimeout <= 0 {
		c.Ntfy.RequestTimeout = defaultNtfyTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}

// LogPath returns the daemon log file path beneath the configured log directory.
func (c *Config) LogPath() string {
	return filepath.Join(c.Paths.LogDir, "culler.log")
}
