package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateScanner(); err != nil {
		return err
	}
	if err := c.validateSchedule(); err != nil {
		return err
	}
	if err := c.validateEmail(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if len(c.Paths.Roots) == 0 {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/culler/config.toml"
		}
		return fmt.Errorf("paths.roots must list at least one directory to scan; edit %s (create with 'culler config init')", defaultPath)
	}
	for _, root := range c.Paths.Roots {
		for _, dir := range []string{c.Paths.ReportDir, c.Paths.LogDir, c.Paths.DataDir} {
			if dir == root || strings.HasPrefix(dir, root+string(filepath.Separator)) {
				return fmt.Errorf("scan root %q contains culler directory %q; reports would be culled as duplicates of each other", root, dir)
			}
		}
	}
	return nil
}

func (c *Config) validateScanner() error {
	switch c.Scanner.Algorithm {
	case "md5", "sha256":
	default:
		return fmt.Errorf("scanner.algorithm must be \"md5\" or \"sha256\", got %q", c.Scanner.Algorithm)
	}
	for _, pattern := range c.Scanner.Exclude {
		if _, err := filepath.Match(pattern, "probe"); err != nil {
			return fmt.Errorf("scanner.exclude pattern %q: %w", pattern, err)
		}
	}
	return nil
}

func (c *Config) validateSchedule() error {
	if c.Schedule.IntervalMinutes <= 0 {
		return errors.New("schedule.interval_minutes must be positive")
	}
	return nil
}

func (c *Config) validateEmail() error {
	if !c.Email.Enabled {
		return nil
	}
	if c.Email.Host == "" {
		return errors.New("email.host must be set when email.enabled is true")
	}
	if c.Email.From == "" {
		return errors.New("email.from must be set when email.enabled is true")
	}
	if len(c.Email.To) == 0 {
		return errors.New("email.to must list at least one recipient when email.enabled is true")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\", got %q", c.Logging.Format)
	}
	return nil
}
