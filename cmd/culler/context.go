package main

import (
	"strings"
	"sync"

	"culler/internal/config"
	"culler/internal/history"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) withStore(fn func(*config.Config, *history.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := history.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(cfg, store)
}

func (c *commandContext) configPath() string {
	if c.configFlag != nil && strings.TrimSpace(*c.configFlag) != "" {
		return strings.TrimSpace(*c.configFlag)
	}
	path, err := config.DefaultConfigPath()
	if err != nil {
		return "~/.config/culler/config.toml"
	}
	return path
}
