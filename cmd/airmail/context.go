package main

import (
	"fmt"
	"log/slog"

	"airmail/internal/config"
	"airmail/internal/logging"
)

// commandContext carries lazily resolved configuration and logging shared by
// all subcommands.
type commandContext struct {
	configFlag  *string
	verboseFlag *bool

	cfg     *config.Config
	cfgPath string
}

func newCommandContext(configFlag *string, verboseFlag *bool) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		verboseFlag: verboseFlag,
	}
}

func (c *commandContext) configValue() string {
	if c.configFlag == nil {
		return ""
	}
	return *c.configFlag
}

func (c *commandContext) verbose() bool {
	return c.verboseFlag != nil && *c.verboseFlag
}

// ensureConfig loads and caches the configuration.
func (c *commandContext) ensureConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, path, _, err := config.Load(c.configValue())
	if err != nil {
		return nil, err
	}
	c.cfg = cfg
	c.cfgPath = path
	return cfg, nil
}

// buildLogger constructs the run logger. Default mode writes errors to the
// log file only; --verbose raises the level to info and mirrors output to
// the console.
func (c *commandContext) buildLogger(cfg *config.Config) (*slog.Logger, error) {
	level := cfg.Logging.Level
	console := false
	if c.verbose() {
		level = "info"
		console = true
	}
	logger, err := logging.New(logging.Options{
		Level:    level,
		Format:   cfg.Logging.Format,
		FilePath: cfg.LogFilePath(),
		Console:  console,
	})
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
