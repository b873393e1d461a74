package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateShow(); err != nil {
		return err
	}
	if err := c.validateTVMaze(); err != nil {
		return err
	}
	if err := c.validateSMTP(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateShow() error {
	if c.Show.Query == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/airmail/config.toml"
		}
		return fmt.Errorf("show.query is required. Edit %s (create with 'airmail config init')", defaultPath)
	}
	return nil
}

func (c *Config) validateTVMaze() error {
	if c.TVMaze.BaseURL == "" {
		return errors.New("tvmaze.base_url must be set")
	}
	if c.TVMaze.RequestTimeout <= 0 {
		return errors.New("tvmaze.request_timeout must be positive (seconds)")
	}
	return nil
}

func (c *Config) validateSMTP() error {
	if c.SMTP.Host == "" {
		return errors.New("smtp.host must be set")
	}
	if c.SMTP.Port <= 0 || c.SMTP.Port > 65535 {
		return errors.New("smtp.port must be a valid TCP port")
	}
	if c.SMTP.Username == "" {
		return errors.New("smtp.username must be set")
	}
	if c.SMTP.Password == "" {
		return errors.New("smtp.password must be set (or export AIRMAIL_SMTP_PASSWORD)")
	}
	if len(c.SMTP.To) == 0 {
		return errors.New("smtp.to must list at least one recipient")
	}
	if c.SMTP.RequestTimeout <= 0 {
		return errors.New("smtp.request_timeout must be positive (seconds)")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
