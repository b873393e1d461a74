package testsupport

import (
	"path/filepath"
	"testing"

	"airmail/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a valid config seeded with unique temp directories per
// test and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Show.Query = "test show"
	cfg.SMTP.Host = "smtp.test.invalid"
	cfg.SMTP.Username = "sender@test.invalid"
	cfg.SMTP.Password = "secret"
	cfg.SMTP.From = "sender@test.invalid"
	cfg.SMTP.To = []string{"recipient@test.invalid"}
	cfg.Paths.StateDir = filepath.Join(base, "state")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.History.Enabled = false

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithShowQuery overrides the tracked show query.
func WithShowQuery(query string) ConfigOption {
	return func(c *config.Config) {
		c.Show.Query = query
	}
}

// WithHistory enables the history store at the given path.
func WithHistory(path string) ConfigOption {
	return func(c *config.Config) {
		c.History.Enabled = true
		c.History.Path = path
	}
}
