package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func validConfigTOML() string {
	return `
[show]
query = "family guy"

[smtp]
host = "smtp.example.com"
username = "sender@example.com"
password = "secret"
to = ["you@example.com"]
`
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadValidConfig(t *testing.T) {
	path := writeConfig(t, validConfigTOML())

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to be reported as found")
	}
	if resolved != path {
		t.Fatalf("resolved path = %q, want %q", resolved, path)
	}
	if cfg.Show.Query != "family guy" {
		t.Fatalf("show query = %q", cfg.Show.Query)
	}
	// Defaults fill in unset sections.
	if cfg.TVMaze.BaseURL != defaultTVMazeBaseURL {
		t.Fatalf("tvmaze base url = %q", cfg.TVMaze.BaseURL)
	}
	if cfg.SMTP.Port != defaultSMTPPort {
		t.Fatalf("smtp port = %d", cfg.SMTP.Port)
	}
	// From defaults to the username.
	if cfg.SMTP.From != "sender@example.com" {
		t.Fatalf("smtp from = %q", cfg.SMTP.From)
	}
	if cfg.History.Path == "" {
		t.Fatal("history path not defaulted")
	}
}

func TestLoadRequiresShowQuery(t *testing.T) {
	path := writeConfig(t, `
[smtp]
host = "smtp.example.com"
username = "u"
password = "p"
to = ["a@b.c"]
`)

	if _, _, _, err := Load(path); err == nil || !strings.Contains(err.Error(), "show.query") {
		t.Fatalf("expected show.query error, got %v", err)
	}
}

func TestLoadRequiresRecipients(t *testing.T) {
	path := writeConfig(t, `
[show]
query = "x"

[smtp]
host = "smtp.example.com"
username = "u"
password = "p"
to = []
`)

	if _, _, _, err := Load(path); err == nil || !strings.Contains(err.Error(), "smtp.to") {
		t.Fatalf("expected smtp.to error, got %v", err)
	}
}

func TestPasswordEnvFallback(t *testing.T) {
	t.Setenv("AIRMAIL_SMTP_PASSWORD", "from-env")
	path := writeConfig(t, `
[show]
query = "x"

[smtp]
host = "smtp.example.com"
username = "u"
to = ["a@b.c"]
`)

	cfg, _, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.SMTP.Password != "from-env" {
		t.Fatalf("password = %q, want env fallback", cfg.SMTP.Password)
	}
}

func TestLoadRejectsBadLogFormat(t *testing.T) {
	path := writeConfig(t, validConfigTOML()+`
[logging]
format = "yaml"
`)

	if _, _, _, err := Load(path); err == nil || !strings.Contains(err.Error(), "logging.format") {
		t.Fatalf("expected logging.format error, got %v", err)
	}
}

func TestNormalizeExpandsTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	cfg := Default()
	cfg.Show.Query = "x"
	cfg.SMTP.Host = "h"
	cfg.SMTP.Username = "u"
	cfg.SMTP.Password = "p"
	cfg.SMTP.To = []string{"a@b.c"}
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize returned error: %v", err)
	}

	if !strings.HasPrefix(cfg.Paths.StateDir, home) {
		t.Fatalf("state dir not expanded: %q", cfg.Paths.StateDir)
	}
}

func TestCreateSampleParses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}

	// The sample must parse; it fails validation until SMTP settings are
	// filled in, which is expected.
	if _, _, _, err := Load(path); err == nil || !strings.Contains(err.Error(), "smtp.password") {
		t.Fatalf("expected smtp.password validation error, got %v", err)
	}
}
