package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"culler/internal/config"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, `
[paths]
roots = ["`+root+`"]
`)

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatalf("expected config at %s to exist", resolved)
	}
	if cfg.Scanner.Algorithm != "md5" {
		t.Errorf("default algorithm = %q, want md5", cfg.Scanner.Algorithm)
	}
	if cfg.Schedule.IntervalMinutes != 60 {
		t.Errorf("default interval = %d, want 60", cfg.Schedule.IntervalMinutes)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("default log format = %q, want console", cfg.Logging.Format)
	}
	if len(cfg.Paths.Roots) != 1 || cfg.Paths.Roots[0] != root {
		t.Errorf("roots = %v, want [%s]", cfg.Paths.Roots, root)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	root := t.TempDir()
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "missing roots",
			body:    "[paths]\nroots = []\n",
			wantErr: "paths.roots",
		},
		{
			name: "unknown algorithm",
			body: "[paths]\nroots = [\"" + root + "\"]\n[scanner]\nalgorithm = \"crc32\"\n",
			wantErr: "scanner.algorithm",
		},
		{
			name: "email enabled without host",
			body: "[paths]\nroots = [\"" + root + "\"]\n[email]\nenabled = true\nfrom = \"a@b.c\"\nto = [\"d@e.f\"]\n",
			wantErr: "email.host",
		},
		{
			name: "bad log format",
			body: "[paths]\nroots = [\"" + root + "\"]\n[logging]\nformat = \"xml\"\n",
			wantErr: "logging.format",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, tc.body)
			_, _, _, err := config.Load(path)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error %q does not mention %q", err, tc.wantErr)
			}
		})
	}
}

func TestLoadRejectsReportDirInsideRoot(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, `
[paths]
roots = ["`+root+`"]
report_dir = "`+filepath.Join(root, "reports")+`"
`)

	_, _, _, err := config.Load(path)
	if err == nil || !strings.Contains(err.Error(), "contains culler directory") {
		t.Fatalf("expected nested report_dir rejection, got %v", err)
	}
}

func TestPasswordEnvFallback(t *testing.T) {
	root := t.TempDir()
	t.Setenv("CULLER_SMTP_PASSWORD", "hunter2")
	path := writeConfig(t, `
[paths]
roots = ["`+root+`"]
[email]
enabled = true
host = "smtp.example.com"
from = "a@b.c"
to = ["d@e.f"]
`)

	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Email.Password != "hunter2" {
		t.Errorf("password = %q, want env fallback", cfg.Email.Password)
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[scanner]") {
		t.Error("sample config missing [scanner] section")
	}
}
