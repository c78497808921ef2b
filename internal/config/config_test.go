package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaultsWhenFileAbsent(t *testing.T) {
	cfg, _, exists, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if exists {
		t.Fatal("expected missing file")
	}
	if cfg.App.ProcessName != "Brain.fm" {
		t.Fatalf("process_name = %q", cfg.App.ProcessName)
	}
	if cfg.API.BaseURL != "https://api.brain.fm" {
		t.Fatalf("base_url = %q", cfg.API.BaseURL)
	}
	if cfg.Reconcile.RefreshCycles != 6 {
		t.Fatalf("refresh_cycles = %d", cfg.Reconcile.RefreshCycles)
	}
}

func TestLoadOverridesAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
data_dir = "` + dir + `/brainfm"

[api]
base_url = "https://api.example.test/"
timeout_seconds = 3

[logging]
format = "JSON"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !exists || resolved != path {
		t.Fatalf("resolved = %q exists = %v", resolved, exists)
	}
	if cfg.API.BaseURL != "https://api.example.test" {
		t.Fatalf("base_url = %q, want trailing slash stripped", cfg.API.BaseURL)
	}
	if cfg.API.TimeoutSeconds != 3 {
		t.Fatalf("timeout_seconds = %d", cfg.API.TimeoutSeconds)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("format = %q, want lowercased", cfg.Logging.Format)
	}
	if cfg.Probes.CommandTimeoutSeconds != 5 {
		t.Fatalf("command_timeout_seconds = %d, want default preserved", cfg.Probes.CommandTimeoutSeconds)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    string
	}{
		{"bad base url", "[api]\nbase_url = \"not a url\"\n", "api.base_url"},
		{"zero timeout", "[api]\ntimeout_seconds = 0\n", "api.timeout_seconds"},
		{"bad log format", "[logging]\nformat = \"xml\"\n", "logging.format"},
		{"empty process", "[app]\nprocess_name = \" \"\n", "app.process_name"},
		{"zero refresh", "[reconcile]\nrefresh_cycles = -1\n", "reconcile.refresh_cycles"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatal(err)
			}
			_, _, _, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("err = %v, want mention of %s", err, tc.want)
			}
		})
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	if err := CreateSample(path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "[reconcile]") {
		t.Fatal("sample missing reconcile section")
	}

	if err := CreateSample(path); err == nil {
		t.Fatal("expected refusal to overwrite")
	}
}

func TestExpandPathTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err := expandPath("~/x/y")
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(home, "x", "y") {
		t.Fatalf("expanded = %q", got)
	}
}
