package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"reelpress/internal/config"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, _, exists, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if exists {
		t.Fatal("expected missing config file")
	}
	if cfg.Paths.Bind != "127.0.0.1:9000" {
		t.Fatalf("unexpected default bind %q", cfg.Paths.Bind)
	}
	if cfg.Captions.CharBudget != 47 {
		t.Fatalf("unexpected default char budget %d", cfg.Captions.CharBudget)
	}
	if cfg.Workflow.Workers != 2 || cfg.Workflow.QueueCapacity != 32 || cfg.Workflow.TaskTTLHours != 24 {
		t.Fatalf("unexpected workflow defaults %+v", cfg.Workflow)
	}
	if !cfg.Whisper.Enabled || cfg.Whisper.Model != "base" {
		t.Fatalf("unexpected whisper defaults %+v", cfg.Whisper)
	}
	if !filepath.IsAbs(cfg.Paths.TempDir) {
		t.Fatalf("temp dir not expanded: %q", cfg.Paths.TempDir)
	}
}

func TestLoadParsesFileAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reelpress.toml")
	content := `
[paths]
temp_dir = "` + filepath.Join(dir, "temp") + `"
output_dir = "` + filepath.Join(dir, "out") + `"
log_dir = "` + filepath.Join(dir, "logs") + `"
bind = "0.0.0.0:8080"

[captions]
char_budget = 60

[workflow]
workers = 4
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected config found at %q, got %q (%v)", path, resolved, exists)
	}
	if cfg.Paths.Bind != "0.0.0.0:8080" {
		t.Fatalf("unexpected bind %q", cfg.Paths.Bind)
	}
	if cfg.Captions.CharBudget != 60 || cfg.Workflow.Workers != 4 {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	// Unset values fall back to defaults.
	if cfg.Acquire.RequestTimeout != 120 {
		t.Fatalf("unexpected request timeout %d", cfg.Acquire.RequestTimeout)
	}
}

func TestBindEnvOverride(t *testing.T) {
	t.Setenv("REELPRESS_BIND", "127.0.0.1:7777")
	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Paths.Bind != "127.0.0.1:7777" {
		t.Fatalf("env override not applied, got %q", cfg.Paths.Bind)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	dir := t.TempDir()

	cases := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name: "same temp and output dir",
			content: `
[paths]
temp_dir = "` + filepath.Join(dir, "same") + `"
output_dir = "` + filepath.Join(dir, "same") + `"
`,
			wantErr: "must differ",
		},
		{
			name: "bind without port",
			content: `
[paths]
bind = "localhost"
`,
			wantErr: "host:port",
		},
		{
			name: "too many workers",
			content: `
[workflow]
workers = 500
`,
			wantErr: "64 or fewer",
		},
		{
			name: "bad log format",
			content: `
[logging]
format = "xml"
`,
			wantErr: "logging.format",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tc.name, " ", "_")+".toml")
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			_, _, _, err := config.Load(path)
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("create sample: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("load sample: %v", err)
	}
	if !exists {
		t.Fatal("sample config should exist")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("sample config invalid: %v", err)
	}
}
