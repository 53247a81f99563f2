package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if len(cfg.Patterns) != 6 {
		t.Errorf("expected 6 default patterns, got %d", len(cfg.Patterns))
	}
	if cfg.LookbackDays != 7 {
		t.Errorf("LookbackDays = %d, want 7", cfg.LookbackDays)
	}
	if cfg.Model != "mistral" {
		t.Errorf("Model = %q, want mistral", cfg.Model)
	}
	if !cfg.UseLocalModel {
		t.Error("UseLocalModel should default to true")
	}
	if cfg.SummaryFile != "ai_weekly_summary.txt" {
		t.Errorf("SummaryFile = %q", cfg.SummaryFile)
	}
	if cfg.Timeout != 120*time.Second {
		t.Errorf("Timeout = %s, want 120s", cfg.Timeout)
	}

	if err := Validate(cfg); err != nil {
		t.Errorf("defaults must validate, got %v", err)
	}
}

func TestLoad_Overrides(t *testing.T) {
	path := writeConfig(t, `
data_dir: /tmp/logs
patterns:
  - "*.log"
lookback_days: 14
model: llama3
use_local_model: false
timeout: 30s
`)

	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.DataDir != "/tmp/logs" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	if len(cfg.Patterns) != 1 || cfg.Patterns[0] != "*.log" {
		t.Errorf("Patterns = %v", cfg.Patterns)
	}
	if cfg.LookbackDays != 14 {
		t.Errorf("LookbackDays = %d", cfg.LookbackDays)
	}
	if cfg.Model != "llama3" {
		t.Errorf("Model = %q", cfg.Model)
	}
	if cfg.UseLocalModel {
		t.Error("UseLocalModel should be overridden to false")
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %s", cfg.Timeout)
	}
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "model: llama3\n")

	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Model != "llama3" {
		t.Errorf("Model = %q", cfg.Model)
	}
	if len(cfg.Patterns) != len(DefaultPatterns) {
		t.Errorf("Patterns should keep defaults, got %v", cfg.Patterns)
	}
	if cfg.LookbackDays != DefaultLookbackDays {
		t.Errorf("LookbackDays should keep default, got %d", cfg.LookbackDays)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(context.Background(), "/nonexistent/config.yaml")
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "patterns: [unclosed\n")
	_, err := Load(context.Background(), path)
	if err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv(EnvDataDir, "/env/data")
	t.Setenv(EnvModel, "envmodel")

	path := writeConfig(t, "data_dir: /file/data\nmodel: filemodel\n")
	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.DataDir != "/env/data" {
		t.Errorf("DataDir = %q, environment should win", cfg.DataDir)
	}
	if cfg.Model != "envmodel" {
		t.Errorf("Model = %q, environment should win", cfg.Model)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "empty data dir",
			mutate:  func(c *Config) { c.DataDir = "" },
			wantErr: "data_dir",
		},
		{
			name:    "no patterns",
			mutate:  func(c *Config) { c.Patterns = nil },
			wantErr: "patterns",
		},
		{
			name:    "invalid glob",
			mutate:  func(c *Config) { c.Patterns = []string{"[invalid"} },
			wantErr: "invalid glob",
		},
		{
			name:    "zero lookback",
			mutate:  func(c *Config) { c.LookbackDays = 0 },
			wantErr: "lookback_days",
		},
		{
			name:    "empty summary file",
			mutate:  func(c *Config) { c.SummaryFile = "" },
			wantErr: "summary_file",
		},
		{
			name:    "summary file with path",
			mutate:  func(c *Config) { c.SummaryFile = "sub/summary.txt" },
			wantErr: "bare filename",
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.Timeout = 0 },
			wantErr: "timeout",
		},
		{
			name: "missing model with local model enabled",
			mutate: func(c *Config) {
				c.Model = ""
				c.UseLocalModel = true
			},
			wantErr: "model",
		},
		{
			name: "webhook without url",
			mutate: func(c *Config) {
				c.Webhooks = []WebhookConfig{{Name: "test"}}
			},
			wantErr: "url is required",
		},
		{
			name: "webhook bad scheme",
			mutate: func(c *Config) {
				c.Webhooks = []WebhookConfig{{URL: "ftp://example.com/hook"}}
			},
			wantErr: "scheme",
		},
		{
			name: "webhook bad trigger",
			mutate: func(c *Config) {
				c.Webhooks = []WebhookConfig{{URL: "https://example.com/hook", Trigger: "sometimes"}}
			},
			wantErr: "invalid trigger",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_NoModelNeededWhenDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Model = ""
	cfg.UseLocalModel = false

	if err := Validate(cfg); err != nil {
		t.Errorf("model should not be required when local model is disabled: %v", err)
	}
}

func TestValidate_WebhookDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Webhooks = []WebhookConfig{{URL: "https://example.com/hook"}}

	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.Webhooks[0].Trigger != WebhookTriggerOnSummary {
		t.Errorf("Trigger = %q, want default on_summary", cfg.Webhooks[0].Trigger)
	}
	if cfg.Webhooks[0].Timeout != DefaultWebhookTimeout {
		t.Errorf("Timeout = %s, want default", cfg.Webhooks[0].Timeout)
	}
}

func TestValidate_WebhookTokenExpansion(t *testing.T) {
	t.Setenv("PRODSUM_TEST_TOKEN", "secret123")

	cfg := DefaultConfig()
	cfg.Webhooks = []WebhookConfig{{
		URL:   "https://example.com/hook",
		Token: "${PRODSUM_TEST_TOKEN}",
	}}

	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.Webhooks[0].Token != "secret123" {
		t.Errorf("Token = %q, want expanded value", cfg.Webhooks[0].Token)
	}
}
