// Package config provides configuration loading and validation for prodsum.
package config

import "time"

// Config is the root configuration structure loaded from YAML.
// All fields have working defaults; a config file only needs to name
// the settings it changes.
type Config struct {
	// DataDir is the directory holding the productivity log files and
	// receiving the summary file.
	DataDir string `yaml:"data_dir"`

	// Patterns are glob patterns (relative to DataDir) selecting log files.
	Patterns []string `yaml:"patterns"`

	// LookbackDays is the trailing window: only files modified within the
	// last LookbackDays days are summarized.
	LookbackDays int `yaml:"lookback_days"`

	// Model is the model name passed to the local runner.
	Model string `yaml:"model"`

	// UseLocalModel controls whether the local model is attempted at all.
	// When false the manual-copy fallback runs unconditionally.
	UseLocalModel bool `yaml:"use_local_model"`

	// Endpoint is an optional Ollama-compatible HTTP endpoint
	// (e.g. http://localhost:11434). When set, the prompt is sent over
	// HTTP instead of through the ollama binary.
	Endpoint string `yaml:"endpoint,omitempty"`

	// SummaryFile is the output filename, written inside DataDir.
	SummaryFile string `yaml:"summary_file"`

	// Timeout bounds a single model invocation.
	Timeout time.Duration `yaml:"timeout"`

	// Webhooks optionally receive the summary after each run.
	Webhooks []WebhookConfig `yaml:"webhooks,omitempty"`
}

// WebhookTrigger determines when a webhook fires.
type WebhookTrigger string

const (
	// WebhookTriggerOnSummary fires only when a summary was produced (default).
	WebhookTriggerOnSummary WebhookTrigger = "on_summary"
	// WebhookTriggerAlways fires after every run, summary or not.
	WebhookTriggerAlways WebhookTrigger = "always"
	// WebhookTriggerNever disables the webhook.
	WebhookTriggerNever WebhookTrigger = "never"
)

// WebhookConfig defines a webhook endpoint for summary notifications.
type WebhookConfig struct {
	// Name is an optional identifier for the webhook.
	Name string `yaml:"name,omitempty"`

	// URL is the webhook endpoint (required).
	URL string `yaml:"url"`

	// Token is an optional bearer token for authentication.
	// Supports ${VAR} and $VAR environment expansion.
	Token string `yaml:"token,omitempty"`

	// Trigger determines when the webhook fires.
	// Defaults to "on_summary" if not specified.
	Trigger WebhookTrigger `yaml:"trigger,omitempty"`

	// Timeout is the HTTP request timeout.
	// Defaults to 10s if not specified.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}
