package config

import (
	"os"
	"path/filepath"
	"time"
)

// Default values for configuration.
const (
	DefaultLookbackDays   = 7
	DefaultModel          = "mistral"
	DefaultSummaryFile    = "ai_weekly_summary.txt"
	DefaultTimeout        = 120 * time.Second
	DefaultWebhookTimeout = 10 * time.Second

	// DefaultDataDirName is the dotfile directory the tracker writes to,
	// resolved under the user's home directory.
	DefaultDataDirName = ".productivity_tracker"
)

// DefaultPatterns are the filename globs the tracker exports.
// "dailt_statu_*" is not a mistake here: the producing application
// writes files under that name, so the consumer has to match it.
var DefaultPatterns = []string{
	"weekly_status_export_*",
	"tasks*",
	"hourly_logs_today_*",
	"dailt_statu_*",
	"daily_status_*",
	"daily_logs.txt",
}

// Environment variable names.
const (
	EnvDataDir = "PRODSUM_DATA_DIR"
	EnvModel   = "PRODSUM_MODEL"
)

// DefaultDataDir returns the default data directory under the user's home.
// Falls back to the relative dotfile name when the home directory cannot
// be resolved.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultDataDirName
	}
	return filepath.Join(home, DefaultDataDirName)
}

// DefaultConfig returns a configuration with sensible defaults.
// It is runnable as-is: the defaults mirror the tracker's layout.
func DefaultConfig() *Config {
	return &Config{
		DataDir:       DefaultDataDir(),
		Patterns:      append([]string(nil), DefaultPatterns...),
		LookbackDays:  DefaultLookbackDays,
		Model:         DefaultModel,
		UseLocalModel: true,
		SummaryFile:   DefaultSummaryFile,
		Timeout:       DefaultTimeout,
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() {
	if dir := os.Getenv(EnvDataDir); dir != "" {
		c.DataDir = dir
	}
	if model := os.Getenv(EnvModel); model != "" {
		c.Model = model
	}
}
