package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads and validates a configuration file. Settings absent from
// the file keep their defaults.
func Load(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// FromDefaults returns the default configuration with environment
// overrides applied and validated. Used when no config file is given.
func FromDefaults() (*Config, error) {
	cfg := DefaultConfig()
	cfg.applyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks a configuration for errors.
func Validate(cfg *Config) error {
	if cfg.DataDir == "" {
		return errors.New("data_dir: a data directory is required")
	}

	if len(cfg.Patterns) == 0 {
		return errors.New("patterns: at least one glob pattern is required")
	}

	for i, pat := range cfg.Patterns {
		if pat == "" {
			return fmt.Errorf("patterns[%d]: pattern must not be empty", i)
		}
		if _, err := filepath.Match(pat, "probe"); err != nil {
			return fmt.Errorf("patterns[%d]: invalid glob pattern %q: %w", i, pat, err)
		}
	}

	if cfg.LookbackDays < 1 {
		return fmt.Errorf("lookback_days: must be >= 1, got %d", cfg.LookbackDays)
	}

	if cfg.SummaryFile == "" {
		return errors.New("summary_file: an output filename is required")
	}
	if strings.ContainsRune(cfg.SummaryFile, os.PathSeparator) {
		return fmt.Errorf("summary_file: must be a bare filename, got %q", cfg.SummaryFile)
	}

	if cfg.Timeout <= 0 {
		return errors.New("timeout: must be positive")
	}

	if cfg.UseLocalModel && cfg.Model == "" {
		return errors.New("model: a model name is required when use_local_model is enabled")
	}

	// Webhooks are optional, but validate if present
	for i := range cfg.Webhooks {
		if err := validateWebhook(&cfg.Webhooks[i]); err != nil {
			name := cfg.Webhooks[i].Name
			if name == "" {
				name = cfg.Webhooks[i].URL
			}
			return fmt.Errorf("webhooks[%d] (%s): %w", i, name, err)
		}
	}

	return nil
}

func validateWebhook(wh *WebhookConfig) error {
	if wh.URL == "" {
		return errors.New("url is required")
	}

	u, err := url.Parse(wh.URL)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url scheme must be http or https, got %q", u.Scheme)
	}

	if u.Host == "" {
		return errors.New("url must have a host")
	}

	// Expand environment variables in token
	wh.Token = expandEnvVar(wh.Token)

	if wh.Trigger != "" {
		switch wh.Trigger {
		case WebhookTriggerOnSummary, WebhookTriggerAlways, WebhookTriggerNever:
			// Valid
		default:
			return fmt.Errorf("invalid trigger %q (must be on_summary, always, or never)", wh.Trigger)
		}
	} else {
		wh.Trigger = WebhookTriggerOnSummary
	}

	if wh.Timeout <= 0 {
		wh.Timeout = DefaultWebhookTimeout
	}

	return nil
}

// expandEnvVar expands environment variables in the format ${VAR} or $VAR.
func expandEnvVar(s string) string {
	if s == "" {
		return s
	}

	// Handle ${VAR} format
	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		varName := s[2 : len(s)-1]
		return os.Getenv(varName)
	}

	// Handle $VAR format (no braces)
	if strings.HasPrefix(s, "$") && !strings.HasPrefix(s, "${") {
		varName := s[1:]
		return os.Getenv(varName)
	}

	return s
}
