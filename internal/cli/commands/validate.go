package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"prodsum/pkg/collector"
	"prodsum/pkg/config"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [config-file]",
		Short: "Validate a configuration file",
		Long: `Validate a prodsum configuration file without running the pipeline.
With no argument, the built-in defaults are checked instead.

Checks:
  - YAML syntax
  - Required fields
  - Glob pattern validity
  - Webhook URL validity
  - Matching recent log files (warning only)`,
		Args: cobra.MaximumNArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	out := cmd.OutOrStdout()

	var cfg *config.Config
	var err error

	if len(args) == 1 {
		fmt.Fprintf(out, "Validating %s...\n", args[0])
		cfg, err = config.Load(ctx, args[0])
	} else {
		fmt.Fprintln(out, "Validating built-in defaults...")
		cfg, err = config.FromDefaults()
	}
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Fprintf(out, "\nConfiguration valid!\n")
	fmt.Fprintf(out, "  Data directory: %s\n", cfg.DataDir)
	fmt.Fprintf(out, "  Patterns:       %d\n", len(cfg.Patterns))
	fmt.Fprintf(out, "  Lookback:       %d day(s)\n", cfg.LookbackDays)
	if cfg.UseLocalModel {
		fmt.Fprintf(out, "  Model:          %s\n", cfg.Model)
	} else {
		fmt.Fprintf(out, "  Model:          disabled (manual prompt)\n")
	}
	if len(cfg.Webhooks) > 0 {
		fmt.Fprintf(out, "  Webhooks:       %d\n", len(cfg.Webhooks))
	}

	fmt.Fprintf(out, "\nPatterns:\n")
	for i, pat := range cfg.Patterns {
		fmt.Fprintf(out, "  %d. %s\n", i+1, pat)
	}

	// Check for matching recent files (warnings only)
	cutoff := time.Now().AddDate(0, 0, -cfg.LookbackDays)
	files, err := collector.SelectRecent(cfg.DataDir, cfg.Patterns, cutoff)
	if err != nil {
		fmt.Fprintf(out, "\nWarning: Error expanding patterns: %v\n", err)
	} else if len(files) == 0 {
		fmt.Fprintf(out, "\nWarning: No recent log files match the patterns\n")
	} else {
		fmt.Fprintf(out, "\nRecent log files matched: %d\n", len(files))
		for _, f := range files {
			fmt.Fprintf(out, "  - %s\n", f)
		}
	}

	return nil
}
