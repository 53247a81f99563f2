package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/atotto/clipboard"
	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"prodsum/pkg/collector"
	"prodsum/pkg/config"
	"prodsum/pkg/llm"
	"prodsum/pkg/output"
	"prodsum/pkg/prompt"
	"prodsum/pkg/webhook"
)

// SummarizeOptions holds command-line options for the summarize command.
type SummarizeOptions struct {
	ConfigPath   string
	DataDir      string
	Model        string
	Days         int
	NoLocalModel bool
	DryRun       bool
	Copy         bool
	Quiet        bool

	// Webhook options
	WebhookURL     string
	WebhookToken   string
	WebhookTrigger string
}

// NewSummarizeCommand creates the summarize command.
func NewSummarizeCommand() *cobra.Command {
	opts := &SummarizeOptions{}

	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Summarize the last week of productivity logs",
		Long: `Collect productivity logs modified within the lookback window, build an
analysis prompt, and run it through the local model.

When the local model is disabled or fails, the full prompt is printed so
it can be pasted into an external chat interface instead. In that case
no summary file is written.

Exit codes:
  0 - Run completed (including degraded runs that fell back)
  2 - Configuration or usage error`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummarize(cmd, opts)
		},
	}

	// Flags
	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to config file (defaults used when omitted)")
	cmd.Flags().StringVar(&opts.DataDir, "data-dir", "", "Directory holding the log files (overrides config)")
	cmd.Flags().StringVar(&opts.Model, "model", "", "Model name for the local runner (overrides config)")
	cmd.Flags().IntVar(&opts.Days, "days", 0, "Lookback window in days (overrides config)")
	cmd.Flags().BoolVar(&opts.NoLocalModel, "no-local-model", false, "Skip the local model and print the prompt")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Print the prompt without invoking a model or writing output")
	cmd.Flags().BoolVar(&opts.Copy, "copy", false, "Copy the summary (or fallback prompt) to the clipboard")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Suppress informational output")

	// Webhook flags
	cmd.Flags().StringVar(&opts.WebhookURL, "webhook-url", "", "Webhook endpoint URL")
	cmd.Flags().StringVar(&opts.WebhookToken, "webhook-token", "", "Bearer token for webhook auth")
	cmd.Flags().StringVar(&opts.WebhookTrigger, "webhook-trigger", "on_summary", "When to fire webhook (on_summary|always|never)")

	return cmd
}

func runSummarize(cmd *cobra.Command, opts *SummarizeOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	out := cmd.OutOrStdout()
	errw := cmd.ErrOrStderr()

	// Reject a bad trigger value up front, same as validateWebhook does
	// for config file webhooks.
	switch config.WebhookTrigger(opts.WebhookTrigger) {
	case config.WebhookTriggerOnSummary, config.WebhookTriggerAlways, config.WebhookTriggerNever, "":
	default:
		return fmt.Errorf("invalid webhook-trigger %q (must be on_summary, always, or never)", opts.WebhookTrigger)
	}

	cfg, err := loadConfig(ctx, opts)
	if err != nil {
		return err
	}

	// Select files modified within the lookback window
	cutoff := time.Now().AddDate(0, 0, -cfg.LookbackDays)
	files, err := collector.SelectRecent(cfg.DataDir, cfg.Patterns, cutoff)
	if err != nil {
		return fmt.Errorf("selecting log files: %w", err)
	}

	if len(files) == 0 {
		fmt.Fprintf(out, "No productivity logs found for the last %d days in: %s\n",
			cfg.LookbackDays, cfg.DataDir)
		return nil
	}

	// Read errors are reported and the file skipped; one unreadable
	// file does not abort the run.
	corpus := collector.LoadCorpus(files, errw)
	p := prompt.Build(corpus)

	if !opts.Quiet {
		fmt.Fprintln(out, "Found logs for analysis from these files:")
		for _, f := range files {
			fmt.Fprintf(out, "   %s\n", f)
		}
	}

	if opts.DryRun {
		fmt.Fprintln(out)
		fmt.Fprintln(out, p)
		if opts.Copy {
			copyToClipboard(p, out, errw)
		}
		return nil
	}

	start := time.Now()
	var summary string
	if cfg.UseLocalModel {
		summary = invokeModel(ctx, cfg, p, out, errw, opts.Quiet)
	}

	report := &output.Report{
		Files:       files,
		Summary:     summary,
		Model:       cfg.Model,
		GeneratedAt: time.Now(),
		Duration:    time.Since(start),
	}

	if summary == "" {
		if cfg.UseLocalModel {
			fmt.Fprintln(out, "Falling back to manual prompt.")
		}
		fallback := llm.NewFallback(out)
		_, _ = fallback.Summarize(ctx, p)
		if opts.Copy {
			copyToClipboard(p, out, errw)
		}
	} else {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "--- AI Productivity Summary ---")
		fmt.Fprintln(out)
		fmt.Fprintln(out, summary)

		path, err := output.WriteSummary(cfg.DataDir, cfg.SummaryFile, summary)
		if err != nil {
			// The summary was already echoed above; persistence failure
			// degrades the run but does not fail it.
			color.New(color.FgRed).Fprintf(errw, "Failed to write summary file: %v\n", err)
		} else {
			report.Path = path
			fmt.Fprintf(out, "\nSummary written to: %s\n", path)
		}

		if opts.Copy {
			copyToClipboard(summary, out, errw)
		}
	}

	// Send webhooks (errors logged but don't fail the run)
	sendWebhooks(ctx, cfg, opts, report)

	return nil
}

// loadConfig resolves the configuration from file or defaults and
// applies flag overrides.
func loadConfig(ctx context.Context, opts *SummarizeOptions) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if opts.ConfigPath != "" {
		cfg, err = config.Load(ctx, opts.ConfigPath)
	} else {
		cfg, err = config.FromDefaults()
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if opts.DataDir != "" {
		cfg.DataDir = opts.DataDir
	}
	if opts.Model != "" {
		cfg.Model = opts.Model
	}
	if opts.Days > 0 {
		cfg.LookbackDays = opts.Days
	}
	if opts.NoLocalModel {
		cfg.UseLocalModel = false
	}

	return cfg, nil
}

// invokeModel runs the prompt through the configured local strategy.
// Failures are reported and yield an empty summary, never an error.
func invokeModel(ctx context.Context, cfg *config.Config, p string, out, errw io.Writer, quiet bool) string {
	var s llm.Summarizer
	if cfg.Endpoint != "" {
		if !quiet {
			fmt.Fprintf(out, "Trying %s with model %q ...\n", cfg.Endpoint, cfg.Model)
		}
		s = llm.NewAPIRunner(cfg.Endpoint, cfg.Model, llm.WithAPITimeout(cfg.Timeout))
	} else {
		if !quiet {
			fmt.Fprintf(out, "Trying ollama with model %q ...\n", cfg.Model)
		}
		s = llm.NewRunner(cfg.Model, llm.WithTimeout(cfg.Timeout))
	}

	spin := newSpinner(quiet)
	if spin != nil {
		spin.Start()
	}
	summary, err := s.Summarize(ctx, p)
	if spin != nil {
		spin.Stop()
	}

	if err != nil {
		color.New(color.FgYellow).Fprintf(errw, "Model invocation failed: %v\n", err)
		return ""
	}

	return summary
}

// newSpinner returns a progress spinner, or nil when output is not a
// terminal or quiet mode is on.
func newSpinner(quiet bool) *spinner.Spinner {
	if quiet || !isatty.IsTerminal(os.Stdout.Fd()) {
		return nil
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " Analyzing logs..."
	return s
}

func copyToClipboard(text string, out, errw io.Writer) {
	if err := clipboard.WriteAll(text); err != nil {
		fmt.Fprintf(errw, "Warning: could not copy to clipboard: %v\n", err)
		return
	}
	fmt.Fprintln(out, "Copied to clipboard.")
}

// sendWebhooks sends the run report to all configured webhooks.
// Errors are logged to stderr but don't fail the run.
func sendWebhooks(ctx context.Context, cfg *config.Config, opts *SummarizeOptions, report *output.Report) {
	webhooks := collectWebhooks(cfg, opts)
	if len(webhooks) == 0 {
		return
	}

	client := webhook.NewClient()

	for _, wh := range webhooks {
		if !shouldFireWebhook(wh.Trigger, report.HasSummary()) {
			continue
		}

		resp := client.Send(ctx, report, webhook.SendOptions{
			URL:     wh.URL,
			Token:   wh.Token,
			Timeout: wh.Timeout,
		})

		name := wh.Name
		if name == "" {
			name = wh.URL
		}

		if resp.Success() {
			fmt.Fprintf(os.Stderr, "Webhook %s: sent (%d, %s)\n", name, resp.StatusCode, resp.Duration)
		} else {
			fmt.Fprintf(os.Stderr, "Webhook %s: failed (%v)\n", name, resp.Error)
		}
	}
}

// collectWebhooks merges config file webhooks with the CLI webhook.
func collectWebhooks(cfg *config.Config, opts *SummarizeOptions) []config.WebhookConfig {
	webhooks := make([]config.WebhookConfig, 0, len(cfg.Webhooks)+1)
	webhooks = append(webhooks, cfg.Webhooks...)

	if opts.WebhookURL != "" {
		trigger := config.WebhookTrigger(opts.WebhookTrigger)
		if trigger == "" {
			trigger = config.WebhookTriggerOnSummary
		}

		webhooks = append(webhooks, config.WebhookConfig{
			Name:    "cli",
			URL:     opts.WebhookURL,
			Token:   opts.WebhookToken,
			Trigger: trigger,
			Timeout: config.DefaultWebhookTimeout,
		})
	}

	return webhooks
}

// shouldFireWebhook determines if a webhook should fire for this run.
func shouldFireWebhook(trigger config.WebhookTrigger, hasSummary bool) bool {
	switch trigger {
	case config.WebhookTriggerAlways:
		return true
	case config.WebhookTriggerNever:
		return false
	case config.WebhookTriggerOnSummary:
		return hasSummary
	default:
		// Default to on_summary
		return hasSummary
	}
}
