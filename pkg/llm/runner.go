package llm

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// DefaultTimeout bounds a single model invocation.
const DefaultTimeout = 120 * time.Second

// Runner invokes a model through a local runner binary (ollama by
// default), feeding the prompt on stdin and reading the summary from
// stdout. It implements Summarizer.
type Runner struct {
	binary  string
	args    []string
	timeout time.Duration
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithBinary replaces the runner command and its full argument list.
// The prompt is always fed on stdin regardless of the command.
func WithBinary(binary string, args ...string) RunnerOption {
	return func(r *Runner) {
		r.binary = binary
		r.args = args
	}
}

// WithTimeout overrides the invocation timeout.
func WithTimeout(d time.Duration) RunnerOption {
	return func(r *Runner) { r.timeout = d }
}

// NewRunner creates a Runner for the given model name, invoking
// "ollama run <model>" unless WithBinary overrides it.
func NewRunner(model string, opts ...RunnerOption) *Runner {
	r := &Runner{
		binary:  "ollama",
		args:    []string{"run", model},
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Summarize runs the prompt through the model process. Any failure
// (missing binary, non-zero exit, timeout, empty output) wraps
// ErrUnavailable. The summary is trimmed of surrounding whitespace.
func (r *Runner) Summarize(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.binary, r.args...) // #nosec G204 -- runner command comes from configuration
	cmd.Stdin = strings.NewReader(prompt)
	// Without a wait delay, Run blocks past the deadline until every
	// descendant holding the stdout pipe exits. One second gives the
	// killed child time to flush before the pipe is abandoned.
	cmd.WaitDelay = time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("%s timed out after %s: %w", r.binary, r.timeout, ErrUnavailable)
		}
		if msg := firstLine(stderr.String()); msg != "" {
			return "", fmt.Errorf("%s failed: %s: %w", r.binary, msg, ErrUnavailable)
		}
		return "", fmt.Errorf("%s failed: %v: %w", r.binary, err, ErrUnavailable)
	}

	summary := strings.TrimSpace(stdout.String())
	if summary == "" {
		return "", fmt.Errorf("%s produced no output: %w", r.binary, ErrUnavailable)
	}

	return summary, nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
