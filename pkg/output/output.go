// Package output persists the summary and describes a completed run.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Report describes a completed pipeline run. It feeds the console
// output and the webhook notification payload.
type Report struct {
	// Files are the log files that made up the corpus, sorted.
	Files []string

	// Summary is the model's output, empty when the run fell back.
	Summary string

	// Path is where the summary was written, empty if not persisted.
	Path string

	// Model is the model name used for the attempt.
	Model string

	// GeneratedAt is when the run finished.
	GeneratedAt time.Time

	// Duration is how long the model invocation took.
	Duration time.Duration
}

// HasSummary returns true if the run produced a summary.
func (r *Report) HasSummary() bool {
	return r.Summary != ""
}

// WriteSummary writes summary plus a single trailing newline to
// filename inside dir, overwriting any previous summary. It returns the
// written path; on error the path is still returned so the caller can
// report where the write was attempted.
func WriteSummary(dir, filename, summary string) (string, error) {
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(summary+"\n"), 0o644); err != nil {
		return path, fmt.Errorf("writing summary file: %w", err)
	}
	return path, nil
}
