// Package collector selects recent log files and assembles them into a
// single text corpus for analysis.
package collector

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// SelectRecent expands each glob pattern against dir and returns the
// deduplicated, lexicographically sorted paths of regular files modified
// at or after cutoff. Files that fail to stat (e.g. deleted between glob
// and stat) are silently skipped. An empty result is not an error; the
// caller treats it as "nothing to do".
func SelectRecent(dir string, patterns []string, cutoff time.Time) ([]string, error) {
	seen := make(map[string]bool)
	var result []string

	for _, pattern := range patterns {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}

		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
			// Inclusive boundary: a file modified exactly at the cutoff
			// is still inside the window.
			if info.ModTime().Before(cutoff) {
				continue
			}
			if !seen[match] {
				seen[match] = true
				result = append(result, match)
			}
		}
	}

	// Sort for deterministic ordering
	sort.Strings(result)

	return result, nil
}

// LoadCorpus reads each file and joins the contents into one string,
// each file prefixed by a "--- <basename> ---" marker line and separated
// from the next by a blank line. A file that fails to read is reported
// to errw and skipped; one unreadable file does not abort the run.
func LoadCorpus(paths []string, errw io.Writer) string {
	var sections []string

	for _, path := range paths {
		data, err := os.ReadFile(path) // #nosec G304 -- paths come from the configured data dir
		if err != nil {
			fmt.Fprintf(errw, "Error reading %s: %v\n", path, err)
			continue
		}
		sections = append(sections, fmt.Sprintf("--- %s ---\n%s", filepath.Base(path), data))
	}

	return strings.Join(sections, "\n\n")
}
