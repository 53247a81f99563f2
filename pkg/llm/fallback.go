package llm

import (
	"context"
	"fmt"
	"io"
)

// Fallback prints the prompt for manual pasting into an external chat
// interface. It implements Summarizer but never produces a summary; it
// is an escape hatch, not a producer.
type Fallback struct {
	w io.Writer
}

// NewFallback creates a fallback that prints to w.
func NewFallback(w io.Writer) *Fallback {
	return &Fallback{w: w}
}

// Summarize prints the prompt with copy instructions and returns
// ErrUnavailable.
func (f *Fallback) Summarize(_ context.Context, prompt string) (string, error) {
	fmt.Fprintln(f.w, "\n--- PROMPT FOR MANUAL USE ---")
	fmt.Fprintln(f.w)
	fmt.Fprintln(f.w, prompt)
	fmt.Fprintln(f.w)
	fmt.Fprintln(f.w, "Paste the above prompt into ChatGPT or Copilot Chat for analysis.")
	return "", ErrUnavailable
}
