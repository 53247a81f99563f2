// Package llm invokes a locally served language model to turn an
// analysis prompt into a summary, with a manual-copy fallback for
// machines without one.
package llm

import (
	"context"
	"errors"
)

// ErrUnavailable signals that no summary was produced. Every failure
// mode of a summarizer (missing binary, non-zero exit, timeout, empty
// output) wraps this sentinel so the caller can fall back without
// inspecting the cause.
var ErrUnavailable = errors.New("no summary produced")

// Summarizer produces a summary for a prompt, or reports unavailability.
type Summarizer interface {
	Summarize(ctx context.Context, prompt string) (string, error)
}
