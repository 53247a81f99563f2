package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// generatePath is the Ollama-compatible completion endpoint.
const generatePath = "/api/generate"

// APIRunner sends the prompt to an Ollama-compatible HTTP endpoint
// instead of spawning the runner binary. It implements Summarizer.
type APIRunner struct {
	endpoint string
	model    string
	timeout  time.Duration
	client   *http.Client
}

// APIRunnerOption configures an APIRunner.
type APIRunnerOption func(*APIRunner)

// WithAPITimeout overrides the request timeout.
func WithAPITimeout(d time.Duration) APIRunnerOption {
	return func(a *APIRunner) { a.timeout = d }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) APIRunnerOption {
	return func(a *APIRunner) { a.client = c }
}

// NewAPIRunner creates a runner that talks to an Ollama-compatible
// server, e.g. http://localhost:11434.
func NewAPIRunner(endpoint, model string, opts ...APIRunnerOption) *APIRunner {
	a := &APIRunner{
		endpoint: strings.TrimSuffix(endpoint, "/"),
		model:    model,
		timeout:  DefaultTimeout,
		client:   &http.Client{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// generateRequest is the /api/generate request body.
type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

// generateResponse is the /api/generate response body.
type generateResponse struct {
	Response string `json:"response"`
}

// Summarize posts the prompt to the endpoint. All failures wrap
// ErrUnavailable, mirroring the subprocess runner.
func (a *APIRunner) Summarize(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	payload, err := json.Marshal(generateRequest{
		Model:  a.model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("encoding request: %v: %w", err, ErrUnavailable)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint+generatePath, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("creating request: %v: %w", err, ErrUnavailable)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("%s timed out after %s: %w", a.endpoint, a.timeout, ErrUnavailable)
		}
		return "", fmt.Errorf("request failed: %v: %w", err, ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("%s returned status %d: %s: %w",
			a.endpoint, resp.StatusCode, firstLine(string(body)), ErrUnavailable)
	}

	var gen generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&gen); err != nil {
		return "", fmt.Errorf("decoding response: %v: %w", err, ErrUnavailable)
	}

	summary := strings.TrimSpace(gen.Response)
	if summary == "" {
		return "", fmt.Errorf("%s produced no output: %w", a.endpoint, ErrUnavailable)
	}

	return summary, nil
}
