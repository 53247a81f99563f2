// Package prompt builds the analysis prompt sent to the model.
package prompt

// Preamble is the fixed instruction text placed ahead of the log corpus.
const Preamble = "Here are my productivity logs for this week. Please analyze and suggest ways I can " +
	"improve my workflow, manage energy, and reduce distractions. " +
	"Summarize patterns, recommend changes, and highlight both strengths and weaknesses."

// Build wraps a log corpus in the fixed instructional template.
// No escaping or truncation is applied; an oversized corpus is passed
// through as-is.
func Build(corpus string) string {
	return Preamble + "\n\nLOGS:\n" + corpus
}
