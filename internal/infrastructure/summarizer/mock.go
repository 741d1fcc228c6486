package summarizer

import "context"

// Mock echoes its input back with a fixed prefix. It backs local development
// and tests where no model endpoint is reachable.
type Mock struct{}

func (Mock) Summarize(_ context.Context, text string) (string, error) {
	return "Mock summary for: " + text, nil
}
