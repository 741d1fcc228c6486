package ports

import "context"

// Summarizer turns text into a shorter summary via an external model.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}
