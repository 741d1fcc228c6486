package domain

import (
	"strings"
	"time"
)

// Summary pairs submitted text with its model-generated summary. Both texts
// are fixed at creation; there is no update path.
type Summary struct {
	ID           string    `json:"id"`
	OriginalText string    `json:"originalText"`
	SummaryText  string    `json:"summaryText"`
	OwnerID      string    `json:"ownerId"`
	CreatedAt    time.Time `json:"createdAt"`
}

func ValidateSummaryText(text string) error {
	if strings.TrimSpace(text) == "" {
		return Invalid("Text is required.")
	}
	return nil
}
