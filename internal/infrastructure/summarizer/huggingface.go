// Package summarizer contains the text summarization backends.
package summarizer

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

const (
	DefaultBaseURL = "https://api-inference.huggingface.co"
	DefaultModel   = "facebook/bart-large-cnn"

	maxErrorBody = 4 << 10
)

// HuggingFace calls the hosted inference API's summarization task.
type HuggingFace struct {
	baseURL    string
	model      string
	token      string
	httpClient *http.Client
}

// NewHuggingFace builds a client. A zero timeout leaves the call bounded only
// by the request context.
func NewHuggingFace(baseURL, model, token string, timeout time.Duration) *HuggingFace {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	return &HuggingFace{
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Summarize calls POST /models/{model} with {"inputs": text}.
func (c *HuggingFace) Summarize(ctx context.Context, text string) (string, error) {
	path := "/models/" + c.model
	body, err := json.Marshal(map[string]string{"inputs": text})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("huggingface %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("huggingface %s: %w", path, err)
	}
	defer resp.Body.Close()

	if err := checkResp(resp, path); err != nil {
		return "", err
	}

	var result []struct {
		SummaryText string `json:"summary_text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("huggingface %s: decode: %w", path, err)
	}
	if len(result) == 0 || strings.TrimSpace(result[0].SummaryText) == "" {
		return "", fmt.Errorf("huggingface %s: empty summary", path)
	}
	return result[0].SummaryText, nil
}

// checkResp returns an error carrying the upstream status and body for any
// non-2xx response.
func checkResp(resp *http.Response, path string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return fmt.Errorf("huggingface %s returned %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
}
