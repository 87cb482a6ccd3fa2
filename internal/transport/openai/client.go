// Package openai adapts the OpenAI-compatible API to the domain embedding and
// completion contracts.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/safemap-cloud/askmap/internal/secret"
)

// newAPIClient builds a client with the key resolved for this invocation.
// Construction only wraps an http.Client, so per-call assembly is fine and
// lets a rotated secret take effect immediately.
func newAPIClient(ctx context.Context, keys secret.Source, baseURL string) (*openai.Client, error) {
	key, err := keys.APIKey(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve api key: %w", err)
	}

	cfg := openai.DefaultConfig(key)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(cfg), nil
}

// parseAPIError extracts a human-readable error from the API response.
// All errors are wrapped with sentinel for correct top-level handling.
func parseAPIError(err error, sentinel error) error {
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		detail := extractDetail(reqErr.Body)
		if detail != "" {
			return fmt.Errorf("model API error %d: %s: %w",
				reqErr.HTTPStatusCode, detail, sentinel)
		}
		return fmt.Errorf("model API error %d: %s: %w",
			reqErr.HTTPStatusCode, string(reqErr.Body), sentinel)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("model API error %d: %s: %w",
			apiErr.HTTPStatusCode, apiErr.Message, sentinel)
	}

	return fmt.Errorf("model request failed: %w", sentinel)
}

// extractDetail extracts the "detail" field from a JSON error body.
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return ""
}
