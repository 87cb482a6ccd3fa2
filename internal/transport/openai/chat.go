package openai

import (
	"context"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/safemap-cloud/askmap/internal/domain"
	"github.com/safemap-cloud/askmap/internal/metrics"
	"github.com/safemap-cloud/askmap/internal/secret"
)

// Completer generates chat completions via the OpenAI-compatible API.
type Completer struct {
	keys        secret.Source
	baseURL     string
	model       string
	temperature float32
	logger      *zap.Logger
}

// CompleterConfig holds the completion provider settings.
type CompleterConfig struct {
	Keys        secret.Source
	BaseURL     string
	Model       string
	Temperature float32
	Logger      *zap.Logger
}

// NewCompleter creates an OpenAI-compatible completion provider.
func NewCompleter(cfg *CompleterConfig) *Completer {
	return &Completer{
		keys:        cfg.Keys,
		baseURL:     cfg.BaseURL,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		logger:      cfg.Logger,
	}
}

// Complete implements domain.Completer. Returns the first choice's content,
// or an empty string when the provider responds with no choices.
func (c *Completer) Complete(ctx context.Context, prompt domain.Prompt) (string, error) {
	client, err := newAPIClient(ctx, c.keys, c.baseURL)
	if err != nil {
		return "", parseAPIError(err, domain.ErrCompletionProviderError)
	}

	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.System},
			{Role: openai.ChatMessageRoleUser, Content: prompt.User},
		},
	}

	start := time.Now()
	resp, err := client.CreateChatCompletion(ctx, req)
	duration := time.Since(start)

	if err != nil {
		metrics.CompletionRequestsTotal.WithLabelValues(c.model, "error").Inc()
		return "", parseAPIError(err, domain.ErrCompletionProviderError)
	}

	metrics.CompletionRequestsTotal.WithLabelValues(c.model, "success").Inc()
	metrics.CompletionRequestDuration.WithLabelValues(c.model).Observe(duration.Seconds())

	if resp.Usage.TotalTokens > 0 {
		metrics.CompletionTokensTotal.WithLabelValues(c.model, "prompt").
			Add(float64(resp.Usage.PromptTokens))
		metrics.CompletionTokensTotal.WithLabelValues(c.model, "completion").
			Add(float64(resp.Usage.CompletionTokens))
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
