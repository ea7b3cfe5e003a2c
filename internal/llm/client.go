// Package llm wraps the generative-text backend used for calculator
// insights. The backend is OpenAI-compatible; a custom base URL lets the
// same client talk to compatibility endpoints of other providers.
package llm

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/alexanderscleaning/quotes-api/pkg/circuitbreaker"
	"github.com/alexanderscleaning/quotes-api/pkg/logger"
	"github.com/alexanderscleaning/quotes-api/pkg/retry"
)

// Client is a thin completion client with a circuit breaker and bounded
// retries. A nil *Client is a valid "not configured" client: Complete returns
// an error immediately and callers fall back.
type Client struct {
	client      *openai.Client
	model       string
	temperature float32
	timeout     time.Duration
	cb          *gobreaker.CircuitBreaker
	retryConfig retry.Config
}

// Config holds client construction parameters.
type Config struct {
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float32
	Timeout     time.Duration
}

// NewClient builds a completion client, or nil when no API key is configured.
func NewClient(cfg Config) *Client {
	if cfg.APIKey == "" {
		logger.Warn("Insight backend not configured: completions disabled")
		return nil
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 8 * time.Second
	}

	logger.Info("Insight backend client initialized",
		zap.String("model", cfg.Model),
		zap.Duration("timeout", timeout))

	return &Client{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		timeout:     timeout,
		cb:          circuitbreaker.NewCircuitBreaker(circuitbreaker.DefaultConfig("insight-backend")),
		retryConfig: retry.InsightConfig(),
	}
}

// ErrNotConfigured is returned by Complete on a nil client.
var ErrNotConfigured = fmt.Errorf("completion client not configured")

// CompleteJSON requests a JSON-object completion for the given prompt and
// returns the raw response text. The call is bounded by the client timeout;
// repeated failures open the breaker and fail fast.
func (c *Client) CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if c == nil {
		return "", ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	messages := []openai.ChatCompletionMessage{
		{
			Role:    openai.ChatMessageRoleSystem,
			Content: systemPrompt,
		},
		{
			Role:    openai.ChatMessageRoleUser,
			Content: userPrompt,
		},
	}

	return circuitbreaker.Execute(c.cb, func() (string, error) {
		return retry.DoWithResult(ctx, c.retryConfig, "insight_completion", func() (string, error) {
			resp, err := c.client.CreateChatCompletion(
				ctx,
				openai.ChatCompletionRequest{
					Model:       c.model,
					Messages:    messages,
					Temperature: c.temperature,
					ResponseFormat: &openai.ChatCompletionResponseFormat{
						Type: openai.ChatCompletionResponseFormatTypeJSONObject,
					},
				},
			)
			if err != nil {
				return "", fmt.Errorf("failed to create completion: %w", err)
			}
			if len(resp.Choices) == 0 {
				return "", fmt.Errorf("completion returned no choices")
			}

			logger.Debug("Completion generated",
				zap.Int("prompt_tokens", resp.Usage.PromptTokens),
				zap.Int("completion_tokens", resp.Usage.CompletionTokens))

			return resp.Choices[0].Message.Content, nil
		})
	})
}
