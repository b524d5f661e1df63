package llm

import (
	"context"
	"net/http"
	"time"
)

const deepSeekBaseURL = "https://api.deepseek.com/v1"

// DeepSeekClient implements Client using DeepSeek's OpenAI-compatible chat
// completions API.
type DeepSeekClient struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewDeepSeekClient creates a new DeepSeek client.
func NewDeepSeekClient(apiKey, model string, timeout time.Duration) *DeepSeekClient {
	return &DeepSeekClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: deepSeekBaseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Complete generates a text completion using DeepSeek.
func (c *DeepSeekClient) Complete(ctx context.Context, prompt string, opts CompletionOptions) (string, error) {
	return completeChat(ctx, c.client, c.baseURL, c.apiKey, "deepseek", chatRequest{
		Model:       c.model,
		Messages:    chatMessages(prompt, opts.SystemPrompt),
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
	})
}

// Model returns the model identifier.
func (c *DeepSeekClient) Model() string {
	return c.model
}

// Backend returns "deepseek".
func (c *DeepSeekClient) Backend() string {
	return "deepseek"
}
