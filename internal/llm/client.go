// Package llm provides the LLM client abstraction used for cover letter
// generation and resume structuring.
package llm

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Client abstracts the hosted LLM provider.
type Client interface {
	// GenerateText generates plain text for the prompt using the given tier.
	GenerateText(ctx context.Context, prompt string, tier ModelTier) (string, error)
	// GenerateJSON generates a JSON document for the prompt using the given tier.
	GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error)
	// Model returns the provider model name backing a tier.
	Model(tier ModelTier) string
	// Close releases resources held by the client.
	Close() error
}

// GeminiClient implements Client on Google Gemini.
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewClient creates the configured provider client. Gemini is the only
// provider currently wired.
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}
	return NewGeminiClient(ctx, config, apiKey)
}

// NewGeminiClient creates a Gemini-backed client.
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{client: client, config: config}, nil
}

// GenerateText generates plain text content.
func (c *GeminiClient) GenerateText(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	model, err := c.generativeModel(tier)
	if err != nil {
		return "", err
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	return extractTextFromResponse(resp)
}

// GenerateJSON generates JSON content, stripping any markdown code fences
// the model wraps around it.
func (c *GeminiClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	model, err := c.generativeModel(tier)
	if err != nil {
		return "", err
	}
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return "", err
	}
	return CleanJSONBlock(text), nil
}

// Model returns the model name for a tier.
func (c *GeminiClient) Model(tier ModelTier) string {
	return c.config.Model(tier)
}

// Close releases the underlying provider client.
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

func (c *GeminiClient) generativeModel(tier ModelTier) (*genai.GenerativeModel, error) {
	name := c.config.Model(tier)
	if name == "" {
		return nil, fmt.Errorf("no model configured for tier %s", tier)
	}
	model := c.client.GenerativeModel(name)
	model.SetTemperature(0.3) // keep generations consistent between runs
	return model, nil
}
