package ai

import (
	"context"
	"time"
)

// Provider defines the interface for LLM completion providers.
// The comparison core treats the provider as an opaque text-in/text-out
// service; failures surface to the caller and never abort a comparison.
type Provider interface {
	// Name returns the provider name (e.g., "ollama", "openai")
	Name() string

	// Complete performs text completion
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)

	// CountTokens estimates token count for the given text
	CountTokens(text string) (int, error)

	// MaxTokens returns the maximum context window size
	MaxTokens() int

	// ValidateConfig validates the provider configuration
	ValidateConfig() error

	// Close cleans up provider resources
	Close() error
}

// CompletionRequest represents a request for text completion
type CompletionRequest struct {
	Prompt       string  `json:"prompt"`
	SystemPrompt string  `json:"system_prompt,omitempty"`
	MaxTokens    int     `json:"max_tokens,omitempty"`
	Temperature  float64 `json:"temperature,omitempty"`
	Model        string  `json:"model,omitempty"`
}

// CompletionResponse represents the response from a completion request
type CompletionResponse struct {
	Content      string      `json:"content"`
	FinishReason string      `json:"finish_reason"`
	Usage        *TokenUsage `json:"usage,omitempty"`
	Model        string      `json:"model"`
	CreatedAt    time.Time   `json:"created_at"`
}

// TokenUsage tracks token consumption
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// EstimateTokens gives the rough 4-characters-per-token estimate used
// when a provider has no tokenizer of its own.
func EstimateTokens(text string) int {
	return (len(text) + 3) / 4
}
