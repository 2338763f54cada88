package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/yildizm/LogDelta/internal/ai"
)

// Provider implements the AI provider interface for the OpenAI
// chat completions API.
type Provider struct {
	config  *Config
	client  *http.Client
	baseURL *url.URL
}

// New creates a new OpenAI provider instance
func New(config *Config) (*Provider, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	baseURL, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, ai.NewConfigurationError("openai", "base_url", "invalid base URL: "+err.Error())
	}

	return &Provider{
		config:  config,
		client:  &http.Client{Timeout: config.Timeout},
		baseURL: baseURL,
	}, nil
}

// Name returns the provider name
func (p *Provider) Name() string {
	return "openai"
}

// Complete performs text completion via the chat completions endpoint
func (p *Provider) Complete(ctx context.Context, req *ai.CompletionRequest) (*ai.CompletionResponse, error) {
	startTime := time.Now()

	model := req.Model
	if model == "" {
		model = p.config.DefaultModel
	}

	temperature := req.Temperature
	if temperature == 0 {
		temperature = p.config.DefaultTemperature
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = p.config.MaxTokens
	}

	var messages []ChatMessage
	if req.SystemPrompt != "" {
		messages = append(messages, ChatMessage{Role: "system", Content: req.SystemPrompt})
	}
	messages = append(messages, ChatMessage{Role: "user", Content: req.Prompt})

	chatReq := &ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}

	resp, err := p.chat(ctx, chatReq)
	if err != nil {
		return nil, err
	}

	if len(resp.Choices) == 0 {
		return nil, ai.NewResponseError("openai", "response contained no choices")
	}

	choice := resp.Choices[0]

	return &ai.CompletionResponse{
		Content:      choice.Message.Content,
		FinishReason: choice.FinishReason,
		Usage: &ai.TokenUsage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
		Model:     resp.Model,
		CreatedAt: startTime,
	}, nil
}

// CountTokens estimates token count for the given text
func (p *Provider) CountTokens(text string) (int, error) {
	return ai.EstimateTokens(text), nil
}

// MaxTokens returns the maximum context window size
func (p *Provider) MaxTokens() int {
	return p.config.MaxTokens
}

// ValidateConfig validates the provider configuration
func (p *Provider) ValidateConfig() error {
	return p.config.Validate()
}

// Close cleans up provider resources
func (p *Provider) Close() error {
	return nil
}

func (p *Provider) chat(ctx context.Context, req *ChatCompletionRequest) (*ChatCompletionResponse, error) {
	endpoint := p.baseURL.JoinPath("/v1/chat/completions")

	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, ai.NewRequestError("openai", "failed to marshal request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, ai.NewRequestError("openai", "failed to create request", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.config.APIKey)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, ai.NewConnectionError("openai", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		var errorResp ErrorResponse
		if json.Unmarshal(body, &errorResp) == nil && errorResp.Error.Message != "" {
			return nil, ai.NewResponseError("openai", errorResp.Error.Message)
		}
		return nil, ai.NewResponseError("openai", fmt.Sprintf("request failed with status %d", resp.StatusCode))
	}

	var result ChatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, ai.NewResponseError("openai", "failed to decode response: "+err.Error())
	}

	return &result, nil
}
