package ollama

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

// Provider implements the AI provider interface for Ollama
type Provider struct {
	config  *Config
	client  *http.Client
	baseURL *url.URL
}

// New creates a new Ollama provider instance
func New(config *Config) (*Provider, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	baseURL, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, ai.NewConfigurationError("ollama", "base_url", "invalid base URL: "+err.Error())
	}

	return &Provider{
		config:  config,
		client:  &http.Client{Timeout: config.Timeout},
		baseURL: baseURL,
	}, nil
}

// Name returns the provider name
func (p *Provider) Name() string {
	return "ollama"
}

// Complete performs text completion
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

	options := &Options{
		Temperature: temperature,
	}

	if req.MaxTokens > 0 {
		options.NumPredict = req.MaxTokens
	}

	ollamaReq := &GenerateRequest{
		Model:   model,
		Prompt:  req.Prompt,
		System:  req.SystemPrompt,
		Stream:  false,
		Options: options,
	}

	resp, err := p.generate(ctx, ollamaReq)
	if err != nil {
		return nil, err
	}

	usage := &ai.TokenUsage{
		PromptTokens:     resp.PromptEvalCount,
		CompletionTokens: resp.EvalCount,
		TotalTokens:      resp.PromptEvalCount + resp.EvalCount,
	}

	return &ai.CompletionResponse{
		Content:      resp.Response,
		FinishReason: "stop",
		Usage:        usage,
		Model:        resp.Model,
		CreatedAt:    startTime,
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

// generate performs a single generation request
func (p *Provider) generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	endpoint := p.baseURL.JoinPath("/api/generate")

	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, ai.NewRequestError("ollama", "failed to marshal request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, ai.NewRequestError("ollama", "failed to create request", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, ai.NewConnectionError("ollama", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		var errorResp ErrorResponse
		if json.Unmarshal(body, &errorResp) == nil && errorResp.Error != "" {
			return nil, ai.NewResponseError("ollama", errorResp.Error)
		}
		return nil, ai.NewResponseError("ollama", fmt.Sprintf("request failed with status %d", resp.StatusCode))
	}

	var result GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, ai.NewResponseError("ollama", "failed to decode response: "+err.Error())
	}

	return &result, nil
}
