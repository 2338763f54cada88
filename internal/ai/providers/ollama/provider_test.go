package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/yildizm/LogDelta/internal/ai"
)

func testConfig(baseURL string) *Config {
	return &Config{
		BaseURL:            baseURL,
		DefaultModel:       "llama3.2",
		Timeout:            5 * time.Second,
		MaxTokens:          4096,
		DefaultTemperature: 0.3,
	}
}

func TestProvider_New(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name:    "nil config uses defaults",
			config:  nil,
			wantErr: false,
		},
		{
			name:    "valid config",
			config:  testConfig("http://localhost:11434"),
			wantErr: false,
		},
		{
			name: "missing base URL",
			config: &Config{
				DefaultModel: "llama3.2",
				Timeout:      time.Second,
				MaxTokens:    1024,
			},
			wantErr: true,
		},
		{
			name: "missing model",
			config: &Config{
				BaseURL:   "http://localhost:11434",
				Timeout:   time.Second,
				MaxTokens: 1024,
			},
			wantErr: true,
		},
		{
			name: "temperature out of range",
			config: &Config{
				BaseURL:            "http://localhost:11434",
				DefaultModel:       "llama3.2",
				Timeout:            time.Second,
				MaxTokens:          1024,
				DefaultTemperature: 1.5,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, err := New(tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && provider == nil {
				t.Error("New() returned nil provider without error")
			}
		})
	}
}

func TestProvider_Complete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST request, got %s", r.Method)
		}
		if r.URL.Path != "/api/generate" {
			t.Errorf("expected /api/generate path, got %s", r.URL.Path)
		}

		var req GenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}

		if req.Stream {
			t.Error("expected non-streaming request")
		}
		if req.Model != "llama3.2" {
			t.Errorf("expected default model, got %q", req.Model)
		}
		if req.System == "" {
			t.Error("expected system prompt to be forwarded")
		}

		resp := GenerateResponse{
			Model:           req.Model,
			Response:        "the green deployment regressed",
			Done:            true,
			PromptEvalCount: 42,
			EvalCount:       8,
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	provider, err := New(testConfig(server.URL))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	resp, err := provider.Complete(context.Background(), &ai.CompletionRequest{
		Prompt:       "compare these logs",
		SystemPrompt: "you are a release assistant",
		MaxTokens:    100,
	})
	if err != nil {
		t.Fatalf("Complete() failed: %v", err)
	}

	if resp.Content != "the green deployment regressed" {
		t.Errorf("unexpected content: %q", resp.Content)
	}
	if resp.Usage == nil || resp.Usage.TotalTokens != 50 {
		t.Errorf("unexpected usage: %+v", resp.Usage)
	}
	if resp.FinishReason != "stop" {
		t.Errorf("unexpected finish reason: %q", resp.FinishReason)
	}
}

func TestProvider_CompleteServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(ErrorResponse{Error: "model not loaded"})
	}))
	defer server.Close()

	provider, err := New(testConfig(server.URL))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	_, err = provider.Complete(context.Background(), &ai.CompletionRequest{Prompt: "hi"})
	if err == nil {
		t.Fatal("expected error from server failure")
	}

	var provErr *ai.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("expected ProviderError, got %T", err)
	}
	if provErr.Type != ai.ErrorTypeResponse {
		t.Errorf("expected response error type, got %s", provErr.Type)
	}
}

func TestProvider_CompleteConnectionRefused(t *testing.T) {
	provider, err := New(testConfig("http://127.0.0.1:1"))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	_, err = provider.Complete(context.Background(), &ai.CompletionRequest{Prompt: "hi"})
	if err == nil {
		t.Fatal("expected connection error")
	}
}

func TestProvider_CountTokens(t *testing.T) {
	provider, err := New(testConfig("http://localhost:11434"))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	count, err := provider.CountTokens("abcdefgh")
	if err != nil {
		t.Fatalf("CountTokens() failed: %v", err)
	}
	if count != 2 {
		t.Errorf("CountTokens() = %d, want 2", count)
	}

	if provider.MaxTokens() != 4096 {
		t.Errorf("MaxTokens() = %d, want 4096", provider.MaxTokens())
	}
}
