package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yildizm/LogDelta/internal/ai"
	"github.com/yildizm/LogDelta/internal/ai/providers/ollama"
	"github.com/yildizm/LogDelta/internal/ai/providers/openai"
	"github.com/yildizm/LogDelta/internal/analyzer"
	"github.com/yildizm/LogDelta/internal/config"
	"github.com/yildizm/LogDelta/internal/docstore"
)

// docContextMaxBytes caps how much scanned documentation goes into the
// summarizer prompt.
const docContextMaxBytes = 8192

// createAIProvider creates an AI provider based on configuration.
func createAIProvider(aiConfig *config.AIConfig) (ai.Provider, error) {
	switch strings.ToLower(aiConfig.Provider) {
	case "openai":
		return createOpenAIProvider(aiConfig)
	case "ollama":
		return createOllamaProvider(aiConfig)
	default:
		return nil, fmt.Errorf("unsupported AI provider: %s", aiConfig.Provider)
	}
}

func createOllamaProvider(aiConfig *config.AIConfig) (ai.Provider, error) {
	ollamaConfig := ollama.DefaultConfig()
	if aiConfig.Endpoint != "" {
		ollamaConfig.BaseURL = aiConfig.Endpoint
	}
	if aiConfig.Model != "" {
		ollamaConfig.DefaultModel = aiConfig.Model
	}
	if aiConfig.Timeout > 0 {
		ollamaConfig.Timeout = aiConfig.Timeout
	}

	return ollama.New(ollamaConfig)
}

func createOpenAIProvider(aiConfig *config.AIConfig) (ai.Provider, error) {
	openaiConfig := openai.DefaultConfig()
	openaiConfig.APIKey = aiConfig.APIKey
	if aiConfig.Endpoint != "" {
		openaiConfig.BaseURL = aiConfig.Endpoint
	}
	if aiConfig.Model != "" {
		openaiConfig.DefaultModel = aiConfig.Model
	}
	if aiConfig.Timeout > 0 {
		openaiConfig.Timeout = aiConfig.Timeout
	}

	return openai.New(openaiConfig)
}

// summarizeReport asks the configured provider for a verdict, with
// optional documentation context scanned from docsPath.
func summarizeReport(ctx context.Context, cfg *config.Config, report *analyzer.RunReport, docsPath string, timeout time.Duration) (string, error) {
	provider, err := createAIProvider(&cfg.AI)
	if err != nil {
		return "", fmt.Errorf("failed to create AI provider: %w", err)
	}
	defer func() { _ = provider.Close() }()

	docContext := ""
	if docsPath != "" {
		docContext = collectDocContext(cfg, docsPath)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return ai.NewSummarizer(provider).SummarizeWithContext(ctx, report, docContext)
}

// collectDocContext scans docsPath for documentation, using the file
// cache so repeated runs against the same repository skip the walk.
// Scan failures degrade to an empty context.
func collectDocContext(cfg *config.Config, docsPath string) string {
	cache := docstore.NewCache(config.ExpandPath(cfg.Cache.Dir), cfg.Cache.TTL)
	store := docstore.NewStore(docstore.NewScanner(), cache)

	docs, err := store.Collect(docsPath)
	if err != nil {
		compareLog.Warn("documentation scan failed: %v", err)
		return ""
	}

	compareLog.Info("collected %d documentation files from %s", len(docs), docsPath)
	return docstore.BuildContext(docs, docContextMaxBytes)
}
