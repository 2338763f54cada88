package config

import (
	"fmt"
	"time"

	"github.com/yildizm/LogDelta/internal/compare"
	"github.com/yildizm/LogDelta/internal/scorer"
)

// Config holds the complete application configuration
type Config struct {
	Version    string                  `yaml:"version" json:"version"`
	Exclusions compare.ExclusionConfig `yaml:"exclusions" json:"exclusions"`
	Output     OutputConfig            `yaml:"output" json:"output"`
	Scoring    ScoringConfig           `yaml:"-" json:"scoring"`
	AI         AIConfig                `yaml:"ai" json:"ai"`
	Cache      CacheConfig             `yaml:"cache" json:"cache"`
	Ingest     IngestConfig            `yaml:"ingest" json:"ingest"`
}

// ScoringConfig surfaces the scorer's fixed thresholds for display and
// machine-readable config dumps. The thresholds are not configurable.
type ScoringConfig struct {
	ErrorThreshold          int `yaml:"-" json:"error_threshold"`
	HighConfidenceThreshold int `yaml:"-" json:"high_confidence_threshold"`
}

// OutputConfig configures report formatting and display
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"` // terminal|json|markdown
	ColorMode     string `yaml:"color_mode" json:"color_mode"`         // auto|always|never
	Verbose       bool   `yaml:"verbose" json:"verbose"`
	MaxDiffLines  int    `yaml:"max_diff_lines" json:"max_diff_lines"` // cap on rendered diff entries per pair
	MaxErrors     int    `yaml:"max_errors" json:"max_errors"`         // cap on rendered error entries per color
}

// AIConfig configures the optional summarization provider
type AIConfig struct {
	Provider   string        `yaml:"provider" json:"provider"` // ollama|openai
	Model      string        `yaml:"model" json:"model"`
	Endpoint   string        `yaml:"endpoint" json:"endpoint"`
	APIKey     string        `yaml:"api_key" json:"api_key"`
	Timeout    time.Duration `yaml:"timeout" json:"timeout"`
	MaxRetries int           `yaml:"max_retries" json:"max_retries"`
}

// CacheConfig configures the repository-scan file cache
type CacheConfig struct {
	Dir string        `yaml:"dir" json:"dir"`
	TTL time.Duration `yaml:"ttl" json:"ttl"`
}

// IngestConfig configures log ingestion
type IngestConfig struct {
	Format   string `yaml:"format" json:"format"` // auto|csv|json|logfmt|text
	MaxLines int    `yaml:"max_lines" json:"max_lines"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		Exclusions: compare.ExclusionConfig{
			Fields:   []string{"timestamp", "time", "ts", "duration", "elapsed"},
			Patterns: []string{`(_|\b)(id|uuid|guid)$`, `^trace`, `^span`},
		},
		Scoring: ScoringConfig{
			ErrorThreshold:          scorer.ErrorScoreThreshold,
			HighConfidenceThreshold: scorer.HighConfidenceThreshold,
		},
		Output: OutputConfig{
			DefaultFormat: "terminal",
			ColorMode:     "auto",
			Verbose:       false,
			MaxDiffLines:  50,
			MaxErrors:     20,
		},
		AI: AIConfig{
			Provider:   "ollama",
			Model:      "llama3.2",
			Endpoint:   "http://localhost:11434",
			APIKey:     "",
			Timeout:    30 * time.Second,
			MaxRetries: 3,
		},
		Cache: CacheConfig{
			Dir: "~/.cache/logdelta",
			TTL: 15 * time.Minute,
		},
		Ingest: IngestConfig{
			Format:   "auto",
			MaxLines: 100000,
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateOutputConfig(); err != nil {
		return err
	}
	if err := c.validateAIConfig(); err != nil {
		return err
	}
	return c.validateIngestConfig()
}

func (c *Config) validateOutputConfig() error {
	if c.Output.DefaultFormat != "" {
		validFormats := map[string]bool{
			"terminal": true,
			"json":     true,
			"markdown": true,
			"csv":      true,
		}
		if !validFormats[c.Output.DefaultFormat] {
			return fmt.Errorf("invalid output format: %s (must be one of: terminal, json, markdown, csv)", c.Output.DefaultFormat)
		}
	}
	if c.Output.ColorMode != "" {
		validModes := map[string]bool{
			"auto":   true,
			"always": true,
			"never":  true,
		}
		if !validModes[c.Output.ColorMode] {
			return fmt.Errorf("invalid color mode: %s (must be one of: auto, always, never)", c.Output.ColorMode)
		}
	}
	if c.Output.MaxDiffLines < 0 {
		return fmt.Errorf("max_diff_lines cannot be negative")
	}
	if c.Output.MaxErrors < 0 {
		return fmt.Errorf("max_errors cannot be negative")
	}
	return nil
}

func (c *Config) validateAIConfig() error {
	if c.AI.Provider != "" {
		validProviders := map[string]bool{
			"ollama": true,
			"openai": true,
		}
		if !validProviders[c.AI.Provider] {
			return fmt.Errorf("invalid AI provider: %s (must be one of: ollama, openai)", c.AI.Provider)
		}
	}
	if c.AI.MaxRetries < 0 {
		return fmt.Errorf("ai max_retries cannot be negative")
	}
	if c.AI.Timeout < 0 {
		return fmt.Errorf("ai timeout cannot be negative")
	}
	return nil
}

func (c *Config) validateIngestConfig() error {
	if c.Ingest.Format != "" {
		validFormats := map[string]bool{
			"auto":   true,
			"csv":    true,
			"json":   true,
			"logfmt": true,
			"text":   true,
		}
		if !validFormats[c.Ingest.Format] {
			return fmt.Errorf("invalid ingest format: %s (must be one of: auto, csv, json, logfmt, text)", c.Ingest.Format)
		}
	}
	if c.Ingest.MaxLines < 0 {
		return fmt.Errorf("ingest max_lines cannot be negative")
	}
	return nil
}
