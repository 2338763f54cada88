package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigPaths defines the config file search paths in priority order
var ConfigPaths = []string{
	"./.logdelta.yaml",               // Project-specific config (highest priority)
	"~/.config/logdelta/config.yaml", // User config
	"/etc/logdelta/config.yaml",      // System config (lowest priority)
}

// Loader handles configuration loading with priority merging
type Loader struct {
	configPaths []string
}

// NewLoader creates a new config loader
func NewLoader() *Loader {
	return &Loader{
		configPaths: ConfigPaths,
	}
}

// LoadConfig loads configuration from multiple sources with priority order:
// 1. Command line flags (handled by caller)
// 2. Environment variables
// 3. ./.logdelta.yaml
// 4. ~/.config/logdelta/config.yaml
// 5. /etc/logdelta/config.yaml
// 6. Built-in defaults
func (l *Loader) LoadConfig(customPath string) (*Config, error) {
	config := DefaultConfig()

	if customPath != "" {
		if err := validateConfigPath(customPath); err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		if err := l.loadFromFile(config, customPath); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", customPath, err)
		}
	} else {
		// Load from standard paths lowest priority first so later files
		// overwrite earlier ones.
		for i := len(l.configPaths) - 1; i >= 0; i-- {
			expandedPath := ExpandPath(l.configPaths[i])
			if !fileExists(expandedPath) {
				continue
			}
			if err := l.loadFromFile(config, expandedPath); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to load config from %s: %v\n", expandedPath, err)
			}
		}
	}

	if err := l.applyEnvOverrides(config); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// loadFromFile loads a YAML file and merges it into the existing config
func (l *Loader) loadFromFile(config *Config, path string) error {
	// #nosec G304 - path is validated by validateConfigPath() before reaching here
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var fileConfig Config
	if err := yaml.Unmarshal(data, &fileConfig); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	mergeConfigs(config, &fileConfig)
	return nil
}

// applyEnvOverrides applies environment variable overrides to the config
func (l *Loader) applyEnvOverrides(config *Config) error {
	envMappings := map[string]func(string) error{
		// AI config
		"LOGDELTA_AI_PROVIDER":    func(v string) error { config.AI.Provider = v; return nil },
		"LOGDELTA_AI_MODEL":       func(v string) error { config.AI.Model = v; return nil },
		"LOGDELTA_AI_ENDPOINT":    func(v string) error { config.AI.Endpoint = v; return nil },
		"LOGDELTA_AI_API_KEY":     func(v string) error { config.AI.APIKey = v; return nil },
		"LOGDELTA_AI_TIMEOUT":     func(v string) error { return parseDuration(v, &config.AI.Timeout) },
		"LOGDELTA_AI_MAX_RETRIES": func(v string) error { return parseInt(v, &config.AI.MaxRetries) },

		// Output config
		"LOGDELTA_OUTPUT_DEFAULT_FORMAT": func(v string) error { config.Output.DefaultFormat = v; return nil },
		"LOGDELTA_OUTPUT_COLOR_MODE":     func(v string) error { config.Output.ColorMode = v; return nil },
		"LOGDELTA_OUTPUT_VERBOSE":        func(v string) error { return parseBool(v, &config.Output.Verbose) },
		"LOGDELTA_OUTPUT_MAX_DIFF_LINES": func(v string) error { return parseInt(v, &config.Output.MaxDiffLines) },
		"LOGDELTA_OUTPUT_MAX_ERRORS":     func(v string) error { return parseInt(v, &config.Output.MaxErrors) },

		// Cache config
		"LOGDELTA_CACHE_DIR": func(v string) error { config.Cache.Dir = v; return nil },
		"LOGDELTA_CACHE_TTL": func(v string) error { return parseDuration(v, &config.Cache.TTL) },

		// Ingest config
		"LOGDELTA_INGEST_FORMAT":    func(v string) error { config.Ingest.Format = v; return nil },
		"LOGDELTA_INGEST_MAX_LINES": func(v string) error { return parseInt(v, &config.Ingest.MaxLines) },
	}

	for envVar, setter := range envMappings {
		if value := os.Getenv(envVar); value != "" {
			if err := setter(value); err != nil {
				return fmt.Errorf("invalid value for %s: %w", envVar, err)
			}
		}
	}

	// Comma-separated lists for exclusions
	if fields := os.Getenv("LOGDELTA_EXCLUDE_FIELDS"); fields != "" {
		config.Exclusions.Fields = splitAndTrim(fields)
	}
	if patterns := os.Getenv("LOGDELTA_EXCLUDE_PATTERNS"); patterns != "" {
		config.Exclusions.Patterns = splitAndTrim(patterns)
	}

	return nil
}

// GetConfigPaths returns the configuration file paths that will be searched
func GetConfigPaths() []string {
	paths := make([]string, 0, len(ConfigPaths))
	for _, path := range ConfigPaths {
		paths = append(paths, ExpandPath(path))
	}
	return paths
}

// FindConfigFile finds the first existing config file in the search paths
func FindConfigFile() (string, bool) {
	for _, path := range ConfigPaths {
		expandedPath := ExpandPath(path)
		if fileExists(expandedPath) {
			return expandedPath, true
		}
	}
	return "", false
}

// validateConfigPath validates that a config path is safe to read
func validateConfigPath(path string) error {
	cleanPath := filepath.Clean(path)

	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	ext := strings.ToLower(filepath.Ext(cleanPath))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("config file must have .yaml or .yml extension")
	}

	return nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// mergeConfigs merges source config into destination config.
// Only non-zero values from source overwrite destination.
func mergeConfigs(dst, src *Config) {
	if src.Version != "" {
		dst.Version = src.Version
	}
	if len(src.Exclusions.Fields) > 0 {
		dst.Exclusions.Fields = src.Exclusions.Fields
	}
	if len(src.Exclusions.Patterns) > 0 {
		dst.Exclusions.Patterns = src.Exclusions.Patterns
	}
	mergeOutputConfig(&dst.Output, &src.Output)
	mergeAIConfig(&dst.AI, &src.AI)
	mergeCacheConfig(&dst.Cache, &src.Cache)
	mergeIngestConfig(&dst.Ingest, &src.Ingest)
}

func mergeOutputConfig(dst, src *OutputConfig) {
	if src.DefaultFormat != "" {
		dst.DefaultFormat = src.DefaultFormat
	}
	if src.ColorMode != "" {
		dst.ColorMode = src.ColorMode
	}
	if src.Verbose {
		dst.Verbose = src.Verbose
	}
	if src.MaxDiffLines != 0 {
		dst.MaxDiffLines = src.MaxDiffLines
	}
	if src.MaxErrors != 0 {
		dst.MaxErrors = src.MaxErrors
	}
}

func mergeAIConfig(dst, src *AIConfig) {
	if src.Provider != "" {
		dst.Provider = src.Provider
	}
	if src.Model != "" {
		dst.Model = src.Model
	}
	if src.Endpoint != "" {
		dst.Endpoint = src.Endpoint
	}
	if src.APIKey != "" {
		dst.APIKey = src.APIKey
	}
	if src.Timeout != 0 {
		dst.Timeout = src.Timeout
	}
	if src.MaxRetries != 0 {
		dst.MaxRetries = src.MaxRetries
	}
}

func mergeCacheConfig(dst, src *CacheConfig) {
	if src.Dir != "" {
		dst.Dir = src.Dir
	}
	if src.TTL != 0 {
		dst.TTL = src.TTL
	}
}

func mergeIngestConfig(dst, src *IngestConfig) {
	if src.Format != "" {
		dst.Format = src.Format
	}
	if src.MaxLines != 0 {
		dst.MaxLines = src.MaxLines
	}
}

// parseDuration parses a duration string into the target
func parseDuration(value string, target *time.Duration) error {
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("invalid duration: %w", err)
	}
	*target = d
	return nil
}

// parseInt parses an integer string into the target
func parseInt(value string, target *int) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid integer: %w", err)
	}
	*target = n
	return nil
}

// parseBool parses a boolean string into the target
func parseBool(value string, target *bool) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean: %w", err)
	}
	*target = b
	return nil
}
