package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	loader := NewLoader()
	loader.configPaths = []string{} // no files

	cfg, err := loader.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Output.DefaultFormat != "terminal" {
		t.Errorf("expected defaults when no files exist, got %s", cfg.Output.DefaultFormat)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
output:
  default_format: json
  verbose: true
exclusions:
  fields:
    - timestamp
    - hostname
ai:
  timeout: 10s
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewLoader().LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Output.DefaultFormat != "json" {
		t.Errorf("expected json format from file, got %s", cfg.Output.DefaultFormat)
	}
	if !cfg.Output.Verbose {
		t.Error("expected verbose from file")
	}
	if len(cfg.Exclusions.Fields) != 2 || cfg.Exclusions.Fields[1] != "hostname" {
		t.Errorf("expected exclusion fields from file, got %v", cfg.Exclusions.Fields)
	}
	if cfg.AI.Timeout != 10*time.Second {
		t.Errorf("expected 10s timeout, got %v", cfg.AI.Timeout)
	}
	// Untouched values keep defaults.
	if cfg.AI.Model != "llama3.2" {
		t.Errorf("expected default model preserved, got %s", cfg.AI.Model)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("LOGDELTA_OUTPUT_DEFAULT_FORMAT", "markdown")
	t.Setenv("LOGDELTA_EXCLUDE_FIELDS", "timestamp, request_id")
	t.Setenv("LOGDELTA_CACHE_TTL", "1h")

	loader := NewLoader()
	loader.configPaths = []string{}
	cfg, err := loader.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Output.DefaultFormat != "markdown" {
		t.Errorf("env override not applied, got %s", cfg.Output.DefaultFormat)
	}
	if len(cfg.Exclusions.Fields) != 2 || cfg.Exclusions.Fields[1] != "request_id" {
		t.Errorf("expected trimmed env exclusions, got %v", cfg.Exclusions.Fields)
	}
	if cfg.Cache.TTL != time.Hour {
		t.Errorf("expected 1h TTL, got %v", cfg.Cache.TTL)
	}
}

func TestLoadConfigRejectsInvalidEnv(t *testing.T) {
	t.Setenv("LOGDELTA_AI_TIMEOUT", "soon")

	loader := NewLoader()
	loader.configPaths = []string{}
	if _, err := loader.LoadConfig(""); err == nil {
		t.Error("expected error for malformed duration env var")
	}
}

func TestLoadConfigRejectsBadPath(t *testing.T) {
	if _, err := NewLoader().LoadConfig("../../etc/config.json"); err == nil {
		t.Error("expected error for non-yaml traversal path")
	}
}

func TestValidateConfigPath(t *testing.T) {
	cases := []struct {
		path    string
		wantErr bool
	}{
		{"config.yaml", false},
		{"./conf/app.yml", false},
		{"../escape.yaml", true},
		{"config.json", true},
	}

	for _, tc := range cases {
		err := validateConfigPath(tc.path)
		if (err != nil) != tc.wantErr {
			t.Errorf("validateConfigPath(%q) error = %v, wantErr %v", tc.path, err, tc.wantErr)
		}
	}
}
