package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.AI.Provider != "openai" {
		t.Errorf("AI.Provider = %q, want openai", cfg.AI.Provider)
	}
	if cfg.Documentation.Style != "google" || cfg.Documentation.Verbosity != "medium" {
		t.Errorf("documentation defaults = %+v", cfg.Documentation)
	}
	if cfg.Processing.BatchSize != 5 || cfg.Processing.MaxFileSizeMB != 5 {
		t.Errorf("processing defaults = %+v", cfg.Processing)
	}
	if cfg.API.Port != 8000 {
		t.Errorf("API.Port = %d, want 8000", cfg.API.Port)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadJSONC(t *testing.T) {
	path := writeConfig(t, "codescribe.jsonc", `{
		// AI backend selection
		"ai": {
			"provider": "ollama",
			"model": "codellama"
		},
		"documentation": {
			"style": "numpy",
			"verbosity": "high",
			"max_tokens": 2000,
			"temperature": 0.5
		},
		"processing": {
			"batch_size": 3
		}
	}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.AI.Provider != "ollama" || cfg.AI.Model != "codellama" {
		t.Errorf("ai section = %+v", cfg.AI)
	}
	if cfg.Documentation.Style != "numpy" || cfg.Documentation.MaxTokens != 2000 {
		t.Errorf("documentation section = %+v", cfg.Documentation)
	}
	if cfg.Processing.BatchSize != 3 {
		t.Errorf("BatchSize = %d, want 3", cfg.Processing.BatchSize)
	}
	// Untouched sections keep defaults.
	if cfg.API.Port != 8000 {
		t.Errorf("API.Port = %d, want default 8000", cfg.API.Port)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "codescribe.yaml", `
ai:
  provider: deepseek
  model: deepseek-coder
documentation:
  style: sphinx
  verbosity: low
processing:
  output_format: html
  max_file_size_mb: 2
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.AI.Provider != "deepseek" {
		t.Errorf("AI.Provider = %q, want deepseek", cfg.AI.Provider)
	}
	if cfg.Documentation.Style != "sphinx" || cfg.Documentation.Verbosity != "low" {
		t.Errorf("documentation section = %+v", cfg.Documentation)
	}
	if cfg.Processing.OutputFormat != "html" || cfg.Processing.MaxFileSizeMB != 2 {
		t.Errorf("processing section = %+v", cfg.Processing)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "codescribe.jsonc", `{"ai": {"provder": "openai"}}`)

	if _, err := Load(path); err == nil {
		t.Fatal("Load() expected schema error for misspelled key")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{"bad style", `{"documentation": {"style": "fancy"}}`},
		{"bad provider", `{"ai": {"provider": "bedrock"}}`},
		{"zero batch size", `{"processing": {"batch_size": 0}}`},
		{"temperature out of range", `{"documentation": {"temperature": 3.5}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, "codescribe.jsonc", tt.contents)
			if _, err := Load(path); err == nil {
				t.Errorf("Load() accepted invalid config %s", tt.contents)
			}
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.jsonc")); err == nil {
		t.Fatal("Load() expected error for a missing explicit config file")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CODESCRIBE_AI_PROVIDER", "ollama")
	t.Setenv("CODESCRIBE_AI_MODEL", "llama3.2")
	t.Setenv("CODESCRIBE_STYLE", "jsdoc")
	t.Setenv("CODESCRIBE_VERBOSITY", "high")
	t.Setenv("CODESCRIBE_OUTPUT_FORMAT", "html")
	t.Setenv("CODESCRIBE_BATCH_SIZE", "9")
	t.Setenv("CODESCRIBE_MAX_FILE_SIZE", "7")
	t.Setenv("CODESCRIBE_API_PORT", "9001")

	cfg, err := Load(writeConfig(t, "codescribe.jsonc", `{"ai": {"provider": "openai"}}`))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.AI.Provider != "ollama" || cfg.AI.Model != "llama3.2" {
		t.Errorf("ai section = %+v, want env overrides applied", cfg.AI)
	}
	if cfg.Documentation.Style != "jsdoc" || cfg.Documentation.Verbosity != "high" {
		t.Errorf("documentation section = %+v", cfg.Documentation)
	}
	if cfg.Processing.OutputFormat != "html" || cfg.Processing.BatchSize != 9 || cfg.Processing.MaxFileSizeMB != 7 {
		t.Errorf("processing section = %+v", cfg.Processing)
	}
	if cfg.API.Port != 9001 {
		t.Errorf("API.Port = %d, want 9001", cfg.API.Port)
	}
}

func TestEnvOverrideInvalidInteger(t *testing.T) {
	t.Setenv("CODESCRIBE_BATCH_SIZE", "lots")

	_, err := Load("")
	if err == nil {
		t.Fatal("Load() expected error for non-integer CODESCRIBE_BATCH_SIZE")
	}
	if !strings.Contains(err.Error(), "CODESCRIBE_BATCH_SIZE") {
		t.Errorf("error = %v, want variable name in message", err)
	}
}

func TestMappings(t *testing.T) {
	cfg := Default()
	cfg.AI.Provider = "ollama"
	cfg.AI.TimeoutSeconds = 30

	llmCfg := cfg.LLMConfig()
	if llmCfg.Backend != "ollama" {
		t.Errorf("LLMConfig().Backend = %q", llmCfg.Backend)
	}
	if llmCfg.Timeout.Seconds() != 30 {
		t.Errorf("LLMConfig().Timeout = %v, want 30s", llmCfg.Timeout)
	}

	docCfg := cfg.DocumentationConfig()
	if err := docCfg.Validate(); err != nil {
		t.Errorf("DocumentationConfig() invalid: %v", err)
	}

	if got := cfg.MaxFileSizeBytes(); got != 5*1024*1024 {
		t.Errorf("MaxFileSizeBytes() = %d, want 5 MiB", got)
	}
}
