// Package config loads and validates CodeScribe configuration. A config file
// is optional: defaults cover every field, a codescribe.jsonc or
// codescribe.yaml file overrides them, and CODESCRIBE_* environment
// variables override the file. Invalid values fail before any processing.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	jsoncparser "github.com/muhammadmuzzammil1998/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/codescribe-ai/codescribe/internal/llm"
	"github.com/codescribe-ai/codescribe/internal/model"
)

// Default config file names probed in the working directory, in order.
var defaultFiles = []string{"codescribe.jsonc", "codescribe.json", "codescribe.yaml", "codescribe.yml"}

// AIConfig selects and parameterizes the generation backend.
type AIConfig struct {
	Provider string `json:"provider" yaml:"provider"`
	Model    string `json:"model" yaml:"model"`
	URL      string `json:"url,omitempty" yaml:"url,omitempty"`
	APIKey   string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	// TimeoutSeconds bounds each backend call. Zero keeps the client default.
	TimeoutSeconds int `json:"timeout_seconds,omitempty" yaml:"timeout_seconds,omitempty"`
}

// DocumentationSection holds the generation parameters.
type DocumentationSection struct {
	Style               string  `json:"style" yaml:"style"`
	Verbosity           string  `json:"verbosity" yaml:"verbosity"`
	IncludeExamples     bool    `json:"include_examples" yaml:"include_examples"`
	IncludeParameters   bool    `json:"include_parameters" yaml:"include_parameters"`
	IncludeReturnValues bool    `json:"include_return_values" yaml:"include_return_values"`
	IncludeExceptions   bool    `json:"include_exceptions" yaml:"include_exceptions"`
	MaxTokens           int     `json:"max_tokens" yaml:"max_tokens"`
	Temperature         float64 `json:"temperature" yaml:"temperature"`
}

// ProcessingSection controls file discovery and batching.
type ProcessingSection struct {
	OutputFormat  string   `json:"output_format" yaml:"output_format"`
	BatchSize     int      `json:"batch_size" yaml:"batch_size"`
	MaxFileSizeMB int      `json:"max_file_size_mb" yaml:"max_file_size_mb"`
	SkipPatterns  []string `json:"skip_patterns" yaml:"skip_patterns"`
}

// APISection configures the HTTP server.
type APISection struct {
	Host           string   `json:"host" yaml:"host"`
	Port           int      `json:"port" yaml:"port"`
	AllowedOrigins []string `json:"allowed_origins,omitempty" yaml:"allowed_origins,omitempty"`
}

// LoggingSection configures log verbosity.
type LoggingSection struct {
	Verbose bool `json:"verbose" yaml:"verbose"`
	Debug   bool `json:"debug" yaml:"debug"`
}

// Config is the complete runtime configuration.
type Config struct {
	AI            AIConfig             `json:"ai" yaml:"ai"`
	Documentation DocumentationSection `json:"documentation" yaml:"documentation"`
	Processing    ProcessingSection    `json:"processing" yaml:"processing"`
	API           APISection           `json:"api" yaml:"api"`
	Logging       LoggingSection       `json:"logging" yaml:"logging"`
}

// Default returns the built-in configuration.
func Default() *Config {
	doc := model.DefaultDocumentationConfig()
	return &Config{
		AI: AIConfig{
			Provider: "openai",
			Model:    "",
		},
		Documentation: DocumentationSection{
			Style:               string(doc.Style),
			Verbosity:           string(doc.Verbosity),
			IncludeExamples:     doc.IncludeExamples,
			IncludeParameters:   doc.IncludeParameters,
			IncludeReturnValues: doc.IncludeReturnValues,
			IncludeExceptions:   doc.IncludeExceptions,
			MaxTokens:           doc.MaxTokens,
			Temperature:         doc.Temperature,
		},
		Processing: ProcessingSection{
			OutputFormat:  "markdown",
			BatchSize:     5,
			MaxFileSizeMB: 5,
			SkipPatterns:  []string{"*.pyc", "*.min.js", "node_modules/*", "__pycache__/*"},
		},
		API: APISection{
			Host: "127.0.0.1",
			Port: 8000,
		},
	}
}

// Load builds the effective configuration. An explicit path must exist; an
// empty path probes the default file names and falls back to pure defaults
// when none is present. Environment overrides apply last.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		for _, name := range defaultFiles {
			if _, err := os.Stat(name); err == nil {
				path = name
				break
			}
		}
	}

	if path != "" {
		if err := decodeFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parse config %s: %w", path, err)
		}
		return nil
	case ".jsonc", ".json":
		clean := jsoncparser.ToJSON(data)
		if err := validateSchema(clean); err != nil {
			return fmt.Errorf("config %s: %w", path, err)
		}
		if err := json.Unmarshal(clean, cfg); err != nil {
			return fmt.Errorf("parse config %s: %w", path, err)
		}
		return nil
	default:
		return fmt.Errorf("config %s: unsupported extension (want .jsonc, .json, .yaml or .yml)", path)
	}
}

// applyEnv layers CODESCRIBE_* variables over the loaded configuration.
// Credential variables (OPENAI_API_KEY, DEEPSEEK_API_KEY) are read by the
// backend clients directly and are not duplicated here.
func (c *Config) applyEnv() error {
	if v := os.Getenv("CODESCRIBE_AI_PROVIDER"); v != "" {
		c.AI.Provider = v
	}
	if v := os.Getenv("CODESCRIBE_AI_MODEL"); v != "" {
		c.AI.Model = v
	}
	if v := os.Getenv("CODESCRIBE_STYLE"); v != "" {
		c.Documentation.Style = v
	}
	if v := os.Getenv("CODESCRIBE_VERBOSITY"); v != "" {
		c.Documentation.Verbosity = v
	}
	if v := os.Getenv("CODESCRIBE_OUTPUT_FORMAT"); v != "" {
		c.Processing.OutputFormat = v
	}

	intVars := []struct {
		name string
		dest *int
	}{
		{"CODESCRIBE_BATCH_SIZE", &c.Processing.BatchSize},
		{"CODESCRIBE_MAX_FILE_SIZE", &c.Processing.MaxFileSizeMB},
		{"CODESCRIBE_API_PORT", &c.API.Port},
	}
	for _, v := range intVars {
		raw := os.Getenv(v.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%s must be an integer, got %q", v.name, raw)
		}
		*v.dest = n
	}
	return nil
}

// Validate checks every section. The first invalid value aborts the run.
func (c *Config) Validate() error {
	if err := c.DocumentationConfig().Validate(); err != nil {
		return err
	}
	switch c.AI.Provider {
	case "openai", "deepseek", "ollama", "disabled", "":
	default:
		return fmt.Errorf("unknown AI provider %q (want openai, deepseek, ollama or disabled)", c.AI.Provider)
	}
	switch strings.ToLower(c.Processing.OutputFormat) {
	case "markdown", "md", "html", "inline":
	default:
		return fmt.Errorf("unknown output format %q (want markdown, html or inline)", c.Processing.OutputFormat)
	}
	if c.Processing.BatchSize < 1 {
		return fmt.Errorf("batch size must be at least 1, got %d", c.Processing.BatchSize)
	}
	if c.Processing.MaxFileSizeMB < 1 {
		return fmt.Errorf("max file size must be at least 1 MB, got %d", c.Processing.MaxFileSizeMB)
	}
	if c.API.Port < 1 || c.API.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.API.Port)
	}
	return nil
}

// DocumentationConfig maps the documentation section onto the generation
// parameter snapshot.
func (c *Config) DocumentationConfig() model.DocumentationConfig {
	return model.DocumentationConfig{
		Style:               model.Style(c.Documentation.Style),
		Verbosity:           model.Verbosity(c.Documentation.Verbosity),
		IncludeExamples:     c.Documentation.IncludeExamples,
		IncludeParameters:   c.Documentation.IncludeParameters,
		IncludeReturnValues: c.Documentation.IncludeReturnValues,
		IncludeExceptions:   c.Documentation.IncludeExceptions,
		MaxTokens:           c.Documentation.MaxTokens,
		Temperature:         c.Documentation.Temperature,
	}
}

// LLMConfig maps the AI section onto a backend client configuration.
func (c *Config) LLMConfig() llm.Config {
	return llm.Config{
		Backend: c.AI.Provider,
		Model:   c.AI.Model,
		URL:     c.AI.URL,
		APIKey:  c.AI.APIKey,
		Timeout: time.Duration(c.AI.TimeoutSeconds) * time.Second,
	}
}

// MaxFileSizeBytes returns the file size cap in bytes.
func (c *Config) MaxFileSizeBytes() int64 {
	return int64(c.Processing.MaxFileSizeMB) * 1024 * 1024
}
