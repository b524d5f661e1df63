package model

import "fmt"

// Style is a named documentation formatting convention.
type Style string

// Supported documentation styles.
const (
	StyleGoogle Style = "google"
	StyleNumpy  Style = "numpy"
	StyleSphinx Style = "sphinx"
	StyleJSDoc  Style = "jsdoc"
)

// Verbosity is the requested level of documentation detail.
type Verbosity string

// Supported verbosity levels.
const (
	VerbosityLow    Verbosity = "low"
	VerbosityMedium Verbosity = "medium"
	VerbosityHigh   Verbosity = "high"
)

// DocumentationConfig is an immutable snapshot of generation parameters.
// It is constructed once per request and never mutated mid-flight, so
// concurrently issued prompts stay deterministic.
type DocumentationConfig struct {
	Style     Style
	Verbosity Verbosity

	IncludeExamples     bool
	IncludeParameters   bool
	IncludeReturnValues bool
	IncludeExceptions   bool

	// MaxTokens bounds the length of generated output.
	MaxTokens int
	// Temperature controls backend randomness; it does not affect prompt
	// construction.
	Temperature float64
}

// DefaultDocumentationConfig returns the generation defaults: Google style,
// medium verbosity, all inclusion flags on.
func DefaultDocumentationConfig() DocumentationConfig {
	return DocumentationConfig{
		Style:               StyleGoogle,
		Verbosity:           VerbosityMedium,
		IncludeExamples:     true,
		IncludeParameters:   true,
		IncludeReturnValues: true,
		IncludeExceptions:   true,
		MaxTokens:           1000,
		Temperature:         0.3,
	}
}

// Validate checks that the configuration values are usable. Invalid values
// indicate caller misuse and fail the whole request before any processing.
func (c DocumentationConfig) Validate() error {
	switch c.Style {
	case StyleGoogle, StyleNumpy, StyleSphinx, StyleJSDoc:
	default:
		return fmt.Errorf("invalid documentation style %q (want google, numpy, sphinx or jsdoc)", c.Style)
	}
	switch c.Verbosity {
	case VerbosityLow, VerbosityMedium, VerbosityHigh:
	default:
		return fmt.Errorf("invalid verbosity %q (want low, medium or high)", c.Verbosity)
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max tokens must be greater than 0, got %d", c.MaxTokens)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2, got %g", c.Temperature)
	}
	return nil
}

// GeneratedDocumentation pairs a code element with its AI-derived output.
// A record always references the element that produced it.
type GeneratedDocumentation struct {
	Element CodeElement
	// Docstring is the generated documentation text, conformant to the
	// requested style.
	Docstring string
	// InlineComments are short suggested comments, in source order.
	InlineComments []string
	// Summary is one-element or cross-element prose.
	Summary string
	// Metadata is an open key-value bag for provider and telemetry info.
	Metadata map[string]string
}
