// Package analysis extracts normalized code elements from source text.
//
// Two parsing strategies are provided and selected at initialization:
//
//  1. Tree-sitter: full-grammar parsing with accurate spans, parameters,
//     docstrings and complexity scores.
//  2. Regex: line-oriented pattern matching used when tree-sitter is
//     disabled or a language has no grammar. Cheaper and works everywhere,
//     at the cost of span and parameter precision.
package analysis

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"unicode/utf8"

	"github.com/codescribe-ai/codescribe/internal/model"
)

// ErrUnsupportedLanguage is returned when no parser is registered for a
// requested language.
var ErrUnsupportedLanguage = errors.New("analysis: unsupported language")

// ErrInvalidEncoding is returned when source bytes are not valid UTF-8.
var ErrInvalidEncoding = errors.New("analysis: source is not valid UTF-8")

// Parser is the interface implemented by all language-specific parsers.
// Parse returns the documentable elements of the source in non-decreasing
// start-line order. A parse failure is non-fatal to callers: the engine
// reports it and continues with an empty element sequence.
type Parser interface {
	Parse(content []byte) ([]model.CodeElement, error)
	Language() Language
}

// ParserPriority orders parsers registered for the same language.
type ParserPriority int

// Priorities for parser selection.
const (
	PriorityTreeSitter ParserPriority = 1
	PriorityRegex      ParserPriority = 2
)

type parserEntry struct {
	parser   Parser
	priority ParserPriority
}

// Registry manages the registered parsers per language. A constructed
// registry parses safely from concurrent goroutines; Register and
// SetEnableTreeSitter are initialization-time calls.
type Registry struct {
	parsers          map[Language][]parserEntry
	enableTreeSitter bool
}

// NewRegistry creates a registry with the default parsers registered:
// tree-sitter parsers for Python, JavaScript and TypeScript, plus a regex
// fallback for each.
func NewRegistry() *Registry {
	r := &Registry{
		parsers:          make(map[Language][]parserEntry),
		enableTreeSitter: true,
	}
	r.registerDefaults()
	return r
}

func (r *Registry) registerDefaults() {
	r.Register(NewPythonParser(), PriorityTreeSitter)
	r.Register(NewJavaScriptParser(), PriorityTreeSitter)
	r.Register(NewTypeScriptParser(), PriorityTreeSitter)

	r.Register(NewFallbackParser(LangPython), PriorityRegex)
	r.Register(NewFallbackParser(LangJavaScript), PriorityRegex)
	r.Register(NewFallbackParser(LangTypeScript), PriorityRegex)
}

// Register adds a parser at the given priority.
func (r *Registry) Register(p Parser, priority ParserPriority) {
	lang := p.Language()
	entries := append(r.parsers[lang], parserEntry{parser: p, priority: priority})
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].priority < entries[j].priority
	})
	r.parsers[lang] = entries
}

// SetEnableTreeSitter toggles the full-grammar parsers. When disabled, Get
// selects the regex fallback for every language.
func (r *Registry) SetEnableTreeSitter(enabled bool) {
	r.enableTreeSitter = enabled
}

// Get returns the highest-priority enabled parser for the language.
func (r *Registry) Get(lang Language) (Parser, error) {
	entries, ok := r.parsers[lang]
	if !ok || len(entries) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, lang)
	}
	for _, e := range entries {
		if e.priority == PriorityTreeSitter && !r.enableTreeSitter {
			continue
		}
		return e.parser, nil
	}
	return nil, fmt.Errorf("%w: %s (all parsers disabled)", ErrUnsupportedLanguage, lang)
}

// Supported returns the registered languages in stable order.
func (r *Registry) Supported() []Language {
	langs := make([]Language, 0, len(r.parsers))
	for lang := range r.parsers {
		langs = append(langs, lang)
	}
	sort.Slice(langs, func(i, j int) bool { return langs[i] < langs[j] })
	return langs
}

// ParseSource parses a source string with the parser for lang.
func (r *Registry) ParseSource(source string, lang Language) ([]model.CodeElement, error) {
	p, err := r.Get(lang)
	if err != nil {
		return nil, err
	}
	if !utf8.ValidString(source) {
		return nil, ErrInvalidEncoding
	}
	return p.Parse([]byte(source))
}

// ParseFile reads path as UTF-8 text and parses it. When lang is empty the
// language is detected from the file extension.
func (r *Registry) ParseFile(path string, lang Language) ([]model.CodeElement, error) {
	if lang == "" {
		detected, ok := DetectLanguage(path)
		if !ok {
			return nil, fmt.Errorf("%w: no language for %s", ErrUnsupportedLanguage, path)
		}
		lang = detected
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if !utf8.Valid(content) {
		return nil, fmt.Errorf("%s: %w", path, ErrInvalidEncoding)
	}
	p, err := r.Get(lang)
	if err != nil {
		return nil, err
	}
	return p.Parse(content)
}

// sortElements orders elements by start line, preserving extraction order
// for equal lines, so downstream prompting is deterministic.
func sortElements(elements []model.CodeElement) {
	sort.SliceStable(elements, func(i, j int) bool {
		return elements[i].StartLine < elements[j].StartLine
	})
}
