// Package generate orchestrates documentation generation: it builds prompts,
// invokes the AI backend, and normalizes replies into documentation records.
//
// Generation is best-effort. A backend failure never aborts a batch: each
// task kind degrades to a deterministic placeholder instead of propagating
// the error.
package generate

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/codescribe-ai/codescribe/internal/llm"
	"github.com/codescribe-ai/codescribe/internal/logger"
	"github.com/codescribe-ai/codescribe/internal/model"
	"github.com/codescribe-ai/codescribe/internal/prompt"
)

// summaryDegraded is the fixed summary used when the backend fails.
const summaryDegraded = "Error generating summary."

// Generator produces documentation records for code elements through a
// backend client. It is safe for concurrent use: every call reads only its
// own element and context and assembles a fresh result.
type Generator struct {
	client  llm.Client
	cfg     model.DocumentationConfig
	prompts *prompt.Builder
}

// New creates a generator bound to a backend client and an immutable
// configuration snapshot.
func New(client llm.Client, cfg model.DocumentationConfig) *Generator {
	return &Generator{
		client:  client,
		cfg:     cfg,
		prompts: prompt.NewBuilder(cfg),
	}
}

// Config returns the configuration snapshot the generator was built with.
func (g *Generator) Config() model.DocumentationConfig {
	return g.cfg
}

// GenerateDocumentation produces the complete documentation record for one
// element: docstring, inline comments and a single-element summary.
func (g *Generator) GenerateDocumentation(ctx context.Context, element model.CodeElement, contextText string) model.GeneratedDocumentation {
	return model.GeneratedDocumentation{
		Element:        element,
		Docstring:      g.Docstring(ctx, element, contextText),
		InlineComments: g.InlineComments(ctx, element, contextText),
		Summary:        g.Summary(ctx, []model.CodeElement{element}),
		Metadata: map[string]string{
			"backend":    g.client.Backend(),
			"model":      g.client.Model(),
			"request_id": uuid.NewString(),
		},
	}
}

// Docstring generates a style-conformant docstring for the element. On
// backend failure it returns the deterministic placeholder
// "TODO: add documentation for <name>".
func (g *Generator) Docstring(ctx context.Context, element model.CodeElement, contextText string) string {
	p := g.prompts.Build(element, contextText, prompt.TaskDocstring)

	text, err := g.complete(ctx, p, prompt.TaskDocstring, g.cfg.MaxTokens)
	if err != nil {
		logger.Error("docstring generation for %s failed: %v", element.Name, err)
		return "TODO: add documentation for " + element.Name
	}
	return strings.TrimSpace(text)
}

// InlineComments generates suggested comments for the element, one per
// returned line. On backend failure it returns an empty list.
func (g *Generator) InlineComments(ctx context.Context, element model.CodeElement, contextText string) []string {
	p := g.prompts.Build(element, contextText, prompt.TaskComments)

	// Comments are short; half the docstring budget is plenty.
	text, err := g.complete(ctx, p, prompt.TaskComments, g.cfg.MaxTokens/2)
	if err != nil {
		logger.Error("comment generation for %s failed: %v", element.Name, err)
		return nil
	}

	var comments []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			comments = append(comments, line)
		}
	}
	return comments
}

// Summary generates prose covering the given elements. A multi-element set
// is summarized with one combined backend call rather than one per element.
// On backend failure it returns a fixed error summary.
func (g *Generator) Summary(ctx context.Context, elements []model.CodeElement) string {
	if len(elements) == 0 {
		return "No code elements provided."
	}

	var p string
	if len(elements) == 1 {
		p = g.prompts.Build(elements[0], "", prompt.TaskSummary)
	} else {
		p = g.prompts.BuildBatchSummary(elements)
	}

	text, err := g.complete(ctx, p, prompt.TaskSummary, g.cfg.MaxTokens)
	if err != nil {
		logger.Error("summary generation failed: %v", err)
		return summaryDegraded
	}
	return strings.TrimSpace(text)
}

func (g *Generator) complete(ctx context.Context, p string, task prompt.Task, maxTokens int) (string, error) {
	return g.client.Complete(ctx, p, llm.CompletionOptions{
		MaxTokens:    maxTokens,
		Temperature:  g.cfg.Temperature,
		SystemPrompt: prompt.SystemInstruction(task),
	})
}
