// Package prompt builds the text sent to AI backends. Construction is a
// pure string transform: identical element, context, task and configuration
// always produce byte-identical output.
package prompt

import (
	"strings"

	"github.com/codescribe-ai/codescribe/internal/model"
)

// Task selects the kind of documentation a prompt requests.
type Task string

// Supported prompt tasks.
const (
	TaskDocstring Task = "docstring"
	TaskComments  Task = "comments"
	TaskSummary   Task = "summary"
)

// Builder constructs prompts for a fixed configuration snapshot.
type Builder struct {
	cfg model.DocumentationConfig
}

// NewBuilder creates a prompt builder bound to cfg.
func NewBuilder(cfg model.DocumentationConfig) *Builder {
	return &Builder{cfg: cfg}
}

// Build assembles the prompt for one element: a fixed header block, then
// task-specific instructions parameterized by the configuration.
func (b *Builder) Build(element model.CodeElement, context string, task Task) string {
	base := b.headerBlock(element, context)

	switch task {
	case TaskDocstring:
		return b.docstringPrompt(element, base)
	case TaskComments:
		return b.commentsPrompt(element, base)
	case TaskSummary:
		return b.summaryPrompt(element, base)
	default:
		return base
	}
}

// BuildBatchSummary assembles one combined prompt covering all elements,
// listing each as "<kind>: <name> (<signature>)". Issuing a single call for
// the whole set instead of one per element keeps token usage bounded.
func (b *Builder) BuildBatchSummary(elements []model.CodeElement) string {
	var sb strings.Builder
	sb.WriteString("Code Elements Summary:\n")
	for _, el := range elements {
		sb.WriteString("- ")
		sb.WriteString(string(el.Kind))
		sb.WriteString(": ")
		sb.WriteString(el.Name)
		sb.WriteString(" (")
		sb.WriteString(el.Signature)
		sb.WriteString(")\n")
	}
	sb.WriteString(`
Generate a comprehensive summary that describes:
1. The overall purpose and functionality of these code elements
2. How they work together
3. Key design patterns or architectural decisions
4. Main responsibilities and interactions

Verbosity level: `)
	sb.WriteString(string(b.cfg.Verbosity))
	sb.WriteString("\n")
	return sb.String()
}

// headerBlock renders the fixed-format element header: name, kind,
// signature, then existing docstring and context when present.
func (b *Builder) headerBlock(element model.CodeElement, context string) string {
	var sb strings.Builder
	sb.WriteString("Code Element: ")
	sb.WriteString(element.Name)
	sb.WriteString("\nType: ")
	sb.WriteString(string(element.Kind))
	sb.WriteString("\nSignature: ")
	sb.WriteString(element.Signature)
	sb.WriteString("\n")

	if element.Docstring != "" {
		sb.WriteString("Existing docstring: ")
		sb.WriteString(element.Docstring)
		sb.WriteString("\n")
	}
	if context != "" {
		sb.WriteString("Context:\n")
		sb.WriteString(context)
		sb.WriteString("\n")
	}
	return sb.String()
}

func (b *Builder) docstringPrompt(element model.CodeElement, base string) string {
	var sb strings.Builder
	sb.WriteString(base)
	sb.WriteString("\nGenerate a comprehensive docstring for this ")
	sb.WriteString(string(element.Kind))
	sb.WriteString(" following the ")
	sb.WriteString(string(b.cfg.Style))
	sb.WriteString(" style guide.\n\nStyle Guide:\n")
	sb.WriteString(styleGuide(b.cfg.Style, element.Signature))
	sb.WriteString("\n\nRequirements:\n- Verbosity level: ")
	sb.WriteString(string(b.cfg.Verbosity))
	sb.WriteString("\n")
	sb.WriteString(directive(b.cfg.IncludeParameters, "parameters"))
	sb.WriteString(directive(b.cfg.IncludeReturnValues, "return values"))
	sb.WriteString(directive(b.cfg.IncludeExamples, "examples"))
	sb.WriteString(directive(b.cfg.IncludeExceptions, "exceptions"))
	sb.WriteString("\nPlease generate a well-structured, clear, and comprehensive docstring.\n")
	return sb.String()
}

func (b *Builder) commentsPrompt(element model.CodeElement, base string) string {
	var sb strings.Builder
	sb.WriteString(base)
	sb.WriteString("\nGenerate helpful inline comments for this ")
	sb.WriteString(string(element.Kind))
	sb.WriteString(` that explain:
1. Complex logic or algorithms
2. Business rules or requirements
3. Non-obvious implementation details
4. Important assumptions or constraints

The comments should be:
- Concise but informative
- Focused on the "why" rather than the "what"
- Helpful for future maintainers
- Following `)
	sb.WriteString(string(b.cfg.Style))
	sb.WriteString(` comment style

Return the comments as a list, one per line that needs commenting.
`)
	return sb.String()
}

func (b *Builder) summaryPrompt(element model.CodeElement, base string) string {
	var sb strings.Builder
	sb.WriteString(base)
	sb.WriteString("\nGenerate a concise summary of this ")
	sb.WriteString(string(element.Kind))
	sb.WriteString(` that describes:
1. Its main purpose and functionality
2. Key responsibilities
3. How it fits into the larger system
4. Any important design decisions

The summary should be `)
	sb.WriteString(string(b.cfg.Verbosity))
	sb.WriteString(` in detail and suitable for:
- Code reviews
- Documentation
- New team member onboarding
`)
	return sb.String()
}

// directive renders one inclusion flag as an explicit instruction line, so
// backend behavior stays steerable and testable.
func directive(include bool, what string) string {
	if include {
		return "- Include " + what + "\n"
	}
	return "- Exclude " + what + "\n"
}

// SystemInstruction returns the system-level instruction paired with each
// task's prompt.
func SystemInstruction(task Task) string {
	switch task {
	case TaskDocstring:
		return "You are an expert software developer who writes excellent documentation. " +
			"Generate clear, comprehensive, and well-structured docstrings."
	case TaskComments:
		return "You are an expert software developer who writes helpful inline comments. " +
			"Focus on explaining complex logic, business rules, and non-obvious implementation details."
	case TaskSummary:
		return "You are an expert software architect who writes clear technical summaries. " +
			"Focus on high-level design and system understanding."
	default:
		return "You are an expert software developer who documents code."
	}
}
