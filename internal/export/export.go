// Package export serializes documentation records into shareable artifacts.
// Markdown and HTML layouts are a stable output contract; changing them
// breaks downstream consumers.
package export

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/codescribe-ai/codescribe/internal/model"
)

// Format names a supported export format.
type Format string

// Supported export formats.
const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// ErrUnsupportedFormat is returned for an unknown export format. This is an
// invalid-argument failure surfaced to the caller, never silently ignored.
var ErrUnsupportedFormat = errors.New("export: unsupported output format")

// NormalizeFormat maps user-facing format names ("md", "markdown", "html")
// onto a Format.
func NormalizeFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
}

// Export serializes a batch of documentation keyed by file path. Files with
// zero records are omitted from the output entirely.
func Export(docs map[string][]model.GeneratedDocumentation, format Format) (string, error) {
	switch format {
	case FormatMarkdown:
		return exportMarkdown(docs), nil
	case FormatHTML:
		return exportHTML(docs), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// sortedPaths returns the file paths in deterministic order.
func sortedPaths(docs map[string][]model.GeneratedDocumentation) []string {
	paths := make([]string, 0, len(docs))
	for path := range docs {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// signatureFenceTag infers a code-fence language tag from declaration
// syntax: def/class with a trailing colon reads as Python, function/class
// as JavaScript, anything else stays untagged.
func signatureFenceTag(signature string) string {
	s := strings.TrimSpace(signature)
	switch {
	case strings.HasPrefix(s, "def "):
		return "python"
	case strings.HasPrefix(s, "class ") && strings.HasSuffix(s, ":"):
		return "python"
	case strings.HasPrefix(s, "function ") || strings.HasPrefix(s, "async function "):
		return "javascript"
	case strings.HasPrefix(s, "class "):
		return "javascript"
	default:
		return ""
	}
}

// titleKind renders an element kind as a section label ("Function",
// "Method", "Class", "Module").
func titleKind(kind model.ElementKind) string {
	k := string(kind)
	if k == "" {
		return ""
	}
	return strings.ToUpper(k[:1]) + k[1:]
}
