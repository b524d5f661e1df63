package analysis

import (
	"strings"

	"github.com/codescribe-ai/codescribe/internal/model"
)

// contextPadding is the number of surrounding lines included on each side of
// an element when building prompt context.
const contextPadding = 3

// ExtractContext returns the source window around an element: lines from
// max(1, StartLine-3) through min(lastLine, EndLine+3), newline-joined.
// It is purely a windowing function; no semantic analysis happens here.
func ExtractContext(element model.CodeElement, source string) string {
	lines := strings.Split(source, "\n")

	start := element.StartLine - contextPadding
	if start < 1 {
		start = 1
	}
	end := element.EndLine + contextPadding
	if end > len(lines) {
		end = len(lines)
	}
	if start > end {
		return ""
	}

	return strings.Join(lines[start-1:end], "\n")
}
