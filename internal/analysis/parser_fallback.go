package analysis

import (
	"regexp"
	"strings"

	"github.com/codescribe-ai/codescribe/internal/model"
)

// FallbackParser is a line-oriented regex parser used when tree-sitter is
// unavailable or disabled. It recognizes function declarations, class
// declarations and arrow-function bindings. Spans are not refined:
// EndLine always equals StartLine, an accepted precision loss that the
// context extractor is written to tolerate.
type FallbackParser struct {
	lang Language
}

// NewFallbackParser creates a regex fallback parser for lang.
func NewFallbackParser(lang Language) *FallbackParser {
	return &FallbackParser{lang: lang}
}

// Language returns the language this fallback was registered for.
func (p *FallbackParser) Language() Language {
	return p.lang
}

var (
	fallbackFunctionRe = regexp.MustCompile(`function\s+(\w+)\s*\([^)]*\)\s*{`)
	fallbackClassRe    = regexp.MustCompile(`class\s+(\w+)(?:\s+extends\s+\w+)?\s*{`)
	fallbackArrowRe    = regexp.MustCompile(`(?:const|let|var)\s+(\w+)\s*=\s*\([^)]*\)\s*=>\s*{`)
	fallbackPyDefRe    = regexp.MustCompile(`^def\s+(\w+)\s*\(.*\)\s*(?:->\s*[^:]+)?:`)
	fallbackPyClassRe  = regexp.MustCompile(`^class\s+(\w+).*:`)
)

// Parse scans line by line for declaration patterns.
func (p *FallbackParser) Parse(content []byte) ([]model.CodeElement, error) {
	var elements []model.CodeElement
	lines := strings.Split(string(content), "\n")

	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		lineNo := i + 1

		if p.lang == LangPython {
			if m := fallbackPyDefRe.FindStringSubmatch(line); m != nil {
				elements = append(elements, fallbackElement(m[1], model.KindFunction, line, lineNo))
				continue
			}
			if m := fallbackPyClassRe.FindStringSubmatch(line); m != nil {
				elements = append(elements, fallbackElement(m[1], model.KindClass, line, lineNo))
			}
			continue
		}

		if m := fallbackFunctionRe.FindStringSubmatch(line); m != nil {
			elements = append(elements, fallbackElement(m[1], model.KindFunction, line, lineNo))
			continue
		}
		if m := fallbackClassRe.FindStringSubmatch(line); m != nil {
			elements = append(elements, fallbackElement(m[1], model.KindClass, line, lineNo))
			continue
		}
		if m := fallbackArrowRe.FindStringSubmatch(line); m != nil {
			elements = append(elements, fallbackElement(m[1], model.KindFunction, line, lineNo))
		}
	}

	return elements, nil
}

func fallbackElement(name string, kind model.ElementKind, line string, lineNo int) model.CodeElement {
	return model.CodeElement{
		Name:       name,
		Kind:       kind,
		Signature:  line,
		StartLine:  lineNo,
		EndLine:    lineNo,
		Complexity: 1,
	}
}
