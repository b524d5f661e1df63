// Package model defines the shared data structures flowing through the
// documentation pipeline: parsed code elements, generation configuration,
// and generated documentation records.
package model

// ElementKind represents the type of a documentable code element.
type ElementKind string

// Predefined element kinds.
const (
	KindFunction ElementKind = "function"
	KindMethod   ElementKind = "method"
	KindClass    ElementKind = "class"
	KindModule   ElementKind = "module"
)

// Parameter describes a single declared parameter of a function or method.
type Parameter struct {
	Name string
	// Type is the declared type annotation, empty when the source carries none.
	Type string
	// Default is the raw source text of the default value, empty when the
	// parameter has no default. Defaults always occupy the trailing
	// positions of the parameter list.
	Default string
}

// CodeElement represents one documentable unit extracted from source code.
// Elements are created fresh per parse call and never mutated downstream.
type CodeElement struct {
	Name      string
	Kind      ElementKind
	Signature string
	// Docstring holds pre-existing documentation found in the source,
	// verbatim. Empty when the element is undocumented.
	Docstring string
	// StartLine and EndLine are 1-based inclusive. The regex fallback
	// parser does not refine spans, so EndLine may equal StartLine even
	// for multi-line declarations.
	StartLine  int
	EndLine    int
	Parameters []Parameter
	ReturnType string
	// Complexity is a cyclomatic-style score: 1 plus the number of
	// branches, loops, exception handlers and short-circuit boolean
	// operators in the element body. Informational only.
	Complexity int
	// Parent names the enclosing class for methods.
	Parent string
}
