package prompt

import (
	"strings"
	"testing"

	"github.com/codescribe-ai/codescribe/internal/model"
)

func sampleElement() model.CodeElement {
	return model.CodeElement{
		Name:      "add",
		Kind:      model.KindFunction,
		Signature: "def add(a: int, b: int = 0) -> int:",
		StartLine: 1,
		EndLine:   3,
	}
}

func TestBuildDeterministic(t *testing.T) {
	b := NewBuilder(model.DefaultDocumentationConfig())
	element := sampleElement()

	first := b.Build(element, "def add...", TaskDocstring)
	for i := 0; i < 10; i++ {
		if got := b.Build(element, "def add...", TaskDocstring); got != first {
			t.Fatalf("Build() not deterministic on iteration %d", i)
		}
	}
}

func TestBuildHeader(t *testing.T) {
	b := NewBuilder(model.DefaultDocumentationConfig())
	element := sampleElement()
	element.Docstring = "Adds numbers."

	got := b.Build(element, "context here", TaskDocstring)

	for _, want := range []string{
		"Code Element: add\n",
		"Type: function\n",
		"Signature: def add(a: int, b: int = 0) -> int:\n",
		"Existing docstring: Adds numbers.\n",
		"Context:\ncontext here\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Build() missing %q", want)
		}
	}
}

func TestBuildOmitsEmptySections(t *testing.T) {
	b := NewBuilder(model.DefaultDocumentationConfig())
	got := b.Build(sampleElement(), "", TaskDocstring)

	if strings.Contains(got, "Existing docstring:") {
		t.Error("Build() should omit the docstring line for undocumented elements")
	}
	if strings.Contains(got, "Context:") {
		t.Error("Build() should omit the context section when context is empty")
	}
}

func TestDocstringDirectives(t *testing.T) {
	cfg := model.DefaultDocumentationConfig()
	cfg.IncludeExamples = false
	cfg.IncludeExceptions = false
	b := NewBuilder(cfg)

	got := b.Build(sampleElement(), "", TaskDocstring)

	for _, want := range []string{
		"- Verbosity level: medium\n",
		"- Include parameters\n",
		"- Include return values\n",
		"- Exclude examples\n",
		"- Exclude exceptions\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Build() missing directive %q", want)
		}
	}
}

func TestStyleGuideSelection(t *testing.T) {
	tests := []struct {
		name      string
		style     model.Style
		signature string
		want      string
	}{
		{"google for python", model.StyleGoogle, "def add(a, b):", "Args:"},
		{"numpy for python", model.StyleNumpy, "def add(a, b):", "Parameters"},
		{"sphinx for python", model.StyleSphinx, "def add(a, b):", ":param"},
		{"jsdoc for javascript", model.StyleJSDoc, "function add(a, b) {", "@param"},
		{"generic for unknown syntax", model.StyleGoogle, "fn add(a, b)", "Standard documentation format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := model.DefaultDocumentationConfig()
			cfg.Style = tt.style
			b := NewBuilder(cfg)

			element := sampleElement()
			element.Signature = tt.signature
			got := b.Build(element, "", TaskDocstring)
			if !strings.Contains(got, tt.want) {
				t.Errorf("Build() style guide missing %q", tt.want)
			}
		})
	}
}

func TestBuildBatchSummary(t *testing.T) {
	b := NewBuilder(model.DefaultDocumentationConfig())
	elements := []model.CodeElement{
		{Name: "add", Kind: model.KindFunction, Signature: "def add(a, b):"},
		{Name: "Calc", Kind: model.KindClass, Signature: "class Calc:"},
	}

	got := b.BuildBatchSummary(elements)

	if !strings.HasPrefix(got, "Code Elements Summary:\n") {
		t.Errorf("BuildBatchSummary() prefix = %q", got[:min(len(got), 40)])
	}
	for _, want := range []string{
		"- function: add (def add(a, b):)\n",
		"- class: Calc (class Calc:)\n",
		"Verbosity level: medium",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("BuildBatchSummary() missing %q", want)
		}
	}
}

func TestSystemInstruction(t *testing.T) {
	tasks := []Task{TaskDocstring, TaskComments, TaskSummary}
	seen := make(map[string]bool)
	for _, task := range tasks {
		instruction := SystemInstruction(task)
		if instruction == "" {
			t.Errorf("SystemInstruction(%s) is empty", task)
		}
		if seen[instruction] {
			t.Errorf("SystemInstruction(%s) duplicates another task's instruction", task)
		}
		seen[instruction] = true
	}
}
