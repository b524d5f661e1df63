package commands

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/codescribe-ai/codescribe/internal/logger"
)

func TestMain(m *testing.M) {
	logger.SetOutput(io.Discard)
	m.Run()
}

// captureStdout runs fn with os.Stdout redirected to a pipe and returns
// whatever it printed.
func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdout = w

	runErr := fn()

	w.Close()
	os.Stdout = orig
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	return string(out), runErr
}

func TestExecuteDocumentDryRun(t *testing.T) {
	dir := t.TempDir()
	source := "def add(a, b):\n    return a + b\n\nclass Calc:\n    def run(self):\n        pass\n"
	if err := os.WriteFile(filepath.Join(dir, "calc.py"), []byte(source), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := captureStdout(t, func() error {
		return ExecuteDocument(DocumentOptions{
			Path:      dir,
			Recursive: true,
			DryRun:    true,
		})
	})
	if err != nil {
		t.Fatalf("ExecuteDocument() error = %v", err)
	}

	if !strings.Contains(out, "calc.py (3 elements)") {
		t.Errorf("dry run output missing file line:\n%s", out)
	}
	if !strings.Contains(out, "function add") {
		t.Errorf("dry run output missing function add:\n%s", out)
	}
	if !strings.Contains(out, "method Calc.run") {
		t.Errorf("dry run output missing qualified method name:\n%s", out)
	}
	if !strings.Contains(out, "3 elements across 1 files (dry run, no documentation generated)") {
		t.Errorf("dry run output missing total line:\n%s", out)
	}
}

func TestExecuteDocumentMissingPath(t *testing.T) {
	err := ExecuteDocument(DocumentOptions{
		Path:   filepath.Join(t.TempDir(), "nope.py"),
		DryRun: true,
	})
	if err == nil {
		t.Fatal("ExecuteDocument() expected error for missing path")
	}
}

func TestExecuteDocumentRejectsInvalidOverrides(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.py"), []byte("def a():\n    pass\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		opts DocumentOptions
	}{
		{"bad provider", DocumentOptions{Path: dir, Provider: "bedrock", DryRun: true}},
		{"bad style", DocumentOptions{Path: dir, Style: "fancy", DryRun: true}},
		{"bad output", DocumentOptions{Path: dir, Output: "pdf", DryRun: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ExecuteDocument(tt.opts); err == nil {
				t.Error("ExecuteDocument() accepted an invalid override")
			}
		})
	}
}

func TestLoadConfigFlagOverrides(t *testing.T) {
	cfg, err := loadConfig(DocumentOptions{
		Provider:  "ollama",
		Model:     "codellama",
		Style:     "numpy",
		Verbosity: "high",
		Output:    "html",
	})
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}

	if cfg.AI.Provider != "ollama" || cfg.AI.Model != "codellama" {
		t.Errorf("ai section = %+v", cfg.AI)
	}
	if cfg.Documentation.Style != "numpy" || cfg.Documentation.Verbosity != "high" {
		t.Errorf("documentation section = %+v", cfg.Documentation)
	}
	if cfg.Processing.OutputFormat != "html" {
		t.Errorf("OutputFormat = %q, want html", cfg.Processing.OutputFormat)
	}
}

func TestRunDocumentPositionalPath(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "m.py"), []byte("def m():\n    pass\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := captureStdout(t, func() error {
		return RunDocument([]string{"--dry-run", dir})
	})
	if err != nil {
		t.Fatalf("RunDocument() error = %v", err)
	}
	if !strings.Contains(out, "m.py (1 elements)") {
		t.Errorf("output = %q, want positional path processed", out)
	}
}

func TestRunDocumentRequiresPath(t *testing.T) {
	if err := RunDocument(nil); err == nil {
		t.Fatal("RunDocument() expected usage error without a path")
	}
}
