package engine

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/codescribe-ai/codescribe/internal/analysis"
	"github.com/codescribe-ai/codescribe/internal/config"
	"github.com/codescribe-ai/codescribe/internal/generate"
	"github.com/codescribe-ai/codescribe/internal/llm"
	"github.com/codescribe-ai/codescribe/internal/logger"
)

// fixedClient returns the same completion for every call.
type fixedClient struct {
	reply string
}

func (c *fixedClient) Complete(ctx context.Context, prompt string, opts llm.CompletionOptions) (string, error) {
	return c.reply, nil
}

func (c *fixedClient) Model() string   { return "fixed" }
func (c *fixedClient) Backend() string { return "test" }

func TestMain(m *testing.M) {
	logger.SetOutput(io.Discard)
	m.Run()
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	cfg := config.Default()
	cfg.Processing.BatchSize = 2
	gen := generate.New(&fixedClient{reply: "Test documentation."}, cfg.DocumentationConfig())
	return New(cfg, analysis.NewRegistry(), gen)
}

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, contents := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestProcessSource(t *testing.T) {
	eng := newTestEngine(t)
	source := "def one():\n    return 1\n\ndef two():\n    return 2\n"

	docs, err := eng.ProcessSource(context.Background(), source, analysis.LangPython)
	if err != nil {
		t.Fatalf("ProcessSource() error = %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(docs))
	}
	for _, doc := range docs {
		if doc.Docstring != "Test documentation." {
			t.Errorf("%s Docstring = %q", doc.Element.Name, doc.Docstring)
		}
	}
}

func TestProcessFile(t *testing.T) {
	root := writeTree(t, map[string]string{
		"app.py": "def handler(event):\n    return event\n",
	})
	eng := newTestEngine(t)

	docs, err := eng.ProcessFile(context.Background(), filepath.Join(root, "app.py"), "")
	if err != nil {
		t.Fatalf("ProcessFile() error = %v", err)
	}
	if len(docs) != 1 || docs[0].Element.Name != "handler" {
		t.Errorf("ProcessFile() = %+v, want one record for handler", docs)
	}
}

func TestProcessFileTooLarge(t *testing.T) {
	root := writeTree(t, map[string]string{
		"big.py": "# " + strings.Repeat("x", 2*1024*1024) + "\n",
	})
	eng := newTestEngine(t)
	eng.cfg.Processing.MaxFileSizeMB = 1

	if _, err := eng.ProcessFile(context.Background(), filepath.Join(root, "big.py"), ""); err == nil {
		t.Fatal("ProcessFile() expected size limit error")
	}
}

func TestProcessFileUnknownExtension(t *testing.T) {
	root := writeTree(t, map[string]string{"notes.txt": "hello"})
	eng := newTestEngine(t)

	if _, err := eng.ProcessFile(context.Background(), filepath.Join(root, "notes.txt"), ""); err == nil {
		t.Fatal("ProcessFile() expected unsupported language error")
	}
}

func TestDiscover(t *testing.T) {
	root := writeTree(t, map[string]string{
		"app.py":                 "def a():\n    pass\n",
		"lib/util.js":            "function u() {}\n",
		"lib/util.min.js":        "function u(){}\n",
		"lib/cache.pyc":          "binary",
		"node_modules/dep/x.js":  "function x() {}\n",
		"__pycache__/app.pyc":    "binary",
		"README.md":              "# readme",
		"deep/nested/handler.ts": "function h() {}\n",
	})

	eng := newTestEngine(t)
	files, err := eng.Discover(root, true)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	var rel []string
	for _, f := range files {
		r, _ := filepath.Rel(root, f)
		rel = append(rel, filepath.ToSlash(r))
	}

	want := []string{"app.py", "deep/nested/handler.ts", "lib/util.js"}
	if len(rel) != len(want) {
		t.Fatalf("Discover() = %v, want %v", rel, want)
	}
	for i := range want {
		if rel[i] != want[i] {
			t.Errorf("Discover()[%d] = %q, want %q", i, rel[i], want[i])
		}
	}
}

func TestDiscoverNonRecursive(t *testing.T) {
	root := writeTree(t, map[string]string{
		"top.py":        "def t():\n    pass\n",
		"sub/nested.py": "def n():\n    pass\n",
	})

	eng := newTestEngine(t)
	files, err := eng.Discover(root, false)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(files) != 1 || filepath.Base(files[0]) != "top.py" {
		t.Errorf("Discover() = %v, want only top.py", files)
	}
}

func TestProcessDirectory(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.py":     "def a():\n    pass\n",
		"b.py":     "def b():\n    pass\n",
		"c.py":     "def c():\n    pass\n",
		"broken.b": "not source",
	})

	eng := newTestEngine(t)
	results, err := eng.ProcessDirectory(context.Background(), root, true)
	if err != nil {
		t.Fatalf("ProcessDirectory() error = %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 result entries, got %d", len(results))
	}
	for path, docs := range results {
		if len(docs) != 1 {
			t.Errorf("%s: expected 1 record, got %d", path, len(docs))
		}
	}
}

func TestProcessDirectoryIsolatesFailures(t *testing.T) {
	root := writeTree(t, map[string]string{
		"good.py": "def g():\n    pass\n",
	})
	// Invalid UTF-8 with a supported extension fails to parse but must not
	// abort the run.
	if err := os.WriteFile(filepath.Join(root, "bad.py"), []byte{0xff, 0xfe, 0x00}, 0o644); err != nil {
		t.Fatal(err)
	}

	eng := newTestEngine(t)
	results, err := eng.ProcessDirectory(context.Background(), root, true)
	if err != nil {
		t.Fatalf("ProcessDirectory() error = %v", err)
	}

	bad, ok := results[filepath.Join(root, "bad.py")]
	if !ok {
		t.Fatal("bad.py missing from results")
	}
	if len(bad) != 0 {
		t.Errorf("bad.py records = %v, want empty", bad)
	}
	good := results[filepath.Join(root, "good.py")]
	if len(good) != 1 {
		t.Errorf("good.py records = %d, want 1", len(good))
	}
}

func TestProcessDirectoryConcurrentParsing(t *testing.T) {
	files := make(map[string]string)
	for i := 0; i < 8; i++ {
		files[fmt.Sprintf("py%d.py", i)] = fmt.Sprintf("def f%d():\n    pass\n", i)
		files[fmt.Sprintf("js%d.js", i)] = fmt.Sprintf("function f%d() {}\n", i)
		files[fmt.Sprintf("ts%d.ts", i)] = fmt.Sprintf("function f%d(): void {}\n", i)
	}
	root := writeTree(t, files)

	// One batch wide enough that every file parses concurrently.
	eng := newTestEngine(t)
	eng.cfg.Processing.BatchSize = len(files)

	results, err := eng.ProcessDirectory(context.Background(), root, true)
	if err != nil {
		t.Fatalf("ProcessDirectory() error = %v", err)
	}
	if len(results) != len(files) {
		t.Fatalf("expected %d result entries, got %d", len(files), len(results))
	}
	for path, docs := range results {
		if len(docs) != 1 {
			t.Errorf("%s: expected 1 record, got %d", path, len(docs))
		}
	}
}

// cancellingClient cancels the run on its first backend call.
type cancellingClient struct {
	once   sync.Once
	cancel context.CancelFunc
}

func (c *cancellingClient) Complete(ctx context.Context, prompt string, opts llm.CompletionOptions) (string, error) {
	c.once.Do(c.cancel)
	return "", ctx.Err()
}

func (c *cancellingClient) Model() string   { return "cancelling" }
func (c *cancellingClient) Backend() string { return "test" }

func TestProcessDirectoryCancellationSkipsBatchDelay(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.py": "def a():\n    pass\n",
		"b.py": "def b():\n    pass\n",
		"c.py": "def c():\n    pass\n",
		"d.py": "def d():\n    pass\n",
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Default()
	cfg.Processing.BatchSize = 2
	gen := generate.New(&cancellingClient{cancel: cancel}, cfg.DocumentationConfig())
	eng := New(cfg, analysis.NewRegistry(), gen)

	start := time.Now()
	_, err := eng.ProcessDirectory(ctx, root, true)
	if err == nil {
		t.Fatal("ProcessDirectory() expected context error after mid-run cancellation")
	}
	if elapsed := time.Since(start); elapsed >= batchDelay {
		t.Errorf("cancelled run took %v, want return before the %v batch delay", elapsed, batchDelay)
	}
}

func TestProcessDirectoryCancellation(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.py": "def a():\n    pass\n",
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	eng := newTestEngine(t)
	if _, err := eng.ProcessDirectory(ctx, root, true); err == nil {
		t.Fatal("ProcessDirectory() expected context error after cancellation")
	}
}

func TestProcessSourceDeterministicOrder(t *testing.T) {
	eng := newTestEngine(t)
	source := "def z():\n    pass\n\ndef a():\n    pass\n"

	docs, err := eng.ProcessSource(context.Background(), source, analysis.LangPython)
	if err != nil {
		t.Fatalf("ProcessSource() error = %v", err)
	}
	var names []string
	for _, doc := range docs {
		names = append(names, doc.Element.Name)
	}
	if strings.Join(names, ",") != "z,a" {
		t.Errorf("records = %v, want source order z,a", names)
	}
}
