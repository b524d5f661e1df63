// Package engine orchestrates documentation runs over sources, files and
// directory trees: discovery, parsing, batched generation and per-file
// error isolation.
package engine

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"

	"github.com/codescribe-ai/codescribe/internal/analysis"
	"github.com/codescribe-ai/codescribe/internal/config"
	"github.com/codescribe-ai/codescribe/internal/generate"
	"github.com/codescribe-ai/codescribe/internal/logger"
	"github.com/codescribe-ai/codescribe/internal/model"
)

// batchDelay spaces out batches so hosted backends are not hammered with
// sustained request bursts.
const batchDelay = time.Second

// Engine runs documentation over files and directories. Generation within a
// batch is concurrent; batches run sequentially.
type Engine struct {
	registry *analysis.Registry
	gen      *generate.Generator
	cfg      *config.Config
}

// New creates an engine from a parser registry, a generator and the runtime
// configuration.
func New(cfg *config.Config, registry *analysis.Registry, gen *generate.Generator) *Engine {
	return &Engine{
		registry: registry,
		gen:      gen,
		cfg:      cfg,
	}
}

// ProcessSource documents an in-memory source string. Elements are processed
// in order; each record carries its context window from the source.
func (e *Engine) ProcessSource(ctx context.Context, source string, lang analysis.Language) ([]model.GeneratedDocumentation, error) {
	elements, err := e.registry.ParseSource(source, lang)
	if err != nil {
		return nil, err
	}

	docs := make([]model.GeneratedDocumentation, 0, len(elements))
	for _, element := range elements {
		if err := ctx.Err(); err != nil {
			return docs, err
		}
		contextText := analysis.ExtractContext(element, source)
		docs = append(docs, e.gen.GenerateDocumentation(ctx, element, contextText))
	}
	return docs, nil
}

// ProcessFile documents a single file. The file must be valid UTF-8, have a
// supported extension (unless lang is given) and fit the configured size cap.
func (e *Engine) ProcessFile(ctx context.Context, path string, lang analysis.Language) ([]model.GeneratedDocumentation, error) {
	if lang == "" {
		detected, ok := analysis.DetectLanguage(path)
		if !ok {
			return nil, fmt.Errorf("%w: no language for %s", analysis.ErrUnsupportedLanguage, path)
		}
		lang = detected
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Size() > e.cfg.MaxFileSizeBytes() {
		return nil, fmt.Errorf("%s exceeds the %d MB size limit", path, e.cfg.Processing.MaxFileSizeMB)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if !utf8.Valid(content) {
		return nil, fmt.Errorf("%s: %w", path, analysis.ErrInvalidEncoding)
	}

	return e.ProcessSource(ctx, string(content), lang)
}

// ProcessDirectory documents every supported file under root, in batches of
// the configured batch size. A file that fails yields an empty record list
// and a logged warning; the run continues. Results are keyed by file path.
func (e *Engine) ProcessDirectory(ctx context.Context, root string, recursive bool) (map[string][]model.GeneratedDocumentation, error) {
	files, err := e.Discover(root, recursive)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	logger.Info("run %s: documenting %d files in batches of %d", runID, len(files), e.cfg.Processing.BatchSize)

	results := make(map[string][]model.GeneratedDocumentation, len(files))
	var mu sync.Mutex

	batchSize := e.cfg.Processing.BatchSize
	for start := 0; start < len(files); start += batchSize {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		if start > 0 {
			select {
			case <-time.After(batchDelay):
			case <-ctx.Done():
				return results, ctx.Err()
			}
		}

		end := start + batchSize
		if end > len(files) {
			end = len(files)
		}
		batch := files[start:end]
		logger.Debug("run %s: batch %d-%d of %d", runID, start+1, end, len(files))

		var wg sync.WaitGroup
		for _, path := range batch {
			wg.Add(1)
			go func(path string) {
				defer wg.Done()
				docs, err := e.ProcessFile(ctx, path, "")
				if err != nil {
					logger.Warn("skipping %s: %v", path, err)
					docs = []model.GeneratedDocumentation{}
				}
				mu.Lock()
				results[path] = docs
				mu.Unlock()
			}(path)
		}
		wg.Wait()
	}

	return results, nil
}

// Discover lists the supported source files under root in sorted order,
// honoring skip patterns and the size cap. Non-recursive mode scans only
// the top level.
func (e *Engine) Discover(root string, recursive bool) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	var files []string
	walk := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && !recursive {
				return fs.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		if e.skipped(rel) {
			logger.Debug("skip pattern matched %s", rel)
			return nil
		}
		if _, ok := analysis.DetectLanguage(path); !ok {
			return nil
		}
		if fi, err := d.Info(); err == nil && fi.Size() > e.cfg.MaxFileSizeBytes() {
			logger.Warn("skipping %s: exceeds the %d MB size limit", rel, e.cfg.Processing.MaxFileSizeMB)
			return nil
		}

		files = append(files, path)
		return nil
	}

	if err := filepath.WalkDir(root, walk); err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	sort.Strings(files)
	return files, nil
}

// skipped reports whether a slash-normalized relative path matches any skip
// pattern, either on the full path or on the base name.
func (e *Engine) skipped(rel string) bool {
	base := rel
	if i := strings.LastIndex(rel, "/"); i >= 0 {
		base = rel[i+1:]
	}
	for _, pattern := range e.cfg.Processing.SkipPatterns {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
		if ok, err := doublestar.Match(pattern, base); err == nil && ok {
			return true
		}
		// Directory patterns like node_modules/* should match at any depth.
		if i := strings.Index(pattern, "/"); i > 0 {
			prefix := pattern[:i]
			if strings.HasPrefix(rel, prefix+"/") || strings.Contains(rel, "/"+prefix+"/") {
				return true
			}
		}
	}
	return false
}
