package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/codescribe-ai/codescribe/internal/analysis"
	"github.com/codescribe-ai/codescribe/internal/cli/flags"
	"github.com/codescribe-ai/codescribe/internal/config"
	"github.com/codescribe-ai/codescribe/internal/engine"
	"github.com/codescribe-ai/codescribe/internal/export"
	"github.com/codescribe-ai/codescribe/internal/generate"
	"github.com/codescribe-ai/codescribe/internal/llm"
	"github.com/codescribe-ai/codescribe/internal/logger"
	"github.com/codescribe-ai/codescribe/internal/model"
)

func init() {
	Register(&Command{
		Name:        "document",
		Aliases:     []string{"doc"},
		Description: "Generate documentation for a file or directory",
		Run:         RunDocument,
	})
}

// DocumentOptions contains the configuration for the document command.
type DocumentOptions struct {
	Path       string
	Language   string
	Output     string
	OutputFile string
	ConfigPath string
	Verbosity  string
	Style      string
	Provider   string
	Model      string
	APIKey     string
	Recursive  bool
	DryRun     bool
	Quiet      bool
}

// RunDocument executes the document command with parsed arguments.
func RunDocument(args []string) error {
	fs := flag.NewFlagSet("document", flag.ContinueOnError)
	path := flags.AddPathFlag(fs)
	language := flags.AddLanguageFlag(fs)
	output := flags.AddOutputFlag(fs)
	outputFile := flags.AddOutputFileFlag(fs)
	configPath := flags.AddConfigFlag(fs)
	verbosity := fs.String("verbosity", "", "documentation detail: low, medium or high")
	style := fs.String("style", "", "docstring style: google, numpy, sphinx or jsdoc")
	provider := fs.String("provider", "", "AI provider: openai, deepseek or ollama")
	modelName := fs.String("model", "", "AI model identifier")
	apiKey := fs.String("api-key", "", "API key for hosted providers")
	recursive := flags.AddRecursiveFlag(fs)
	dryRun := fs.Bool("dry-run", false, "list code elements without calling the AI backend")
	quiet := flags.AddQuietFlag(fs)
	verbose := flags.AddVerboseFlag(fs)
	debug := flags.AddDebugFlag(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *path == "" && len(fs.Args()) > 0 {
		*path = fs.Args()[0]
	}
	if *path == "" {
		return errors.New(`usage: codescribe document --path <file-or-directory> [options]

Examples:
  codescribe document -p src/app.py
  codescribe document -p src/ -r -o html -f docs.html
  codescribe document -p src/app.py --dry-run`)
	}

	switch {
	case *debug:
		logger.SetLevel(logger.LevelDebug)
	case *verbose:
		logger.SetLevel(logger.LevelInfo)
	default:
		logger.SetLevel(logger.LevelOff)
	}

	return ExecuteDocument(DocumentOptions{
		Path:       *path,
		Language:   *language,
		Output:     *output,
		OutputFile: *outputFile,
		ConfigPath: *configPath,
		Verbosity:  *verbosity,
		Style:      *style,
		Provider:   *provider,
		Model:      *modelName,
		APIKey:     *apiKey,
		Recursive:  *recursive,
		DryRun:     *dryRun,
		Quiet:      *quiet,
	})
}

// ExecuteDocument runs the documentation pipeline with the given options.
func ExecuteDocument(opts DocumentOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	registry := analysis.NewRegistry()

	info, err := os.Stat(opts.Path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", opts.Path, err)
	}

	if opts.DryRun {
		return dryRun(cfg, registry, opts.Path, info.IsDir(), opts.Recursive, analysis.Language(opts.Language))
	}

	client, err := llm.NewClient(cfg.LLMConfig())
	if err != nil {
		return err
	}
	gen := generate.New(client, cfg.DocumentationConfig())
	eng := engine.New(cfg, registry, gen)
	ctx := context.Background()

	results := make(map[string][]model.GeneratedDocumentation)
	if info.IsDir() {
		results, err = eng.ProcessDirectory(ctx, opts.Path, opts.Recursive)
	} else {
		var docs []model.GeneratedDocumentation
		docs, err = eng.ProcessFile(ctx, opts.Path, analysis.Language(opts.Language))
		results[opts.Path] = docs
	}
	if err != nil {
		return err
	}

	if strings.EqualFold(cfg.Processing.OutputFormat, "inline") {
		printInline(results)
		return nil
	}

	format, err := export.NormalizeFormat(cfg.Processing.OutputFormat)
	if err != nil {
		return err
	}
	document, err := export.Export(results, format)
	if err != nil {
		return err
	}

	if opts.OutputFile != "" {
		if err := os.WriteFile(opts.OutputFile, []byte(document), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", opts.OutputFile, err)
		}
		if !opts.Quiet {
			fmt.Printf("documented %d elements across %d files; written to %s\n",
				countElements(results), len(results), opts.OutputFile)
		}
		return nil
	}

	fmt.Print(document)
	return nil
}

// loadConfig builds the effective configuration for the run: file and
// environment first, command-line flags last.
func loadConfig(opts DocumentOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	if opts.Provider != "" {
		cfg.AI.Provider = opts.Provider
	}
	if opts.Model != "" {
		cfg.AI.Model = opts.Model
	}
	if opts.APIKey != "" {
		cfg.AI.APIKey = opts.APIKey
	}
	if opts.Style != "" {
		cfg.Documentation.Style = opts.Style
	}
	if opts.Verbosity != "" {
		cfg.Documentation.Verbosity = opts.Verbosity
	}
	if opts.Output != "" {
		cfg.Processing.OutputFormat = opts.Output
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// dryRun lists the documentable elements without touching the backend.
func dryRun(cfg *config.Config, registry *analysis.Registry, path string, isDir, recursive bool, lang analysis.Language) error {
	eng := engine.New(cfg, registry, nil)

	files := []string{path}
	if isDir {
		var err error
		files, err = eng.Discover(path, recursive)
		if err != nil {
			return err
		}
	}

	total := 0
	for _, file := range files {
		elements, err := registry.ParseFile(file, lang)
		if err != nil {
			logger.Warn("skipping %s: %v", file, err)
			continue
		}
		fmt.Printf("%s (%d elements)\n", file, len(elements))
		for _, e := range elements {
			name := e.Name
			if e.Parent != "" {
				name = e.Parent + "." + e.Name
			}
			fmt.Printf("  %s %s  lines %d-%d\n", e.Kind, name, e.StartLine, e.EndLine)
		}
		total += len(elements)
	}
	fmt.Printf("\n%d elements across %d files (dry run, no documentation generated)\n", total, len(files))
	return nil
}

// printInline writes each element's docstring to the terminal instead of an
// exported document.
func printInline(results map[string][]model.GeneratedDocumentation) {
	paths := make([]string, 0, len(results))
	for path := range results {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		docs := results[path]
		if len(docs) == 0 {
			continue
		}
		fmt.Printf("%s\n", path)
		for _, doc := range docs {
			fmt.Printf("\n%s (line %d):\n%s\n", doc.Element.Name, doc.Element.StartLine, doc.Docstring)
		}
		fmt.Println()
	}
}

func countElements(results map[string][]model.GeneratedDocumentation) int {
	n := 0
	for _, docs := range results {
		n += len(docs)
	}
	return n
}
