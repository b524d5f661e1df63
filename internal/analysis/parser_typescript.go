package analysis

import (
	"context"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/codescribe-ai/codescribe/internal/model"
)

// TypeScriptParser extracts elements from TypeScript source using
// tree-sitter. Traversal is shared with the JavaScript parser; the two
// grammars expose the same declaration node types.
type TypeScriptParser struct {
	mu     sync.Mutex
	parser *sitter.Parser
}

// NewTypeScriptParser creates a TypeScript tree-sitter parser.
func NewTypeScriptParser() *TypeScriptParser {
	p := sitter.NewParser()
	p.SetLanguage(typescript.GetLanguage())
	return &TypeScriptParser{parser: p}
}

// Language returns "typescript".
func (p *TypeScriptParser) Language() Language {
	return LangTypeScript
}

// Parse extracts functions, classes and methods from TypeScript source.
func (p *TypeScriptParser) Parse(content []byte) ([]model.CodeElement, error) {
	// The underlying tree-sitter parser handles one parse at a time.
	p.mu.Lock()
	tree, err := p.parser.ParseCtx(context.Background(), nil, content)
	p.mu.Unlock()
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	var elements []model.CodeElement
	extractJSElements(tree.RootNode(), content, "", &elements)
	sortElements(elements)
	return elements, nil
}
