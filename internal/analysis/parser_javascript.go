package analysis

import (
	"context"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"

	"github.com/codescribe-ai/codescribe/internal/model"
)

// JavaScriptParser extracts elements from JavaScript source using tree-sitter.
type JavaScriptParser struct {
	mu     sync.Mutex
	parser *sitter.Parser
}

// NewJavaScriptParser creates a JavaScript tree-sitter parser.
func NewJavaScriptParser() *JavaScriptParser {
	p := sitter.NewParser()
	p.SetLanguage(javascript.GetLanguage())
	return &JavaScriptParser{parser: p}
}

// Language returns "javascript".
func (p *JavaScriptParser) Language() Language {
	return LangJavaScript
}

// Parse extracts functions, classes and methods from JavaScript source.
func (p *JavaScriptParser) Parse(content []byte) ([]model.CodeElement, error) {
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

// extractJSElements walks a JavaScript or TypeScript tree. The two grammars
// share the node types consumed here, so the TypeScript parser reuses it.
func extractJSElements(node *sitter.Node, content []byte, enclosingClass string, elements *[]model.CodeElement) {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}

		switch child.Type() {
		case "function_declaration", "generator_function_declaration":
			if el := parseJSFunction(child, content, enclosingClass); el != nil {
				*elements = append(*elements, *el)
			}
			extractJSElements(child, content, enclosingClass, elements)

		case "class_declaration":
			if el := parseJSClass(child, content); el != nil {
				*elements = append(*elements, *el)
				extractJSElements(child, content, el.Name, elements)
			}

		case "method_definition":
			if el := parseJSMethod(child, content, enclosingClass); el != nil {
				*elements = append(*elements, *el)
			}
			extractJSElements(child, content, enclosingClass, elements)

		default:
			extractJSElements(child, content, enclosingClass, elements)
		}
	}
}

func parseJSFunction(node *sitter.Node, content []byte, enclosingClass string) *model.CodeElement {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}

	kind := model.KindFunction
	if enclosingClass != "" {
		kind = model.KindMethod
	}

	return &model.CodeElement{
		Name:       nameNode.Content(content),
		Kind:       kind,
		Signature:  firstLine(node.Content(content)),
		StartLine:  int(node.StartPoint().Row) + 1,
		EndLine:    int(node.EndPoint().Row) + 1,
		Parameters: extractJSParameters(node, content),
		Complexity: jsComplexity(node, content),
		Parent:     enclosingClass,
	}
}

func parseJSClass(node *sitter.Node, content []byte) *model.CodeElement {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}

	return &model.CodeElement{
		Name:       nameNode.Content(content),
		Kind:       model.KindClass,
		Signature:  firstLine(node.Content(content)),
		StartLine:  int(node.StartPoint().Row) + 1,
		EndLine:    int(node.EndPoint().Row) + 1,
		Complexity: 1,
	}
}

func parseJSMethod(node *sitter.Node, content []byte, enclosingClass string) *model.CodeElement {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}

	return &model.CodeElement{
		Name:       nameNode.Content(content),
		Kind:       model.KindMethod,
		Signature:  firstLine(node.Content(content)),
		StartLine:  int(node.StartPoint().Row) + 1,
		EndLine:    int(node.EndPoint().Row) + 1,
		Parameters: extractJSParameters(node, content),
		Complexity: jsComplexity(node, content),
		Parent:     enclosingClass,
	}
}

// extractJSParameters reads names and defaults from formal_parameters.
// Destructuring and rest patterns are skipped; only plain identifiers and
// assignment defaults are reported.
func extractJSParameters(node *sitter.Node, content []byte) []model.Parameter {
	paramsNode := node.ChildByFieldName("parameters")
	if paramsNode == nil {
		return nil
	}

	var parameters []model.Parameter
	for i := 0; i < int(paramsNode.NamedChildCount()); i++ {
		child := paramsNode.NamedChild(i)
		if child == nil {
			continue
		}

		switch child.Type() {
		case "identifier":
			parameters = append(parameters, model.Parameter{
				Name: child.Content(content),
			})

		case "assignment_pattern":
			param := model.Parameter{}
			if left := child.ChildByFieldName("left"); left != nil && left.Type() == "identifier" {
				param.Name = left.Content(content)
			}
			if right := child.ChildByFieldName("right"); right != nil {
				param.Default = singleLine(right.Content(content))
			}
			if param.Name != "" {
				parameters = append(parameters, param)
			}

		case "required_parameter", "optional_parameter":
			// TypeScript grammar wraps parameters; the pattern child holds
			// the name, the type/value fields hold annotation and default.
			param := model.Parameter{}
			if pattern := child.ChildByFieldName("pattern"); pattern != nil && pattern.Type() == "identifier" {
				param.Name = pattern.Content(content)
			}
			if t := child.ChildByFieldName("type"); t != nil {
				param.Type = singleLine(strings.TrimPrefix(t.Content(content), ": "))
			}
			if v := child.ChildByFieldName("value"); v != nil {
				param.Default = singleLine(v.Content(content))
			}
			if param.Name != "" {
				parameters = append(parameters, param)
			}
		}
	}

	return parameters
}

// jsComplexity scores a definition: 1 plus one for every branch, loop, catch
// clause and short-circuit boolean operator in its subtree.
func jsComplexity(node *sitter.Node, content []byte) int {
	complexity := 1
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		for i := 0; i < int(n.ChildCount()); i++ {
			child := n.Child(i)
			if child == nil {
				continue
			}
			switch child.Type() {
			case "if_statement", "for_statement", "for_in_statement",
				"while_statement", "do_statement", "catch_clause":
				complexity++
			case "binary_expression":
				if op := child.ChildByFieldName("operator"); op != nil {
					switch op.Content(content) {
					case "&&", "||":
						complexity++
					}
				}
			}
			walk(child)
		}
	}
	walk(node)
	return complexity
}

// firstLine renders the opening line of a declaration as its signature.
func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
