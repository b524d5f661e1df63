package analysis

import (
	"context"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/codescribe-ai/codescribe/internal/model"
)

// PythonParser extracts elements from Python source using tree-sitter.
type PythonParser struct {
	mu     sync.Mutex
	parser *sitter.Parser
}

// NewPythonParser creates a Python tree-sitter parser.
func NewPythonParser() *PythonParser {
	p := sitter.NewParser()
	p.SetLanguage(python.GetLanguage())
	return &PythonParser{parser: p}
}

// Language returns "python".
func (p *PythonParser) Language() Language {
	return LangPython
}

// Parse extracts functions, methods and classes from Python source.
func (p *PythonParser) Parse(content []byte) ([]model.CodeElement, error) {
	// The underlying tree-sitter parser handles one parse at a time.
	p.mu.Lock()
	tree, err := p.parser.ParseCtx(context.Background(), nil, content)
	p.mu.Unlock()
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	var elements []model.CodeElement
	p.extractElements(tree.RootNode(), content, "", &elements)
	sortElements(elements)
	return elements, nil
}

// extractElements walks the tree collecting definitions. enclosingClass names
// the class whose body is currently being visited; functions found inside it
// become methods.
func (p *PythonParser) extractElements(node *sitter.Node, content []byte, enclosingClass string, elements *[]model.CodeElement) {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}

		switch child.Type() {
		case "function_definition":
			if el := p.parseFunctionDef(child, content, enclosingClass); el != nil {
				*elements = append(*elements, *el)
			}
			p.extractElements(child, content, enclosingClass, elements)

		case "class_definition":
			if el := p.parseClassDef(child, content); el != nil {
				*elements = append(*elements, *el)
				p.extractElements(child, content, el.Name, elements)
			}

		case "decorated_definition":
			// Unwrap the decorator and handle the inner definition.
			p.extractElements(child, content, enclosingClass, elements)

		default:
			p.extractElements(child, content, enclosingClass, elements)
		}
	}
}

func (p *PythonParser) parseFunctionDef(node *sitter.Node, content []byte, enclosingClass string) *model.CodeElement {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	name := nameNode.Content(content)

	params := "()"
	var parameters []model.Parameter
	if paramsNode := node.ChildByFieldName("parameters"); paramsNode != nil {
		params = singleLine(paramsNode.Content(content))
		parameters = p.extractParameters(paramsNode, content)
	}

	returnType := ""
	signature := "def " + name + params
	if returnNode := node.ChildByFieldName("return_type"); returnNode != nil {
		returnType = singleLine(returnNode.Content(content))
		signature += " -> " + returnType
	}
	signature += ":"

	kind := model.KindFunction
	if enclosingClass != "" {
		kind = model.KindMethod
	}

	return &model.CodeElement{
		Name:       name,
		Kind:       kind,
		Signature:  signature,
		Docstring:  p.extractDocstring(node, content),
		StartLine:  int(node.StartPoint().Row) + 1,
		EndLine:    int(node.EndPoint().Row) + 1,
		Parameters: parameters,
		ReturnType: returnType,
		Complexity: pythonComplexity(node),
		Parent:     enclosingClass,
	}
}

func (p *PythonParser) parseClassDef(node *sitter.Node, content []byte) *model.CodeElement {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	name := nameNode.Content(content)

	return &model.CodeElement{
		Name:       name,
		Kind:       model.KindClass,
		Signature:  "class " + name + ":",
		Docstring:  p.extractDocstring(node, content),
		StartLine:  int(node.StartPoint().Row) + 1,
		EndLine:    int(node.EndPoint().Row) + 1,
		Complexity: 1 + countMethods(node),
	}
}

// extractParameters reads the parameter list. Splat parameters (*args,
// **kwargs) are skipped; defaults occupy the trailing positions by grammar.
func (p *PythonParser) extractParameters(paramsNode *sitter.Node, content []byte) []model.Parameter {
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

		case "typed_parameter":
			param := model.Parameter{}
			if t := child.ChildByFieldName("type"); t != nil {
				param.Type = singleLine(t.Content(content))
			}
			if nameNode := child.NamedChild(0); nameNode != nil && nameNode.Type() == "identifier" {
				param.Name = nameNode.Content(content)
			}
			if param.Name != "" {
				parameters = append(parameters, param)
			}

		case "default_parameter", "typed_default_parameter":
			param := model.Parameter{}
			if nameNode := child.ChildByFieldName("name"); nameNode != nil {
				param.Name = nameNode.Content(content)
			}
			if t := child.ChildByFieldName("type"); t != nil {
				param.Type = singleLine(t.Content(content))
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

func (p *PythonParser) extractDocstring(node *sitter.Node, content []byte) string {
	bodyNode := node.ChildByFieldName("body")
	if bodyNode == nil || bodyNode.ChildCount() == 0 {
		return ""
	}

	firstChild := bodyNode.Child(0)
	if firstChild == nil || firstChild.Type() != "expression_statement" {
		return ""
	}
	if firstChild.ChildCount() == 0 {
		return ""
	}

	expr := firstChild.Child(0)
	if expr == nil || expr.Type() != "string" {
		return ""
	}

	doc := expr.Content(content)
	doc = strings.TrimPrefix(doc, "\"\"\"")
	doc = strings.TrimPrefix(doc, "'''")
	doc = strings.TrimSuffix(doc, "\"\"\"")
	doc = strings.TrimSuffix(doc, "'''")
	return strings.TrimSpace(doc)
}

// pythonComplexity scores a definition: 1 plus one for every branch, loop,
// exception handler and short-circuit boolean operator in its subtree.
func pythonComplexity(node *sitter.Node) int {
	complexity := 1
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		for i := 0; i < int(n.ChildCount()); i++ {
			child := n.Child(i)
			if child == nil {
				continue
			}
			switch child.Type() {
			case "if_statement", "elif_clause", "while_statement", "for_statement",
				"except_clause", "boolean_operator":
				complexity++
			}
			walk(child)
		}
	}
	walk(node)
	return complexity
}

// countMethods counts function definitions directly in a class body,
// including decorated ones.
func countMethods(classNode *sitter.Node) int {
	bodyNode := classNode.ChildByFieldName("body")
	if bodyNode == nil {
		return 0
	}
	count := 0
	for i := 0; i < int(bodyNode.ChildCount()); i++ {
		child := bodyNode.Child(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "function_definition":
			count++
		case "decorated_definition":
			for j := 0; j < int(child.ChildCount()); j++ {
				if inner := child.Child(j); inner != nil && inner.Type() == "function_definition" {
					count++
				}
			}
		}
	}
	return count
}

// singleLine collapses whitespace runs so multi-line declarations render as
// one signature line.
func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
