// Package python adapts tree-sitter's Python grammar into the plain
// syntax-tree and token-stream view the docstring checks work on.
// Trees are fully converted and closed before Parse returns, so the
// rest of the code never touches C-backed nodes.
package python

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// Node kinds that can own a docstring.
const (
	KindModule        = "module"
	KindClass         = "class"
	KindFunction      = "function"
	KindAsyncFunction = "async_function"
	KindMethod        = "method"
	KindAsyncMethod   = "async_method"
	KindUnknown       = "unknown"
)

// ModuleName is the sentinel name for module-level nodes.
const ModuleName = "<module>"

// ErrInvalidEncoding is returned when a source file is not valid UTF-8.
var ErrInvalidEncoding = errors.New("source is not valid UTF-8")

// ParseError reports syntactically invalid source. tree-sitter folds
// lexical errors (unterminated strings, bad indentation) into the same
// error tree, so tokenize failures surface here as well.
type ParseError struct {
	Filename string
	Line     int
	Column   int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: syntax error", e.Filename, e.Line, e.Column)
}

// Position is a source location: 1-based line, 0-based column.
type Position struct {
	Line   int
	Column int
}

// StringToken is a string literal from the lexical stream, delimiters
// included, with its exact source span.
type StringToken struct {
	Text  string
	Start Position
	End   Position
}

// Node is a syntax tree node that can own a docstring: the module or a
// class/function definition.
type Node struct {
	Kind  string
	Name  string
	Start Position
	End   Position
	Async bool

	// HasBody reports a non-empty statement body; FirstStmtString
	// reports that the body's first statement is a bare string
	// expression (the structural docstring precondition).
	HasBody         bool
	FirstStmtString bool

	// Params holds the declared positional parameter names, in order.
	// *args, **kwargs and keyword-only parameters are excluded, the
	// same set Python's ast exposes as args.args.
	Params []string

	// Children are the definitions nested directly in this node's body.
	Children []*Node
}

// File is the parsed view of one Python source file.
type File struct {
	Filename string
	Lines    []string
	Module   *Node
	Defs     []*Node       // every class/function definition, tree order
	Strings  []StringToken // every string token, lexical order
}

// Parse builds the tree and token view for src. It fails with
// ErrInvalidEncoding for non-UTF-8 input and *ParseError for invalid
// syntax; no partial results are returned.
func Parse(filename string, src []byte) (*File, error) {
	if !utf8.Valid(src) {
		return nil, fmt.Errorf("%s: %w", filename, ErrInvalidEncoding)
	}

	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		pos := firstErrorPosition(root)
		return nil, &ParseError{Filename: filename, Line: pos.Line, Column: pos.Column}
	}

	file := &File{
		Filename: filename,
		Lines:    strings.Split(string(src), "\n"),
	}

	file.Module = &Node{
		Kind:  KindModule,
		Name:  ModuleName,
		Start: Position{Line: 1, Column: 0},
		End:   endPosition(root),
	}
	classifyBody(root, file.Module)

	collect(root, src, file, file.Module)

	return file, nil
}

// collect walks every child of n, gathering string tokens and nested
// definitions. owner receives definitions found directly in its body.
func collect(n *sitter.Node, src []byte, file *File, owner *Node) {
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		switch child.Type() {
		case "string":
			file.Strings = append(file.Strings, StringToken{
				Text:  child.Content(src),
				Start: startPosition(child),
				End:   endPosition(child),
			})
		case "class_definition", "function_definition":
			def := buildDef(child, src)
			if owner.Kind == KindClass {
				switch def.Kind {
				case KindFunction:
					def.Kind = KindMethod
				case KindAsyncFunction:
					def.Kind = KindAsyncMethod
				}
			}
			file.Defs = append(file.Defs, def)
			owner.Children = append(owner.Children, def)
			for j := 0; j < int(child.ChildCount()); j++ {
				collect(child.Child(j), src, file, def)
			}
		default:
			collect(child, src, file, owner)
		}
	}
}

// buildDef converts a class_definition or function_definition CST node.
func buildDef(n *sitter.Node, src []byte) *Node {
	def := &Node{
		Start: startPosition(n),
		End:   endPosition(n),
	}

	if n.Type() == "class_definition" {
		def.Kind = KindClass
	} else {
		def.Kind = KindFunction
		for i := 0; i < int(n.ChildCount()); i++ {
			if n.Child(i).Type() == "async" {
				def.Async = true
				def.Kind = KindAsyncFunction
			}
		}
	}

	if name := n.ChildByFieldName("name"); name != nil {
		def.Name = name.Content(src)
	}
	if params := n.ChildByFieldName("parameters"); params != nil {
		def.Params = parameterNames(params, src)
	}
	if body := n.ChildByFieldName("body"); body != nil {
		classifyBody(body, def)
	}

	return def
}

// classifyBody records whether the body's first statement (comments
// skipped, as Python's grammar treats them as trivia) is a bare string
// expression. f-strings carry interpolation children and are not
// string constants.
func classifyBody(body *sitter.Node, def *Node) {
	for i := 0; i < int(body.NamedChildCount()); i++ {
		stmt := body.NamedChild(i)
		if stmt.Type() == "comment" {
			continue
		}
		def.HasBody = true
		if stmt.Type() == "expression_statement" && stmt.NamedChildCount() > 0 {
			expr := stmt.NamedChild(0)
			if expr.Type() == "string" && !hasInterpolation(expr) {
				def.FirstStmtString = true
			}
		}
		return
	}
}

func hasInterpolation(str *sitter.Node) bool {
	for i := 0; i < int(str.NamedChildCount()); i++ {
		if str.NamedChild(i).Type() == "interpolation" {
			return true
		}
	}
	return false
}

// parameterNames extracts declared positional parameter names,
// stopping at *args or the keyword-only marker.
func parameterNames(params *sitter.Node, src []byte) []string {
	var names []string
	for i := 0; i < int(params.NamedChildCount()); i++ {
		p := params.NamedChild(i)
		switch p.Type() {
		case "identifier":
			names = append(names, p.Content(src))
		case "typed_parameter":
			if inner := p.NamedChild(0); inner != nil && inner.Type() == "identifier" {
				names = append(names, inner.Content(src))
			}
		case "default_parameter", "typed_default_parameter":
			if name := p.ChildByFieldName("name"); name != nil && name.Type() == "identifier" {
				names = append(names, name.Content(src))
			}
		case "list_splat_pattern", "keyword_separator", "dictionary_splat_pattern":
			return names
		}
	}
	return names
}

func firstErrorPosition(n *sitter.Node) Position {
	if n.Type() == "ERROR" || n.IsMissing() {
		return startPosition(n)
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child.HasError() || child.IsMissing() {
			return firstErrorPosition(child)
		}
	}
	return startPosition(n)
}

func startPosition(n *sitter.Node) Position {
	return Position{Line: int(n.StartPoint().Row) + 1, Column: int(n.StartPoint().Column)}
}

func endPosition(n *sitter.Node) Position {
	return Position{Line: int(n.EndPoint().Row) + 1, Column: int(n.EndPoint().Column)}
}
