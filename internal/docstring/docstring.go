// Package docstring detects true docstrings in Python source and runs
// a pluggable set of rule validators against them. A true docstring is
// a string literal that is the first statement of a module, class or
// function body, confirmed both structurally and by its position
// relative to the owning declaration.
package docstring

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/RafaelJohn9/rigorq/internal/python"
	tt "github.com/RafaelJohn9/rigorq/internal/types"
)

// moduleWindow is the last line on which a module docstring may start,
// tolerating a shebang line and an encoding declaration before it.
const moduleWindow = 3

// Line is one raw source line of a docstring with its 1-based number.
type Line struct {
	Num  int
	Text string
}

// Info is the structured view of one confirmed docstring handed to
// validators. Validators treat it as read-only.
type Info struct {
	Node     *python.Node
	Token    python.StringToken
	RawLines []Line

	// Content is the token text with one leading and one trailing
	// triple-quote delimiter stripped.
	Content string

	StartLine int
	EndLine   int

	// IndentLevel is the length of the first raw line, used as a
	// base-indent heuristic.
	IndentLevel int

	NodeKind string
	NodeName string
}

// isDocstringCandidate reports whether tok is node's true docstring.
// Structural checks (first statement in body, string constant) come
// from the parse; the positional check is what rejects a string that
// is first-in-body of a different, nested node paired with an
// enclosing node by the driver's coarse candidate window.
func isDocstringCandidate(node *python.Node, tok python.StringToken) bool {
	switch node.Kind {
	case python.KindModule, python.KindClass,
		python.KindFunction, python.KindAsyncFunction,
		python.KindMethod, python.KindAsyncMethod:
	default:
		return false
	}

	if !node.HasBody || !node.FirstStmtString {
		return false
	}

	// Module docstrings may follow a shebang and an encoding comment.
	if node.Kind == python.KindModule {
		return tok.Start.Line <= max(moduleWindow, node.Start.Line+2)
	}

	// Class/function docstrings sit within two lines of the header,
	// covering a blank line or a multi-line signature.
	diff := tok.Start.Line - node.Start.Line
	if diff < 0 {
		diff = -diff
	}
	return diff <= 2
}

// extract builds the Info for a confirmed docstring token. It is total:
// any malformed input has already been rejected by the classifier.
func extract(node *python.Node, tok python.StringToken, sourceLines []string) *Info {
	info := &Info{
		Node:      node,
		Token:     tok,
		RawLines:  extractRawLines(tok, sourceLines),
		Content:   stripDelimiters(tok.Text),
		StartLine: tok.Start.Line,
		EndLine:   tok.End.Line,
	}

	if len(info.RawLines) > 0 {
		info.IndentLevel = len(info.RawLines[0].Text)
	}

	switch node.Kind {
	case python.KindModule:
		info.NodeKind = python.KindModule
		info.NodeName = python.ModuleName
	case python.KindClass, python.KindFunction, python.KindAsyncFunction,
		python.KindMethod, python.KindAsyncMethod:
		info.NodeKind = node.Kind
		info.NodeName = node.Name
	default:
		info.NodeKind = python.KindUnknown
		info.NodeName = "<unknown>"
	}

	return info
}

// extractRawLines returns the verbatim source lines covering the token
// span. A token sharing its line with other content is reconstructed
// by locating the literal within the raw line.
func extractRawLines(tok python.StringToken, sourceLines []string) []Line {
	startLine, endLine := tok.Start.Line, tok.End.Line

	if startLine == endLine {
		raw := sourceLines[startLine-1]
		idx := strings.Index(raw, tok.Text)
		if idx < 0 {
			return []Line{{Num: startLine, Text: raw}}
		}
		var lines []Line
		for i, part := range strings.Split(tok.Text, "\n") {
			lines = append(lines, Line{Num: startLine + i, Text: raw[:idx] + part})
		}
		return lines
	}

	var lines []Line
	for i := startLine - 1; i < endLine; i++ {
		if i < len(sourceLines) {
			lines = append(lines, Line{Num: i + 1, Text: sourceLines[i]})
		}
	}
	return lines
}

// stripDelimiters removes one leading and one trailing triple-quote
// delimiter, each independently.
func stripDelimiters(text string) string {
	if strings.HasPrefix(text, `"""`) || strings.HasPrefix(text, "'''") {
		text = text[3:]
	}
	if strings.HasSuffix(text, `"""`) || strings.HasSuffix(text, "'''") {
		text = text[:len(text)-3]
	}
	return text
}

type span struct {
	start python.Position
	end   python.Position
}

// Validate parses path and runs validators over every true docstring,
// returning located violations in deterministic order. A nil validators
// slice selects DefaultValidators. Decode failures are wrapped in a
// domain error; parse failures propagate verbatim so callers can tell
// "could not analyze" from "analyzed, found issues".
func Validate(path string, validators []Validator, skipPrivate bool) ([]tt.Violation, error) {
	if validators == nil {
		validators = DefaultValidators()
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	file, err := python.Parse(path, src)
	if err != nil {
		if errors.Is(err, python.ErrInvalidEncoding) {
			return nil, fmt.Errorf("cannot read %s as UTF-8: %w", path, python.ErrInvalidEncoding)
		}
		return nil, err
	}

	if len(file.Strings) == 0 {
		return nil, nil
	}

	var violations []tt.Violation
	validated := make(map[span]bool)

	process := func(node *python.Node, tok python.StringToken) {
		id := span{start: tok.Start, end: tok.End}
		if validated[id] {
			return
		}
		validated[id] = true

		info := extract(node, tok, file.Lines)

		// Dunder names stay validated even when privates are skipped.
		if skipPrivate {
			name := info.NodeName
			dunder := strings.HasPrefix(name, "__") && strings.HasSuffix(name, "__")
			if strings.HasPrefix(name, "_") && !dunder {
				return
			}
		}

		for _, v := range validators {
			for _, line := range info.RawLines {
				if violation := v.ValidateLine(line.Num, line.Text, info, path); violation != nil {
					violations = append(violations, *violation)
				}
			}
			violations = append(violations, v.ValidateDocstring(info, path)...)
		}
	}

	// Module-level candidates start on or before line 3.
	for _, tok := range file.Strings {
		if tok.Start.Line <= moduleWindow && isDocstringCandidate(file.Module, tok) {
			process(file.Module, tok)
		}
	}

	// Class/function candidates fall inside each definition's window.
	for _, node := range file.Defs {
		for _, tok := range file.Strings {
			if tok.Start.Line < node.Start.Line || tok.Start.Line > node.End.Line+2 {
				continue
			}
			if isDocstringCandidate(node, tok) {
				process(node, tok)
			}
		}
	}

	return violations, nil
}
