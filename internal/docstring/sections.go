package docstring

import (
	"strings"

	"github.com/RafaelJohn9/rigorq/internal/python"
	tt "github.com/RafaelJohn9/rigorq/internal/types"
)

const (
	parametersUnderline = "----------"
	returnsUnderline    = "-------"
	descriptionIndent   = "    "
)

// Sections enforces strict NumPy-style Parameters/Returns sections on
// callables with documentable parameters, and on classes whose
// __init__ declares parameters beyond the binding parameter. The scan
// stops at the first structural mismatch, so at most one violation is
// emitted per docstring.
type Sections struct {
	BaseValidator
}

func NewSections() *Sections {
	return &Sections{}
}

func (r *Sections) Code() string { return "RQ206" }

func (r *Sections) Description() string {
	return "Docstring must follow strict NumPy parameter/return format"
}

func (r *Sections) ValidateDocstring(info *Info, path string) []tt.Violation {
	if !r.applicable(info) {
		return nil
	}

	isClass := info.NodeKind == python.KindClass

	lines := make([]string, len(info.RawLines))
	for i, line := range info.RawLines {
		lines[i] = line.Text
	}
	n := len(lines)

	fail := func(line int, msg string) []tt.Violation {
		return []tt.Violation{{
			Rule:     r.Code(),
			Filename: path,
			Line:     line,
			Column:   0,
			Message:  msg,
			Tool:     tt.ToolRigorq,
		}}
	}

	i := 0
	for i < n && strings.TrimSpace(lines[i]) != "Parameters" {
		i++
	}
	if i == n {
		return fail(info.StartLine, "Missing 'Parameters' section in docstring")
	}

	if i+1 >= n || strings.TrimSpace(lines[i+1]) != parametersUnderline {
		return fail(info.StartLine+i+1, "Missing dashed underline under 'Parameters'")
	}
	i += 2

	if i >= n || !strings.Contains(lines[i], " : ") {
		return fail(info.StartLine+i, "Parameter must be in format '<name> : <type>'")
	}
	name, typ, _ := strings.Cut(strings.TrimSpace(lines[i]), " : ")
	if name == "" || typ == "" {
		return fail(info.StartLine+i, "Parameter must be in format '<name> : <type>'")
	}
	i++

	if i >= n || !strings.HasPrefix(lines[i], descriptionIndent) {
		return fail(info.StartLine+i, "Parameter description must be indented by 4 spaces")
	}
	for i < n && strings.HasPrefix(lines[i], descriptionIndent) {
		i++
	}

	// Classes document __init__ parameters only; no Returns section.
	if isClass {
		return nil
	}

	if i < n && strings.TrimSpace(lines[i]) != "" {
		return fail(info.StartLine+i, "Expected blank line after parameter block")
	}
	i++

	if i >= n || strings.TrimSpace(lines[i]) != "Returns" {
		return fail(info.StartLine+i, "Missing 'Returns' section after parameters")
	}
	if i+1 >= n || strings.TrimSpace(lines[i+1]) != returnsUnderline {
		return fail(info.StartLine+i+1, "Missing dashed underline under 'Returns'")
	}
	i += 2

	if i >= n || strings.TrimSpace(lines[i]) == "" {
		return fail(info.StartLine+i, "Return type must be specified")
	}
	i++

	if i >= n || !strings.HasPrefix(lines[i], descriptionIndent) {
		return fail(info.StartLine+i, "Return description must be indented by 4 spaces")
	}

	return nil
}

// applicable decides whether the docstring's owner has parameters
// worth documenting.
func (r *Sections) applicable(info *Info) bool {
	switch info.NodeKind {
	case python.KindClass:
		init := findInit(info.Node)
		return init != nil && len(init.Params) > 1
	case python.KindFunction, python.KindAsyncFunction,
		python.KindMethod, python.KindAsyncMethod:
		params := info.Node.Params
		minParams := 1
		if len(params) > 0 && (params[0] == "self" || params[0] == "cls") {
			minParams = 2
		}
		return len(params) >= minParams
	default:
		return false
	}
}

func findInit(class *python.Node) *python.Node {
	for _, child := range class.Children {
		if child.Name == "__init__" && !child.Async {
			switch child.Kind {
			case python.KindFunction, python.KindMethod:
				return child
			}
		}
	}
	return nil
}
