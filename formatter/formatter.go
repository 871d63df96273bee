// Package formatter renders violations and run summaries in the
// standard compiler format understood by editors and CI:
//
//	path/to/file.py:10:0: RQ200 Docstring line too long (80 > 72)
package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"

	tt "github.com/RafaelJohn9/rigorq/internal/types"
)

var (
	fileStyle    = color.New(color.Faint)
	lineStyle    = color.New(color.FgYellow, color.Bold)
	ruffStyle    = color.New(color.FgCyan, color.Bold)
	rigorqStyle  = color.New(color.FgMagenta, color.Bold)
	errorStyle   = color.New(color.FgRed, color.Bold)
	successStyle = color.New(color.FgGreen, color.Bold)
	dimStyle     = color.New(color.Faint)
)

// Format renders violations one per line, sorted by path, line and
// column. Codes are colored by producer so ruff and rigorq findings
// can be told apart at a glance.
func Format(violations []tt.Violation) string {
	sorted := make([]tt.Violation, len(violations))
	copy(sorted, violations)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Filename != b.Filename {
			return a.Filename < b.Filename
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})

	var builder strings.Builder
	for _, v := range sorted {
		codeStyle := rigorqStyle
		if v.Tool == tt.ToolRuff {
			codeStyle = ruffStyle
		}
		builder.WriteString(fmt.Sprintf("%s:%s:%s: %s %s\n",
			fileStyle.Sprint(v.Filename),
			lineStyle.Sprintf("%d", v.Line),
			lineStyle.Sprintf("%d", v.Column),
			codeStyle.Sprint(v.Rule),
			v.Message,
		))
	}
	return builder.String()
}

// FormatErrors renders runtime errors, one per line.
func FormatErrors(errors []string) string {
	var builder strings.Builder
	for _, err := range errors {
		builder.WriteString(errorStyle.Sprint("error: "))
		builder.WriteString(err)
		builder.WriteString("\n")
	}
	return builder.String()
}

// FormatSummary renders the human-friendly trailer: a pass banner on a
// clean run, otherwise violation counts broken down by producer.
func FormatSummary(violations []tt.Violation, errorCount int) string {
	if len(violations) == 0 && errorCount == 0 {
		return successStyle.Sprint("✓") + " rigorq: All checks passed\n"
	}

	var builder strings.Builder
	builder.WriteString(errorStyle.Sprint("✗"))
	builder.WriteString(" rigorq: Quality checks failed\n")

	if len(violations) > 0 {
		byTool := make(map[string]int)
		files := make(map[string]bool)
		for _, v := range violations {
			byTool[v.Tool]++
			files[v.Filename] = true
		}

		builder.WriteString(dimStyle.Sprintf("Found %d %s in %d %s\n",
			len(violations), plural(len(violations), "violation"),
			len(files), plural(len(files), "file")))

		tools := make([]string, 0, len(byTool))
		for tool := range byTool {
			tools = append(tools, tool)
		}
		sort.Strings(tools)
		for _, tool := range tools {
			builder.WriteString(dimStyle.Sprintf("  → %3d %s\n", byTool[tool], tool))
		}
	}

	if errorCount > 0 {
		builder.WriteString(dimStyle.Sprintf("Encountered %d runtime %s\n",
			errorCount, plural(errorCount, "error")))
	}

	return builder.String()
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
